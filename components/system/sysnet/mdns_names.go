package sysnet

import (
	"fmt"
	"strings"

	"github.com/miekg/dns"

	"github.com/open-control-systems/wasd/components/status"
)

// mdnsName is a DNS-SD name split into its parts, labels keep their escaping.
//
// Examples:
//   - "_http._tcp.local." - instance="", service="_http._tcp", domain="local".
//   - "Living\ Room._http._tcp.local." - instance="Living\ Room".
//   - "_printer._sub._http._tcp.local." - service="_printer._sub._http._tcp".
type mdnsName struct {
	instance string
	service  string
	domain   string
}

func parseMdnsName(name string) (mdnsName, error) {
	labels := dns.SplitDomainName(name)

	begin := 0
	for begin < len(labels) && !strings.HasPrefix(labels[begin], "_") {
		begin++
	}

	end := begin
	for end < len(labels) && strings.HasPrefix(labels[end], "_") {
		end++
	}

	if begin > 1 || end-begin < 2 || end == len(labels) {
		return mdnsName{}, fmt.Errorf("mdns-resolver: unsupported name: %s: %w",
			name, status.StatusInvalidArg)
	}

	return mdnsName{
		instance: strings.Join(labels[:begin], "."),
		service:  strings.Join(labels[begin:end], "."),
		domain:   strings.Join(labels[end:], "."),
	}, nil
}

func isMdnsName(name string) bool {
	return dns.IsSubDomain("local.", dns.Fqdn(name))
}
