package sysnet

import (
	"context"
	"errors"
	"fmt"
	"net"
	"slices"
	"strings"
	"time"

	"github.com/miekg/dns"

	"github.com/open-control-systems/wasd/components/core"
	"github.com/open-control-systems/wasd/components/status"
)

const (
	defaultDNSConfigPath = "/etc/resolv.conf"
	defaultDNSPort       = "53"
	defaultDNSTimeout    = time.Second * 5
)

// DNSResolverParams represents various options for the unicast DNS resolver.
type DNSResolverParams struct {
	// Servers is a list of nameservers, "host" or "host:port".
	//
	// Remarks:
	//  - If empty, nameservers are read from ConfigPath.
	Servers []string

	// ConfigPath is a resolv.conf(5) file, "/etc/resolv.conf" if empty.
	ConfigPath string

	// Timeout limits a single exchange with a nameserver, 5s if zero.
	Timeout time.Duration
}

// DNSResolver performs conventional unicast DNS queries.
//
// Remarks:
//   - Nameservers are tried in order, the next one is used only if the previous one
//     failed or replied with an rcode other than NOERROR and NXDOMAIN.
//   - UDP is used first, the query is repeated over TCP if the answer was truncated.
//
// References:
//   - https://github.com/miekg/dns
//   - https://datatracker.ietf.org/doc/html/rfc6763#section-10
type DNSResolver struct {
	servers []string
	timeout time.Duration
}

// NewDNSResolver is an initialization of DNSResolver.
func NewDNSResolver(params DNSResolverParams) (*DNSResolver, error) {
	timeout := params.Timeout
	if timeout == 0 {
		timeout = defaultDNSTimeout
	}

	servers := params.Servers
	port := defaultDNSPort

	if len(servers) == 0 {
		path := params.ConfigPath
		if path == "" {
			path = defaultDNSConfigPath
		}

		config, err := dns.ClientConfigFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("dns-resolver: failed to read config: path=%s err=%w",
				path, err)
		}

		servers = config.Servers
		if config.Port != "" {
			port = config.Port
		}
	}

	if len(servers) == 0 {
		return nil, fmt.Errorf("dns-resolver: no nameservers configured: %w",
			status.StatusInvalidArg)
	}

	resolver := &DNSResolver{timeout: timeout}

	for _, server := range servers {
		if _, _, err := net.SplitHostPort(server); err != nil {
			server = net.JoinHostPort(server, port)
		}

		resolver.servers = append(resolver.servers, server)
	}

	return resolver, nil
}

// Servers returns nameservers in the "host:port" form.
func (r *DNSResolver) Servers() []string {
	return slices.Clone(r.servers)
}

// LookupPTR returns pointer records for the name.
func (r *DNSResolver) LookupPTR(ctx context.Context, name string) ([]PTRRecord, error) {
	answers, err := r.query(ctx, name, dns.TypePTR)
	if err != nil {
		return nil, err
	}

	var records []PTRRecord

	for _, answer := range answers {
		if rr, ok := answer.(*dns.PTR); ok {
			records = append(records, PTRRecord{Target: decodeDomainName(rr.Ptr)})
		}
	}

	return records, nil
}

// LookupSRV returns service records for the name.
func (r *DNSResolver) LookupSRV(ctx context.Context, name string) ([]SRVRecord, error) {
	answers, err := r.query(ctx, name, dns.TypeSRV)
	if err != nil {
		return nil, err
	}

	var records []SRVRecord

	for _, answer := range answers {
		if rr, ok := answer.(*dns.SRV); ok {
			records = append(records, SRVRecord{
				Target:   strings.TrimSuffix(rr.Target, "."),
				Port:     int(rr.Port),
				Priority: int(rr.Priority),
				Weight:   int(rr.Weight),
			})
		}
	}

	return records, nil
}

// LookupTXT returns text records for the name.
func (r *DNSResolver) LookupTXT(ctx context.Context, name string) ([]TXTRecord, error) {
	answers, err := r.query(ctx, name, dns.TypeTXT)
	if err != nil {
		return nil, err
	}

	var records []TXTRecord

	for _, answer := range answers {
		if rr, ok := answer.(*dns.TXT); ok {
			records = append(records, TXTRecord{Entries: decodeCharacterStrings(rr.Txt)})
		}
	}

	return records, nil
}

func (r *DNSResolver) query(ctx context.Context, name string, qtype uint16) ([]dns.RR, error) {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(name), qtype)

	var lastErr error

	for _, server := range r.servers {
		resp, err := r.exchange(ctx, msg, server)
		if err != nil {
			lastErr = fmt.Errorf("dns-resolver: exchange failed: name=%s type=%s server=%s: %w",
				name, dns.TypeToString[qtype], server, err)

			if ctx.Err() != nil {
				return nil, lastErr
			}

			core.LogWrn.Println(lastErr)

			continue
		}

		switch resp.Rcode {
		case dns.RcodeSuccess:
			return resp.Answer, nil

		case dns.RcodeNameError:
			return nil, nil

		default:
			lastErr = fmt.Errorf("dns-resolver: query failed: name=%s type=%s server=%s rcode=%s: %w",
				name, dns.TypeToString[qtype], server, dns.RcodeToString[resp.Rcode],
				status.StatusError)

			core.LogWrn.Println(lastErr)
		}
	}

	return nil, lastErr
}

func (r *DNSResolver) exchange(ctx context.Context, msg *dns.Msg, server string) (*dns.Msg, error) {
	client := &dns.Client{Net: "udp", Timeout: r.timeout}

	resp, _, err := client.ExchangeContext(ctx, msg, server)
	if err != nil {
		return nil, wrapExchangeError(err)
	}

	if resp.Truncated {
		client = &dns.Client{Net: "tcp", Timeout: r.timeout}

		resp, _, err = client.ExchangeContext(ctx, msg, server)
		if err != nil {
			return nil, wrapExchangeError(err)
		}
	}

	return resp, nil
}

func wrapExchangeError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %w", status.StatusTimeout, err)
	}

	return err
}
