package dnssd

import (
	"net/url"
	"slices"
	"sort"
	"strconv"

	"github.com/open-control-systems/wasd/components/system/sysnet"
)

// Endpoint is a single network target taken from a service record.
type Endpoint struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Priority int    `json:"priority"`
}

// HTTPURI returns the HTTP URI of the endpoint.
//
// Remarks:
//   - Port 443 gives "https://host", port 80 gives "http://host".
//   - Any other port is kept in the URI, the scheme is https only if defaultToHTTPS is set.
//   - Host is used as is.
func (e Endpoint) HTTPURI(defaultToHTTPS bool) *url.URL {
	switch e.Port {
	case 443:
		return &url.URL{Scheme: "https", Host: e.Host}

	case 80:
		return &url.URL{Scheme: "http", Host: e.Host}
	}

	scheme := "http"
	if defaultToHTTPS {
		scheme = "https"
	}

	return &url.URL{Scheme: scheme, Host: e.Host + ":" + strconv.Itoa(e.Port)}
}

// EndpointsFromSRV makes endpoints from the service records, highest priority value first.
//
// Remarks:
//   - Records are sorted by ascending priority and then the whole sequence is reversed,
//     so records with equal priority end up in the reverse order of arrival.
func EndpointsFromSRV(records []sysnet.SRVRecord) []Endpoint {
	endpoints := make([]Endpoint, 0, len(records))

	for _, record := range records {
		endpoints = append(endpoints, Endpoint{
			Host:     record.Target,
			Port:     record.Port,
			Priority: record.Priority,
		})
	}

	sort.SliceStable(endpoints, func(i, j int) bool {
		return endpoints[i].Priority < endpoints[j].Priority
	})

	slices.Reverse(endpoints)

	return endpoints
}
