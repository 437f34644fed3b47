package sysnet

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/grandcat/zeroconf"

	"github.com/open-control-systems/wasd/components/status"
)

const defaultMdnsTimeout = time.Second * 2

// MdnsResolverParams represents various options for zeroconf mDNS resolver.
type MdnsResolverParams struct {
	// Timeout is how long to collect answers for a single lookup, 2s if zero.
	Timeout time.Duration
}

// MdnsResolver resolves DNS-SD records over multicast DNS.
//
// Remarks:
//   - Only names in the "local." domain are supported.
//   - PTR lookup browses for the service, SRV and TXT lookups query the instance.
//   - SRV and TXT lookups for a name without an instance label return no records.
//   - mDNS doesn't carry the SRV priority to the client, it's always 0.
//
// References:
//   - https://github.com/grandcat/zeroconf
//   - https://datatracker.ietf.org/doc/html/rfc6762
type MdnsResolver struct {
	params MdnsResolverParams
}

// NewMdnsResolver is an initialization of MdnsResolver.
func NewMdnsResolver(params MdnsResolverParams) *MdnsResolver {
	if params.Timeout == 0 {
		params.Timeout = defaultMdnsTimeout
	}

	return &MdnsResolver{params: params}
}

// LookupPTR browses the local network for the service instances.
func (r *MdnsResolver) LookupPTR(ctx context.Context, name string) ([]PTRRecord, error) {
	parsed, err := r.parse(name)
	if err != nil {
		return nil, err
	}

	if parsed.instance != "" {
		return nil, nil
	}

	entries, err := r.collect(ctx, func(
		ctx context.Context, resolver *zeroconf.Resolver, ch chan *zeroconf.ServiceEntry,
	) error {
		return resolver.Browse(ctx, parsed.service, parsed.domain, ch)
	})
	if err != nil {
		return nil, err
	}

	var records []PTRRecord

	for _, entry := range entries {
		records = append(records, PTRRecord{Target: decodeDomainName(entry.ServiceInstanceName())})
	}

	return records, nil
}

// LookupSRV queries the local network for the instance host and port.
func (r *MdnsResolver) LookupSRV(ctx context.Context, name string) ([]SRVRecord, error) {
	entries, err := r.lookupInstance(ctx, name)
	if err != nil {
		return nil, err
	}

	var records []SRVRecord

	for _, entry := range entries {
		if entry.HostName == "" {
			continue
		}

		records = append(records, SRVRecord{
			Target: strings.TrimSuffix(entry.HostName, "."),
			Port:   entry.Port,
		})
	}

	return records, nil
}

// LookupTXT queries the local network for the instance text record.
func (r *MdnsResolver) LookupTXT(ctx context.Context, name string) ([]TXTRecord, error) {
	entries, err := r.lookupInstance(ctx, name)
	if err != nil {
		return nil, err
	}

	var records []TXTRecord

	for _, entry := range entries {
		if len(entry.Text) == 0 {
			continue
		}

		records = append(records, TXTRecord{Entries: decodeCharacterStrings(entry.Text)})
	}

	return records, nil
}

func (r *MdnsResolver) lookupInstance(
	ctx context.Context,
	name string,
) ([]*zeroconf.ServiceEntry, error) {
	parsed, err := r.parse(name)
	if err != nil {
		return nil, err
	}

	if parsed.instance == "" {
		return nil, nil
	}

	return r.collect(ctx, func(
		ctx context.Context, resolver *zeroconf.Resolver, ch chan *zeroconf.ServiceEntry,
	) error {
		// zeroconf matches answers by the name in the presentation format.
		return resolver.Lookup(ctx, encodeDomainName(parsed.instance), parsed.service,
			parsed.domain, ch)
	})
}

func (*MdnsResolver) parse(name string) (mdnsName, error) {
	if !isMdnsName(name) {
		return mdnsName{}, fmt.Errorf("mdns-resolver: unsupported name: %s: %w",
			name, status.StatusNotSupported)
	}

	return parseMdnsName(name)
}

// collect runs a single zeroconf query and gathers its entries until the timeout.
//
// Remarks:
//   - zeroconf shuts its connections down once the query context is done,
//     so a resolver is created for every query.
func (r *MdnsResolver) collect(
	ctx context.Context,
	query func(context.Context, *zeroconf.Resolver, chan *zeroconf.ServiceEntry) error,
) ([]*zeroconf.ServiceEntry, error) {
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("mdns-resolver: failed to create resolver: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.params.Timeout)
	defer cancel()

	ch := make(chan *zeroconf.ServiceEntry)

	if err := query(ctx, resolver, ch); err != nil {
		return nil, fmt.Errorf("mdns-resolver: query failed: %w", err)
	}

	var entries []*zeroconf.ServiceEntry

	// The channel is closed by zeroconf when ctx is done.
	for entry := range ch {
		entries = append(entries, entry)
	}

	return entries, nil
}
