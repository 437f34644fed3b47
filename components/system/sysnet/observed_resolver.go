package sysnet

import (
	"context"
	"time"
)

// ObservedResolver reports every lookup of the underlying resolver to the handler.
type ObservedResolver struct {
	resolver Resolver
	handler  LookupHandler
	now      func() time.Time
}

// NewObservedResolver is an initialization of ObservedResolver.
//
// Parameters:
//   - resolver to perform the actual lookups.
//   - handler to be notified when a lookup is completed.
func NewObservedResolver(resolver Resolver, handler LookupHandler) *ObservedResolver {
	return &ObservedResolver{
		resolver: resolver,
		handler:  handler,
		now:      time.Now,
	}
}

// LookupPTR returns pointer records for the name.
func (r *ObservedResolver) LookupPTR(ctx context.Context, name string) ([]PTRRecord, error) {
	start := r.now()
	records, err := r.resolver.LookupPTR(ctx, name)
	r.report(RecordTypePTR, name, len(records), start, err)

	return records, err
}

// LookupSRV returns service records for the name.
func (r *ObservedResolver) LookupSRV(ctx context.Context, name string) ([]SRVRecord, error) {
	start := r.now()
	records, err := r.resolver.LookupSRV(ctx, name)
	r.report(RecordTypeSRV, name, len(records), start, err)

	return records, err
}

// LookupTXT returns text records for the name.
func (r *ObservedResolver) LookupTXT(ctx context.Context, name string) ([]TXTRecord, error) {
	start := r.now()
	records, err := r.resolver.LookupTXT(ctx, name)
	r.report(RecordTypeTXT, name, len(records), start, err)

	return records, err
}

func (r *ObservedResolver) report(
	recordType RecordType,
	name string,
	count int,
	start time.Time,
	err error,
) {
	r.handler.HandleLookup(LookupReport{
		Type:     recordType,
		Name:     name,
		Records:  count,
		Duration: r.now().Sub(start),
		Err:      err,
	})
}
