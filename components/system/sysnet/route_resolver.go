package sysnet

import "context"

// RouteResolver sends ".local." names to the mDNS resolver and the rest to the
// unicast resolver.
type RouteResolver struct {
	unicast Resolver
	mdns    Resolver
}

// NewRouteResolver is an initialization of RouteResolver.
//
// Parameters:
//   - unicast to resolve regular DNS names.
//   - mdns to resolve ".local." names, if nil unicast is used for all names.
func NewRouteResolver(unicast Resolver, mdns Resolver) *RouteResolver {
	return &RouteResolver{
		unicast: unicast,
		mdns:    mdns,
	}
}

// LookupPTR returns pointer records for the name.
func (r *RouteResolver) LookupPTR(ctx context.Context, name string) ([]PTRRecord, error) {
	return r.route(name).LookupPTR(ctx, name)
}

// LookupSRV returns service records for the name.
func (r *RouteResolver) LookupSRV(ctx context.Context, name string) ([]SRVRecord, error) {
	return r.route(name).LookupSRV(ctx, name)
}

// LookupTXT returns text records for the name.
func (r *RouteResolver) LookupTXT(ctx context.Context, name string) ([]TXTRecord, error) {
	return r.route(name).LookupTXT(ctx, name)
}

func (r *RouteResolver) route(name string) Resolver {
	if r.mdns != nil && isMdnsName(name) {
		return r.mdns
	}

	return r.unicast
}
