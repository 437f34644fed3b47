package dnssd

import "github.com/open-control-systems/wasd/components/system/sysnet"

// ResolverProvider provides the resolver for a Resolve call.
//
// There are two kinds of providers:
//   - UseResolver wraps a resolver itself.
//   - *Client exposes the resolver it holds.
type ResolverProvider interface {
	// Resolver returns the resolver, nil means there is none.
	Resolver() sysnet.Resolver
}

// UseResolver wraps the resolver to be passed to Resolve.
func UseResolver(resolver sysnet.Resolver) ResolverProvider {
	return resolverHandle{resolver: resolver}
}

type resolverHandle struct {
	resolver sysnet.Resolver
}

func (h resolverHandle) Resolver() sysnet.Resolver {
	return h.resolver
}

// selectResolver prefers the descriptor's own resolver, the provider is a fallback.
func selectResolver(own sysnet.Resolver, provider ResolverProvider) (sysnet.Resolver, error) {
	if own != nil {
		return own, nil
	}

	if provider != nil {
		if resolver := provider.Resolver(); resolver != nil {
			return resolver, nil
		}
	}

	return nil, ErrMissingResolver
}
