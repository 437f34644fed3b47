package dnssd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/open-control-systems/wasd/components/status"
	"github.com/open-control-systems/wasd/components/system/sysnet"
)

// Instance identifies a single advertised instance of a service.
//
// Remarks:
//   - Instance is an immutable value.
//   - The resolver handle isn't a part of the instance identity.
type Instance struct {
	service     Service
	description string
	resolver    sysnet.Resolver
}

// NewInstance makes the instance of the service bound to the service resolver.
//
// Parameters:
//   - service the instance belongs to.
//   - description - human readable instance name, e.g. "Living Room". Required.
func NewInstance(service Service, description string) (Instance, error) {
	if description == "" {
		return Instance{}, fmt.Errorf("no description given: %w", status.StatusInvalidArg)
	}

	return Instance{
		service:     service,
		description: description,
		resolver:    service.resolver,
	}, nil
}

// InstanceFromPTR makes the instance from the pointer record target.
//
// Parameters:
//   - service the pointer record was looked up for.
//   - target - pointer record target, e.g. "Hello\ There._http._tcp.example.com.".
//   - resolver to bind the instance to, can be nil.
func InstanceFromPTR(service Service, target string, resolver sysnet.Resolver) (Instance, error) {
	description, err := ParseDescription(target)
	if err != nil {
		return Instance{}, err
	}

	return Instance{
		service:     service,
		description: description,
		resolver:    resolver,
	}, nil
}

// Service returns the service of the instance.
func (i Instance) Service() Service {
	return i.service
}

// Description returns the unescaped human readable instance name.
func (i Instance) Description() string {
	return i.description
}

// Resolver returns the resolver the instance is bound to, can be nil.
func (i Instance) Resolver() sysnet.Resolver {
	return i.resolver
}

// WithResolver returns a copy of the instance bound to the resolver.
func (i Instance) WithResolver(resolver sysnet.Resolver) Instance {
	i.resolver = resolver

	return i
}

// Equal reports whether both instances have the same service and description.
func (i Instance) Equal(other Instance) bool {
	return i.service.Equal(other.service) && i.description == other.description
}

// DNSName returns the DNS-SD name of the instance, e.g. "Hello\ There._http._tcp.example.com".
func (i Instance) DNSName() string {
	return EscapeDescription(i.description) + "." + i.service.DNSName()
}

// String returns the DNS-SD name of the instance.
func (i Instance) String() string {
	return i.DNSName()
}

// Resolve looks up the service and text records of the instance.
//
// Parameters:
//   - ctx is passed to the resolver.
//   - provider is used if the instance isn't bound to a resolver, can be nil.
//
// Remarks:
//   - Service records are looked up first, text records are looked up only if
//     there is at least one endpoint.
//   - Returns *NoEndpointsError if there are no service records.
func (i Instance) Resolve(ctx context.Context, provider ResolverProvider) (ResolvedInstance, error) {
	resolver, err := selectResolver(i.resolver, provider)
	if err != nil {
		return ResolvedInstance{}, err
	}

	name := i.DNSName()

	srvs, err := resolver.LookupSRV(ctx, name)
	if err != nil {
		return ResolvedInstance{}, fmt.Errorf("failed to resolve instance: name=%s err=%w",
			name, err)
	}

	endpoints := EndpointsFromSRV(srvs)
	if len(endpoints) == 0 {
		return ResolvedInstance{}, &NoEndpointsError{Target: i}
	}

	txts, err := resolver.LookupTXT(ctx, name)
	if err != nil {
		return ResolvedInstance{}, fmt.Errorf("failed to resolve instance properties:"+
			" name=%s err=%w", name, err)
	}

	return ResolvedInstance{
		Instance:   i,
		Endpoints:  endpoints,
		Properties: DecodeProperties(txts),
	}, nil
}

// MarshalJSON encodes the instance as its service object with the "description" field.
func (i Instance) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.view())
}

type instanceView struct {
	Description string `json:"description"`
	serviceView
}

func (i Instance) view() instanceView {
	return instanceView{
		Description: i.description,
		serviceView: i.service.view(),
	}
}
