package dnssd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/open-control-systems/wasd/components/status"
	"github.com/open-control-systems/wasd/components/system/sysnet"
)

// DefaultProtocol is the transport protocol used when none is given.
const DefaultProtocol = "tcp"

// ServiceParams describes a service.
type ServiceParams struct {
	// Name is a service name without the leading underscore, e.g. "http". Required.
	Name string

	// Protocol is a transport protocol without the leading underscore, "tcp" if empty.
	Protocol string

	// Domain is a DNS domain, e.g. "example.com".
	//
	// Remarks:
	//  - Client uses its default domain if empty.
	Domain string

	// Subtype narrows the service type, e.g. "printer". Optional.
	Subtype string
}

// Service identifies a DNS-SD service: name, protocol, domain and optional subtype.
//
// Remarks:
//   - Service is an immutable value, use With and WithResolver to derive a modified copy.
//   - The resolver handle isn't a part of the service identity.
type Service struct {
	name     string
	protocol string
	domain   string
	subtype  string
	resolver sysnet.Resolver
}

// NewService validates the parameters and makes the service bound to the resolver.
//
// Parameters:
//   - params - service description, Name and Domain are required.
//   - resolver to resolve the service, can be nil.
func NewService(params ServiceParams, resolver sysnet.Resolver) (Service, error) {
	if params.Name == "" {
		return Service{}, fmt.Errorf("no service name given: %w", status.StatusInvalidArg)
	}

	if params.Protocol == "" {
		params.Protocol = DefaultProtocol
	}

	if params.Domain == "" {
		return Service{}, ErrMissingDomain
	}

	return Service{
		name:     params.Name,
		protocol: params.Protocol,
		domain:   params.Domain,
		subtype:  params.Subtype,
		resolver: resolver,
	}, nil
}

// Name returns the service name, e.g. "http".
func (s Service) Name() string {
	return s.name
}

// Protocol returns the transport protocol, e.g. "tcp".
func (s Service) Protocol() string {
	return s.protocol
}

// Domain returns the DNS domain, e.g. "example.com".
func (s Service) Domain() string {
	return s.domain
}

// Subtype returns the service subtype, empty if there is none.
func (s Service) Subtype() string {
	return s.subtype
}

// Resolver returns the resolver the service is bound to, can be nil.
func (s Service) Resolver() sysnet.Resolver {
	return s.resolver
}

// With returns a copy of the service, non-empty params override the service fields.
//
// Remarks:
//   - An empty field keeps the receiver's value, so With can't clear the subtype,
//     use WithoutSubtype for that.
func (s Service) With(params ServiceParams) Service {
	if params.Name != "" {
		s.name = params.Name
	}
	if params.Protocol != "" {
		s.protocol = params.Protocol
	}
	if params.Domain != "" {
		s.domain = params.Domain
	}
	if params.Subtype != "" {
		s.subtype = params.Subtype
	}

	return s
}

// WithoutSubtype returns a copy of the service without the subtype.
func (s Service) WithoutSubtype() Service {
	s.subtype = ""

	return s
}

// WithResolver returns a copy of the service bound to the resolver.
func (s Service) WithResolver(resolver sysnet.Resolver) Service {
	s.resolver = resolver

	return s
}

// Equal reports whether both services have the same name, protocol, domain and subtype.
func (s Service) Equal(other Service) bool {
	return s.name == other.name &&
		s.protocol == other.protocol &&
		s.domain == other.domain &&
		s.subtype == other.subtype
}

// DNSName returns the DNS-SD name of the service.
//
// Examples:
//   - "_http._tcp.example.com".
//   - "_printer._sub._http._tcp.example.com" for the "printer" subtype.
func (s Service) DNSName() string {
	name := "_" + s.name + "._" + s.protocol + "." + s.domain

	if s.subtype != "" {
		name = "_" + s.subtype + "._sub." + name
	}

	return name
}

// String returns the DNS-SD name of the service.
func (s Service) String() string {
	return s.DNSName()
}

// Resolve looks up the service records of the service.
//
// Parameters:
//   - ctx is passed to the resolver.
//   - provider is used if the service isn't bound to a resolver, can be nil.
//
// Remarks:
//   - Returns *NoEndpointsError if there are no service records.
func (s Service) Resolve(ctx context.Context, provider ResolverProvider) (ResolvedService, error) {
	resolver, err := selectResolver(s.resolver, provider)
	if err != nil {
		return ResolvedService{}, err
	}

	records, err := resolver.LookupSRV(ctx, s.DNSName())
	if err != nil {
		return ResolvedService{}, fmt.Errorf("failed to resolve service: name=%s err=%w",
			s.DNSName(), err)
	}

	endpoints := EndpointsFromSRV(records)
	if len(endpoints) == 0 {
		return ResolvedService{}, &NoEndpointsError{Target: s}
	}

	return ResolvedService{
		Service:   s,
		Endpoints: endpoints,
	}, nil
}

// MarshalJSON encodes the service as {"name", "protocol", "domain", "subtype"}.
func (s Service) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.view())
}

type serviceView struct {
	Name     string `json:"name"`
	Protocol string `json:"protocol"`
	Domain   string `json:"domain"`
	Subtype  string `json:"subtype,omitempty"`
}

func (s Service) view() serviceView {
	return serviceView{
		Name:     s.name,
		Protocol: s.protocol,
		Domain:   s.domain,
		Subtype:  s.subtype,
	}
}
