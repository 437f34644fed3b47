package dnssd

import (
	"context"
	"fmt"

	"github.com/open-control-systems/wasd/components/core"
	"github.com/open-control-systems/wasd/components/status"
	"github.com/open-control-systems/wasd/components/system/sysnet"
)

// ClientParams represents various options for the DNS-SD client.
type ClientParams struct {
	// Domain is used for services described without a domain. Optional.
	Domain string

	// Resolver to look up records.
	//
	// Remarks:
	//  - If nil, sysnet.DNSResolver is made from DNS.
	Resolver sysnet.Resolver

	// DNS configures the unicast resolver, used only if Resolver is nil.
	DNS sysnet.DNSResolverParams
}

// Client builds services and instances bound to a single resolver.
//
// Remarks:
//   - Can be used from multiple goroutines.
type Client struct {
	domain   string
	resolver sysnet.Resolver
}

// NewClient is an initialization of Client.
func NewClient(params ClientParams) (*Client, error) {
	resolver := params.Resolver
	if resolver == nil {
		dnsResolver, err := sysnet.NewDNSResolver(params.DNS)
		if err != nil {
			return nil, err
		}

		resolver = dnsResolver
	}

	return &Client{
		domain:   params.Domain,
		resolver: resolver,
	}, nil
}

// Resolver returns the client resolver.
func (c *Client) Resolver() sysnet.Resolver {
	return c.resolver
}

// Domain returns the default domain, empty if there is none.
func (c *Client) Domain() string {
	return c.domain
}

// Service makes the service bound to the client resolver.
//
// Remarks:
//   - The client default domain is used if params.Domain is empty.
func (c *Client) Service(params ServiceParams) (Service, error) {
	if params.Domain == "" {
		params.Domain = c.domain
	}

	return NewService(params, c.resolver)
}

// ServiceInstances enumerates the instances of the service.
//
// Remarks:
//   - Only pointer records are looked up, the instances aren't resolved.
//   - Pointer records with a malformed target are skipped.
func (c *Client) ServiceInstances(ctx context.Context, params ServiceParams) ([]Instance, error) {
	service, err := c.Service(params)
	if err != nil {
		return nil, err
	}

	records, err := c.resolver.LookupPTR(ctx, service.DNSName())
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate instances: name=%s err=%w",
			service.DNSName(), err)
	}

	instances := make([]Instance, 0, len(records))

	for _, record := range records {
		instance, err := InstanceFromPTR(service, record.Target, c.resolver)
		if err != nil {
			core.LogWrn.Printf("dnssd-client: ignore pointer record: service=%s err=%v\n",
				service.DNSName(), err)

			continue
		}

		instances = append(instances, instance)
	}

	return instances, nil
}

// ServiceInstance makes the instance of the service bound to the client resolver.
//
// Remarks:
//   - The instance isn't resolved.
func (c *Client) ServiceInstance(description string, params ServiceParams) (Instance, error) {
	if description == "" {
		return Instance{}, fmt.Errorf("no description given: %w", status.StatusInvalidArg)
	}

	service, err := c.Service(params)
	if err != nil {
		return Instance{}, err
	}

	return NewInstance(service, description)
}
