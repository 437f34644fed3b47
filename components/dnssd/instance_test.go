package dnssd

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/open-control-systems/wasd/components/status"
	"github.com/open-control-systems/wasd/components/system/sysnet"
)

func newTestService(t *testing.T, resolver sysnet.Resolver) Service {
	service, err := NewService(ServiceParams{Name: "http", Domain: "example.com"}, resolver)
	require.Nil(t, err)

	return service
}

func TestInstanceDNSName(t *testing.T) {
	instance, err := NewInstance(newTestService(t, nil), "Hello There")
	require.Nil(t, err)
	require.Equal(t, `Hello\ There._http._tcp.example.com`, instance.DNSName())
	require.Equal(t, instance.DNSName(), instance.String())

	subtyped := newTestService(t, nil).With(ServiceParams{Subtype: "printer"})

	instance, err = NewInstance(subtyped, "v1.2")
	require.Nil(t, err)
	require.Equal(t, `v1\.2._printer._sub._http._tcp.example.com`, instance.DNSName())
}

func TestInstanceValidation(t *testing.T) {
	_, err := NewInstance(newTestService(t, nil), "")
	require.True(t, errors.Is(err, status.StatusInvalidArg))
}

func TestInstanceFromPTR(t *testing.T) {
	resolver := newTestResolver()
	service := newTestService(t, nil)

	instance, err := InstanceFromPTR(service, `Hello\ There._http._tcp.example.com.`, resolver)
	require.Nil(t, err)
	require.Equal(t, "Hello There", instance.Description())
	require.True(t, service.Equal(instance.Service()))
	require.Equal(t, sysnet.Resolver(resolver), instance.Resolver())

	_, err = InstanceFromPTR(service, "localhost", resolver)
	require.True(t, errors.Is(err, status.StatusInvalidArg))
}

func TestInstanceEqual(t *testing.T) {
	service := newTestService(t, nil)

	a, err := NewInstance(service, "Woop")
	require.Nil(t, err)

	b, err := InstanceFromPTR(service, "Woop._http._tcp.example.com", newTestResolver())
	require.Nil(t, err)

	c, err := NewInstance(service.With(ServiceParams{Domain: "example.org"}), "Woop")
	require.Nil(t, err)

	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
}

func TestInstanceResolve(t *testing.T) {
	resolver := newTestResolver()

	name := `Hello\ There._http._tcp.example.com`
	resolver.srvs[name] = []sysnet.SRVRecord{
		{Target: "a.example.com", Port: 8080, Priority: 0},
		{Target: "b.example.com", Port: 8081, Priority: 3},
	}
	resolver.txts[name] = []sysnet.TXTRecord{
		{Entries: []string{"txtvers=2", "path=/v2"}},
		{Entries: []string{"path=/"}},
	}

	instance, err := NewInstance(newTestService(t, resolver), "Hello There")
	require.Nil(t, err)

	resolved, err := instance.Resolve(context.Background(), nil)
	require.Nil(t, err)
	require.True(t, instance.Equal(resolved.Instance))
	require.True(t, instance.Service().Equal(resolved.Service()))
	require.Equal(t, []Endpoint{
		{Host: "b.example.com", Port: 8081, Priority: 3},
		{Host: "a.example.com", Port: 8080, Priority: 0},
	}, resolved.Endpoints)
	require.Equal(t, Properties{
		2: {"path": "/v2"},
		1: {"path": "/"},
	}, resolved.Properties)

	require.Equal(t, []string{"SRV " + name, "TXT " + name}, resolver.getCalls())
}

func TestInstanceResolveNoEndpoints(t *testing.T) {
	resolver := newTestResolver()
	resolver.txts["Woop._http._tcp.example.com"] = []sysnet.TXTRecord{
		{Entries: []string{"a=1"}},
	}

	instance, err := NewInstance(newTestService(t, resolver), "Woop")
	require.Nil(t, err)

	_, err = instance.Resolve(context.Background(), nil)
	require.True(t, errors.Is(err, status.StatusNoData))

	var noEndpoints *NoEndpointsError
	require.True(t, errors.As(err, &noEndpoints))

	target, ok := noEndpoints.Target.(Instance)
	require.True(t, ok)
	require.True(t, instance.Equal(target))

	require.Equal(t, []string{"SRV Woop._http._tcp.example.com"}, resolver.getCalls())
}

func TestInstanceResolveEmptyProperties(t *testing.T) {
	resolver := newTestResolver()
	resolver.srvs["Woop._http._tcp.example.com"] = []sysnet.SRVRecord{
		{Target: "a.example.com", Port: 80},
	}

	instance, err := NewInstance(newTestService(t, resolver), "Woop")
	require.Nil(t, err)

	resolved, err := instance.Resolve(context.Background(), nil)
	require.Nil(t, err)
	require.Empty(t, resolved.Properties)
}

func TestInstanceResolveResolverPrecedence(t *testing.T) {
	own := newTestResolver()

	instance, err := InstanceFromPTR(newTestService(t, nil), "Woop._http._tcp.example.com", own)
	require.Nil(t, err)

	_, err = instance.Resolve(context.Background(), nil)
	require.True(t, errors.Is(err, status.StatusNoData))
	require.Equal(t, 1, len(own.getCalls()))

	other := newTestResolver()
	other.srvs["Woop._http._tcp.example.com"] = []sysnet.SRVRecord{
		{Target: "woop.example.com", Port: 80},
	}

	_, err = instance.Resolve(context.Background(), UseResolver(other))
	require.True(t, errors.Is(err, status.StatusNoData))
	require.Equal(t, 2, len(own.getCalls()))
	require.Empty(t, other.getCalls())

	resolved, err := instance.WithResolver(nil).Resolve(context.Background(), UseResolver(other))
	require.Nil(t, err)
	require.Equal(t, "woop.example.com", resolved.Endpoints[0].Host)
	require.Equal(t, 2, len(other.getCalls()))

	_, err = instance.WithResolver(nil).Resolve(context.Background(), nil)
	require.Equal(t, ErrMissingResolver, err)
}

func TestInstanceMarshalJSON(t *testing.T) {
	instance, err := NewInstance(newTestService(t, nil), "Hello There")
	require.Nil(t, err)

	data, err := json.Marshal(instance)
	require.Nil(t, err)
	require.JSONEq(t, `{
		"description": "Hello There",
		"name": "http",
		"protocol": "tcp",
		"domain": "example.com"
	}`, string(data))

	data, err = json.Marshal(ResolvedInstance{
		Instance:   instance,
		Endpoints:  []Endpoint{{Host: "a.example.com", Port: 443}},
		Properties: Properties{1: {"a": "1"}},
	})
	require.Nil(t, err)
	require.JSONEq(t, `{
		"description": "Hello There",
		"name": "http",
		"protocol": "tcp",
		"domain": "example.com",
		"endpoints": [{"host": "a.example.com", "port": 443, "priority": 0}],
		"properties": {"1": {"a": "1"}}
	}`, string(data))
}
