package sysnet

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/require"

	"github.com/open-control-systems/wasd/components/status"
)

type testDNSZone map[uint16]map[string][]dns.RR

func (z testDNSZone) add(rr dns.RR) {
	hdr := rr.Header()

	if z[hdr.Rrtype] == nil {
		z[hdr.Rrtype] = make(map[string][]dns.RR)
	}

	z[hdr.Rrtype][hdr.Name] = append(z[hdr.Rrtype][hdr.Name], rr)
}

func testDNSHeader(name string, rrtype uint16) dns.RR_Header {
	return dns.RR_Header{Name: name, Rrtype: rrtype, Class: dns.ClassINET, Ttl: 60}
}

func startTestDNSServer(t *testing.T, handler dns.Handler) string {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.Nil(t, err)

	startedCh := make(chan struct{})

	server := &dns.Server{
		PacketConn:        pc,
		Handler:           handler,
		NotifyStartedFunc: func() { close(startedCh) },
	}

	go func() {
		_ = server.ActivateAndServe()
	}()

	<-startedCh

	t.Cleanup(func() {
		_ = server.Shutdown()
	})

	return pc.LocalAddr().String()
}

func startTestDNSZone(t *testing.T, zone testDNSZone) string {
	return startTestDNSServer(t, dns.HandlerFunc(func(w dns.ResponseWriter, req *dns.Msg) {
		resp := new(dns.Msg)
		resp.SetReply(req)

		q := req.Question[0]

		answers, ok := zone[q.Qtype][dns.CanonicalName(q.Name)]
		if !ok {
			resp.Rcode = dns.RcodeNameError
		}

		resp.Answer = answers

		_ = w.WriteMsg(resp)
	}))
}

func makeTestDNSZone() testDNSZone {
	zone := make(testDNSZone)

	zone.add(&dns.PTR{
		Hdr: testDNSHeader("_test._tcp.example.com.", dns.TypePTR),
		Ptr: "woop._test._tcp.example.com.",
	})
	zone.add(&dns.PTR{
		Hdr: testDNSHeader("_test._tcp.example.com.", dns.TypePTR),
		Ptr: `hello\ there._test._tcp.example.com.`,
	})
	zone.add(&dns.SRV{
		Hdr:      testDNSHeader("woop._test._tcp.example.com.", dns.TypeSRV),
		Priority: 1,
		Weight:   5,
		Port:     49153,
		Target:   "woop.example.com.",
	})
	zone.add(&dns.TXT{
		Hdr: testDNSHeader("woop._test._tcp.example.com.", dns.TypeTXT),
		Txt: []string{"hello=there", "this=is=fun"},
	})
	zone.add(&dns.TXT{
		Hdr: testDNSHeader("woop._test._tcp.example.com.", dns.TypeTXT),
		Txt: []string{"txtvers=2", "second=version"},
	})

	return zone
}

func TestDNSResolverLookupPTR(t *testing.T) {
	addr := startTestDNSZone(t, makeTestDNSZone())

	resolver, err := NewDNSResolver(DNSResolverParams{Servers: []string{addr}})
	require.Nil(t, err)

	records, err := resolver.LookupPTR(context.Background(), "_test._tcp.example.com")
	require.Nil(t, err)
	require.Equal(t, []PTRRecord{
		{Target: "woop._test._tcp.example.com."},
		{Target: `hello\ there._test._tcp.example.com.`},
	}, records)
}

func TestDNSResolverLookupSRV(t *testing.T) {
	addr := startTestDNSZone(t, makeTestDNSZone())

	resolver, err := NewDNSResolver(DNSResolverParams{Servers: []string{addr}})
	require.Nil(t, err)

	records, err := resolver.LookupSRV(context.Background(), "woop._test._tcp.example.com.")
	require.Nil(t, err)
	require.Equal(t, []SRVRecord{
		{Target: "woop.example.com", Port: 49153, Priority: 1, Weight: 5},
	}, records)
}

func TestDNSResolverLookupTXT(t *testing.T) {
	addr := startTestDNSZone(t, makeTestDNSZone())

	resolver, err := NewDNSResolver(DNSResolverParams{Servers: []string{addr}})
	require.Nil(t, err)

	records, err := resolver.LookupTXT(context.Background(), "woop._test._tcp.example.com.")
	require.Nil(t, err)
	require.Equal(t, []TXTRecord{
		{Entries: []string{"hello=there", "this=is=fun"}},
		{Entries: []string{"txtvers=2", "second=version"}},
	}, records)
}

func TestDNSResolverDecodePresentationFormat(t *testing.T) {
	zone := make(testDNSZone)

	zone.add(&dns.PTR{
		Hdr: testDNSHeader("_cafe._tcp.example.com.", dns.TypePTR),
		Ptr: `Café\ Bar._cafe._tcp.example.com.`,
	})
	zone.add(&dns.TXT{
		Hdr: testDNSHeader("cafe._cafe._tcp.example.com.", dns.TypeTXT),
		Txt: []string{"name=Café", `note=say "hi"`, `path=C:\\dir`},
	})

	addr := startTestDNSZone(t, zone)

	resolver, err := NewDNSResolver(DNSResolverParams{Servers: []string{addr}})
	require.Nil(t, err)

	ptrs, err := resolver.LookupPTR(context.Background(), "_cafe._tcp.example.com.")
	require.Nil(t, err)
	require.Equal(t, []PTRRecord{
		{Target: `Café\ Bar._cafe._tcp.example.com.`},
	}, ptrs)

	txts, err := resolver.LookupTXT(context.Background(), "cafe._cafe._tcp.example.com.")
	require.Nil(t, err)
	require.Equal(t, []TXTRecord{
		{Entries: []string{"name=Café", `note=say "hi"`, `path=C:\dir`}},
	}, txts)
}

func TestDNSResolverNameError(t *testing.T) {
	addr := startTestDNSZone(t, makeTestDNSZone())

	resolver, err := NewDNSResolver(DNSResolverParams{Servers: []string{addr}})
	require.Nil(t, err)

	records, err := resolver.LookupSRV(context.Background(), "_qwer._tcp.example.com.")
	require.Nil(t, err)
	require.Empty(t, records)
}

func TestDNSResolverServerFailure(t *testing.T) {
	addr := startTestDNSServer(t, dns.HandlerFunc(func(w dns.ResponseWriter, req *dns.Msg) {
		resp := new(dns.Msg)
		resp.SetRcode(req, dns.RcodeServerFailure)

		_ = w.WriteMsg(resp)
	}))

	resolver, err := NewDNSResolver(DNSResolverParams{Servers: []string{addr}})
	require.Nil(t, err)

	records, err := resolver.LookupPTR(context.Background(), "_test._tcp.example.com.")
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "SERVFAIL")
	require.ErrorIs(t, err, status.StatusError)
	require.Nil(t, records)
}

func TestDNSResolverTimeout(t *testing.T) {
	addr := startTestDNSServer(t, dns.HandlerFunc(func(dns.ResponseWriter, *dns.Msg) {}))

	resolver, err := NewDNSResolver(DNSResolverParams{
		Servers: []string{addr},
		Timeout: time.Millisecond * 100,
	})
	require.Nil(t, err)

	records, err := resolver.LookupTXT(context.Background(), "woop._test._tcp.example.com.")
	require.ErrorIs(t, err, status.StatusTimeout)
	require.Nil(t, records)
}

func TestDNSResolverNextServer(t *testing.T) {
	failedAddr := startTestDNSServer(t, dns.HandlerFunc(func(w dns.ResponseWriter, req *dns.Msg) {
		resp := new(dns.Msg)
		resp.SetRcode(req, dns.RcodeRefused)

		_ = w.WriteMsg(resp)
	}))
	addr := startTestDNSZone(t, makeTestDNSZone())

	resolver, err := NewDNSResolver(DNSResolverParams{
		Servers: []string{failedAddr, addr},
		Timeout: time.Second,
	})
	require.Nil(t, err)

	records, err := resolver.LookupSRV(context.Background(), "woop._test._tcp.example.com.")
	require.Nil(t, err)
	require.Len(t, records, 1)
}

func TestDNSResolverServerPort(t *testing.T) {
	resolver, err := NewDNSResolver(DNSResolverParams{
		Servers: []string{"127.0.0.1", "::1", "127.0.0.1:5353"},
	})
	require.Nil(t, err)
	require.Equal(t, []string{"127.0.0.1:53", "[::1]:53", "127.0.0.1:5353"},
		resolver.Servers())
}

func TestDNSResolverMissingConfig(t *testing.T) {
	resolver, err := NewDNSResolver(DNSResolverParams{
		ConfigPath: "/nonexistent/resolv.conf",
	})
	require.NotNil(t, err)
	require.Nil(t, resolver)
}

func TestDNSResolverNoServers(t *testing.T) {
	path := t.TempDir() + "/resolv.conf"
	require.Nil(t, writeTestFile(path, "search example.com\n"))

	resolver, err := NewDNSResolver(DNSResolverParams{ConfigPath: path})
	require.ErrorIs(t, err, status.StatusInvalidArg)
	require.Nil(t, resolver)
}
