package dnssd

import (
	"context"
	"sync"

	"github.com/open-control-systems/wasd/components/system/sysnet"
)

type testResolver struct {
	mu    sync.Mutex
	calls []string
	err   error

	ptrs map[string][]sysnet.PTRRecord
	srvs map[string][]sysnet.SRVRecord
	txts map[string][]sysnet.TXTRecord
}

func newTestResolver() *testResolver {
	return &testResolver{
		ptrs: make(map[string][]sysnet.PTRRecord),
		srvs: make(map[string][]sysnet.SRVRecord),
		txts: make(map[string][]sysnet.TXTRecord),
	}
}

func (r *testResolver) LookupPTR(_ context.Context, name string) ([]sysnet.PTRRecord, error) {
	r.record("PTR " + name)

	return r.ptrs[name], r.err
}

func (r *testResolver) LookupSRV(_ context.Context, name string) ([]sysnet.SRVRecord, error) {
	r.record("SRV " + name)

	return r.srvs[name], r.err
}

func (r *testResolver) LookupTXT(_ context.Context, name string) ([]sysnet.TXTRecord, error) {
	r.record("TXT " + name)

	return r.txts[name], r.err
}

func (r *testResolver) record(call string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, call)
}

func (r *testResolver) getCalls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.calls...)
}
