package sysnet

import (
	"context"
	"os"
	"sync"
)

func writeTestFile(path string, data string) error {
	return os.WriteFile(path, []byte(data), 0600)
}

type testResolver struct {
	mu    sync.Mutex
	names []string
	ptrs  []PTRRecord
	srvs  []SRVRecord
	txts  []TXTRecord
	err   error
}

func (r *testResolver) LookupPTR(_ context.Context, name string) ([]PTRRecord, error) {
	r.record(name)

	return r.ptrs, r.err
}

func (r *testResolver) LookupSRV(_ context.Context, name string) ([]SRVRecord, error) {
	r.record(name)

	return r.srvs, r.err
}

func (r *testResolver) LookupTXT(_ context.Context, name string) ([]TXTRecord, error) {
	r.record(name)

	return r.txts, r.err
}

func (r *testResolver) record(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.names = append(r.names, name)
}

func (r *testResolver) getNames() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.names...)
}
