package sysnet

import "context"

// PTRRecord is a decoded pointer record.
type PTRRecord struct {
	// Target is the fully qualified name of the advertised instance,
	// e.g. "Hello\ There._http._tcp.example.com.".
	Target string `json:"target"`
}

// SRVRecord is a decoded service record.
type SRVRecord struct {
	// Target is the host name without the trailing root dot, e.g. "woop.example.com".
	Target   string `json:"target"`
	Port     int    `json:"port"`
	Priority int    `json:"priority"`
	Weight   int    `json:"weight"`
}

// TXTRecord is a decoded text record, each entry is one character-string.
type TXTRecord struct {
	Entries []string `json:"entries"`
}

// Resolver looks up DNS-SD records.
//
// Remarks:
//   - name is a fully qualified, already escaped DNS name.
//   - Missing records are reported as an empty result, not as an error.
//   - Implementation should be safe to use from multiple goroutines.
type Resolver interface {
	// LookupPTR returns pointer records for the name.
	LookupPTR(ctx context.Context, name string) ([]PTRRecord, error)

	// LookupSRV returns service records for the name.
	LookupSRV(ctx context.Context, name string) ([]SRVRecord, error)

	// LookupTXT returns text records for the name.
	LookupTXT(ctx context.Context, name string) ([]TXTRecord, error)
}
