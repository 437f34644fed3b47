package sysnet

import "github.com/miekg/dns"

// RecordType is a DNS record type supported by the resolvers.
type RecordType uint16

const (
	// RecordTypePTR is a pointer record.
	RecordTypePTR = RecordType(dns.TypePTR)

	// RecordTypeSRV is a service record.
	RecordTypeSRV = RecordType(dns.TypeSRV)

	// RecordTypeTXT is a text record.
	RecordTypeTXT = RecordType(dns.TypeTXT)
)

// String returns string representation of the record type, e.g. "PTR".
func (t RecordType) String() string {
	if s, ok := dns.TypeToString[uint16(t)]; ok {
		return s
	}

	return "<none>"
}
