package sysnet

import "strings"

// decodeDomainName decodes "\DDD" escapes of a domain name in the miekg/dns
// presentation format into raw bytes, e.g. "Caf\195\169._http._tcp.local."
// gives "Café._http._tcp.local.".
//
// Remarks:
//   - Other escapes, e.g. "\." and "\ ", are kept, they separate the label
//     content from the label delimiters.
func decodeDomainName(name string) string {
	return decodePresentation(name, true)
}

// decodeCharacterString fully unescapes a TXT character-string in the miekg/dns
// presentation format, e.g. `say \"hi\"` gives `say "hi"`.
func decodeCharacterString(s string) string {
	return decodePresentation(s, false)
}

func decodeCharacterStrings(strs []string) []string {
	decoded := make([]string, 0, len(strs))

	for _, s := range strs {
		decoded = append(decoded, decodeCharacterString(s))
	}

	return decoded
}

// encodeDomainName escapes bytes outside of the printable ASCII range as "\DDD",
// so the name can be compared with names in the miekg/dns presentation format.
func encodeDomainName(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	for i := 0; i < len(name); i++ {
		c := name[i]
		if c < ' ' || c > '~' {
			b.WriteByte('\\')
			b.WriteByte('0' + c/100)
			b.WriteByte('0' + c/10%10)
			b.WriteByte('0' + c%10)

			continue
		}

		b.WriteByte(c)
	}

	return b.String()
}

func decodePresentation(s string, keepEscapes bool) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])

			continue
		}

		if value, ok := decimalEscape(s[i+1:]); ok {
			b.WriteByte(value)
			i += 3

			continue
		}

		if keepEscapes {
			b.WriteByte('\\')
		}

		i++
		b.WriteByte(s[i])
	}

	return b.String()
}

func decimalEscape(s string) (byte, bool) {
	if len(s) < 3 {
		return 0, false
	}

	value := 0

	for _, c := range []byte(s[:3]) {
		if c < '0' || c > '9' {
			return 0, false
		}

		value = value*10 + int(c-'0')
	}

	if value > 255 {
		return 0, false
	}

	return byte(value), true
}
