package dnssd

import (
	"strconv"
	"strings"

	"github.com/open-control-systems/wasd/components/system/sysnet"
)

// DefaultPropertiesVersion is the version of a text record without "txtvers" entry.
const DefaultPropertiesVersion = 1

const propertiesVersionKey = "txtvers"

// Properties maps the text record format version to its key/value pairs.
type Properties map[int]map[string]string

// Get returns the value of the key for the version.
func (p Properties) Get(version int, key string) (string, bool) {
	value, ok := p[version][key]

	return value, ok
}

// DecodeProperties decodes text records into versioned key/value pairs.
//
// Remarks:
//   - Each entry is split on the first "=", entries with an empty key are ignored.
//   - "txtvers=N" as the first entry of a record sets the version for the rest
//     of that record, otherwise the record has DefaultPropertiesVersion.
//   - A later entry overwrites an earlier one with the same key and version.
//
// References:
//   - https://datatracker.ietf.org/doc/html/rfc6763#section-6.7
func DecodeProperties(records []sysnet.TXTRecord) Properties {
	properties := make(Properties)

	for _, record := range records {
		version := DefaultPropertiesVersion

		for i, entry := range record.Entries {
			key, value, _ := strings.Cut(entry, "=")
			if key == "" {
				continue
			}

			if i == 0 && key == propertiesVersionKey {
				version = parseVersion(value)

				continue
			}

			if properties[version] == nil {
				properties[version] = make(map[string]string)
			}

			properties[version][key] = value
		}
	}

	return properties
}

// parseVersion takes the leading decimal integer of the value, 0 if there is none.
func parseVersion(value string) int {
	value = strings.TrimLeft(value, " \t\n\v\f\r")

	end := 0
	if end < len(value) && (value[end] == '+' || value[end] == '-') {
		end++
	}

	digits := end
	for end < len(value) && value[end] >= '0' && value[end] <= '9' {
		end++
	}

	if end == digits {
		return 0
	}

	version, err := strconv.Atoi(value[:end])
	if err != nil {
		return 0
	}

	return version
}
