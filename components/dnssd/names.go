package dnssd

import (
	"fmt"
	"strings"

	"github.com/open-control-systems/wasd/components/status"
)

var descriptionEscaper = strings.NewReplacer(" ", `\ `, ".", `\.`)

// EscapeDescription escapes spaces and dots in the instance description, so it
// can be used as a single DNS label.
//
// Examples:
//   - "Hello There" - "Hello\ There".
//   - "v1.2" - "v1\.2".
func EscapeDescription(description string) string {
	return descriptionEscaper.Replace(description)
}

// ParseDescription returns the unescaped instance description from the instance name,
// e.g. "Hello\ There._http._tcp.example.com." gives "Hello There".
//
// Remarks:
//   - The description is the first label: everything before the first dot that
//     isn't preceded by a backslash.
//   - Every "\X" in the label is replaced with "X". A backslash in the original
//     description isn't escaped by EscapeDescription, so it doesn't survive the round trip.
func ParseDescription(name string) (string, error) {
	end := -1

	// The first label can't be empty.
	for i := 1; i < len(name); i++ {
		if name[i] == '.' && name[i-1] != '\\' {
			end = i

			break
		}
	}

	if end < 0 {
		return "", fmt.Errorf("malformed instance name: %q: %w", name, status.StatusInvalidArg)
	}

	return unescapeLabel(name[:end]), nil
}

func unescapeLabel(label string) string {
	var b strings.Builder
	b.Grow(len(label))

	for i := 0; i < len(label); i++ {
		if label[i] == '\\' && i+1 < len(label) {
			i++
		}

		b.WriteByte(label[i])
	}

	return b.String()
}
