// Package normalize holds the canonical text forms the destination schema
// stores. Every name field goes through Name before insert so the dedup keys
// and the stored values agree.
package normalize

import "strings"

// Name returns the canonical form of a person or service name: surrounding
// whitespace trimmed, internal whitespace runs collapsed to a single space,
// uppercased. Applying Name to an already-normalized value is a no-op.
func Name(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), " "))
}

// Code returns the canonical form of an external identity code. Only
// surrounding whitespace is trimmed; codes are matched exactly otherwise.
func Code(s string) string {
	return strings.TrimSpace(s)
}

// FirstToken returns the first whitespace-delimited token of s, or "" if s
// is empty or all whitespace. Used to feed compound given names ("ANNA
// MARIA") into gender inference one token at a time.
func FirstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
