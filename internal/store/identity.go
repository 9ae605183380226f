package store

import "strings"

// GuestIdentity is the storage key used when a caller supplies no
// usable identity at all.
const GuestIdentity = "guest"

func identityRune(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_' || r == '-'
}

// SanitizeIdentity normalizes a raw user-supplied identity into the
// storage key: alphanumerics, underscore and hyphen pass through, every
// other rune becomes an underscore. Empty input, or input with no valid
// runes at all, falls back to GuestIdentity. Distinct raw identities can
// collapse to the same key ("a b" and "a/b" both become "a_b"); this
// is a known, accepted limitation of the keying scheme.
func SanitizeIdentity(raw string) string {
	var b strings.Builder
	anyValid := false
	for _, r := range strings.TrimSpace(raw) {
		if identityRune(r) {
			b.WriteRune(r)
			anyValid = true
		} else {
			b.WriteRune('_')
		}
	}
	if !anyValid {
		return GuestIdentity
	}
	return b.String()
}
