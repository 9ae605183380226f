package store

import (
	"strings"
	"testing"
)

func TestSanitizeIdentity(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "alice", "alice"},
		{"space", "a b", "a_b"},
		{"slash", "a/b", "a_b"},
		{"underscore kept", "a_b", "a_b"},
		{"hyphen kept", "user-1", "user-1"},
		{"mixed", "raj.kumar@example", "raj_kumar_example"},
		{"leading trailing space", "  bob  ", "bob"},
		{"empty", "", GuestIdentity},
		{"only spaces", "   ", GuestIdentity},
		{"all invalid", "///", GuestIdentity},
		{"unicode", "नेहा", GuestIdentity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeIdentity(tt.raw)
			if got != tt.want {
				t.Errorf("SanitizeIdentity(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestSanitizeIdentityOnlyAllowedRunes(t *testing.T) {
	for _, raw := range []string{"a b", "a/b", "a_b", "héllo", "x\ty"} {
		got := SanitizeIdentity(raw)
		for _, r := range got {
			if !identityRune(r) {
				t.Errorf("SanitizeIdentity(%q) = %q contains disallowed rune %q", raw, got, r)
			}
		}
	}
}

func TestSanitizeIdentityCollision(t *testing.T) {
	// Distinct raw identities can share a storage key; this is the
	// documented behavior, not an accident.
	if a, b := SanitizeIdentity("a b"), SanitizeIdentity("a/b"); a != b {
		t.Errorf("expected colliding keys, got %q and %q", a, b)
	}
	if !strings.EqualFold(SanitizeIdentity("Alice"), "Alice") {
		t.Error("case must be preserved")
	}
}
