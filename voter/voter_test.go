// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voter

import (
	"testing"
)

func TestNewSalt(t *testing.T) {
	s1, err := NewSalt()
	if err != nil {
		t.Fatalf("NewSalt() error = %v", err)
	}
	if len(s1) != SaltBytes*2 {
		t.Errorf("NewSalt() length = %d, want %d", len(s1), SaltBytes*2)
	}
	for _, c := range s1 {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			t.Errorf("NewSalt() contains invalid hex char: %c", c)
		}
	}

	s2, _ := NewSalt()
	if s1 == s2 {
		t.Error("NewSalt() produced duplicate salts (extremely unlikely)")
	}
}

func TestFingerprint(t *testing.T) {
	tests := []struct {
		name string
		ip   string
		salt string
	}{
		{"ipv4", "192.168.1.1", "salt"},
		{"ipv6", "2001:db8::1", "salt"},
		{"empty salt", "10.0.0.1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fp := Fingerprint(tt.ip, tt.salt)
			if len(fp) != 16 {
				t.Errorf("Fingerprint() length = %d, want 16", len(fp))
			}
			if fp == tt.ip {
				t.Error("Fingerprint() returned the address unchanged")
			}
			if again := Fingerprint(tt.ip, tt.salt); again != fp {
				t.Errorf("Fingerprint() not deterministic: %s != %s", fp, again)
			}
		})
	}
}

func TestFingerprint_SaltMatters(t *testing.T) {
	a := Fingerprint("192.168.1.1", "salt-a")
	b := Fingerprint("192.168.1.1", "salt-b")
	if a == b {
		t.Error("different salts produced the same fingerprint")
	}
}

func TestFingerprint_DistinctAddresses(t *testing.T) {
	a := Fingerprint("192.168.1.1", "salt")
	b := Fingerprint("192.168.1.2", "salt")
	if a == b {
		t.Error("different addresses produced the same fingerprint")
	}
}

func TestFingerprint_EmptyAddress(t *testing.T) {
	if got := Fingerprint("", "salt"); got != "" {
		t.Errorf("Fingerprint(\"\") = %q, want empty", got)
	}
}
