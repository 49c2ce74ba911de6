package id

import (
	"strings"
	"testing"
)

func TestJoinCodeGenerator(t *testing.T) {
	g := NewJoinCodeGenerator()
	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		code, err := g.NewCode()
		if err != nil {
			t.Fatalf("generate code: %v", err)
		}
		if len(code) != JoinCodeLength {
			t.Fatalf("unexpected code length %d for %q", len(code), code)
		}
		for _, r := range code {
			if !strings.ContainsRune(JoinCodeAlphabet, r) {
				t.Fatalf("code %q has character outside the alphabet", code)
			}
		}
		seen[code] = struct{}{}
	}
	if len(seen) < 190 {
		t.Fatalf("codes collide too often: %d unique of 200", len(seen))
	}
}

func TestRandomGenerator(t *testing.T) {
	a, err := NewRandomGenerator().NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	b, _ := NewRandomGenerator().NewID()
	if len(a) != 32 || a == b {
		t.Fatalf("unexpected ids %q %q", a, b)
	}
}
