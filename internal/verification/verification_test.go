package verification_test

import (
	"testing"

	"github.com/imnoob36363636-cell/Lost-and-found-2025-new8/internal/verification"
)

func TestNormalize(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Blue", "blue"},
		{"  blue  ", "blue"},
		{"BLUE", "blue"},
		{"\tRed Wallet \n", "red wallet"},
		{"", ""},
		{"   ", ""},
	}
	for _, c := range cases {
		if got := verification.Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, s := range []string{"Blue", "  MiXeD Case  ", "already normal"} {
		once := verification.Normalize(s)
		if twice := verification.Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q != %q", s, once, twice)
		}
	}
}

func TestEvaluate(t *testing.T) {
	for _, submitted := range []string{"Blue", " blue ", "BLUE"} {
		if !verification.Evaluate(submitted, "blue") {
			t.Errorf("Evaluate(%q, \"blue\") = false, want true", submitted)
		}
	}
	if verification.Evaluate("red", "blue") {
		t.Error("Evaluate(\"red\", \"blue\") = true, want false")
	}
	if verification.Evaluate("", "blue") {
		t.Error("Evaluate(\"\", \"blue\") = true, want false")
	}
}
