package util

import "testing"

func TestParseIntDefault(t *testing.T) {
	if got := ParseIntDefault("", 7); got != 7 {
		t.Fatalf("empty should default, got %d", got)
	}
	if got := ParseIntDefault("12", 7); got != 12 {
		t.Fatalf("expected 12, got %d", got)
	}
	if got := ParseIntDefault("nope", 7); got != 7 {
		t.Fatalf("invalid should default, got %d", got)
	}
}

func TestParseFloatDefault(t *testing.T) {
	if got := ParseFloatDefault("0.3", 0.5); got != 0.3 {
		t.Fatalf("expected 0.3, got %v", got)
	}
	if got := ParseFloatDefault("x", 0.5); got != 0.5 {
		t.Fatalf("invalid should default, got %v", got)
	}
}

func TestParseBoolDefault(t *testing.T) {
	if got := ParseBoolDefault("true", false); !got {
		t.Fatalf("expected true")
	}
	if got := ParseBoolDefault("", true); !got {
		t.Fatalf("empty should default")
	}
	if got := ParseBoolDefault("maybe", false); got {
		t.Fatalf("invalid should default")
	}
}
