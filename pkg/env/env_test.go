package env

import "testing"

func TestGetFallsBackOnBlank(t *testing.T) {
	t.Setenv("FOODCART_TEST_BLANK", "   ")
	if got := Get("FOODCART_TEST_BLANK", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
	t.Setenv("FOODCART_TEST_BLANK", " set ")
	if got := Get("FOODCART_TEST_BLANK", "fallback"); got != "set" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
}

func TestFirstPicksEarliestKey(t *testing.T) {
	t.Setenv("FOODCART_TEST_A", "")
	t.Setenv("FOODCART_TEST_B", "b")
	if got := First("none", "FOODCART_TEST_A", "FOODCART_TEST_B"); got != "b" {
		t.Fatalf("expected b, got %q", got)
	}
	if got := First("none"); got != "none" {
		t.Fatalf("expected fallback, got %q", got)
	}
}
