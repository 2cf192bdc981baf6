package event

import "testing"

func TestPowerName(t *testing.T) {
	if got := PowerName(3); got != "energy" {
		t.Fatalf("got=%q", got)
	}
	if got := PowerName(-2); got != "health" {
		t.Fatalf("got=%q", got)
	}
	if got := PowerName(42); got != "42 (?)" {
		t.Fatalf("got=%q", got)
	}
}

func TestPowerCode_RoundTrip(t *testing.T) {
	for _, code := range []int64{0, 1, 2, 3, 4, 5, -2, 42, 99} {
		if got := PowerCode(PowerName(code)); got != code {
			t.Fatalf("code=%d got=%d", code, got)
		}
	}
}
