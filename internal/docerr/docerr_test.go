package docerr

import (
	"errors"
	"testing"
)

func TestErrorIsMatchesSentinelEvenWhenWrapped(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(KindTransient, cause, "fetching crate")
	if !errors.Is(err, ErrTransient) {
		t.Fatalf("expected errors.Is to match ErrTransient")
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("did not expect errors.Is to match ErrNotFound")
	}
}

func TestExitCodeMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{New(KindNotFound, "no such crate"), 1},
		{New(KindInvalidInput, "bad path"), 1},
		{New(KindTransient, "network error"), 2},
		{New(KindInternal, "invariant violated"), 2},
		{errors.New("unclassified"), 2},
	}
	for _, c := range cases {
		if got := ExitCode(c.err); got != c.want {
			t.Fatalf("ExitCode(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}

func TestErrorUnwrapsToCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(KindInternal, cause, "writing cache entry")
	if !errors.Is(err, cause) {
		t.Fatalf("expected errors.Is to reach the wrapped cause")
	}
}
