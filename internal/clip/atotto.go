package clip

import (
	"context"
	"fmt"
	"runtime"

	"github.com/atotto/clipboard"
)

// Atotto is a Backend built on github.com/atotto/clipboard. The library does
// not separate "empty" from "failed", so an empty clipboard on some
// platforms surfaces as a read error.
type Atotto struct{}

// NewAtotto returns the atotto backend, or ErrUnavailable when the library
// found no clipboard utility.
func NewAtotto() (*Atotto, error) {
	if clipboard.Unsupported {
		return nil, fmt.Errorf("%w: atotto/clipboard unsupported on %s", ErrUnavailable, runtime.GOOS)
	}
	return &Atotto{}, nil
}

func (*Atotto) Name() string { return "atotto" }

func (*Atotto) Read(_ context.Context) (string, bool, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", false, fmt.Errorf("read clipboard: %w", err)
	}
	text, ok := normalize([]byte(text))
	return text, ok, nil
}

func (*Atotto) Write(_ context.Context, text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}
