package clip

import (
	"context"
	"fmt"
	"sync"

	"golang.design/x/clipboard"
)

var (
	initOnce sync.Once
	initErr  error
)

// Native is the in-process Backend built on golang.design/x/clipboard.
//
// On X11 the process owns the selection it writes, so text written by a
// short-lived process disappears when it exits; prefer the command backend
// for one-shot writes there.
type Native struct{}

// NewNative initialises the platform clipboard. clipboard.Init runs here
// rather than in init() so that commands which never touch the clipboard
// don't fail on headless systems.
func NewNative() (*Native, error) {
	initOnce.Do(func() { initErr = clipboard.Init() })
	if initErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, initErr)
	}
	return &Native{}, nil
}

func (*Native) Name() string { return "native" }

func (*Native) Read(_ context.Context) (string, bool, error) {
	text, ok := normalize(clipboard.Read(clipboard.FmtText))
	return text, ok, nil
}

func (*Native) Write(_ context.Context, text string) error {
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}
