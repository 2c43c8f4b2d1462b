// Package picker asks the user to choose one entry from a list of previews.
package picker

import (
	"context"
	"errors"
)

// ErrNotFound is returned when the configured picker program is missing.
var ErrNotFound = errors.New("picker program not found")

// NoPreselect tells a Selector not to highlight any row initially.
const NoPreselect = -1

// Selector presents previews and returns the chosen position.
//
// ok is false when the user cancelled. An idx equal to len(previews) is a
// valid answer meaning "no entry matched" (for example, enter pressed on a
// filter with no results) and must be handled apart from cancellation.
type Selector interface {
	Select(ctx context.Context, previews []string, preselect int) (idx int, ok bool, err error)
}
