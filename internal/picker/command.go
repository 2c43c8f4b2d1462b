package picker

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"slices"
	"strconv"
	"strings"
)

// DefaultCommand is the dmenu-style program used when none is configured.
var DefaultCommand = []string{"wofi", "--dmenu", "--prompt", "Clipboard"}

// Command is a Selector backed by a dmenu-style program (wofi, rofi -dmenu,
// fuzzel --dmenu, dmenu). Each row is written to its stdin as
// "<index>\t<preview>"; the index is read back from the first
// whitespace-separated token of its output.
type Command struct {
	Argv []string
	// PreselectFlag, when set, is passed with the preselected row number,
	// e.g. "-selected-row" for rofi.
	PreselectFlag string
}

// NewCommand returns a Command selector running argv.
func NewCommand(argv []string, preselectFlag string) *Command {
	if len(argv) == 0 {
		argv = DefaultCommand
	}
	return &Command{Argv: argv, PreselectFlag: preselectFlag}
}

func (c *Command) Select(ctx context.Context, previews []string, preselect int) (int, bool, error) {
	if len(previews) == 0 {
		return 0, false, nil
	}

	var in strings.Builder
	for i, p := range previews {
		fmt.Fprintf(&in, "%d\t%s\n", i, strings.ReplaceAll(p, "\t", "    "))
	}

	args := slices.Clone(c.Argv[1:])
	if preselect >= 0 && c.PreselectFlag != "" {
		args = append(args, c.PreselectFlag, strconv.Itoa(preselect))
	}

	cmd := exec.CommandContext(ctx, c.Argv[0], args...)
	cmd.Stdin = strings.NewReader(in.String())
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		switch {
		case errors.As(err, &exitErr) && ctx.Err() == nil:
			// dmenu-style programs exit non-zero when dismissed.
			return 0, false, nil
		case errors.Is(err, exec.ErrNotFound):
			return 0, false, fmt.Errorf("%w: %s", ErrNotFound, c.Argv[0])
		default:
			return 0, false, fmt.Errorf("run %s: %w", c.Argv[0], err)
		}
	}

	fields := strings.Fields(string(out))
	if len(fields) == 0 {
		return 0, false, nil
	}
	idx, err := strconv.Atoi(fields[0])
	if err != nil || idx < 0 {
		return 0, false, nil
	}
	return idx, true, nil
}
