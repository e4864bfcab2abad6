package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// Mode selects one of the pipelines.
type Mode string

const (
	ModeCache       Mode = "cache"
	ModeRead        Mode = "read"
	ModeDistributed Mode = "distributed"
)

// parseMode validates the --mode value. Tokens are matched exactly.
func parseMode(raw string) (Mode, error) {
	switch m := Mode(raw); m {
	case ModeCache, ModeRead, ModeDistributed:
		return m, nil
	case "":
		return "", ErrMissingMode
	default:
		return "", fmt.Errorf("%w: %s (must be 'cache', 'read' or 'distributed')", ErrUnknownMode, raw)
	}
}

// parseTimes resolves the cache-mode sample count from --times, falling back to
// a trailing positional integer so that "--times= 5" and "--times 5" both work.
func parseTimes(flagValue string, positional []string) (int, error) {
	raw := strings.TrimSpace(flagValue)
	if raw == "" && len(positional) > 0 {
		raw = strings.TrimSpace(positional[len(positional)-1])
	}
	if raw == "" {
		return 0, ErrMissingTimes
	}

	n, err := strconv.ParseUint(raw, 10, 31)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimes, raw)
	}
	return int(n), nil
}
