// Package interval parses window and bucket widths such as "30s", "5m" or
// "1h" into milliseconds.
package interval

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/soltixdb/tsfunc/internal/utils"
)

// ErrInvalidInterval is wrapped by every parse failure
var ErrInvalidInterval = errors.New("invalid interval")

// Error describes an interval string that could not be parsed.
type Error struct {
	Input  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid interval %q: %s", e.Input, e.Reason)
}

func (e *Error) Unwrap() error {
	return ErrInvalidInterval
}

var pattern = regexp.MustCompile(`^(-?\d+(?:\.\d+)?)(ms|s|m|h|d|w|M|y)$`)

// units maps suffixes to milliseconds; "M" is a 30-day month, "y" a 365-day year
var units = map[string]int64{
	"ms": 1,
	"s":  utils.MillisPerSecond,
	"m":  utils.MillisPerMinute,
	"h":  utils.MillisPerHour,
	"d":  utils.MillisPerDay,
	"w":  utils.MillisPerWeek,
	"M":  utils.MillisPerMonth,
	"y":  utils.MillisPerYear,
}

// Parse returns the width of a positive interval in milliseconds.
func Parse(s string) (int64, error) {
	ms, err := ParseSigned(s)
	if err != nil {
		return 0, err
	}
	if ms <= 0 {
		return 0, &Error{Input: s, Reason: "must be positive"}
	}
	return ms, nil
}

// ParseSigned is Parse without the positivity check, for time shifts like "-1h".
func ParseSigned(s string) (int64, error) {
	if s == "" {
		return 0, &Error{Input: s, Reason: "must not be empty"}
	}

	m := pattern.FindStringSubmatch(s)
	if m == nil {
		return 0, &Error{Input: s, Reason: "expected <number><unit> with unit one of ms, s, m, h, d, w, M, y"}
	}

	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, &Error{Input: s, Reason: err.Error()}
	}

	ms := n * float64(units[m[2]])
	if math.Abs(ms) > math.MaxInt64 {
		return 0, &Error{Input: s, Reason: "out of range"}
	}
	return int64(math.Round(ms)), nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) int64 {
	ms, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return ms
}

// Format renders ms using the largest unit that divides it exactly.
func Format(ms int64) string {
	if ms == 0 {
		return "0ms"
	}
	abs := ms
	if abs < 0 {
		abs = -abs
	}
	for _, u := range []string{"y", "w", "d", "h", "m", "s"} {
		if abs%units[u] == 0 {
			return strconv.FormatInt(ms/units[u], 10) + u
		}
	}
	return strconv.FormatInt(ms, 10) + "ms"
}
