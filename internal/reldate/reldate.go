// Package reldate converts between symbolic due dates anchored to the wedding
// day ("WEDDING_DATE-90") and absolute calendar dates.
package reldate

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Marker is the literal anchor for relative dates.
const Marker = "WEDDING_DATE"

var ErrInvalidDate = errors.New("reldate: invalid date")

// RelativeDate is a signed day offset from the wedding date.
type RelativeDate struct {
	Offset int
}

// String returns the canonical serialization: the bare marker for a zero
// offset, otherwise the marker with an explicit sign.
func (r RelativeDate) String() string {
	switch {
	case r.Offset > 0:
		return fmt.Sprintf("%s+%d", Marker, r.Offset)
	case r.Offset < 0:
		return fmt.Sprintf("%s%d", Marker, r.Offset)
	default:
		return Marker
	}
}

// Parse accepts the bare marker or the marker immediately followed by a sign
// and one or more digits, with surrounding whitespace trimmed. Anything else
// reports ok == false; malformed input is not an error condition here.
func Parse(input string) (RelativeDate, bool) {
	s := strings.TrimSpace(input)
	if s == Marker {
		return RelativeDate{}, true
	}
	if !strings.HasPrefix(s, Marker) {
		return RelativeDate{}, false
	}

	rest := s[len(Marker):]
	if len(rest) < 2 || (rest[0] != '+' && rest[0] != '-') {
		return RelativeDate{}, false
	}
	digits := rest[1:]
	// Atoi tolerates its own leading sign, so "+-3" or "++3" would slip
	// through; only bare digits may follow the sign.
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return RelativeDate{}, false
		}
	}
	magnitude, err := strconv.Atoi(digits)
	if err != nil {
		return RelativeDate{}, false
	}
	if rest[0] == '-' {
		magnitude = -magnitude
	}
	return RelativeDate{Offset: magnitude}, true
}

// IsValid reports whether input satisfies the relative date grammar.
func IsValid(input string) bool {
	_, ok := Parse(input)
	return ok
}

// ToAbsolute shifts weddingDate by the offset using calendar-day arithmetic,
// so month and year boundaries roll over correctly regardless of DST.
func ToAbsolute(r RelativeDate, weddingDate time.Time) (time.Time, error) {
	if weddingDate.IsZero() {
		return time.Time{}, fmt.Errorf("%w: zero wedding date", ErrInvalidDate)
	}
	return weddingDate.AddDate(0, 0, r.Offset), nil
}

// ParseToAbsolute resolves a relative date string against weddingDate.
func ParseToAbsolute(input string, weddingDate time.Time) (time.Time, error) {
	r, ok := Parse(input)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %q is not a relative date", ErrInvalidDate, input)
	}
	return ToAbsolute(r, weddingDate)
}

// ToRelative computes the day offset between absolute and weddingDate.
// The difference is rounded rather than truncated so DST or sub-day timezone
// drift between the two timestamps cannot shift the result by a day.
func ToRelative(absolute, weddingDate time.Time) (RelativeDate, error) {
	if absolute.IsZero() || weddingDate.IsZero() {
		return RelativeDate{}, fmt.Errorf("%w: zero time", ErrInvalidDate)
	}
	days := absolute.Sub(weddingDate).Hours() / 24
	return RelativeDate{Offset: int(math.Round(days))}, nil
}
