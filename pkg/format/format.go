// Package format holds presentation helpers for catalog data.
package format

import (
	"math"
	"net/url"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// DefaultTruncateLength is used by Truncate when maxLength is not positive.
const DefaultTruncateLength = 100

const ellipsis = "..."

// Price renders v as US dollars: "$1,234.50", "-$0.99". Non-finite values
// render as "$∞", "-$∞" and "$NaN".
func Price(v float64) string {
	switch {
	case math.IsNaN(v):
		return "$NaN"
	case math.IsInf(v, 1):
		return "$∞"
	case math.IsInf(v, -1):
		return "-$∞"
	}

	d := decimal.NewFromFloat(v).Round(2)

	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	whole, cents, _ := strings.Cut(d.StringFixed(2), ".")
	return sign + "$" + groupThousands(whole) + "." + cents
}

// groupThousands inserts commas into a string of decimal digits.
func groupThousands(digits string) string {
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}

	var b strings.Builder
	b.Grow(len(digits) + len(digits)/3)
	b.WriteString(digits[:min(head, len(digits))])
	for i := head; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// ParsePrice parses a decimal price such as "9.99". Values that do not fit
// a float64 are rejected.
func ParsePrice(s string) (float64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.Wrapf(err, "parse price %q", s)
	}
	f := d.InexactFloat64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, errors.Errorf("price %q out of range", s)
	}
	return f, nil
}

// Category upper-cases the first letter of every space-separated word
// and leaves the rest of each word untouched.
func Category(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		if size == 0 {
			continue
		}
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// Truncate shortens text to maxLength runes followed by "...".
func Truncate(text string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultTruncateLength
	}
	if utf8.RuneCountInString(text) <= maxLength {
		return text
	}

	n := 0
	for i := range text {
		if n == maxLength {
			return text[:i] + ellipsis
		}
		n++
	}
	return text
}

// IsValidURL reports whether s is an absolute URL.
func IsValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return false
	}
	return u.Host != "" || u.Opaque != "" || u.Path != ""
}

// Debounce returns a function that delays calling fn until wait has passed
// without another call. Only the argument of the latest call is delivered.
func Debounce[T any](fn func(T), wait time.Duration) func(T) {
	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	return func(arg T) {
		mu.Lock()
		defer mu.Unlock()

		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(wait, func() { fn(arg) })
	}
}
