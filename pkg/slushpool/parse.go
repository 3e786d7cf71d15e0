package slushpool

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// maxDecimalExponent bounds the base-10 exponent accepted before conversion;
// float64 cannot represent magnitudes past about 1e±324.
const maxDecimalExponent = 400

// ParseDecimal converts a decimal-formatted string into a finite float64.
// Empty strings, surrounding whitespace, trailing characters, NaN and
// infinities are all rejected, as are exponents beyond float64 range.
func ParseDecimal(s string) (float64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parse decimal %q: %w", s, err)
	}
	if exp := d.Exponent(); exp > maxDecimalExponent || exp < -maxDecimalExponent {
		return 0, fmt.Errorf("parse decimal %q: value out of float64 range", s)
	}
	f, _ := d.Float64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("parse decimal %q: value out of float64 range", s)
	}
	return f, nil
}

// UnixSeconds converts a Unix timestamp in seconds into a UTC instant.
func UnixSeconds(sec int64) time.Time {
	return time.UnixMilli(sec * 1000).UTC()
}

// fieldParser accumulates the first parse failure so mappers can read a whole
// record before checking for errors.
type fieldParser struct {
	err error
}

func (p *fieldParser) decimal(field, raw string) float64 {
	if p.err != nil {
		return 0
	}
	f, err := ParseDecimal(raw)
	if err != nil {
		p.err = fmt.Errorf("%s: %w", field, err)
		return 0
	}
	return f
}
