package slushpool

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    float64
		wantErr bool
	}{
		{name: "padded amount", in: "0.05000000", want: 0.05},
		{name: "integer", in: "6", want: 6},
		{name: "negative", in: "-1.5", want: -1.5},
		{name: "luck", in: "1.23", want: 1.23},
		{name: "empty", in: "", wantErr: true},
		{name: "leading space", in: " 1.0", wantErr: true},
		{name: "trailing characters", in: "1.0x", wantErr: true},
		{name: "nan", in: "NaN", wantErr: true},
		{name: "infinity", in: "Inf", wantErr: true},
		{name: "word", in: "abc", wantErr: true},
		{name: "overflow", in: "1e400", wantErr: true},
		{name: "huge exponent", in: "1e99999999", wantErr: true},
		{name: "tiny exponent", in: "1e-99999999", wantErr: true},
		{name: "small exponent", in: "5e-3", want: 0.005},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDecimal(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Zero(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDecimalHugeExponentReturnsQuickly(t *testing.T) {
	start := time.Now()
	_, err := ParseDecimal("1e2147483647")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of float64 range")
	assert.Less(t, time.Since(start), time.Second)
}

func TestUnixSecondsScalesToMilliseconds(t *testing.T) {
	got := UnixSeconds(1600000000)
	assert.Equal(t, int64(1600000000000), got.UnixMilli())
	assert.Equal(t, time.UTC, got.Location())
}

func TestFieldParserKeepsFirstError(t *testing.T) {
	var p fieldParser
	assert.Equal(t, 1.5, p.decimal("a", "1.5"))
	p.decimal("b", "oops")
	p.decimal("c", "also bad")

	require.Error(t, p.err)
	assert.Contains(t, p.err.Error(), "b: ")
	assert.NotContains(t, p.err.Error(), "c: ")
}
