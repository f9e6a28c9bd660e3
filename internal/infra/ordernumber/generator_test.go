package ordernumber

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerator_Format(t *testing.T) {
	pattern := regexp.MustCompile(`^SN20261016\d{4}$`)
	gen := NewGenerator()
	at := time.Date(2026, 10, 16, 23, 59, 0, 0, time.UTC)

	for range 100 {
		assert.Regexp(t, pattern, gen.Next(at))
	}
}

func TestGenerator_PadsSuffixAndUsesUTCDay(t *testing.T) {
	gen := &randomGenerator{intN: func(int) int { return 7 }}
	nairobi := time.FixedZone("EAT", 3*60*60)

	// 01:30 in UTC+3 is still the previous UTC day.
	assert.Equal(t, "SN202610150007", gen.Next(time.Date(2026, 10, 16, 1, 30, 0, 0, nairobi)))
}
