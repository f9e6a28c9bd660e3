// Package ordernumber issues customer-facing order numbers.
package ordernumber

import (
	"fmt"
	"math/rand/v2"
	"time"

	"marketplace/internal/domain/service"
)

const (
	prefix      = "SN"
	suffixSpace = 10000
)

type randomGenerator struct {
	intN func(n int) int
}

// NewGenerator returns a generator producing SN<YYYYMMDD><4 random digits>.
func NewGenerator() service.OrderNumberGenerator {
	return &randomGenerator{intN: rand.IntN}
}

// Next formats a number for the UTC calendar day of at.
func (g *randomGenerator) Next(at time.Time) string {
	return fmt.Sprintf("%s%s%04d", prefix, at.UTC().Format("20060102"), g.intN(suffixSpace))
}
