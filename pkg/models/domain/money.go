package domain

import (
	"fmt"
	"math"
)

// Money is an amount in minor currency units (cents).
type Money int64

func MoneyFromFloat(v float64) Money {
	return Money(math.Round(v * 100))
}

func (m Money) Float() float64 {
	return float64(m) / 100
}

// Format renders the amount with two decimals and the given symbol prefix.
// The output never depends on the host locale.
func (m Money) Format(symbol string) string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%s%d.%02d", sign, symbol, v/100, v%100)
}
