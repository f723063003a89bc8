package domain

import "math"

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// RoundMoney normalizes a monetary amount to 2 decimal places.
func RoundMoney(v float64) float64 { return roundMoney(v) }
