package domain

import "math"

// AdvanceRate is the fraction of the total collected up front.
const AdvanceRate = 0.20

// ComputePrice derives the money fields for a booking from the car's daily
// rate and the requested range. Prices are rounded half-up to cents at the
// output, never at intermediate steps.
func ComputePrice(dailyRate float64, r DateRange) (total, advance float64, err error) {
	days := r.Days()
	if days <= 0 {
		return 0, 0, &InvalidRangeError{Reason: "rental must be at least one day"}
	}
	total = dailyRate * float64(days)
	advance = total * AdvanceRate
	return RoundMoney(total), RoundMoney(advance), nil
}

// RoundMoney rounds half-up to two decimal places.
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
