// Package money accounts for staff and amenity costs using exact decimal
// arithmetic, adapted from the teacher's pkg/decimal.
package money

import (
	"github.com/shopspring/decimal"
)

// OvertimeMultiplier is applied to the overtime share of a completed task's
// cost. Fixed at 1.5 per the staffing cost model; not configurable because
// nothing in the source ever varies it.
const OvertimeMultiplier = 1.5

// OvertimeShare is the fraction of any completed task's duration billed as
// overtime. Expressed as a modeling heuristic, not a time-of-day rule.
const OvertimeShare = 0.20

// Money wraps shopspring/decimal so cost totals never accumulate float
// rounding error across a run with tens of thousands of assignments.
type Money struct {
	d decimal.Decimal
}

// Zero is the additive identity.
var Zero = Money{d: decimal.Zero}

// FromMinutesAtRate returns rate * minutes as a Money value.
func FromMinutesAtRate(ratePerMinute, minutes float64) Money {
	return Money{d: decimal.NewFromFloat(ratePerMinute).Mul(decimal.NewFromFloat(minutes))}
}

// FromAmount wraps a flat amount (not a rate) as a Money value.
func FromAmount(amount float64) Money {
	return Money{d: decimal.NewFromFloat(amount)}
}

func (m Money) Add(other Money) Money {
	return Money{d: m.d.Add(other.d)}
}

func (m Money) Float64() float64 {
	f, _ := m.d.Float64()
	return f
}

func (m Money) String() string {
	return m.d.StringFixed(2)
}

// SplitCost divides a completed task's cost into its normal and overtime
// components at the fixed 80/20 split with the overtime multiplier applied
// to the overtime share only.
func SplitCost(ratePerMinute, durationMinutes float64) (normal, overtime Money) {
	normalMinutes := durationMinutes * (1 - OvertimeShare)
	overtimeMinutes := durationMinutes * OvertimeShare
	normal = FromMinutesAtRate(ratePerMinute, normalMinutes)
	overtime = FromMinutesAtRate(ratePerMinute*OvertimeMultiplier, overtimeMinutes)
	return normal, overtime
}
