package valueobject

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// WeightUnit is the unit code a weight was recorded in
type WeightUnit string

const (
	WeightUnitGram     WeightUnit = "g"
	WeightUnitKilogram WeightUnit = "kg"
	WeightUnitPound    WeightUnit = "lb"
	WeightUnitOunce    WeightUnit = "oz"
)

// Weight is a measured amount in a unit
type Weight struct {
	number decimal.Decimal
	unit   WeightUnit
}

// NewWeight creates a Weight. Negative weights are rejected.
func NewWeight(number decimal.Decimal, unit WeightUnit) (Weight, error) {
	if unit == "" {
		return Weight{}, errors.New("weight unit cannot be empty")
	}
	if number.IsNegative() {
		return Weight{}, fmt.Errorf("weight cannot be negative: %s", number)
	}
	return Weight{number: number, unit: unit}, nil
}

// NewWeightFromString parses the number part of a weight
func NewWeightFromString(number string, unit WeightUnit) (Weight, error) {
	d, err := decimal.NewFromString(number)
	if err != nil {
		return Weight{}, fmt.Errorf("invalid weight number: %w", err)
	}
	return NewWeight(d, unit)
}

// Number returns the numeric part
func (w Weight) Number() decimal.Decimal {
	return w.number
}

// Unit returns the unit code
func (w Weight) Unit() WeightUnit {
	return w.unit
}

// IsZero reports whether the weight carries no measurable amount
func (w Weight) IsZero() bool {
	return w.number.IsZero()
}

// ShipStationWeight converts the weight into the unit vocabulary of the
// ShipStation XML feed. Kilograms are reported as grams. Unknown unit codes are
// passed through unchanged.
func (w Weight) ShipStationWeight() (decimal.Decimal, string) {
	switch w.unit {
	case WeightUnitGram:
		return w.number, "Gram"
	case WeightUnitPound:
		return w.number, "Pounds"
	case WeightUnitOunce:
		return w.number, "Ounces"
	case WeightUnitKilogram:
		return w.number.Mul(decimal.NewFromInt(1000)), "Gram"
	default:
		return w.number, string(w.unit)
	}
}

// String returns a human readable representation
func (w Weight) String() string {
	return fmt.Sprintf("%s %s", w.number.String(), w.unit)
}
