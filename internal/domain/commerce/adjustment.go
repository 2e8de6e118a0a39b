package commerce

import "github.com/commerce/shipstation/internal/domain/shared/valueobject"

// AdjustmentType categorises a price adjustment
type AdjustmentType string

const (
	AdjustmentTypeShipping  AdjustmentType = "shipping"
	AdjustmentTypeTax       AdjustmentType = "tax"
	AdjustmentTypePromotion AdjustmentType = "promotion"
	AdjustmentTypeFee       AdjustmentType = "fee"
	AdjustmentTypeCustom    AdjustmentType = "custom"
)

// Adjustment is a priced modifier attached to an order or order item
type Adjustment struct {
	Type   AdjustmentType
	Label  string
	Amount valueobject.Money
}

// IsShipping reports whether the adjustment carries shipping costs
func (a Adjustment) IsShipping() bool {
	return a.Type == AdjustmentTypeShipping
}
