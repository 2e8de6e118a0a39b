package models

import (
	"github.com/commerce/shipstation/internal/domain/commerce"
	"github.com/commerce/shipstation/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MoneyRecord is the JSON form of valueobject.Money
type MoneyRecord struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func moneyRecord(m valueobject.Money) MoneyRecord {
	return MoneyRecord{Amount: m.Amount(), Currency: string(m.Currency())}
}

func (r MoneyRecord) toDomain() valueobject.Money {
	return toMoney(r.Amount, r.Currency)
}

func toMoney(amount decimal.Decimal, currency string) valueobject.Money {
	return valueobject.NewMoney(amount, valueobject.Currency(currency))
}

// WeightRecord is the JSON form of valueobject.Weight
type WeightRecord struct {
	Number decimal.Decimal `json:"number"`
	Unit   string          `json:"unit"`
}

func weightRecord(w *valueobject.Weight) *WeightRecord {
	if w == nil {
		return nil
	}
	return &WeightRecord{Number: w.Number(), Unit: string(w.Unit())}
}

// toDomain returns nil for records that do not form a valid weight
func (r *WeightRecord) toDomain() *valueobject.Weight {
	if r == nil {
		return nil
	}
	w, err := valueobject.NewWeight(r.Number, valueobject.WeightUnit(r.Unit))
	if err != nil {
		return nil
	}
	return &w
}

// AddressRecord is the JSON form of commerce.Address
type AddressRecord struct {
	GivenName          string `json:"given_name,omitempty"`
	FamilyName         string `json:"family_name,omitempty"`
	Organization       string `json:"organization,omitempty"`
	AddressLine1       string `json:"address_line1,omitempty"`
	AddressLine2       string `json:"address_line2,omitempty"`
	Locality           string `json:"locality,omitempty"`
	AdministrativeArea string `json:"administrative_area,omitempty"`
	PostalCode         string `json:"postal_code,omitempty"`
	CountryCode        string `json:"country_code,omitempty"`
}

// AdjustmentRecord is the JSON form of commerce.Adjustment
type AdjustmentRecord struct {
	Type   string      `json:"type"`
	Label  string      `json:"label"`
	Amount MoneyRecord `json:"amount"`
}

func adjustmentRecords(adjs []commerce.Adjustment) []AdjustmentRecord {
	out := make([]AdjustmentRecord, len(adjs))
	for i, a := range adjs {
		out[i] = AdjustmentRecord{Type: string(a.Type), Label: a.Label, Amount: moneyRecord(a.Amount)}
	}
	return out
}

func toAdjustments(records []AdjustmentRecord) []commerce.Adjustment {
	if len(records) == 0 {
		return nil
	}
	out := make([]commerce.Adjustment, len(records))
	for i, r := range records {
		out[i] = commerce.Adjustment{
			Type:   commerce.AdjustmentType(r.Type),
			Label:  r.Label,
			Amount: r.Amount.toDomain(),
		}
	}
	return out
}

// ImageRecord is the JSON form of commerce.ImageFile
type ImageRecord struct {
	URI string `json:"uri"`
	Alt string `json:"alt,omitempty"`
}

func imageRecords(fields map[string][]commerce.ImageFile) map[string][]ImageRecord {
	out := make(map[string][]ImageRecord, len(fields))
	for name, files := range fields {
		records := make([]ImageRecord, len(files))
		for i, f := range files {
			records[i] = ImageRecord{URI: f.URI, Alt: f.Alt}
		}
		out[name] = records
	}
	return out
}

func toImages(fields map[string][]ImageRecord) map[string][]commerce.ImageFile {
	out := make(map[string][]commerce.ImageFile, len(fields))
	for name, records := range fields {
		files := make([]commerce.ImageFile, len(records))
		for i, r := range records {
			files[i] = commerce.ImageFile{URI: r.URI, Alt: r.Alt}
		}
		out[name] = files
	}
	return out
}

// BundleRecord is the JSON form of commerce.BundleComponent
type BundleRecord struct {
	SKU    string        `json:"sku"`
	Title  string        `json:"title"`
	Weight *WeightRecord `json:"weight,omitempty"`
}

// ShipmentItemRecord is the JSON form of commerce.ShipmentItem
type ShipmentItemRecord struct {
	OrderItemID uuid.UUID       `json:"order_item_id"`
	Title       string          `json:"title"`
	Quantity    decimal.Decimal `json:"quantity"`
	Weight      *WeightRecord   `json:"weight,omitempty"`
}
