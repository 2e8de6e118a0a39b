package commerce

import (
	"github.com/commerce/shipstation/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// ImageFile references a stored image by its stream URI,
// e.g. "public://products/mug.jpg" or "s3://media/products/mug.jpg".
type ImageFile struct {
	URI string
	Alt string
}

// BundleComponent is a product shipped as part of a bundle variation
type BundleComponent struct {
	SKU    string
	Title  string
	Weight *valueobject.Weight
}

// Product groups variations
type Product struct {
	ID     uuid.UUID
	Title  string
	Fields FieldValues
	Images map[string][]ImageFile
}

// ProductVariation is the purchasable entity behind an order item
type ProductVariation struct {
	ID      uuid.UUID
	SKU     string
	Title   string
	Price   valueobject.Money
	Product *Product
	Fields  FieldValues
	Images  map[string][]ImageFile
	Bundles map[string][]BundleComponent
}

// ImageField returns the images stored in the named variation field
func (v *ProductVariation) ImageField(name string) []ImageFile {
	if v == nil {
		return nil
	}
	return v.Images[name]
}

// BundleField returns the bundled components referenced by the named field
func (v *ProductVariation) BundleField(name string) []BundleComponent {
	if v == nil {
		return nil
	}
	return v.Bundles[name]
}

// ImageField returns the images stored in the named product field
func (p *Product) ImageField(name string) []ImageFile {
	if p == nil {
		return nil
	}
	return p.Images[name]
}
