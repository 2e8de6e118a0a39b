// Package commerce contains the read model of the storefront this service feeds
// to ShipStation.
//
// The storefront owns these entities; this service only loads them through the
// repository ports declared here and writes back tracking information on
// shipments. Key concepts:
//   - Order: placed order with billing profile, adjustments, items and shipments
//   - Shipment: a package of shipment items sent to a shipping profile
//   - ProductVariation: the purchasable SKU referenced by an order item
//   - Adjustment: a typed price modifier (tax, promotion, shipping, ...)
package commerce
