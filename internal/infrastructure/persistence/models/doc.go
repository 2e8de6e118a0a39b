// Package models contains the GORM persistence models of the commerce store.
// Domain types in internal/domain/commerce carry no ORM tags; each model maps
// itself with ToDomain and FromDomain.
//
// Structured values the bridge only reads as a whole (addresses, adjustments,
// custom fields, image and bundle references, shipment items) are stored as
// JSON columns through GORM's json serializer.
package models
