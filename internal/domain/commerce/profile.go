package commerce

import (
	"strings"

	"github.com/google/uuid"
)

// Address is a postal address as captured on a customer profile
type Address struct {
	GivenName          string
	FamilyName         string
	Organization       string
	AddressLine1       string
	AddressLine2       string
	Locality           string
	AdministrativeArea string
	PostalCode         string
	CountryCode        string
}

// FullName joins given and family name the way labels print them
func (a Address) FullName() string {
	return strings.TrimSpace(a.GivenName + " " + a.FamilyName)
}

// Profile is a customer profile used for billing or shipping
type Profile struct {
	ID      uuid.UUID
	Address *Address
	Fields  FieldValues
}

// GetAddress returns the profile address or nil when none was captured
func (p *Profile) GetAddress() *Address {
	if p == nil {
		return nil
	}
	return p.Address
}
