package shipstation

import "github.com/commerce/shipstation/internal/domain/shared"

// Error codes surfaced by the ShipStation endpoint
const (
	CodeAuthenticationFailed  = "AUTHENTICATION_FAILED"
	CodeInvalidAction         = "INVALID_ACTION"
	CodeShipNotifyNotFound    = "SHIPNOTIFY_NOT_FOUND"
	CodeShipmentPersistFailed = "SHIPMENT_PERSIST_FAILED"
	CodeInvalidSettings       = "INVALID_SETTINGS"
)

// User-facing messages returned to ShipStation
const (
	MessageAuthenticationFailed = "Error: Authentication failed. Please check your credentials and try again."
	MessageInvalidAction        = "The ShipStation request action is invalid"
	MessageMissingOrderInfo     = "Error: missing order info."
)

var (
	ErrAuthenticationFailed = shared.NewDomainError(CodeAuthenticationFailed, MessageAuthenticationFailed)
	ErrInvalidAction        = shared.NewDomainError(CodeInvalidAction, MessageInvalidAction)
	ErrMissingOrderInfo     = shared.NewDomainError(CodeShipNotifyNotFound, MessageMissingOrderInfo)
)

// NewShipNotifyNotFoundError reports an order or shipment that ship notify could not resolve
func NewShipNotifyNotFoundError(orderNumber string) *shared.DomainError {
	return ErrMissingOrderInfo.WithMessage(
		"Unable to load order " + orderNumber + " for updating via the ShipStation shipnotify call.")
}

// NewShipmentPersistError reports a failed tracking update
func NewShipmentPersistError(orderNumber string) *shared.DomainError {
	return shared.NewDomainError(CodeShipmentPersistFailed,
		"Unable to save tracking information for order "+orderNumber+".")
}

// NewInvalidSettingsError reports a rejected configuration value
func NewInvalidSettingsError(message string) *shared.DomainError {
	return shared.NewDomainError(CodeInvalidSettings, message)
}
