package validator

import (
	"fmt"
	"regexp"

	"github.com/cinetix/booking-engine/internal/domain"
	"github.com/go-playground/validator/v10"
)

const (
	ErrRequired       = "is required"
	ErrMinLength      = "must contain at least %s items"
	ErrMaxLength      = "must contain at most %s items"
	ErrDefaultInvalid = "is invalid"
)

// Seat IDs look like "A1" or "AB12": row letters followed by a seat number.
var seatIDRgx = regexp.MustCompile(`^[A-Z]{1,2}[0-9]{1,3}$`)

func NewValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterValidation("seat_id", validateSeatID)
	validate.RegisterValidation("payment_method", validatePaymentMethod)

	return validate
}

func validateSeatID(fl validator.FieldLevel) bool {
	return seatIDRgx.MatchString(fl.Field().String())
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	switch domain.PaymentMethod(fl.Field().String()) {
	case domain.PaymentMethodUPI, domain.PaymentMethodCard, domain.PaymentMethodNetBanking:
		return true
	default:
		return false
	}
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return ErrRequired
	case "min":
		return fmt.Sprintf(ErrMinLength, err.Param())
	case "max":
		return fmt.Sprintf(ErrMaxLength, err.Param())
	case "seat_id":
		return "must be a seat ID like A1"
	case "payment_method":
		return "must be one of UPI, CARD, NETBANKING"
	default:
		return ErrDefaultInvalid
	}
}
