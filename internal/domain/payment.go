package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type PaymentOutcome string

const (
	PaymentOutcomePaid   PaymentOutcome = "PAID"
	PaymentOutcomeFailed PaymentOutcome = "FAILED"
)

type PaymentMethod string

const (
	PaymentMethodUPI        PaymentMethod = "UPI"
	PaymentMethodCard       PaymentMethod = "CARD"
	PaymentMethodNetBanking PaymentMethod = "NETBANKING"
)

// PaymentRequest carries everything a payment handler needs. Only the field
// matching the selected method is consulted by its handler.
type PaymentRequest struct {
	PartyID    string
	Amount     decimal.Decimal
	Method     PaymentMethod
	UPIID      string
	CardNumber string
	BankCode   string
}

type PaymentProcessor interface {
	Process(ctx context.Context, req PaymentRequest) (PaymentOutcome, error)
}
