package payment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cinetix/booking-engine/internal/domain"
)

// handlerFunc validates and executes a payment for a single method. A nil
// return means the payment went through.
type handlerFunc func(ctx context.Context, req domain.PaymentRequest) error

// Processor dispatches a payment request to the handler for its method. The
// dispatch table is resolved once at construction rather than per request.
type Processor struct {
	logger   *slog.Logger
	handlers map[domain.PaymentMethod]handlerFunc
}

func NewProcessor(logger *slog.Logger) *Processor {
	p := &Processor{logger: logger}

	p.handlers = map[domain.PaymentMethod]handlerFunc{
		domain.PaymentMethodUPI:        p.payByUPI,
		domain.PaymentMethodCard:       p.payByCard,
		domain.PaymentMethodNetBanking: p.payByNetBanking,
	}

	return p
}

// Process returns FAILED for any declined or malformed payment; the error
// carries the decline reason. Unknown methods are a caller bug, not a
// decline, and are reported as an invalid request.
func (p *Processor) Process(ctx context.Context, req domain.PaymentRequest) (domain.PaymentOutcome, error) {
	handler, ok := p.handlers[req.Method]
	if !ok {
		return domain.PaymentOutcomeFailed, fmt.Errorf("%w: unsupported payment method %q", domain.ErrInvalidRequest, req.Method)
	}

	if !req.Amount.IsPositive() {
		return domain.PaymentOutcomeFailed, fmt.Errorf("payment amount must be positive, got %s", req.Amount)
	}

	if err := handler(ctx, req); err != nil {
		p.logger.Warn("payment declined", "party_id", req.PartyID, "method", req.Method, "error", err)
		return domain.PaymentOutcomeFailed, err
	}

	p.logger.Info("payment completed", "party_id", req.PartyID, "method", req.Method, "amount", req.Amount)

	return domain.PaymentOutcomePaid, nil
}

func (p *Processor) payByUPI(ctx context.Context, req domain.PaymentRequest) error {
	if !strings.Contains(req.UPIID, "@") {
		return fmt.Errorf("invalid UPI ID %q", req.UPIID)
	}

	return nil
}

func (p *Processor) payByCard(ctx context.Context, req domain.PaymentRequest) error {
	digits := strings.ReplaceAll(req.CardNumber, " ", "")

	if len(digits) < 12 || len(digits) > 19 {
		return fmt.Errorf("card number must be 12-19 digits")
	}

	for _, ch := range digits {
		if ch < '0' || ch > '9' {
			return fmt.Errorf("card number must contain only digits")
		}
	}

	return nil
}

func (p *Processor) payByNetBanking(ctx context.Context, req domain.PaymentRequest) error {
	if req.BankCode == "" {
		return fmt.Errorf("bank code is required for net banking")
	}

	return nil
}
