package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// PaymentService simulates a payment gateway: a short artificial delay and
// a fabricated transaction reference, always authorized. It is explicitly
// not a real gateway integration.
type PaymentService struct {
	delay  time.Duration
	logger zerolog.Logger
}

type PaymentResult struct {
	TransactionID string          `json:"transaction_id"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	Status        string          `json:"status"`
}

func NewPaymentService(delay time.Duration, logger zerolog.Logger) *PaymentService {
	return &PaymentService{delay: delay, logger: logger}
}

// Process waits out the simulated gateway latency (abandoning early if the
// request is cancelled) and returns an authorized result.
func (s *PaymentService) Process(ctx context.Context, amount decimal.Decimal, method string) (*PaymentResult, error) {
	select {
	case <-time.After(s.delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	result := &PaymentResult{
		TransactionID: "TXN-" + strings.ToUpper(uuid.New().String()[:12]),
		Amount:        amount,
		Method:        method,
		Status:        "authorized",
	}

	s.logger.Info().
		Str("transaction_id", result.TransactionID).
		Str("method", method).
		Str("amount", amount.StringFixed(2)).
		Msg("simulated payment authorized")

	return result, nil
}
