package services

import (
	"context"
	"math"
	"strings"

	"github.com/yoockh/languageclub/internal/metrics"
	"github.com/yoockh/languageclub/internal/models"
	"github.com/yoockh/languageclub/internal/providers/payment"
	mongorepo "github.com/yoockh/languageclub/internal/repositories/mongo"
	"github.com/yoockh/languageclub/internal/utils"
)

type PaymentService interface {
	// CreateIntent charges price (in major units) and returns the processor's
	// client secret.
	CreateIntent(ctx context.Context, price float64) (string, error)
	Record(ctx context.Context, p *models.Payment) (*models.InsertResult, error)
	ListByEmail(ctx context.Context, email string) ([]models.Payment, error)
}

type paymentService struct {
	payments  mongorepo.PaymentRepository
	processor payment.Processor
	currency  string
}

func NewPaymentService(payments mongorepo.PaymentRepository, processor payment.Processor, currency string) PaymentService {
	if currency == "" {
		currency = "usd"
	}
	return &paymentService{payments: payments, processor: processor, currency: strings.ToLower(currency)}
}

// ToMinorUnits converts a major-unit price to the currency's smallest unit,
// rounding to the nearest one. exponent is the number of decimal places.
func ToMinorUnits(price float64, exponent int) int64 {
	return int64(math.Round(price * math.Pow10(exponent)))
}

func (s *paymentService) CreateIntent(ctx context.Context, price float64) (string, error) {
	const op = "PaymentService.CreateIntent"

	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return "", utils.E(utils.CodeInvalidArgument, op, "price must be a positive number", nil)
	}
	if s.processor == nil {
		return "", utils.E(utils.CodeUnavailable, op, "payment processor not configured", nil)
	}
	amount := ToMinorUnits(price, s.processor.MinorUnitExponent(s.currency))
	if amount <= 0 {
		return "", utils.E(utils.CodeInvalidArgument, op, "price is below the smallest currency unit", nil)
	}

	secret, err := s.processor.CreateIntent(ctx, amount, s.currency)
	metrics.RecordPaymentIntent(s.processor.Name(), err)
	if err != nil {
		return "", utils.E(utils.CodeUnavailable, op, "payment processor error", err)
	}
	return secret, nil
}

func (s *paymentService) Record(ctx context.Context, p *models.Payment) (*models.InsertResult, error) {
	const op = "PaymentService.Record"

	if p == nil || strings.TrimSpace(p.Email) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "email is required", nil)
	}
	res, err := s.payments.Insert(ctx, p)
	if err != nil {
		return nil, utils.StoreError(op, "failed to record payment", err)
	}
	return res, nil
}

func (s *paymentService) ListByEmail(ctx context.Context, email string) ([]models.Payment, error) {
	const op = "PaymentService.ListByEmail"

	out, err := s.payments.ListByEmail(ctx, email)
	if err != nil {
		return nil, utils.StoreError(op, "failed to list payments", err)
	}
	return out, nil
}
