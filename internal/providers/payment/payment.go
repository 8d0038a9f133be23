package payment

import "context"

// Processor creates a charge intent on an external card-payment service.
type Processor interface {
	// CreateIntent takes the amount in the currency's smallest unit and
	// returns the secret the client needs to complete the charge.
	CreateIntent(ctx context.Context, amount int64, currency string) (clientSecret string, err error)
	// MinorUnitExponent is the number of decimal places the processor
	// expects amounts in for currency: 2 for usd, 0 for jpy.
	MinorUnitExponent(currency string) int
	Name() string
}
