package payment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

// Midtrans returns a Snap token as the client secret. The currency argument
// is ignored: Snap settles in IDR, which has no minor unit.
type Midtrans struct {
	snap snap.Client
}

func NewMidtrans(serverKey string, production bool) (*Midtrans, error) {
	if serverKey == "" {
		return nil, errors.New("MIDTRANS_SERVER_KEY is not set")
	}
	m := &Midtrans{}
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}
	m.snap.New(serverKey, env)
	return m, nil
}

func (m *Midtrans) Name() string { return "midtrans" }

// MinorUnitExponent is always 0; gross_amount is whole rupiah.
func (m *Midtrans) MinorUnitExponent(string) int { return 0 }

func (m *Midtrans) CreateIntent(_ context.Context, amount int64, _ string) (string, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  "lc-" + uuid.NewString(),
			GrossAmt: amount,
		},
		CreditCard:      &snap.CreditCardDetails{Secure: true},
		EnabledPayments: []snap.SnapPaymentType{snap.PaymentTypeCreditCard},
	}

	resp, mErr := m.snap.CreateTransaction(req)
	if mErr != nil {
		return "", mErr
	}
	return resp.Token, nil
}
