package payment

import (
	"fmt"
	"strings"
)

type Settings struct {
	Provider           string
	StripeSecretKey    string
	MidtransServerKey  string
	MidtransProduction bool
}

// New selects the processor named by Settings.Provider.
func New(s Settings) (Processor, error) {
	switch strings.ToLower(strings.TrimSpace(s.Provider)) {
	case "", "stripe":
		p, err := NewStripe(s.StripeSecretKey, nil)
		if err != nil {
			return nil, err
		}
		return p, nil
	case "midtrans":
		p, err := NewMidtrans(s.MidtransServerKey, s.MidtransProduction)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown payment provider %q", s.Provider)
	}
}
