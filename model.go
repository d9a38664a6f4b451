package xrate

import (
	"fmt"
	"time"
)

// DefaultBase is assumed when a response does not name its base currency.
const DefaultBase = "EUR"

type (
	// Rates is one parsed response document. It is owned by the call that
	// fetched it.
	Rates struct {
		Base  string
		Date  string
		Rates map[string]float64
	}

	Rate struct {
		Base      string
		Currency  string
		Provider  Provider
		Rate      float64
		Date      time.Time
		CreatedAt time.Time
	}

	RateWithID struct {
		Rate
		ID interface{}
	}
)

func (r Rates) Rate(currency string) (float64, error) {
	if r.Rates == nil {
		return 0, ErrRatesMissing
	}

	rate, ok := r.Rates[currency]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrCurrencyNotFound, currency)
	}

	return rate, nil
}

// Select turns the document into storable rates. With no currencies given
// every rate in the document is returned.
func (r Rates) Select(provider Provider, date time.Time, currencies []string) ([]Rate, error) {
	if r.Rates == nil {
		return nil, ErrRatesMissing
	}

	base := r.Base
	if base == "" {
		base = DefaultBase
	}

	if len(currencies) == 0 {
		currencies = make([]string, 0, len(r.Rates))
		for c := range r.Rates {
			currencies = append(currencies, c)
		}
	}

	result := make([]Rate, 0, len(currencies))

	for _, c := range currencies {
		rate, err := r.Rate(c)
		if err != nil {
			return nil, err
		}

		result = append(result, Rate{
			Base:     base,
			Currency: c,
			Provider: provider,
			Rate:     rate,
			Date:     date,
		})
	}

	return result, nil
}
