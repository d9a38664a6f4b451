package services

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/malusev998/xrate"
)

var (
	ErrNoStorageProvided = errors.New("no storage provided")
)

type (
	// ConversionService converts amounts using archived base relative rates.
	ConversionService struct {
		Storages []xrate.Storage
	}

	fetchedRate struct {
		rate  xrate.RateWithID
		error error
	}
)

func startOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
}

func (c ConversionService) rate(ctx context.Context, provider xrate.Provider, currency string, date time.Time) (xrate.RateWithID, error) {
	// Optimization when there is only one storage provider
	if len(c.Storages) == 1 {
		return c.Storages[0].Get(ctx, provider, currency, date)
	}

	// First storage that has the rate wins
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ratesChannel := make(chan fetchedRate, len(c.Storages))

	for _, storage := range c.Storages {
		go func(storage xrate.Storage) {
			rate, err := storage.Get(ctx, provider, currency, date)
			ratesChannel <- fetchedRate{rate: rate, error: err}
		}(storage)
	}

	var lastErr error

	for range c.Storages {
		select {
		case <-ctx.Done():
			return xrate.RateWithID{}, ctx.Err()
		case data := <-ratesChannel:
			if data.error == nil {
				return data.rate, nil
			}
			lastErr = data.error
		}
	}

	return xrate.RateWithID{}, lastErr
}

// Convert returns amount of from expressed in to, rounded to six decimals.
func (c ConversionService) Convert(ctx context.Context, from, to string, provider xrate.Provider, amount float64, date time.Time) (float64, error) {
	if len(c.Storages) == 0 {
		return 0, ErrNoStorageProvided
	}

	day := startOfDay(date)

	rateFrom, err := c.rate(ctx, provider, from, day)
	if err != nil {
		return 0, err
	}

	rateTo, err := c.rate(ctx, provider, to, day)
	if err != nil {
		return 0, err
	}

	return convert(decimal.NewFromFloat(amount), rateFrom.Rate.Rate, rateTo.Rate.Rate)
}

func convert(value decimal.Decimal, rateFrom, rateTo float64) (float64, error) {
	from := decimal.NewFromFloat(rateFrom)
	if from.IsZero() {
		return 0, xrate.ErrDivisionByZero
	}

	result, _ := value.Mul(decimal.NewFromFloat(rateTo)).DivRound(from, 6).Float64()

	return result, nil
}
