package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/malusev998/xrate"
)

func storedRate(currency string, rate float64, date time.Time) xrate.RateWithID {
	return xrate.RateWithID{
		Rate: xrate.Rate{
			Base:     "EUR",
			Currency: currency,
			Provider: xrate.FixerProvider,
			Rate:     rate,
			Date:     date,
		},
		ID: 1,
	}
}

func TestConversionService_Convert(t *testing.T) {
	t.Parallel()
	asserts := require.New(t)
	ctx := context.Background()
	now := time.Date(2023, time.May, 1, 15, 4, 5, 0, time.UTC)
	day := time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC)

	t.Run("SuccessfulConversion_ONE_STORAGE_PROVIDER", func(t *testing.T) {
		storage := &MockStorage{}
		storage.On("Get", ctx, xrate.FixerProvider, "USD", day).Return(storedRate("USD", 1.1, day), nil)
		storage.On("Get", ctx, xrate.FixerProvider, "GBP", day).Return(storedRate("GBP", 0.9, day), nil)

		service := ConversionService{Storages: []xrate.Storage{storage}}
		value, err := service.Convert(ctx, "USD", "GBP", xrate.FixerProvider, 110, now)

		asserts.Nil(err)
		asserts.Equal(90.0, value)
	})

	t.Run("RoundsToSixDecimals", func(t *testing.T) {
		storage := &MockStorage{}
		storage.On("Get", ctx, xrate.FixerProvider, "USD", day).Return(storedRate("USD", 1.1, day), nil)
		storage.On("Get", ctx, xrate.FixerProvider, "GBP", day).Return(storedRate("GBP", 0.9, day), nil)
		storage.On("Get", ctx, xrate.FixerProvider, "VEF", day).Return(storedRate("VEF", 248832.5, day), nil)

		service := ConversionService{Storages: []xrate.Storage{storage}}

		value, err := service.Convert(ctx, "USD", "GBP", xrate.FixerProvider, 1, now)
		asserts.Nil(err)
		asserts.Equal(0.818182, value)

		value, err = service.Convert(ctx, "VEF", "GBP", xrate.FixerProvider, 1, now)
		asserts.Nil(err)
		asserts.Equal(0.000004, value)
	})

	t.Run("FirstStorageWithRateWins", func(t *testing.T) {
		empty := &MockStorage{name: "empty"}
		full := &MockStorage{name: "full"}
		empty.On("Get", mockContext, xrate.FixerProvider, "EUR", day).Return(xrate.RateWithID{}, xrate.ErrRateNotStored)
		empty.On("Get", mockContext, xrate.FixerProvider, "RSD", day).Return(xrate.RateWithID{}, xrate.ErrRateNotStored)
		full.On("Get", mockContext, xrate.FixerProvider, "EUR", day).Return(storedRate("EUR", 1, day), nil)
		full.On("Get", mockContext, xrate.FixerProvider, "RSD", day).Return(storedRate("RSD", 117.4, day), nil)

		service := ConversionService{Storages: []xrate.Storage{empty, full}}
		value, err := service.Convert(ctx, "EUR", "RSD", xrate.FixerProvider, 2.5, now)

		asserts.Nil(err)
		asserts.Equal(293.5, value)
	})

	t.Run("NotStoredAnywhere", func(t *testing.T) {
		storage := &MockStorage{}
		storage.On("Get", ctx, xrate.FixerProvider, "USD", day).Return(xrate.RateWithID{}, xrate.ErrRateNotStored)

		service := ConversionService{Storages: []xrate.Storage{storage}}
		value, err := service.Convert(ctx, "USD", "GBP", xrate.FixerProvider, 1, now)

		asserts.True(errors.Is(err, xrate.ErrRateNotStored))
		asserts.Equal(0.0, value)
	})

	t.Run("ZeroSourceRate", func(t *testing.T) {
		storage := &MockStorage{}
		storage.On("Get", ctx, xrate.FixerProvider, "XXX", day).Return(storedRate("XXX", 0, day), nil)
		storage.On("Get", ctx, xrate.FixerProvider, "USD", day).Return(storedRate("USD", 1.1, day), nil)

		service := ConversionService{Storages: []xrate.Storage{storage}}
		_, err := service.Convert(ctx, "XXX", "USD", xrate.FixerProvider, 1, now)

		asserts.True(errors.Is(err, xrate.ErrDivisionByZero))
	})

	t.Run("NoStorageProvider", func(t *testing.T) {
		service := ConversionService{}
		value, err := service.Convert(ctx, "EUR", "USD", xrate.FixerProvider, 1.531454, now)

		asserts.True(errors.Is(err, ErrNoStorageProvided))
		asserts.Equal(0.0, value)
	})

	t.Run("ContextCanceled", func(t *testing.T) {
		slow := &MockStorage{name: "slow"}
		slow.On("Get", mockContext, xrate.FixerProvider, "USD", day).
			After(time.Second).
			Return(xrate.RateWithID{}, xrate.ErrRateNotStored)

		canceled, cancel := context.WithCancel(ctx)
		cancel()

		service := ConversionService{Storages: []xrate.Storage{slow, slow}}
		_, err := service.Convert(canceled, "USD", "GBP", xrate.FixerProvider, 1, now)

		asserts.True(errors.Is(err, context.Canceled))
	})
}
