package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/malusev998/xrate"
)

type (
	MockFetcher struct {
		mock.Mock
	}

	MockReader struct {
		mock.Mock
	}

	MockStorage struct {
		mock.Mock
		name string
	}
)

func (m *MockFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	args := m.Called(ctx, url)
	return1 := args.Get(0)

	if return1 == nil {
		return nil, args.Error(1)
	}

	return return1.([]byte), args.Error(1)
}

func (m *MockReader) SingleRate(ctx context.Context, currency string, year, month, day int) (float64, error) {
	args := m.Called(ctx, currency, year, month, day)

	return args.Get(0).(float64), args.Error(1)
}

func (m *MockReader) CrossRate(ctx context.Context, from, to string, year, month, day int) (float64, error) {
	args := m.Called(ctx, from, to, year, month, day)

	return args.Get(0).(float64), args.Error(1)
}

func (m *MockReader) Rates(ctx context.Context, year, month, day int) (xrate.Rates, error) {
	args := m.Called(ctx, year, month, day)

	return args.Get(0).(xrate.Rates), args.Error(1)
}

func (m *MockStorage) Store(ctx context.Context, rates []xrate.Rate) ([]xrate.RateWithID, error) {
	args := m.Called(ctx, rates)

	return1 := args.Get(0)

	if return1 == nil {
		return nil, args.Error(1)
	}
	return return1.([]xrate.RateWithID), args.Error(1)
}

func (m *MockStorage) Get(ctx context.Context, provider xrate.Provider, currency string, date time.Time) (xrate.RateWithID, error) {
	args := m.Called(ctx, provider, currency, date)

	return args.Get(0).(xrate.RateWithID), args.Error(1)
}

func (m *MockStorage) GetStorageProviderName() string {
	if m.name == "" {
		return "MockStorage"
	}

	return m.name
}

func (m *MockStorage) Migrate(ctx context.Context) error {
	return nil
}

func (m *MockStorage) Drop(ctx context.Context) error {
	return nil
}

func (m *MockStorage) Close() error {
	return nil
}

var mockContext = mock.MatchedBy(func(ctx context.Context) bool { return ctx != nil })
