package xrate

import (
	"context"
	"fmt"
	"time"
)

type (
	// Date is a calendar day as the caller asked for it. No normalisation
	// happens here, the remote service decides what is valid.
	Date struct {
		Year  int
		Month int
		Day   int
	}

	URLBuilder interface {
		Build(base string, date Date) (string, error)
	}

	Fetcher interface {
		Fetch(ctx context.Context, url string) ([]byte, error)
	}

	Parser interface {
		Parse(body []byte) (Rates, error)
	}

	Reader interface {
		SingleRate(ctx context.Context, currency string, year, month, day int) (float64, error)
		CrossRate(ctx context.Context, from, to string, year, month, day int) (float64, error)
		Rates(ctx context.Context, year, month, day int) (Rates, error)
	}

	Storage interface {
		Store(ctx context.Context, rates []Rate) ([]RateWithID, error)
		Get(ctx context.Context, provider Provider, currency string, date time.Time) (RateWithID, error)
		Migrate(ctx context.Context) error
		Drop(ctx context.Context) error
		Close() error
		GetStorageProviderName() string
	}

	Service interface {
		Save(ctx context.Context, date Date, currencies []string) (map[string][]RateWithID, error)
	}

	Conversion interface {
		Convert(ctx context.Context, from, to string, provider Provider, amount float64, date time.Time) (float64, error)
	}
)

func NewDate(t time.Time) Date {
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

func (d Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}
