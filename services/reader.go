package services

import (
	"context"
	"fmt"
	"log"

	"github.com/malusev998/xrate"
	"github.com/malusev998/xrate/fetchers"
)

// RateReader answers rate queries for a single base endpoint. Every call
// builds a URL, fetches it once and parses the document, nothing is kept
// between calls.
type RateReader struct {
	BaseURL string
	URLs    xrate.URLBuilder
	Fetcher xrate.Fetcher
	Parser  xrate.Parser
	Logger  *log.Logger
}

func NewRateReader(baseURL string, urls xrate.URLBuilder, fetcher xrate.Fetcher, parser xrate.Parser, logger *log.Logger) *RateReader {
	return &RateReader{
		BaseURL: baseURL,
		URLs:    urls,
		Fetcher: fetcher,
		Parser:  parser,
		Logger:  logger,
	}
}

func (r *RateReader) debugf(format string, args ...interface{}) {
	if r.Logger != nil {
		r.Logger.Printf(format, args...)
	}
}

func (r *RateReader) Rates(ctx context.Context, year, month, day int) (xrate.Rates, error) {
	date := xrate.Date{Year: year, Month: month, Day: day}

	url, err := r.URLs.Build(r.BaseURL, date)
	if err != nil {
		return xrate.Rates{}, err
	}

	r.debugf("GET %s", fetchers.Redact(url))

	body, err := r.Fetcher.Fetch(ctx, url)
	if err != nil {
		return xrate.Rates{}, fmt.Errorf("fetching rates for %s: %w", date, err)
	}

	r.debugf("received %d bytes for %s", len(body), date)

	rates, err := r.Parser.Parse(body)
	if err != nil {
		return xrate.Rates{}, fmt.Errorf("parsing rates for %s: %w", date, err)
	}

	return rates, nil
}

func (r *RateReader) SingleRate(ctx context.Context, currency string, year, month, day int) (float64, error) {
	rates, err := r.Rates(ctx, year, month, day)
	if err != nil {
		return 0, err
	}

	return rates.Rate(currency)
}

// CrossRate divides the rate of from by the rate of to, both taken from
// the same document.
func (r *RateReader) CrossRate(ctx context.Context, from, to string, year, month, day int) (float64, error) {
	rates, err := r.Rates(ctx, year, month, day)
	if err != nil {
		return 0, err
	}

	rateFrom, err := rates.Rate(from)
	if err != nil {
		return 0, err
	}

	rateTo, err := rates.Rate(to)
	if err != nil {
		return 0, err
	}

	return divide(rateFrom, rateTo)
}

func divide(numerator, denominator float64) (float64, error) {
	if denominator == 0 {
		return 0, xrate.ErrDivisionByZero
	}

	return numerator / denominator, nil
}
