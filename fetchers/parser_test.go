package fetchers_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/malusev998/xrate"
	"github.com/malusev998/xrate/fetchers"
)

func TestJSONParser_Parse(t *testing.T) {
	t.Parallel()
	parser := fetchers.JSONParser{}

	t.Run("Rates", func(t *testing.T) {
		asserts := require.New(t)
		rates, err := parser.Parse([]byte(`{"success":true,"timestamp":1,"base":"EUR","date":"2023-05-01","rates":{"USD":1.1,"GBP":0.9}}`))

		asserts.Nil(err)
		asserts.Equal("EUR", rates.Base)
		asserts.Equal("2023-05-01", rates.Date)
		asserts.Equal(map[string]float64{"USD": 1.1, "GBP": 0.9}, rates.Rates)
	})

	t.Run("DefaultBase", func(t *testing.T) {
		asserts := require.New(t)
		rates, err := parser.Parse([]byte(`{"rates":{"USD":1.1}}`))

		asserts.Nil(err)
		asserts.Equal(xrate.DefaultBase, rates.Base)
	})

	t.Run("NotJSON", func(t *testing.T) {
		asserts := require.New(t)
		_, err := parser.Parse([]byte(`<html>bad gateway</html>`))

		asserts.True(errors.Is(err, xrate.ErrParse))
	})

	t.Run("NotAnObject", func(t *testing.T) {
		asserts := require.New(t)
		_, err := parser.Parse([]byte(`[1, 2]`))

		asserts.True(errors.Is(err, xrate.ErrParse))
	})

	t.Run("NoRates", func(t *testing.T) {
		asserts := require.New(t)
		_, err := parser.Parse([]byte(`{"base":"EUR"}`))

		asserts.True(errors.Is(err, xrate.ErrRatesMissing))
		asserts.True(errors.Is(err, xrate.ErrLookup))
	})

	t.Run("NullRates", func(t *testing.T) {
		asserts := require.New(t)
		_, err := parser.Parse([]byte(`{"rates":null}`))

		asserts.True(errors.Is(err, xrate.ErrRatesMissing))
	})

	t.Run("ProviderError", func(t *testing.T) {
		asserts := require.New(t)
		_, err := parser.Parse([]byte(`{"success":false,"error":{"code":101,"type":"invalid_access_key","info":"You have not supplied a valid API Access Key."}}`))

		asserts.True(errors.Is(err, xrate.ErrProvider))
		asserts.Contains(err.Error(), "invalid_access_key")
	})
}
