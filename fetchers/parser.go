package fetchers

import (
	"encoding/json"
	"fmt"

	"github.com/malusev998/xrate"
)

type (
	providerError struct {
		Code int    `json:"code"`
		Type string `json:"type"`
		Info string `json:"info"`
	}

	ratesResponse struct {
		Success *bool              `json:"success,omitempty"`
		Error   *providerError     `json:"error,omitempty"`
		Base    string             `json:"base,omitempty"`
		Date    string             `json:"date,omitempty"`
		Rates   map[string]float64 `json:"rates,omitempty"`
	}

	// JSONParser reads {"rates": {"CODE": number}} documents. Every other
	// top level field apart from base, date and the error envelope is ignored.
	JSONParser struct{}
)

func (JSONParser) Parse(body []byte) (xrate.Rates, error) {
	var data ratesResponse

	if err := json.Unmarshal(body, &data); err != nil {
		return xrate.Rates{}, fmt.Errorf("%w: %v", xrate.ErrParse, err)
	}

	if data.Success != nil && !*data.Success && data.Error != nil {
		return xrate.Rates{}, fmt.Errorf("%w: %d %s %s", xrate.ErrProvider, data.Error.Code, data.Error.Type, data.Error.Info)
	}

	if data.Rates == nil {
		return xrate.Rates{}, xrate.ErrRatesMissing
	}

	base := data.Base
	if base == "" {
		base = xrate.DefaultBase
	}

	return xrate.Rates{
		Base:  base,
		Date:  data.Date,
		Rates: data.Rates,
	}, nil
}
