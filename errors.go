package xrate

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration  = errors.New("configuration error")
	ErrTransport      = errors.New("transport error")
	ErrParse          = errors.New("response is not valid JSON")
	ErrLookup         = errors.New("lookup error")
	ErrProvider       = errors.New("rates provider reported an error")
	ErrDivisionByZero = errors.New("cross rate denominator is zero")
	ErrRateNotStored  = errors.New("rate is not found in storage")

	ErrRatesMissing     = fmt.Errorf("%w: response has no rates", ErrLookup)
	ErrCurrencyNotFound = fmt.Errorf("%w: currency is not present in rates", ErrLookup)
)
