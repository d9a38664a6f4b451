package fetchers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/malusev998/xrate"
)

const DefaultTimeout = 10 * time.Second

var (
	ErrClient  = errors.New("client error")
	ErrServer  = errors.New("server error")
	ErrUnknown = errors.New("unknown error")
)

// HTTPFetcher performs exactly one GET per call and never retries.
type HTTPFetcher struct {
	Client *http.Client
}

func NewHTTPFetcher(timeout time.Duration) HTTPFetcher {
	return HTTPFetcher{Client: &http.Client{Timeout: timeout}}
}

func handleHTTPStatusCodeError(res *http.Response) error {
	if res.StatusCode >= http.StatusOK && res.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	var err error

	switch {
	case res.StatusCode >= http.StatusBadRequest && res.StatusCode < http.StatusInternalServerError:
		err = ErrClient
	case res.StatusCode >= http.StatusInternalServerError:
		err = ErrServer
	default:
		err = ErrUnknown
	}

	return fmt.Errorf("%w: %w: status %d", xrate.ErrTransport, err, res.StatusCode)
}

func (f HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	client := f.Client

	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", xrate.ErrConfiguration, err)
	}

	req.Header.Add("Accept", "application/json")

	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", xrate.ErrTransport, err)
	}

	defer res.Body.Close()

	if err := handleHTTPStatusCodeError(res); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", xrate.ErrTransport, err)
	}

	return body, nil
}
