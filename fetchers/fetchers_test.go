package fetchers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/malusev998/xrate"
	"github.com/malusev998/xrate/fetchers"
)

type statusHandler struct {
	status int
	body   string
	hits   *int32
}

func (h statusHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	atomic.AddInt32(h.hits, 1)
	writer.WriteHeader(h.status)
	_, _ = writer.Write([]byte(h.body))
}

func TestHTTPFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("ReturnsBody", func(t *testing.T) {
		asserts := require.New(t)
		var hits int32
		server := httptest.NewServer(statusHandler{status: http.StatusOK, body: `{"rates":{}}`, hits: &hits})
		defer server.Close()

		body, err := fetchers.NewHTTPFetcher(time.Second).Fetch(context.Background(), server.URL)

		asserts.Nil(err)
		asserts.Equal(`{"rates":{}}`, string(body))
		asserts.Equal(int32(1), atomic.LoadInt32(&hits))
	})

	values := []struct {
		status   int
		expected error
	}{
		{http.StatusBadRequest, fetchers.ErrClient},
		{http.StatusNotFound, fetchers.ErrClient},
		{http.StatusInternalServerError, fetchers.ErrServer},
		{http.StatusBadGateway, fetchers.ErrServer},
		{http.StatusNotModified, fetchers.ErrUnknown},
	}

	for _, value := range values {
		value := value
		t.Run(http.StatusText(value.status), func(t *testing.T) {
			asserts := require.New(t)
			var hits int32
			server := httptest.NewServer(statusHandler{status: value.status, hits: &hits})
			defer server.Close()

			body, err := fetchers.HTTPFetcher{Client: server.Client()}.Fetch(context.Background(), server.URL)

			asserts.Nil(body)
			asserts.True(errors.Is(err, xrate.ErrTransport))
			asserts.True(errors.Is(err, value.expected))
			asserts.Equal(int32(1), atomic.LoadInt32(&hits), "no retry is expected")
		})
	}

	t.Run("ConnectionRefused", func(t *testing.T) {
		asserts := require.New(t)
		server := httptest.NewServer(http.NotFoundHandler())
		url := server.URL
		server.Close()

		_, err := fetchers.HTTPFetcher{}.Fetch(context.Background(), url)

		asserts.True(errors.Is(err, xrate.ErrTransport))
	})

	t.Run("Timeout", func(t *testing.T) {
		asserts := require.New(t)
		var hits int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&hits, 1)
			time.Sleep(200 * time.Millisecond)
		}))
		defer server.Close()

		_, err := fetchers.NewHTTPFetcher(20*time.Millisecond).Fetch(context.Background(), server.URL)

		asserts.True(errors.Is(err, xrate.ErrTransport))
		asserts.Equal(int32(1), atomic.LoadInt32(&hits))
	})

	t.Run("InvalidURL", func(t *testing.T) {
		asserts := require.New(t)
		_, err := fetchers.HTTPFetcher{}.Fetch(context.Background(), "http://[::1")

		asserts.True(errors.Is(err, xrate.ErrConfiguration))
	})
}
