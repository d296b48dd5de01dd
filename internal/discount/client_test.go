package discount

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDiscountServer(t *testing.T, status int, body string) (*httptest.Server, *int32) {
	t.Helper()

	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv, &calls
}

const rulesBody = `[
	{"id":"1","enablement":true,"discount":0.1},
	{"id":"2","enablement":false,"discount":0.5},
	{"id":"1","enablement":false,"discount":0.9}
]`

func TestFetchDiscountInfo_FirstMatch(t *testing.T) {
	srv, _ := newDiscountServer(t, http.StatusOK, rulesBody)
	client := NewClient(srv.URL, srv.Client())

	rule, err := client.FetchDiscountInfo(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "1", rule.ID)
	assert.True(t, rule.Enablement)
	assert.Equal(t, 0.1, rule.Discount)

	rule, err = client.FetchDiscountInfo(context.Background(), "2")
	require.NoError(t, err)
	assert.False(t, rule.Enablement)
}

func TestFetchDiscountInfo_NoCache(t *testing.T) {
	srv, calls := newDiscountServer(t, http.StatusOK, rulesBody)
	client := NewClient(srv.URL, srv.Client())

	for i := 0; i < 3; i++ {
		_, err := client.FetchDiscountInfo(context.Background(), "1")
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), atomic.LoadInt32(calls))
}

func TestFetchDiscountInfo_NoMatchingRule(t *testing.T) {
	srv, _ := newDiscountServer(t, http.StatusOK, rulesBody)
	client := NewClient(srv.URL, srv.Client())

	_, err := client.FetchDiscountInfo(context.Background(), "3")
	require.Error(t, err)

	var lookupErr *LookupError
	require.True(t, errors.As(err, &lookupErr))
	assert.Equal(t, "3", lookupErr.DiscountType)
	assert.True(t, errors.Is(err, ErrRuleNotFound))
}

func TestFetchDiscountInfo_MalformedPayload(t *testing.T) {
	srv, _ := newDiscountServer(t, http.StatusOK, `{"id":"1"`)
	client := NewClient(srv.URL, srv.Client())

	_, err := client.FetchDiscountInfo(context.Background(), "1")
	var lookupErr *LookupError
	assert.True(t, errors.As(err, &lookupErr))
}

func TestFetchDiscountInfo_BadStatus(t *testing.T) {
	srv, _ := newDiscountServer(t, http.StatusInternalServerError, `oops`)
	client := NewClient(srv.URL, srv.Client())

	_, err := client.FetchDiscountInfo(context.Background(), "1")
	var lookupErr *LookupError
	assert.True(t, errors.As(err, &lookupErr))
}

func TestFetchDiscountInfo_TransportFailure(t *testing.T) {
	srv, _ := newDiscountServer(t, http.StatusOK, rulesBody)
	url := srv.URL
	srv.Close()

	client := NewClient(url, nil)
	_, err := client.FetchDiscountInfo(context.Background(), "1")
	var lookupErr *LookupError
	assert.True(t, errors.As(err, &lookupErr))
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient("", nil)
	assert.Equal(t, DefaultURL, client.url)
	assert.Equal(t, http.DefaultClient, client.httpClient)
}
