package graphclient

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metadomain "github.com/vfg2006/meta-dashboard-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/meta-dashboard-api/internal/config"
)

type memoryRunLog struct {
	mu      sync.Mutex
	entries []string
}

func (m *memoryRunLog) Append(entity, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, fmt.Sprintf("[%s] %s", entity, message))
}

func newTestClient(t *testing.T, baseURL string) (*Client, *[]time.Duration) {
	t.Helper()

	cfg := &config.Config{
		Meta: config.Meta{
			BaseURL: baseURL,
			Version: "v24.0",
		},
		MetaSync: config.MetaSync{
			RequestPauseMillis: 0,
			RequestTimeoutSecs: 5,
			MaxRetries:         5,
			BatchSize:          50,
		},
	}

	client := NewClient(cfg, "token-secreto", &memoryRunLog{})

	sleeps := &[]time.Duration{}
	client.sleep = func(d time.Duration) {
		*sleeps = append(*sleeps, d)
	}

	return client, sleeps
}

func TestRequestWithRetryBackoffSequenceOnNetworkError(t *testing.T) {
	// Porta fechada: toda tentativa falha no transporte.
	client, sleeps := newTestClient(t, "http://127.0.0.1:1")

	_, err := client.RequestWithRetry(http.MethodGet, "me/adaccounts", nil, nil, "teste", 0)

	require.Error(t, err)
	assert.True(t, IsNetworkError(err))
	assert.Equal(t, []time.Duration{
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
		16 * time.Second,
	}, *sleeps)
}

func TestRequestWithRetryRetriesRetriableStatusThenSucceeds(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			fmt.Fprint(w, `{"error":{"message":"rate limit"}}`)
			return
		}
		fmt.Fprint(w, `{"data":[]}`)
	}))
	defer server.Close()

	client, sleeps := newTestClient(t, server.URL)

	body, err := client.RequestWithRetry(http.MethodGet, "me/adaccounts", nil, nil, "teste", 0)

	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[]}`, string(body))
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, *sleeps)
}

func TestRequestWithRetryFailsImmediatelyOnNonRetriableStatus(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"message":"Unsupported get request."}}`)
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL)

	_, err := client.RequestWithRetry(http.MethodGet, "me/adaccounts", nil, nil, "teste", 0)

	require.Error(t, err)
	assert.True(t, IsProviderError(err))
	assert.Contains(t, err.Error(), "Unsupported get request.")
	assert.Equal(t, 1, calls)
}

func TestRequestWithRetryInjectsAccessToken(t *testing.T) {
	var gotToken string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.URL.Query().Get("access_token")
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL)

	_, err := client.RequestWithRetry(http.MethodGet, "me", nil, nil, "teste", 0)

	require.NoError(t, err)
	assert.Equal(t, "token-secreto", gotToken)
}

func TestRedactURLHidesAccessToken(t *testing.T) {
	client, _ := newTestClient(t, "http://example.invalid")

	redacted := client.redactURL("http://example.invalid/v24.0/me?access_token=token-secreto&limit=100")

	assert.NotContains(t, redacted, "token-secreto")
	assert.Contains(t, redacted, "access_token=***")
}

func TestBuildURLPassesAbsoluteURLsThrough(t *testing.T) {
	client, _ := newTestClient(t, "http://example.invalid")

	assert.Equal(t, "https://graph.facebook.com/v24.0/me?after=abc", client.buildURL("https://graph.facebook.com/v24.0/me?after=abc"))
	assert.Equal(t, "http://example.invalid/v24.0/me/adaccounts", client.buildURL("/me/adaccounts"))
	assert.Equal(t, "http://example.invalid/v24.0", client.buildURL(""))
}

func TestPaginateFollowsNextLinkAndStops(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `{"data":[{"id":"3"}],"paging":{"cursors":{}}}`)
			return
		}
		fmt.Fprintf(w, `{"data":[{"id":"1"},{"id":"2"}],"paging":{"next":"%s/v24.0/me/adaccounts?page=2"}}`, server.URL)
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL)

	var ids []string
	err := client.Paginate("me/adaccounts", nil, "teste", 0, func(item []byte) error {
		var row struct {
			ID string `json:"id"`
		}
		require.NoError(t, json.Unmarshal(item, &row))
		ids = append(ids, row.ID)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, ids)
}

func TestPaginateFollowsAfterCursorWithOriginalParams(t *testing.T) {
	var requests []url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.URL.Query())
		if r.URL.Query().Get("after") == "" {
			fmt.Fprint(w, `{"data":[{"id":"1"}],"paging":{"cursors":{"after":"cursor-1"}}}`)
			return
		}
		fmt.Fprint(w, `{"data":[{"id":"2"}]}`)
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL)

	params := url.Values{}
	params.Set("fields", "id,name")

	var total int
	err := client.Paginate("me/adaccounts", params, "teste", 0, func(item []byte) error {
		total++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, requests, 2)
	assert.Equal(t, "id,name", requests[1].Get("fields"))
	assert.Equal(t, "cursor-1", requests[1].Get("after"))
}

func TestPaginateStopsAtPageLimit(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, `{"data":[{"id":"1"}],"paging":{"cursors":{"after":"sempre-tem-mais"}}}`)
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL)

	var total int
	err := client.Paginate("me/adaccounts", nil, "teste", 2, func(item []byte) error {
		total++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, total)
}

func TestPaginatePropagatesClientError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error":{"message":"sem permissão"}}`)
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL)

	err := client.Paginate("me/adaccounts", nil, "teste", 0, func(item []byte) error {
		t.Fatal("não deveria entregar itens")
		return nil
	})

	require.Error(t, err)
	assert.True(t, IsProviderError(err))
}

func TestPaginateTreatsMissingDataAsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"paging":{"cursors":{}}}`)
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL)

	var total int
	err := client.Paginate("me/adaccounts", nil, "teste", 0, func(item []byte) error {
		total++
		return nil
	})

	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestPaginateStopsWhenPagingHasNoCursors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[{"id":"1"}],"paging":{}}`)
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL)

	var total int
	err := client.Paginate("me/adaccounts", nil, "teste", 0, func(item []byte) error {
		total++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestBatchRequestPreservesOrderAcrossChunks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		var chunk []metadomain.BatchCall
		require.NoError(t, json.Unmarshal([]byte(r.PostForm.Get("batch")), &chunk))

		results := make([]metadomain.RawBatchResult, 0, len(chunk))
		for _, call := range chunk {
			results = append(results, metadomain.RawBatchResult{
				Code: 200,
				Body: fmt.Sprintf(`{"echo":%q}`, call.RelativeURL),
			})
		}
		payload, err := json.Marshal(results)
		require.NoError(t, err)
		w.Write(payload)
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL)

	calls := make([]metadomain.BatchCall, 0, 7)
	for i := 0; i < 7; i++ {
		calls = append(calls, metadomain.BatchCall{Method: "GET", RelativeURL: fmt.Sprintf("obj-%d", i)})
	}

	for _, chunkSize := range []int{1, 2, 3, 50} {
		results, err := client.BatchRequest(calls, "teste", chunkSize, false)

		require.NoError(t, err)
		require.Len(t, results, len(calls))
		for i, result := range results {
			assert.Equal(t, 200, result.StatusCode)
			assert.Contains(t, string(result.Body), fmt.Sprintf("obj-%d", i))
		}
	}
}

func TestBatchRequestEmptyInputSkipsNetwork(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("não deveria chamar a rede")
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL)

	results, err := client.BatchRequest(nil, "teste", 50, false)

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestBatchRequestNormalizesStringBodies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"code":200,"body":"{\"data\":[]}"},{"code":400,"body":"não é json"}]`)
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL)

	results, err := client.BatchRequest([]metadomain.BatchCall{
		{Method: "GET", RelativeURL: "a"},
		{Method: "GET", RelativeURL: "b"},
	}, "teste", 50, false)

	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.True(t, results[0].IsSuccess())
	assert.JSONEq(t, `{"data":[]}`, string(results[0].Body))

	assert.False(t, results[1].IsSuccess())
	assert.Nil(t, results[1].Body)
	assert.Equal(t, "não é json", results[1].BodyRaw)
}

func TestBatchRequestChunkFailureAborts(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			fmt.Fprint(w, `[{"code":200,"body":"{}"},{"code":200,"body":"{}"}]`)
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"message":"batch inválido"}}`)
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL)

	batchCalls := []metadomain.BatchCall{
		{Method: "GET", RelativeURL: "a"},
		{Method: "GET", RelativeURL: "b"},
		{Method: "GET", RelativeURL: "c"},
	}

	results, err := client.BatchRequest(batchCalls, "teste", 2, false)

	require.Error(t, err)
	assert.Nil(t, results)
}
