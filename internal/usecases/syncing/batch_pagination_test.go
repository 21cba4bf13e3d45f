package syncing

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metadomain "github.com/vfg2006/meta-dashboard-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/meta-dashboard-api/infrastructure/integrator/meta/graphclient/mocks"
	"go.uber.org/mock/gomock"
)

func TestAdAccountEdgePathAddsActPrefix(t *testing.T) {
	path, err := adAccountEdgePath("123456", "campaigns")
	require.NoError(t, err)
	assert.Equal(t, "act_123456/campaigns", path)

	path, err = adAccountEdgePath("act_123456", "insights")
	require.NoError(t, err)
	assert.Equal(t, "act_123456/insights", path)

	_, err = adAccountEdgePath("  ", "campaigns")
	assert.Error(t, err)
}

func TestToBatchRelativeURLWithPathAndParams(t *testing.T) {
	params := url.Values{}
	params.Set("fields", "id,name")
	params.Set("limit", "200")

	relative := toBatchRelativeURL("/act_1/campaigns", params, "v24.0")

	assert.Equal(t, "act_1/campaigns?fields=id%2Cname&limit=200", relative)
}

func TestToBatchRelativeURLStripsHostVersionAndToken(t *testing.T) {
	relative := toBatchRelativeURL(
		"https://graph.facebook.com/v24.0/act_1/campaigns?after=abc&access_token=segredo",
		nil,
		"v24.0",
	)

	assert.Equal(t, "act_1/campaigns?after=abc", relative)
}

func TestNextPageRelativeURLPrefersNextLink(t *testing.T) {
	paging := &metadomain.Paging{
		Next:    "https://graph.facebook.com/v24.0/act_1/campaigns?after=xyz&access_token=segredo",
		Cursors: &metadomain.Cursors{After: "ignorado"},
	}

	next := nextPageRelativeURL("act_1/campaigns?limit=200", paging, "v24.0")

	assert.Equal(t, "act_1/campaigns?after=xyz", next)
}

func TestNextPageRelativeURLUsesAfterCursorKeepingQuery(t *testing.T) {
	paging := &metadomain.Paging{Cursors: &metadomain.Cursors{After: "cursor-2"}}

	next := nextPageRelativeURL("act_1/campaigns?after=cursor-1&limit=200", paging, "v24.0")

	parsed, err := url.Parse("/" + next)
	require.NoError(t, err)
	assert.Equal(t, "/act_1/campaigns", parsed.Path)
	assert.Equal(t, "cursor-2", parsed.Query().Get("after"))
	assert.Equal(t, "200", parsed.Query().Get("limit"))
}

func TestNextPageRelativeURLWithoutPaging(t *testing.T) {
	assert.Empty(t, nextPageRelativeURL("act_1/campaigns", nil, "v24.0"))
	assert.Empty(t, nextPageRelativeURL("act_1/campaigns", &metadomain.Paging{}, "v24.0"))
}

func TestIterBatchPaginatedRequestsReenqueuesNextPages(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockAPI(ctrl)

	var batches [][]metadomain.BatchCall
	client.EXPECT().
		BatchRequest(gomock.Any(), "teste", 50, false).
		DoAndReturn(func(calls []metadomain.BatchCall, entity string, batchSize int, includeHeaders bool) ([]metadomain.BatchResult, error) {
			batches = append(batches, calls)
			results := make([]metadomain.BatchResult, len(calls))
			for i, call := range calls {
				body := `{"data":[{"id":"x"}]}`
				if call.RelativeURL == "act_1/campaigns?limit=200" {
					body = `{"data":[{"id":"x"}],"paging":{"cursors":{"after":"c2"}}}`
				}
				results[i] = metadomain.BatchResult{StatusCode: 200, Body: json.RawMessage(body)}
			}
			return results, nil
		}).
		Times(2)

	requests := []batchPageRequest{
		{relativeURL: "act_1/campaigns?limit=200", accountMetaID: "1", accountInternal: "i1"},
		{relativeURL: "act_2/campaigns?limit=200", accountMetaID: "2", accountInternal: "i2"},
	}

	var seen []string
	err := iterBatchPaginatedRequests(client, requests, "teste", 50, "v24.0",
		func(request batchPageRequest, result metadomain.BatchResult) error {
			seen = append(seen, request.accountMetaID)
			return nil
		})

	require.NoError(t, err)
	// A conta 1 tem segunda página, então aparece duas vezes.
	assert.Equal(t, []string{"1", "2", "1"}, seen)
	require.Len(t, batches, 2)
	require.Len(t, batches[1], 1)
	assert.Contains(t, batches[1][0].RelativeURL, "after=c2")
}

func TestIterBatchPaginatedRequestsIgnoresExtraResults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockAPI(ctrl)

	// O provedor devolve mais resultados do que chamadas enviadas.
	client.EXPECT().
		BatchRequest(gomock.Any(), "teste", 50, false).
		Return([]metadomain.BatchResult{
			{StatusCode: 200, Body: json.RawMessage(`{"data":[{"id":"x"}]}`)},
			{StatusCode: 200, Body: json.RawMessage(`{"data":[{"id":"y"}]}`)},
		}, nil)

	requests := []batchPageRequest{
		{relativeURL: "act_1/campaigns?limit=200", accountMetaID: "1", accountInternal: "i1"},
	}

	var seen []string
	var err error
	require.NotPanics(t, func() {
		err = iterBatchPaginatedRequests(client, requests, "teste", 50, "v24.0",
			func(request batchPageRequest, result metadomain.BatchResult) error {
				seen = append(seen, request.accountMetaID)
				return nil
			})
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, seen)
}
