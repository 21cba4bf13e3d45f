package connecting

import (
	"errors"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/meta-dashboard-api/infrastructure/integrator/meta/graphclient"
	graphmocks "github.com/vfg2006/meta-dashboard-api/infrastructure/integrator/meta/graphclient/mocks"
	"github.com/vfg2006/meta-dashboard-api/infrastructure/repository/mocks"
	"github.com/vfg2006/meta-dashboard-api/internal/config"
	"github.com/vfg2006/meta-dashboard-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func testConnectConfig() *config.Config {
	return &config.Config{
		Meta: config.Meta{
			Version:   "v24.0",
			AppID:     "app-id",
			AppSecret: "app-secret",
		},
		MetaSync: config.MetaSync{MaxRetries: 3, BatchSize: 50},
	}
}

func newConnectService(t *testing.T, ctrl *gomock.Controller, now time.Time) (*Service, *mocks.MockMetaConnectionRepository, *graphmocks.MockAPI, *[]string) {
	t.Helper()

	connectionRepo := mocks.NewMockMetaConnectionRepository(ctrl)
	client := graphmocks.NewMockAPI(ctrl)

	svc := NewService(testConnectConfig(), connectionRepo)
	svc.now = func() time.Time { return now }

	var tokens []string
	svc.newClient = func(cfg *config.Config, accessToken string) graphclient.API {
		tokens = append(tokens, accessToken)
		return client
	}

	return svc, connectionRepo, client, &tokens
}

func TestAuthorizationURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _, _ := newConnectService(t, ctrl, time.Now())

	rawURL, err := svc.AuthorizationURL("state-123", "https://api.example.com/meta/callback")
	require.NoError(t, err)

	parsed, err := url.Parse(rawURL)
	require.NoError(t, err)
	assert.Equal(t, "www.facebook.com", parsed.Host)
	assert.Equal(t, "/v24.0/dialog/oauth", parsed.Path)
	assert.Equal(t, "app-id", parsed.Query().Get("client_id"))
	assert.Equal(t, "state-123", parsed.Query().Get("state"))
	assert.Equal(t, "code", parsed.Query().Get("response_type"))
	assert.NotEmpty(t, parsed.Query().Get("scope"))
}

func TestConnectWithShortTokenUsesExchangeExpiration(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2026, 2, 23, 12, 0, 0, 0, time.UTC)
	svc, connectionRepo, client, tokens := newConnectService(t, ctrl, now)

	client.EXPECT().
		RequestWithRetry("GET", gomock.Any(), gomock.Any(), gomock.Any(), "meta_oauth", 30*time.Second).
		DoAndReturn(func(method, path string, params, form url.Values, entity string, timeout time.Duration) ([]byte, error) {
			switch path {
			case "me":
				return []byte(`{"id":"9001","name":"Fulano"}`), nil
			case "oauth/access_token":
				assert.Equal(t, "fb_exchange_token", params.Get("grant_type"))
				assert.Equal(t, "token-curto", params.Get("fb_exchange_token"))
				return []byte(`{"access_token":"token-longo","expires_in":5184000}`), nil
			}
			return nil, errors.New("chamada inesperada: " + path)
		}).
		Times(2)

	connectionRepo.EXPECT().GetByMetaUserID("9001").Return(nil, nil)
	connectionRepo.EXPECT().
		Upsert(gomock.Any()).
		DoAndReturn(func(connection *domain.MetaConnection) (*domain.MetaConnection, error) {
			assert.Equal(t, 42, connection.UserID)
			assert.Equal(t, "9001", connection.MetaUserID)
			assert.Equal(t, "token-longo", connection.LongAccessToken)
			require.NotNil(t, connection.ExpiredAt)
			assert.Equal(t, now.Add(5184000*time.Second), *connection.ExpiredAt)
			connection.ID = "conn01"
			return connection, nil
		})

	connection, err := svc.ConnectWithShortToken(42, "token-curto")

	require.NoError(t, err)
	assert.Equal(t, "conn01", connection.ID)
	// O /me usa o short token; a troca usa só as credenciais do app.
	assert.Contains(t, *tokens, "token-curto")
}

func TestConnectWithShortTokenFallsBackToPreventiveWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2026, 2, 23, 12, 0, 0, 0, time.UTC)
	svc, connectionRepo, client, _ := newConnectService(t, ctrl, now)

	client.EXPECT().
		RequestWithRetry("GET", gomock.Any(), gomock.Any(), gomock.Any(), "meta_oauth", 30*time.Second).
		DoAndReturn(func(method, path string, params, form url.Values, entity string, timeout time.Duration) ([]byte, error) {
			switch path {
			case "me":
				return []byte(`{"id":"9001"}`), nil
			case "oauth/access_token":
				return []byte(`{"access_token":"token-longo"}`), nil
			case "debug_token":
				return nil, errors.New("indisponível")
			}
			return nil, errors.New("chamada inesperada: " + path)
		}).
		Times(3)

	connectionRepo.EXPECT().GetByMetaUserID("9001").Return(nil, nil)
	connectionRepo.EXPECT().
		Upsert(gomock.Any()).
		DoAndReturn(func(connection *domain.MetaConnection) (*domain.MetaConnection, error) {
			require.NotNil(t, connection.ExpiredAt)
			assert.Equal(t, now.Add(preventiveRenewalDays*24*time.Hour), *connection.ExpiredAt)
			return connection, nil
		})

	_, err := svc.ConnectWithShortToken(42, "token-curto")

	require.NoError(t, err)
}

func TestConnectWithShortTokenUsesDebugTokenExpiration(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2026, 2, 23, 12, 0, 0, 0, time.UTC)
	svc, connectionRepo, client, _ := newConnectService(t, ctrl, now)

	expiresAt := now.Add(48 * time.Hour)
	client.EXPECT().
		RequestWithRetry("GET", gomock.Any(), gomock.Any(), gomock.Any(), "meta_oauth", 30*time.Second).
		DoAndReturn(func(method, path string, params, form url.Values, entity string, timeout time.Duration) ([]byte, error) {
			switch path {
			case "me":
				return []byte(`{"id":"9001"}`), nil
			case "oauth/access_token":
				return []byte(`{"access_token":"token-longo"}`), nil
			case "debug_token":
				assert.Equal(t, "app-id|app-secret", params.Get("access_token"))
				return []byte(`{"data":{"expires_at":` + strconv.FormatInt(expiresAt.Unix(), 10) + `}}`), nil
			}
			return nil, errors.New("chamada inesperada: " + path)
		}).
		Times(3)

	connectionRepo.EXPECT().GetByMetaUserID("9001").Return(nil, nil)
	connectionRepo.EXPECT().
		Upsert(gomock.Any()).
		DoAndReturn(func(connection *domain.MetaConnection) (*domain.MetaConnection, error) {
			require.NotNil(t, connection.ExpiredAt)
			assert.True(t, connection.ExpiredAt.Equal(expiresAt))
			return connection, nil
		})

	_, err := svc.ConnectWithShortToken(42, "token-curto")

	require.NoError(t, err)
}

func TestConnectWithShortTokenRejectsMetaUserLinkedToAnotherAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2026, 2, 23, 12, 0, 0, 0, time.UTC)
	svc, connectionRepo, client, _ := newConnectService(t, ctrl, now)

	client.EXPECT().
		RequestWithRetry("GET", "me", gomock.Any(), gomock.Any(), "meta_oauth", 30*time.Second).
		Return([]byte(`{"id":"9001"}`), nil)

	connectionRepo.EXPECT().
		GetByMetaUserID("9001").
		Return(&domain.MetaConnection{ID: "conn99", UserID: 7, MetaUserID: "9001"}, nil)

	_, err := svc.ConnectWithShortToken(42, "token-curto")

	require.Error(t, err)
	var connectErr *ConnectError
	require.ErrorAs(t, err, &connectErr)
	assert.Contains(t, connectErr.Message, "outra conta")
}

func TestStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2026, 2, 23, 12, 0, 0, 0, time.UTC)
	svc, connectionRepo, _, _ := newConnectService(t, ctrl, now)

	connectionRepo.EXPECT().GetByUserID(42).Return(nil, nil)
	status, err := svc.Status(42)
	require.NoError(t, err)
	assert.False(t, status.Connected)

	expiredAt := now.Add(30 * 24 * time.Hour)
	connectionRepo.EXPECT().GetByUserID(42).Return(&domain.MetaConnection{
		UserID:          42,
		MetaUserID:      "9001",
		LongAccessToken: "token-longo",
		ExpiredAt:       &expiredAt,
	}, nil)
	status, err = svc.Status(42)
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, "9001", status.MetaUserID)

	// Token expirado conta como desconectado.
	expired := now.Add(-time.Hour)
	connectionRepo.EXPECT().GetByUserID(42).Return(&domain.MetaConnection{
		UserID:          42,
		LongAccessToken: "token-longo",
		ExpiredAt:       &expired,
	}, nil)
	status, err = svc.Status(42)
	require.NoError(t, err)
	assert.False(t, status.Connected)
}

func TestParsePositiveInt(t *testing.T) {
	cases := []struct {
		raw      string
		expected int64
		ok       bool
	}{
		{`5184000`, 5184000, true},
		{`"5184000"`, 5184000, true},
		{`"5184000.0"`, 5184000, true},
		{`0`, 0, false},
		{`-10`, 0, false},
		{`null`, 0, false},
		{`""`, 0, false},
		{`"abc"`, 0, false},
	}

	for _, tc := range cases {
		value, ok := parsePositiveInt([]byte(tc.raw))
		assert.Equal(t, tc.ok, ok, tc.raw)
		if tc.ok {
			assert.Equal(t, tc.expected, value, tc.raw)
		}
	}
}

