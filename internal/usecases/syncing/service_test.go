package syncing

import (
	"errors"
	"net/url"
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

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func testSyncConfig() *config.Config {
	return &config.Config{
		Meta: config.Meta{Version: "v24.0"},
		MetaSync: config.MetaSync{
			MaxRetries:         5,
			BatchSize:          50,
			InsightsMonthsBack: 24,
		},
	}
}

type serviceMocks struct {
	connectionRepo *mocks.MockMetaConnectionRepository
	runRepo        *mocks.MockSyncRunRepository
	logRepo        *mocks.MockSyncLogRepository
	adAccountRepo  *mocks.MockAdAccountRepository
	hierarchyRepo  *mocks.MockHierarchyRepository
	insightRepo    *mocks.MockInsightRepository
	instagramRepo  *mocks.MockInstagramRepository
}

func newTestService(t *testing.T, ctrl *gomock.Controller, now time.Time) (*Service, *serviceMocks) {
	t.Helper()

	m := &serviceMocks{
		connectionRepo: mocks.NewMockMetaConnectionRepository(ctrl),
		runRepo:        mocks.NewMockSyncRunRepository(ctrl),
		logRepo:        mocks.NewMockSyncLogRepository(ctrl),
		adAccountRepo:  mocks.NewMockAdAccountRepository(ctrl),
		hierarchyRepo:  mocks.NewMockHierarchyRepository(ctrl),
		insightRepo:    mocks.NewMockInsightRepository(ctrl),
		instagramRepo:  mocks.NewMockInstagramRepository(ctrl),
	}
	m.logRepo.EXPECT().Append(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := NewService(
		testSyncConfig(),
		m.connectionRepo,
		m.runRepo,
		m.logRepo,
		m.adAccountRepo,
		m.hierarchyRepo,
		m.insightRepo,
		m.instagramRepo,
	)
	svc.now = func() time.Time { return now }
	return svc, m
}

func validConnection(now time.Time) *domain.MetaConnection {
	expiredAt := now.AddDate(0, 2, 0)
	return &domain.MetaConnection{
		ID:              "conn01",
		UserID:          42,
		MetaUserID:      "meta-42",
		LongAccessToken: "token-longo",
		ExpiredAt:       &expiredAt,
	}
}

func TestBuildDateWindowWithDaysOverride(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestService(t, ctrl, time.Date(2026, 2, 23, 15, 42, 7, 0, time.UTC))

	since, until := svc.buildDateWindow(7)

	assert.Equal(t, day(2026, 2, 16), since)
	assert.Equal(t, day(2026, 2, 23), until)
}

func TestBuildDateWindowDefaultsToMonthsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestService(t, ctrl, time.Date(2026, 2, 23, 9, 0, 0, 0, time.UTC))

	since, until := svc.buildDateWindow(0)

	assert.Equal(t, day(2024, 2, 23), since)
	assert.Equal(t, day(2026, 2, 23), until)
}

func TestRunFailsWithoutValidToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2026, 2, 23, 9, 0, 0, 0, time.UTC)
	svc, m := newTestService(t, ctrl, now)

	expired := now.AddDate(0, 0, -1)
	connection := validConnection(now)
	connection.ExpiredAt = &expired

	m.connectionRepo.EXPECT().GetByUserID(42).Return(connection, nil)
	m.runRepo.EXPECT().MarkFinished("run01", domain.SyncRunStatusFailed).Return(nil)

	err := svc.Run("run01", 42, domain.SyncScopeAll, 0)

	assert.Error(t, err)
}

func TestRunFailsOnInvalidScope(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2026, 2, 23, 9, 0, 0, 0, time.UTC)
	svc, m := newTestService(t, ctrl, now)

	client := graphmocks.NewMockAPI(ctrl)
	svc.newClient = func(cfg *config.Config, accessToken string, runLog graphclient.RunLogger) graphclient.API {
		return client
	}

	m.connectionRepo.EXPECT().GetByUserID(42).Return(validConnection(now), nil)
	m.runRepo.EXPECT().MarkRunning("run01").Return(nil)
	m.runRepo.EXPECT().MarkFinished("run01", domain.SyncRunStatusFailed).Return(nil)

	err := svc.Run("run01", 42, domain.SyncScope("banana"), 0)

	assert.Error(t, err)
}

func TestRunMetaScopeWithoutAccountsSucceeds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2026, 2, 23, 9, 0, 0, 0, time.UTC)
	svc, m := newTestService(t, ctrl, now)

	client := graphmocks.NewMockAPI(ctrl)
	var tokenReceived string
	svc.newClient = func(cfg *config.Config, accessToken string, runLog graphclient.RunLogger) graphclient.API {
		tokenReceived = accessToken
		return client
	}

	m.connectionRepo.EXPECT().GetByUserID(42).Return(validConnection(now), nil)
	m.runRepo.EXPECT().MarkRunning("run01").Return(nil)
	// Sem contas de anúncio, os estágios seguintes não chamam a Graph API.
	client.EXPECT().
		Paginate("me/adaccounts", gomock.Any(), "ad_accounts", 0, gomock.Any()).
		Return(nil)
	m.runRepo.EXPECT().MarkFinished("run01", domain.SyncRunStatusSuccess).Return(nil)

	err := svc.Run("run01", 42, domain.SyncScope(" Meta "), 7)

	require.NoError(t, err)
	assert.Equal(t, "token-longo", tokenReceived)
}

func TestRunFailsWhenMarkRunningFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2026, 2, 23, 9, 0, 0, 0, time.UTC)
	svc, m := newTestService(t, ctrl, now)

	m.connectionRepo.EXPECT().GetByUserID(42).Return(validConnection(now), nil)
	m.runRepo.EXPECT().MarkRunning("run01").Return(errors.New("banco indisponível"))
	// Mesmo sem iniciar, a run precisa de estado terminal.
	m.runRepo.EXPECT().MarkFinished("run01", domain.SyncRunStatusFailed).Return(nil)

	err := svc.Run("run01", 42, domain.SyncScopeAll, 0)

	assert.Error(t, err)
}

func TestRunRecoversFromStagePanic(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2026, 2, 23, 9, 0, 0, 0, time.UTC)
	svc, m := newTestService(t, ctrl, now)

	client := graphmocks.NewMockAPI(ctrl)
	svc.newClient = func(cfg *config.Config, accessToken string, runLog graphclient.RunLogger) graphclient.API {
		return client
	}

	m.connectionRepo.EXPECT().GetByUserID(42).Return(validConnection(now), nil)
	m.runRepo.EXPECT().MarkRunning("run01").Return(nil)
	client.EXPECT().
		Paginate("me/adaccounts", gomock.Any(), "ad_accounts", 0, gomock.Any()).
		DoAndReturn(func(string, url.Values, string, int, func([]byte) error) error {
			panic("resposta inesperada do provedor")
		})
	m.runRepo.EXPECT().MarkFinished("run01", domain.SyncRunStatusFailed).Return(nil)

	var err error
	require.NotPanics(t, func() {
		err = svc.Run("run01", 42, domain.SyncScopeMeta, 7)
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "panic")
}

func TestRunFailsWhenStageFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2026, 2, 23, 9, 0, 0, 0, time.UTC)
	svc, m := newTestService(t, ctrl, now)

	client := graphmocks.NewMockAPI(ctrl)
	svc.newClient = func(cfg *config.Config, accessToken string, runLog graphclient.RunLogger) graphclient.API {
		return client
	}

	m.connectionRepo.EXPECT().GetByUserID(42).Return(validConnection(now), nil)
	m.runRepo.EXPECT().MarkRunning("run01").Return(nil)
	client.EXPECT().
		Paginate("me/adaccounts", gomock.Any(), "ad_accounts", 0, gomock.Any()).
		Return(errors.New("erro de rede"))
	m.runRepo.EXPECT().MarkFinished("run01", domain.SyncRunStatusFailed).Return(nil)

	err := svc.Run("run01", 42, domain.SyncScopeMeta, 7)

	assert.Error(t, err)
}

type accountInsightCall struct {
	metric string
	since  string
	until  string
}

func newInsightsRunContext(t *testing.T, ctrl *gomock.Controller, now, since, until time.Time) (*runContext, *graphmocks.MockAPI) {
	t.Helper()

	svc, m := newTestService(t, ctrl, now)
	client := graphmocks.NewMockAPI(ctrl)

	return &runContext{
		svc:    svc,
		client: client,
		log:    &runLogger{logRepo: m.logRepo, runID: "run01"},
		userID: 42,
		since:  since,
		until:  until,
	}, client
}

func TestFetchInstagramAccountInsightsFollowerCountWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2026, 2, 20, 10, 0, 0, 0, time.UTC)
	run, client := newInsightsRunContext(t, ctrl, now, day(2024, 6, 1), day(2026, 2, 20))

	var followerCalls []accountInsightCall
	client.EXPECT().
		RequestWithRetry("GET", "17890/insights", gomock.Any(), gomock.Any(), "instagram_account_insights", time.Duration(0)).
		DoAndReturn(func(method, path string, params, form url.Values, entity string, timeout time.Duration) ([]byte, error) {
			if params.Get("metric") == "follower_count" {
				followerCalls = append(followerCalls, accountInsightCall{
					metric: params.Get("metric"),
					since:  params.Get("since"),
					until:  params.Get("until"),
				})
			}
			return []byte(`{"data":[]}`), nil
		}).
		AnyTimes()

	run.fetchInstagramAccountInsights("17890")

	require.Len(t, followerCalls, 1)
	assert.Equal(t, "2026-01-22", followerCalls[0].since)
	assert.Equal(t, "2026-02-18", followerCalls[0].until)
}

func TestFetchInstagramAccountInsightsFollowerCountRetry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2026, 2, 20, 10, 0, 0, 0, time.UTC)
	run, client := newInsightsRunContext(t, ctrl, now, day(2024, 6, 1), day(2026, 2, 20))

	var followerCalls []accountInsightCall
	client.EXPECT().
		RequestWithRetry("GET", "17890/insights", gomock.Any(), gomock.Any(), "instagram_account_insights", time.Duration(0)).
		DoAndReturn(func(method, path string, params, form url.Values, entity string, timeout time.Duration) ([]byte, error) {
			if params.Get("metric") == "follower_count" {
				followerCalls = append(followerCalls, accountInsightCall{
					metric: params.Get("metric"),
					since:  params.Get("since"),
					until:  params.Get("until"),
				})
				if len(followerCalls) == 1 {
					return nil, errors.New("(#100) The follower_count metric supports queries for the last 30 days excluding the current day")
				}
			}
			return []byte(`{"data":[]}`), nil
		}).
		AnyTimes()

	run.fetchInstagramAccountInsights("17890")

	require.Len(t, followerCalls, 2)
	assert.Equal(t, "2026-02-11", followerCalls[1].since)
	assert.Equal(t, "2026-02-18", followerCalls[1].until)
}

func TestFetchInstagramAccountInsightsSkipsEmptyWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Janela inteira anterior ao limite de 2 anos da Graph API.
	now := time.Date(2026, 2, 20, 10, 0, 0, 0, time.UTC)
	run, _ := newInsightsRunContext(t, ctrl, now, day(2021, 1, 1), day(2022, 1, 1))

	entries := run.fetchInstagramAccountInsights("17890")

	assert.Empty(t, entries)
}
