package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/meta-dashboard-api/infrastructure/repository/mocks"
	"github.com/vfg2006/meta-dashboard-api/internal/config"
	"github.com/vfg2006/meta-dashboard-api/internal/domain"
	syncmocks "github.com/vfg2006/meta-dashboard-api/internal/usecases/syncing/mocks"
	"go.uber.org/mock/gomock"
)

func newSchedulerService(t *testing.T, ctrl *gomock.Controller) (*MetaSyncService, *mocks.MockMetaConnectionRepository, *mocks.MockSyncRunRepository, *syncmocks.MockSyncer) {
	t.Helper()

	connectionRepo := mocks.NewMockMetaConnectionRepository(ctrl)
	runRepo := mocks.NewMockSyncRunRepository(ctrl)
	syncer := syncmocks.NewMockSyncer(ctrl)

	cfg := &config.Config{
		MetaSync: config.MetaSync{
			CronSchedule:    "0 3 * * *",
			ScheduleEnabled: true,
		},
	}

	return NewMetaSyncService(connectionRepo, runRepo, syncer, cfg), connectionRepo, runRepo, syncer
}

func TestSyncAllConnectedUsersSkipsExpiredTokens(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, connectionRepo, runRepo, syncer := newSchedulerService(t, ctrl)

	valid := time.Now().Add(30 * 24 * time.Hour)
	expired := time.Now().Add(-time.Hour)
	connectionRepo.EXPECT().ListConnected().Return([]*domain.MetaConnection{
		{UserID: 1, LongAccessToken: "token-1", ExpiredAt: &valid},
		{UserID: 2, LongAccessToken: "token-2", ExpiredAt: &expired},
		{UserID: 3, LongAccessToken: "token-3", ExpiredAt: &valid},
	}, nil)

	runRepo.EXPECT().Create(1).Return(&domain.SyncRun{ID: "run-1", UserID: 1, Status: domain.SyncRunStatusPending}, nil)
	runRepo.EXPECT().Create(3).Return(&domain.SyncRun{ID: "run-3", UserID: 3, Status: domain.SyncRunStatusPending}, nil)

	syncer.EXPECT().Run("run-1", 1, domain.SyncScopeAll, 0).Return(nil)
	syncer.EXPECT().Run("run-3", 3, domain.SyncScopeAll, 0).Return(errors.New("falha de rede"))

	service.syncAllConnectedUsers()
}

func TestSyncAllConnectedUsersWithoutConnections(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, connectionRepo, _, _ := newSchedulerService(t, ctrl)

	connectionRepo.EXPECT().ListConnected().Return(nil, nil)

	service.syncAllConnectedUsers()
}

func TestSyncAllConnectedUsersIgnoresConcurrentTrigger(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, _, _, _ := newSchedulerService(t, ctrl)

	service.syncMutex.Lock()
	service.syncRunning = true
	service.syncMutex.Unlock()

	// Nenhuma chamada aos mocks é esperada com uma execução em andamento.
	service.syncAllConnectedUsers()

	assert.True(t, service.syncRunning)
}
