package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meta-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/meta-dashboard-api/internal/config"
	"github.com/vfg2006/meta-dashboard-api/internal/domain"
	"github.com/vfg2006/meta-dashboard-api/internal/usecases/syncing"
)

// MetaSyncService agenda a sincronização noturna com a Graph API para todos
// os usuários com conexão válida.
type MetaSyncService struct {
	scheduler           *gocron.Scheduler
	cfg                 *config.Config
	connectionRepo      repository.MetaConnectionRepository
	runRepo             repository.SyncRunRepository
	syncer              syncing.Syncer
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewMetaSyncService cria uma nova instância do agendador de sincronização
func NewMetaSyncService(
	connectionRepo repository.MetaConnectionRepository,
	runRepo repository.SyncRunRepository,
	syncer syncing.Syncer,
	cfg *config.Config,
) *MetaSyncService {
	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": cfg.MetaSync.CronSchedule,
		"sync_enabled":  cfg.MetaSync.ScheduleEnabled,
	}).Info("Configuração do agendador de sincronização com a Meta carregada")

	return &MetaSyncService{
		scheduler:      scheduler,
		cfg:            cfg,
		connectionRepo: connectionRepo,
		runRepo:        runRepo,
		syncer:         syncer,
		syncRunning:    false,
	}
}

// Start inicia o agendador
func (s *MetaSyncService) Start(ctx context.Context) error {
	if !s.cfg.MetaSync.ScheduleEnabled {
		logrus.Info("Sincronização agendada com a Meta desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.cfg.MetaSync.CronSchedule).Info("Iniciando agendador de sincronização com a Meta")

	_, err := s.scheduler.Cron(s.cfg.MetaSync.CronSchedule).Do(func() {
		s.syncAllConnectedUsers()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização com a Meta: %w", err)
	}

	// Executar o agendador em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização com a Meta")
		s.scheduler.Stop()
	}()

	return nil
}

// TriggerManualSync dispara a sincronização fora do horário agendado.
func (s *MetaSyncService) TriggerManualSync() {
	go s.syncAllConnectedUsers()
}

// GetStatus retorna o estado atual do agendador
func (s *MetaSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := map[string]any{
		"enabled":       s.cfg.MetaSync.ScheduleEnabled,
		"cron_schedule": s.cfg.MetaSync.CronSchedule,
		"running":       s.syncRunning,
	}
	if !s.lastSyncStartedAt.IsZero() {
		status["last_sync_started_at"] = s.lastSyncStartedAt
	}
	if !s.lastSyncCompletedAt.IsZero() {
		status["last_sync_completed_at"] = s.lastSyncCompletedAt
	}
	return status
}

// syncAllConnectedUsers cria uma run por usuário conectado e executa as
// sincronizações em sequência. Usuários com token expirado são pulados
// antes de criar a run.
func (s *MetaSyncService) syncAllConnectedUsers() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização com a Meta já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	startTime := time.Now()
	s.lastSyncStartedAt = startTime

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando sincronização agendada com a Meta para todos os usuários conectados")

	connections, err := s.connectionRepo.ListConnected()
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar usuários conectados para sincronização com a Meta")
		return
	}

	if len(connections) == 0 {
		logrus.Info("Nenhum usuário conectado encontrado para sincronização com a Meta")
		return
	}

	var succeeded, failed, skipped int
	for _, connection := range connections {
		if !connection.HasValidLongToken(time.Now()) {
			logrus.WithField("user_id", connection.UserID).Info("Token expirado, usuário pulado na sincronização agendada")
			skipped++
			continue
		}

		run, err := s.runRepo.Create(connection.UserID)
		if err != nil {
			logrus.WithError(err).WithField("user_id", connection.UserID).Error("Erro ao criar run de sincronização agendada")
			failed++
			continue
		}

		logrus.WithFields(logrus.Fields{
			"user_id":     connection.UserID,
			"sync_run_id": run.ID,
		}).Info("Executando sincronização agendada")

		if err := s.syncer.Run(run.ID, connection.UserID, domain.SyncScopeAll, 0); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"user_id":     connection.UserID,
				"sync_run_id": run.ID,
			}).Error("Sincronização agendada falhou")
			failed++
			continue
		}
		succeeded++
	}

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration":  duration.String(),
		"users":     len(connections),
		"succeeded": succeeded,
		"failed":    failed,
		"skipped":   skipped,
	}).Info("Sincronização agendada com a Meta concluída")

	s.lastSyncCompletedAt = time.Now()
}
