package syncing

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/meta-dashboard-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/meta-dashboard-api/infrastructure/integrator/meta/graphclient"
	"github.com/vfg2006/meta-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/meta-dashboard-api/internal/config"
	"github.com/vfg2006/meta-dashboard-api/internal/domain"
	"github.com/vfg2006/meta-dashboard-api/pkg/utils"
)

// ClientFactory cria o client da Graph API com o token do usuário e o log
// da run. Substituível em teste.
type ClientFactory func(cfg *config.Config, accessToken string, runLog graphclient.RunLogger) graphclient.API

type Syncer interface {
	Run(runID string, userID int, scope domain.SyncScope, insightsDaysOverride int) error
}

type Service struct {
	cfg            *config.Config
	connectionRepo repository.MetaConnectionRepository
	runRepo        repository.SyncRunRepository
	logRepo        repository.SyncLogRepository
	adAccountRepo  repository.AdAccountRepository
	hierarchyRepo  repository.HierarchyRepository
	insightRepo    repository.InsightRepository
	instagramRepo  repository.InstagramRepository
	newClient      ClientFactory
	now            func() time.Time
}

func NewService(
	cfg *config.Config,
	connectionRepo repository.MetaConnectionRepository,
	runRepo repository.SyncRunRepository,
	logRepo repository.SyncLogRepository,
	adAccountRepo repository.AdAccountRepository,
	hierarchyRepo repository.HierarchyRepository,
	insightRepo repository.InsightRepository,
	instagramRepo repository.InstagramRepository,
) *Service {
	return &Service{
		cfg:            cfg,
		connectionRepo: connectionRepo,
		runRepo:        runRepo,
		logRepo:        logRepo,
		adAccountRepo:  adAccountRepo,
		hierarchyRepo:  hierarchyRepo,
		insightRepo:    insightRepo,
		instagramRepo:  instagramRepo,
		newClient: func(cfg *config.Config, accessToken string, runLog graphclient.RunLogger) graphclient.API {
			return graphclient.NewClient(cfg, accessToken, runLog)
		},
		now: time.Now,
	}
}

// runLogger grava a trilha de auditoria da run. Falha de escrita no banco
// não pode derrubar a sincronização: vira warning e segue.
type runLogger struct {
	logRepo repository.SyncLogRepository
	runID   string
}

func (l *runLogger) Append(entity, message string) {
	if len(entity) > 100 {
		entity = entity[:100]
	}

	logrus.WithFields(logrus.Fields{
		"sync_run_id": l.runID,
		"entity":      entity,
	}).Info(message)

	if err := l.logRepo.Append(l.runID, entity, message); err != nil {
		logrus.WithField("sync_run_id", l.runID).Warnf("Falha ao gravar log da run: %v", err)
	}
}

// Run executa a sincronização completa de um usuário. A run já deve existir
// com status pending; qualquer falha a fecha como failed. Panics também:
// Run roda em goroutine própria e nenhum payload do provedor pode derrubar
// o processo nem deixar a run sem estado terminal.
func (s *Service) Run(runID string, userID int, scope domain.SyncScope, insightsDaysOverride int) (err error) {
	rl := &runLogger{logRepo: s.logRepo, runID: runID}

	defer func() {
		if recovered := recover(); recovered != nil {
			logrus.WithField("sync_run_id", runID).Errorf("Panic na sincronização: %v", recovered)
			rl.Append("sync", fmt.Sprintf("Erro inesperado na sincronização: %v", recovered))
			s.finish(runID, domain.SyncRunStatusFailed)
			err = fmt.Errorf("panic na sincronização da run %s: %v", runID, recovered)
		}
	}()

	connection, err := s.connectionRepo.GetByUserID(userID)
	if err != nil {
		rl.Append("sync", fmt.Sprintf("Erro ao buscar conexão com a Meta: %v", err))
		s.finish(runID, domain.SyncRunStatusFailed)
		return err
	}
	if !connection.HasValidLongToken(s.now()) {
		rl.Append("sync", "Token inválido/expirado. Sincronização cancelada.")
		s.finish(runID, domain.SyncRunStatusFailed)
		return fmt.Errorf("usuário %d sem token válido da Meta", userID)
	}

	client := s.newClient(s.cfg, connection.LongAccessToken, rl)

	if err := s.runRepo.MarkRunning(runID); err != nil {
		rl.Append("sync", fmt.Sprintf("Erro ao iniciar a run: %v", err))
		s.finish(runID, domain.SyncRunStatusFailed)
		return fmt.Errorf("erro ao iniciar run %s: %w", runID, err)
	}

	scope = domain.SyncScope(strings.ToLower(strings.TrimSpace(string(scope))))
	if scope == "" {
		scope = domain.SyncScopeAll
	}
	if !scope.Valid() {
		rl.Append("sync", fmt.Sprintf("Escopo de sincronização inválido: %s.", scope))
		s.finish(runID, domain.SyncRunStatusFailed)
		return fmt.Errorf("escopo de sincronização inválido: %s", scope)
	}

	rl.Append("sync", fmt.Sprintf("Sincronização iniciada. Escopo=%s.", scope))

	if insightsDaysOverride < 1 {
		insightsDaysOverride = 0
	}
	since, until := s.buildDateWindow(insightsDaysOverride)
	if insightsDaysOverride > 0 {
		rl.Append("sync", fmt.Sprintf(
			"Janela de extração: %s até %s (últimos %d dias).",
			formatDate(since), formatDate(until), insightsDaysOverride,
		))
	} else {
		rl.Append("sync", fmt.Sprintf(
			"Janela de extração: %s até %s (max %d meses).",
			formatDate(since), formatDate(until), s.cfg.MetaSync.InsightsMonthsBack,
		))
	}

	run := &runContext{
		svc:    s,
		client: client,
		log:    rl,
		userID: userID,
		since:  since,
		until:  until,
	}

	if err := run.execute(scope); err != nil {
		logrus.WithField("sync_run_id", runID).Errorf("Sincronização com a Meta falhou: %v", err)
		rl.Append("sync", fmt.Sprintf("Erro na sincronização: %v", err))
		s.finish(runID, domain.SyncRunStatusFailed)
		return err
	}

	rl.Append("sync", "Sincronização concluída com sucesso.")
	s.finish(runID, domain.SyncRunStatusSuccess)
	return nil
}

func (s *Service) finish(runID string, status domain.SyncRunStatus) {
	if err := s.runRepo.MarkFinished(runID, status); err != nil {
		logrus.WithField("sync_run_id", runID).Warnf("Falha ao finalizar run: %v", err)
	}
}

func (s *Service) buildDateWindow(insightsDaysOverride int) (time.Time, time.Time) {
	today := utils.TruncateToDay(s.now())
	if insightsDaysOverride > 0 {
		return today.AddDate(0, 0, -insightsDaysOverride), today
	}
	return utils.SubtractMonths(today, s.cfg.MetaSync.InsightsMonthsBack), today
}

// runContext carrega o estado compartilhado entre os estágios de uma run:
// o client com o token do usuário, a janela de datas e os mapas de id
// externo para interno montados pelos estágios de hierarquia.
type runContext struct {
	svc    *Service
	client graphclient.API
	log    *runLogger
	userID int
	since  time.Time
	until  time.Time

	accounts      []*domain.AdAccount
	campaignIDs   map[string]string
	adSetIDs      map[string]string
	adSetCampaign map[string]string
	adRefs        map[string]domain.AdRef
	pageSnapshots map[string]*metadomain.PageRow
	pages         []*domain.FacebookPage
	igAccounts    []*domain.InstagramAccount
}

func (r *runContext) execute(scope domain.SyncScope) error {
	if scope.IncludesMeta() {
		if err := r.runStage("Ad Accounts", r.syncAdAccounts); err != nil {
			return err
		}
		if err := r.runStage("Campaigns", r.syncCampaigns); err != nil {
			return err
		}
		if err := r.runStage("AdSets", r.syncAdSets); err != nil {
			return err
		}
		if err := r.runStage("Ads", r.syncAds); err != nil {
			return err
		}
		if err := r.runStage("Ad Insights (somente anúncio)", r.syncAdInsights); err != nil {
			return err
		}
	}

	if scope.IncludesInstagram() {
		if err := r.runStage("Facebook Pages", r.syncFacebookPages); err != nil {
			return err
		}
		if err := r.runStage("Instagram Business + insights da conta", r.syncInstagramAccounts); err != nil {
			return err
		}
		if err := r.runStage("Mídias + insights das mídias", r.syncMediaAndInsights); err != nil {
			return err
		}
	}

	return nil
}

type stageResult map[string]int

func (r *runContext) runStage(name string, fn func() (stageResult, error)) error {
	started := time.Now()
	r.log.Append("stage", fmt.Sprintf("[%s] início", name))

	result, err := fn()
	if err != nil {
		return fmt.Errorf("estágio %s: %w", name, err)
	}

	r.log.Append("stage", fmt.Sprintf(
		"[%s] concluído em %.2fs. Resultado=%s",
		name, time.Since(started).Seconds(), formatStageResult(result),
	))
	return nil
}

func formatStageResult(result stageResult) string {
	if len(result) == 0 {
		return "{}"
	}
	keys := make([]string, 0, len(result))
	for key := range result {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", key, result[key]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
