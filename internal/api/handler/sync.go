package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meta-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/meta-dashboard-api/internal/domain"
	"github.com/vfg2006/meta-dashboard-api/internal/usecases/syncing"
	"github.com/vfg2006/meta-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/meta-dashboard-api/pkg/middleware"
)

// pollIntervalSeconds é a cadência sugerida ao frontend para consultar o
// progresso de uma run.
const pollIntervalSeconds = 2

const (
	defaultLogPageSize = 200
	maxLogPageSize     = 1000
)

type StartSyncRequest struct {
	Scope                string `json:"scope"`
	InsightsDaysOverride int    `json:"insights_days_override"`
}

type StartSyncResponse struct {
	RunID               string `json:"run_id"`
	Status              string `json:"status"`
	PollIntervalSeconds int    `json:"poll_interval_seconds"`
}

type SyncLogsResponse struct {
	RunID       string               `json:"run_id"`
	Status      domain.SyncRunStatus `json:"status"`
	Logs        []*domain.SyncLog    `json:"logs"`
	NextSinceID int64                `json:"next_since_id"`
}

// StartSync cria a run e dispara a sincronização em background. A resposta
// volta imediatamente com o id para acompanhamento.
func StartSync(
	runRepo repository.SyncRunRepository,
	logRepo repository.SyncLogRepository,
	syncer syncing.Syncer,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - StartSync")

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req StartSyncRequest
		if r.Body != nil {
			// Corpo vazio é aceito: escopo all e janela padrão.
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
				return
			}
		}

		scope := domain.SyncScope(req.Scope)

		run, err := runRepo.Create(userClaims.UserID)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao criar run de sincronização", nil)
			return
		}

		if err := logRepo.Append(run.ID, "sync", "Sincronização solicitada por "+userClaims.UserEmail+"."); err != nil {
			logrus.WithField("sync_run_id", run.ID).Warnf("Falha ao gravar log da run: %v", err)
		}

		go func() {
			if err := syncer.Run(run.ID, userClaims.UserID, scope, req.InsightsDaysOverride); err != nil {
				logrus.WithField("sync_run_id", run.ID).Errorf("Sincronização em background falhou: %v", err)
			}
		}()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(StartSyncResponse{
			RunID:               run.ID,
			Status:              string(run.Status),
			PollIntervalSeconds: pollIntervalSeconds,
		})
	}
}

// GetSyncRun retorna o estado atual de uma run do próprio usuário.
func GetSyncRun(runRepo repository.SyncRunRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		run, ok := loadOwnedRun(w, r, runRepo)
		if !ok {
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(run)
	}
}

// GetSyncRunLogs retorna os logs da run de forma incremental: o cliente
// repete a chamada passando o next_since_id da resposta anterior.
func GetSyncRunLogs(
	runRepo repository.SyncRunRepository,
	logRepo repository.SyncLogRepository,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		run, ok := loadOwnedRun(w, r, runRepo)
		if !ok {
			return
		}

		sinceID, err := parseOptionalInt64(r.URL.Query().Get("since_id"), 0)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "since_id inválido", nil)
			return
		}

		limit64, err := parseOptionalInt64(r.URL.Query().Get("limit"), defaultLogPageSize)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "limit inválido", nil)
			return
		}
		limit := int(limit64)
		if limit < 1 {
			limit = 1
		}
		if limit > maxLogPageSize {
			limit = maxLogPageSize
		}

		logs, err := logRepo.ListSince(run.ID, sinceID, limit)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar logs da run", nil)
			return
		}

		nextSinceID := sinceID
		if len(logs) > 0 {
			nextSinceID = logs[len(logs)-1].ID
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(SyncLogsResponse{
			RunID:       run.ID,
			Status:      run.Status,
			Logs:        logs,
			NextSinceID: nextSinceID,
		})
	}
}

// loadOwnedRun resolve a run da URL e garante que pertence ao usuário
// autenticado. Administradores enxergam qualquer run.
func loadOwnedRun(w http.ResponseWriter, r *http.Request, runRepo repository.SyncRunRepository) (*domain.SyncRun, bool) {
	userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
	if !ok {
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
		return nil, false
	}

	runID := httprouter.ParamsFromContext(r.Context()).ByName("id")
	if runID == "" {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da run não fornecido", nil)
		return nil, false
	}

	run, err := runRepo.GetByID(runID)
	if err != nil {
		logrus.Error(err)
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar run", nil)
		return nil, false
	}
	if run == nil {
		apiErrors.WriteError(w, apiErrors.ErrNotFound, "Run não encontrada", nil)
		return nil, false
	}

	if run.UserID != userClaims.UserID && userClaims.UserRoleID != middleware.RoleAdmin {
		apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Run pertence a outro usuário", nil)
		return nil, false
	}

	return run, true
}

func parseOptionalInt64(raw string, fallback int64) (int64, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}
