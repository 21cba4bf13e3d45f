package domain

import "time"

type SyncRunStatus string

const (
	SyncRunStatusPending SyncRunStatus = "pending"
	SyncRunStatusRunning SyncRunStatus = "running"
	SyncRunStatusSuccess SyncRunStatus = "success"
	SyncRunStatusFailed  SyncRunStatus = "failed"
)

// IsFinished informa se a run chegou a um estado terminal.
func (s SyncRunStatus) IsFinished() bool {
	return s == SyncRunStatusSuccess || s == SyncRunStatusFailed
}

type SyncScope string

const (
	SyncScopeAll       SyncScope = "all"
	SyncScopeMeta      SyncScope = "meta"
	SyncScopeInstagram SyncScope = "instagram"
)

func (s SyncScope) Valid() bool {
	switch s {
	case SyncScopeAll, SyncScopeMeta, SyncScopeInstagram:
		return true
	}
	return false
}

// IncludesMeta informa se o escopo cobre a hierarquia de anúncios.
func (s SyncScope) IncludesMeta() bool {
	return s == SyncScopeAll || s == SyncScopeMeta
}

// IncludesInstagram informa se o escopo cobre páginas, contas e mídias.
func (s SyncScope) IncludesInstagram() bool {
	return s == SyncScopeAll || s == SyncScopeInstagram
}

// SyncRun registra uma execução de sincronização. Transições de status:
// pending -> running -> {success, failed}, cada uma exatamente uma vez.
type SyncRun struct {
	ID         string        `json:"id"`
	UserID     int           `json:"user_id"`
	Status     SyncRunStatus `json:"status"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt *time.Time    `json:"finished_at"`
}

// SyncLog é uma linha da trilha de auditoria de uma run. Append-only: o id é
// atribuído pelo banco em ordem crescente e os consumidores leem por faixa
// (id > since_id).
type SyncLog struct {
	ID        int64     `json:"id"`
	RunID     string    `json:"run_id"`
	Entity    string    `json:"entity"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
