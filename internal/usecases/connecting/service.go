package connecting

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meta-dashboard-api/infrastructure/integrator/meta/graphclient"
	"github.com/vfg2006/meta-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/meta-dashboard-api/internal/config"
	"github.com/vfg2006/meta-dashboard-api/internal/domain"
	errorcodes "github.com/vfg2006/meta-dashboard-api/pkg/apiErrors"
)

// preventiveRenewalDays cobre o caso da Meta não informar expiração do
// token: força uma renovação antes dos ~60 dias do token de longa duração.
const preventiveRenewalDays = 50

const defaultLoginScope = "public_profile,email,business_management,ads_read,pages_read_engagement,instagram_basic"

const oauthTimeout = 30 * time.Second

// ClientFactory cria o client da Graph API com o token informado.
// Substituível em teste.
type ClientFactory func(cfg *config.Config, accessToken string) graphclient.API

// ConnectionStatus é a visão do vínculo com a Meta exposta ao frontend.
// O token nunca sai daqui.
type ConnectionStatus struct {
	Connected  bool       `json:"connected"`
	MetaUserID string     `json:"meta_user_id,omitempty"`
	ExpiredAt  *time.Time `json:"expired_at,omitempty"`
}

type Connector interface {
	AuthorizationURL(state, redirectURI string) (string, error)
	CompleteConnection(userID int, code, redirectURI string) (*domain.MetaConnection, error)
	ConnectWithShortToken(userID int, shortToken string) (*domain.MetaConnection, error)
	Status(userID int) (*ConnectionStatus, error)
	Disconnect(userID int) error
}

type Service struct {
	cfg            *config.Config
	connectionRepo repository.MetaConnectionRepository
	newClient      ClientFactory
	now            func() time.Time
}

func NewService(cfg *config.Config, connectionRepo repository.MetaConnectionRepository) *Service {
	return &Service{
		cfg:            cfg,
		connectionRepo: connectionRepo,
		newClient: func(cfg *config.Config, accessToken string) graphclient.API {
			return graphclient.NewClient(cfg, accessToken, nil)
		},
		now: time.Now,
	}
}

// AuthorizationURL monta a URL do dialog de OAuth do Facebook. O state é
// gerado e validado pelo handler, que o guarda em cookie.
func (s *Service) AuthorizationURL(state, redirectURI string) (string, error) {
	if s.cfg.Meta.AppID == "" {
		return "", NewConnectError(errorcodes.ErrInternalServer, "META_APP_ID não configurado no backend")
	}
	if state == "" || redirectURI == "" {
		return "", NewConnectError(errorcodes.ErrMissingRequiredData, "state e redirect_uri são obrigatórios")
	}

	params := url.Values{}
	params.Set("client_id", s.cfg.Meta.AppID)
	params.Set("redirect_uri", redirectURI)
	params.Set("response_type", "code")
	params.Set("state", state)
	params.Set("scope", defaultLoginScope)

	version := strings.Trim(s.cfg.Meta.Version, "/")
	return fmt.Sprintf("https://www.facebook.com/%s/dialog/oauth?%s", version, params.Encode()), nil
}

// CompleteConnection fecha o fluxo de OAuth: troca o code pelo short token,
// identifica o usuário na Meta e grava o token de longa duração.
func (s *Service) CompleteConnection(userID int, code, redirectURI string) (*domain.MetaConnection, error) {
	if code == "" {
		return nil, NewConnectError(errorcodes.ErrMissingRequiredData, "Parâmetro code não encontrado no callback OAuth")
	}
	if err := s.requireAppCredentials(); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("client_id", s.cfg.Meta.AppID)
	params.Set("client_secret", s.cfg.Meta.AppSecret)
	params.Set("redirect_uri", redirectURI)
	params.Set("code", code)

	client := s.newClient(s.cfg, "")
	body, err := client.RequestWithRetry("GET", "oauth/access_token", params, nil, "meta_oauth", oauthTimeout)
	if err != nil {
		return nil, NewConnectError(errorcodes.ErrExternalService, fmt.Sprintf("Falha ao trocar code por short token no Facebook: %v", err))
	}

	payload, err := decodeTokenPayload(body)
	if err != nil {
		return nil, err
	}
	if payload.AccessToken == "" {
		return nil, NewConnectError(errorcodes.ErrExternalService, "Facebook não retornou access_token na troca do code")
	}

	return s.ConnectWithShortToken(userID, payload.AccessToken)
}

// ConnectWithShortToken troca o short token por um de longa duração e grava
// a conexão do usuário. A expiração vem da própria troca; na falta dela,
// do debug_token; em último caso aplica a janela preventiva.
func (s *Service) ConnectWithShortToken(userID int, shortToken string) (*domain.MetaConnection, error) {
	shortToken = strings.TrimSpace(shortToken)
	if shortToken == "" {
		return nil, NewConnectError(errorcodes.ErrMissingRequiredData, "short_token obrigatório para troca por long token")
	}
	if err := s.requireAppCredentials(); err != nil {
		return nil, err
	}

	metaUserID, err := s.fetchMetaUserID(shortToken)
	if err != nil {
		return nil, err
	}

	existing, err := s.connectionRepo.GetByMetaUserID(metaUserID)
	if err != nil {
		return nil, NewConnectError(errorcodes.ErrDatabaseOperation, fmt.Sprintf("Erro ao verificar vínculo existente: %v", err))
	}
	if existing != nil && existing.UserID != userID {
		return nil, NewConnectError(errorcodes.ErrInvalidRequest, "Usuário da Meta já conectado a outra conta do sistema")
	}

	longToken, expiredAt, err := s.exchangeLongToken(shortToken)
	if err != nil {
		return nil, err
	}

	connection, err := s.connectionRepo.Upsert(&domain.MetaConnection{
		UserID:          userID,
		MetaUserID:      metaUserID,
		LongAccessToken: longToken,
		ExpiredAt:       expiredAt,
	})
	if err != nil {
		return nil, NewConnectError(errorcodes.ErrDatabaseOperation, fmt.Sprintf("Erro ao salvar conexão com a Meta: %v", err))
	}

	logrus.WithFields(logrus.Fields{
		"user_id":      userID,
		"meta_user_id": metaUserID,
	}).Info("Conexão com a Meta atualizada")

	return connection, nil
}

func (s *Service) Status(userID int) (*ConnectionStatus, error) {
	connection, err := s.connectionRepo.GetByUserID(userID)
	if err != nil {
		return nil, NewConnectError(errorcodes.ErrDatabaseOperation, fmt.Sprintf("Erro ao consultar conexão: %v", err))
	}

	if connection == nil || !connection.HasValidLongToken(s.now()) {
		return &ConnectionStatus{Connected: false}, nil
	}

	return &ConnectionStatus{
		Connected:  true,
		MetaUserID: connection.MetaUserID,
		ExpiredAt:  connection.ExpiredAt,
	}, nil
}

func (s *Service) Disconnect(userID int) error {
	if err := s.connectionRepo.Delete(userID); err != nil {
		return NewConnectError(errorcodes.ErrDatabaseOperation, fmt.Sprintf("Erro ao remover conexão: %v", err))
	}
	return nil
}

func (s *Service) requireAppCredentials() error {
	if s.cfg.Meta.AppID == "" || s.cfg.Meta.AppSecret == "" {
		return NewConnectError(errorcodes.ErrInternalServer, "META_APP_ID e META_APP_SECRET precisam estar configurados no backend")
	}
	return nil
}

func (s *Service) fetchMetaUserID(shortToken string) (string, error) {
	params := url.Values{}
	params.Set("fields", "id,name")

	client := s.newClient(s.cfg, shortToken)
	body, err := client.RequestWithRetry("GET", "me", params, nil, "meta_oauth", oauthTimeout)
	if err != nil {
		return "", NewConnectError(errorcodes.ErrExternalService, fmt.Sprintf("Falha ao obter dados do usuário em /me: %v", err))
	}

	var payload struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || strings.TrimSpace(payload.ID) == "" {
		return "", NewConnectError(errorcodes.ErrExternalService, "Facebook /me não retornou id do usuário")
	}

	return strings.TrimSpace(payload.ID), nil
}

func (s *Service) exchangeLongToken(shortToken string) (string, *time.Time, error) {
	params := url.Values{}
	params.Set("grant_type", "fb_exchange_token")
	params.Set("client_id", s.cfg.Meta.AppID)
	params.Set("client_secret", s.cfg.Meta.AppSecret)
	params.Set("fb_exchange_token", shortToken)

	client := s.newClient(s.cfg, "")
	body, err := client.RequestWithRetry("GET", "oauth/access_token", params, nil, "meta_oauth", oauthTimeout)
	if err != nil {
		return "", nil, NewConnectError(errorcodes.ErrExternalService, fmt.Sprintf("Falha ao trocar short token por long token: %v", err))
	}

	payload, err := decodeTokenPayload(body)
	if err != nil {
		return "", nil, err
	}
	if payload.AccessToken == "" {
		return "", nil, NewConnectError(errorcodes.ErrExternalService, "Meta Graph API não retornou access_token na troca")
	}

	expiredAt := s.expiredAtFromPayload(payload)
	if expiredAt == nil {
		expiredAt = s.fetchExpiredAtWithDebugToken(payload.AccessToken)
	}
	if expiredAt == nil {
		preventive := s.now().Add(preventiveRenewalDays * 24 * time.Hour)
		expiredAt = &preventive
	}

	return payload.AccessToken, expiredAt, nil
}

type tokenPayload struct {
	AccessToken string          `json:"access_token"`
	ExpiresIn   json.RawMessage `json:"expires_in"`
	ExpiresAt   json.RawMessage `json:"expires_at"`
}

func decodeTokenPayload(body []byte) (*tokenPayload, error) {
	var payload tokenPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, NewConnectError(errorcodes.ErrExternalService, "Resposta inesperada da Meta na troca de token")
	}
	payload.AccessToken = strings.TrimSpace(payload.AccessToken)
	return &payload, nil
}

func (s *Service) expiredAtFromPayload(payload *tokenPayload) *time.Time {
	if seconds, ok := parsePositiveInt(payload.ExpiresIn); ok {
		expiredAt := s.now().Add(time.Duration(seconds) * time.Second)
		return &expiredAt
	}

	if unix, ok := parsePositiveInt(payload.ExpiresAt); ok {
		expiredAt := time.Unix(unix, 0).UTC()
		return &expiredAt
	}

	return nil
}

// fetchExpiredAtWithDebugToken consulta o debug_token com o token de app.
// Falha aqui não é fatal: devolve nil e o chamador aplica a janela
// preventiva.
func (s *Service) fetchExpiredAtWithDebugToken(inputToken string) *time.Time {
	params := url.Values{}
	params.Set("input_token", inputToken)
	params.Set("access_token", s.cfg.Meta.AppID+"|"+s.cfg.Meta.AppSecret)

	client := s.newClient(s.cfg, "")
	body, err := client.RequestWithRetry("GET", "debug_token", params, nil, "meta_oauth", oauthTimeout)
	if err != nil {
		logrus.Warnf("Falha ao consultar debug_token: %v", err)
		return nil
	}

	var payload struct {
		Data struct {
			ExpiresAt json.RawMessage `json:"expires_at"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil
	}

	unix, ok := parsePositiveInt(payload.Data.ExpiresAt)
	if !ok {
		return nil
	}
	expiredAt := time.Unix(unix, 0).UTC()
	return &expiredAt
}

// parsePositiveInt aceita número ou string numérica, como a Meta devolve
// expiração ora como int, ora como string.
func parsePositiveInt(raw json.RawMessage) (int64, bool) {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return 0, false
	}
	text = strings.Trim(text, `"`)

	parsed, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	value := int64(parsed)
	if value <= 0 {
		return 0, false
	}
	return value, true
}
