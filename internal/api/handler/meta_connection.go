package handler

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meta-dashboard-api/internal/config"
	"github.com/vfg2006/meta-dashboard-api/internal/domain"
	"github.com/vfg2006/meta-dashboard-api/internal/usecases/connecting"
	"github.com/vfg2006/meta-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/meta-dashboard-api/pkg/middleware"
)

// oauthStateTTL limita a validade do state: o redirect de volta do Facebook
// acontece em segundos.
const oauthStateTTL = 10 * time.Minute

type ConnectMetaRequest struct {
	ShortToken string `json:"short_token"`
}

type oauthStateClaims struct {
	UserID int `json:"uid"`
	jwt.RegisteredClaims
}

// signOAuthState embute o usuário no state do OAuth. O callback chega sem
// Authorization header, então o state assinado é o que liga o redirect do
// Facebook ao usuário que iniciou o fluxo.
func signOAuthState(userID int, secret string) (string, error) {
	claims := oauthStateClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(oauthStateTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func parseOAuthState(state, secret string) (int, error) {
	token, err := jwt.ParseWithClaims(state, &oauthStateClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(*oauthStateClaims)
	if !ok || !token.Valid {
		return 0, errors.New("state OAuth inválido")
	}
	return claims.UserID, nil
}

// MetaLoginStart redireciona o usuário autenticado para o dialog de OAuth
// do Facebook.
func MetaLoginStart(service connecting.Connector, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - MetaLoginStart")

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		state, err := signOAuthState(userClaims.UserID, cfg.SecretKey)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar state do OAuth", nil)
			return
		}

		authURL, err := service.AuthorizationURL(state, cfg.Meta.OAuthRedirectURL)
		if err != nil {
			writeConnectError(w, err)
			return
		}

		http.Redirect(w, r, authURL, http.StatusFound)
	}
}

// MetaLoginCallback fecha o fluxo de OAuth e redireciona de volta ao
// frontend com fb_connected=1 ou fb_error.
func MetaLoginCallback(service connecting.Connector, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - MetaLoginCallback")

		userID, err := parseOAuthState(r.URL.Query().Get("state"), cfg.SecretKey)
		if err != nil {
			redirectWithOAuthResult(w, r, cfg, false, "State OAuth inválido ou expirado")
			return
		}

		code := r.URL.Query().Get("code")
		if code == "" {
			detail := r.URL.Query().Get("error_description")
			if detail == "" {
				detail = "Parâmetro code não encontrado no callback OAuth"
			}
			redirectWithOAuthResult(w, r, cfg, false, detail)
			return
		}

		if _, err := service.CompleteConnection(userID, code, cfg.Meta.OAuthRedirectURL); err != nil {
			logrus.WithField("user_id", userID).Errorf("Falha ao concluir conexão com a Meta: %v", err)
			redirectWithOAuthResult(w, r, cfg, false, err.Error())
			return
		}

		redirectWithOAuthResult(w, r, cfg, true, "")
	}
}

func redirectWithOAuthResult(w http.ResponseWriter, r *http.Request, cfg *config.Config, connected bool, errorMessage string) {
	base := cfg.Meta.FrontendURL
	if base == "" {
		if connected {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "FRONTEND_CONNECTION_URL não configurado para redirecionamento OAuth", nil)
			return
		}
		apiErrors.WriteError(w, apiErrors.ErrExternalService, errorMessage, nil)
		return
	}

	parsed, err := url.Parse(base)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "FRONTEND_CONNECTION_URL inválida", nil)
		return
	}

	query := parsed.Query()
	if connected {
		query.Set("fb_connected", "1")
	} else {
		if errorMessage == "" {
			errorMessage = "oauth_failed"
		}
		query.Set("fb_error", errorMessage)
	}
	parsed.RawQuery = query.Encode()

	http.Redirect(w, r, parsed.String(), http.StatusFound)
}

// ConnectMeta troca um short token obtido pelo frontend por um token de
// longa duração e grava a conexão do usuário.
func ConnectMeta(service connecting.Connector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ConnectMeta")

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req ConnectMetaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		connection, err := service.ConnectWithShortToken(userClaims.UserID, req.ShortToken)
		if err != nil {
			writeConnectError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(connection)
	}
}

// GetMetaConnection retorna o status da conexão do usuário com a Meta.
func GetMetaConnection(service connecting.Connector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		status, err := service.Status(userClaims.UserID)
		if err != nil {
			writeConnectError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(status)
	}
}

// DisconnectMeta remove a conexão do usuário com a Meta.
func DisconnectMeta(service connecting.Connector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - DisconnectMeta")

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		if err := service.Disconnect(userClaims.UserID); err != nil {
			writeConnectError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func writeConnectError(w http.ResponseWriter, err error) {
	var connectErr *connecting.ConnectError
	if errors.As(err, &connectErr) {
		apiErrors.WriteError(w, connectErr.Code, connectErr.Message, nil)
		return
	}
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao processar conexão com a Meta", nil)
}
