package graphclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/meta-dashboard-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/meta-dashboard-api/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Status codes da Graph API que valem nova tentativa; qualquer outro não-2xx
// falha imediatamente.
var retriableStatusCodes = map[int]struct{}{
	http.StatusRequestTimeout:      {},
	http.StatusTooManyRequests:     {},
	http.StatusInternalServerError: {},
	http.StatusBadGateway:          {},
	http.StatusServiceUnavailable:  {},
	http.StatusGatewayTimeout:      {},
}

// RunLogger recebe as linhas de log estruturado de uma run. A implementação
// é responsável por nunca propagar falha de escrita para o cliente.
type RunLogger interface {
	Append(entity, message string)
}

// API é a superfície do cliente consumida pelo orquestrador de sincronização.
type API interface {
	RequestWithRetry(method, pathOrURL string, params url.Values, form url.Values, entity string, timeout time.Duration) ([]byte, error)
	Paginate(pathOrURL string, params url.Values, entity string, pageLimit int, fn func(item []byte) error) error
	BatchRequest(calls []metadomain.BatchCall, entity string, batchSize int, includeHeaders bool) ([]metadomain.BatchResult, error)
}

// Client fala com a Graph API com retry, backoff exponencial, paginação e
// batch. Uma instância fica amarrada a um access token e a uma run.
type Client struct {
	accessToken  string
	baseURL      string
	graphVersion string
	requestPause time.Duration
	timeout      time.Duration
	maxRetries   int
	batchSize    int
	httpClient   *http.Client
	runLog       RunLogger

	// sleep é substituível em teste para não esperar o backoff real.
	sleep func(time.Duration)
}

func NewClient(cfg *config.Config, accessToken string, runLog RunLogger) *Client {
	maxRetries := cfg.MetaSync.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}
	batchSize := cfg.MetaSync.BatchSize
	if batchSize < 1 {
		batchSize = 50
	}
	timeout := time.Duration(cfg.MetaSync.RequestTimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		accessToken:  accessToken,
		baseURL:      strings.TrimRight(cfg.Meta.BaseURL, "/"),
		graphVersion: strings.Trim(cfg.Meta.Version, "/"),
		requestPause: time.Duration(cfg.MetaSync.RequestPauseMillis) * time.Millisecond,
		timeout:      timeout,
		maxRetries:   maxRetries,
		batchSize:    batchSize,
		httpClient:   &http.Client{},
		runLog:       runLog,
		sleep:        time.Sleep,
	}
}

// RequestWithRetry executa uma chamada com até maxRetries tentativas.
// Falhas de rede esperam 2^tentativa segundos antes de repetir; respostas
// não-2xx só repetem para o conjunto fixo de status codes. Após sucesso há
// uma pausa fixa para respeitar o rate limit do provedor.
func (c *Client) RequestWithRetry(
	method string,
	pathOrURL string,
	params url.Values,
	form url.Values,
	entity string,
	timeout time.Duration,
) ([]byte, error) {
	method = strings.ToUpper(method)
	fullURL := c.buildURL(pathOrURL)

	requestParams := cloneValues(params)
	if requestParams.Get("access_token") == "" && !strings.Contains(fullURL, "access_token=") {
		requestParams.Set("access_token", c.accessToken)
	}
	if timeout <= 0 {
		timeout = c.timeout
	}

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		c.log(entity, fmt.Sprintf("Tentativa %d/%d: %s %s", attempt, c.maxRetries, method, c.redactURL(fullURL)))

		body, statusCode, err := c.do(method, fullURL, requestParams, form, timeout)
		if err != nil {
			if attempt >= c.maxRetries {
				c.log(entity, fmt.Sprintf("Requisição falhou após %d tentativas: %v", c.maxRetries, err))
				return nil, &ClientError{Kind: KindNetwork, Message: err.Error(), Err: err}
			}

			wait := backoffDuration(attempt)
			c.log(entity, fmt.Sprintf("Erro de rede: %v. Nova tentativa em %s.", err, wait))
			c.sleep(wait)
			continue
		}

		if statusCode >= 200 && statusCode < 300 {
			c.log(entity, fmt.Sprintf("Requisição concluída com status=%d.", statusCode))
			if c.requestPause > 0 {
				c.sleep(c.requestPause)
			}
			return body, nil
		}

		message := extractErrorMessage(body)
		if _, retriable := retriableStatusCodes[statusCode]; retriable && attempt < c.maxRetries {
			wait := backoffDuration(attempt)
			c.log(entity, fmt.Sprintf("Erro status=%d: %s. Nova tentativa em %s.", statusCode, message, wait))
			c.sleep(wait)
			continue
		}

		c.log(entity, fmt.Sprintf("Requisição falhou com status=%d: %s", statusCode, message))
		return nil, &ClientError{Kind: KindProvider, StatusCode: statusCode, Message: message}
	}

	return nil, &ClientError{Kind: KindNetwork, Message: "fluxo de retry terminou de forma inesperada"}
}

func (c *Client) do(method, fullURL string, params url.Values, form url.Values, timeout time.Duration) ([]byte, int, error) {
	parsed, err := url.Parse(fullURL)
	if err != nil {
		return nil, 0, err
	}

	query := parsed.Query()
	for key, values := range params {
		query[key] = values
	}
	parsed.RawQuery = query.Encode()

	var bodyReader io.Reader
	if form != nil {
		bodyReader = strings.NewReader(form.Encode())
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, parsed.String(), bodyReader)
	if err != nil {
		return nil, 0, err
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}

	return body, resp.StatusCode, nil
}

// buildURL monta a URL absoluta a partir de um caminho relativo; URLs já
// absolutas (paging.next) passam sem alteração.
func (c *Client) buildURL(pathOrURL string) string {
	candidate := strings.TrimSpace(pathOrURL)
	if strings.HasPrefix(candidate, "http://") || strings.HasPrefix(candidate, "https://") {
		return candidate
	}

	relative := strings.TrimLeft(candidate, "/")
	if relative != "" {
		return fmt.Sprintf("%s/%s/%s", c.baseURL, c.graphVersion, relative)
	}
	return fmt.Sprintf("%s/%s", c.baseURL, c.graphVersion)
}

func (c *Client) redactURL(rawURL string) string {
	if c.accessToken != "" && strings.Contains(rawURL, c.accessToken) {
		return strings.ReplaceAll(rawURL, c.accessToken, "***")
	}
	return rawURL
}

func (c *Client) log(entity, message string) {
	if c.runLog != nil {
		c.runLog.Append(entity, message)
		return
	}
	logrus.WithField("entity", entity).Info(message)
}

// backoffDuration segue o padrão exponencial exigido: 2s, 4s, 8s...
func backoffDuration(attempt int) time.Duration {
	return time.Duration(1<<uint(attempt)) * time.Second
}

// extractErrorMessage prefere error.message do envelope de erro da Meta e
// cai para os primeiros 400 caracteres do corpo bruto.
func extractErrorMessage(body []byte) string {
	var envelope metadomain.ErrorResponse
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}
	if len(body) > 400 {
		return string(body[:400])
	}
	if len(body) > 0 {
		return string(body)
	}
	return "erro desconhecido"
}

func cloneValues(values url.Values) url.Values {
	cloned := url.Values{}
	for key, vs := range values {
		for _, v := range vs {
			cloned.Add(key, v)
		}
	}
	return cloned
}
