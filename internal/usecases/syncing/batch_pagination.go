package syncing

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	metadomain "github.com/vfg2006/meta-dashboard-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/meta-dashboard-api/infrastructure/integrator/meta/graphclient"
)

// adAccountEdgePath monta o caminho de um edge de conta de anúncios. A Graph
// API exige o prefixo act_, presente ou não no id recebido.
func adAccountEdgePath(adAccountID, edge string) (string, error) {
	account := strings.TrimSpace(adAccountID)
	if account == "" {
		return "", fmt.Errorf("ad_account_id é obrigatório para montar o edge %s", edge)
	}
	if !strings.HasPrefix(account, "act_") {
		account = "act_" + account
	}
	return account + "/" + edge, nil
}

// toBatchRelativeURL converte um caminho ou URL absoluta em relative_url de
// batch: sem host, sem prefixo de versão e sem access_token.
func toBatchRelativeURL(pathOrURL string, params url.Values, graphVersion string) string {
	candidate := strings.TrimSpace(pathOrURL)
	if candidate == "" {
		return ""
	}

	if strings.HasPrefix(candidate, "http://") || strings.HasPrefix(candidate, "https://") {
		parsed, err := url.Parse(candidate)
		if err != nil {
			return ""
		}
		relativePath := strings.TrimPrefix(parsed.Path, "/")
		versionPrefix := strings.Trim(graphVersion, "/")
		if versionPrefix != "" {
			relativePath = strings.TrimPrefix(relativePath, versionPrefix+"/")
		}
		query := parsed.Query()
		query.Del("access_token")
		if encoded := query.Encode(); encoded != "" {
			return relativePath + "?" + encoded
		}
		return relativePath
	}

	relativePath := strings.TrimPrefix(candidate, "/")
	if len(params) == 0 {
		return relativePath
	}
	return relativePath + "?" + params.Encode()
}

// nextPageRelativeURL resolve a próxima página de um body paginado dentro de
// um batch: usa paging.next quando presente, senão reaplica a query atual
// trocando o cursor after.
func nextPageRelativeURL(currentRelativeURL string, paging *metadomain.Paging, graphVersion string) string {
	if paging == nil {
		return ""
	}

	if paging.Next != "" {
		return toBatchRelativeURL(paging.Next, nil, graphVersion)
	}

	if paging.Cursors == nil || paging.Cursors.After == "" {
		return ""
	}

	parsed, err := url.Parse("/" + strings.TrimPrefix(currentRelativeURL, "/"))
	if err != nil {
		return ""
	}
	basePath := strings.TrimPrefix(parsed.Path, "/")
	query := parsed.Query()
	query.Set("after", paging.Cursors.After)
	if encoded := query.Encode(); encoded != "" {
		return basePath + "?" + encoded
	}
	return basePath
}

// batchPageRequest é uma chamada de batch com o contexto necessário para
// re-enfileirar a próxima página e atribuir o resultado à conta de origem.
type batchPageRequest struct {
	relativeURL     string
	accountMetaID   string
	accountInternal string
}

// iterBatchPaginatedRequests executa as chamadas em batch e entrega cada
// resultado a fn. Respostas paginadas voltam para a fila com a relative_url
// da próxima página, então uma conta pode aparecer mais de uma vez.
func iterBatchPaginatedRequests(
	client graphclient.API,
	requests []batchPageRequest,
	entity string,
	batchSize int,
	graphVersion string,
	fn func(request batchPageRequest, result metadomain.BatchResult) error,
) error {
	pending := make([]batchPageRequest, len(requests))
	copy(pending, requests)

	for len(pending) > 0 {
		chunkSize := batchSize
		if chunkSize > len(pending) {
			chunkSize = len(pending)
		}
		currentChunk := pending[:chunkSize]
		pending = pending[chunkSize:]

		calls := make([]metadomain.BatchCall, 0, len(currentChunk))
		for _, request := range currentChunk {
			calls = append(calls, metadomain.BatchCall{Method: "GET", RelativeURL: request.relativeURL})
		}

		results, err := client.BatchRequest(calls, entity, batchSize, false)
		if err != nil {
			return err
		}

		// O tamanho da resposta é controlado pelo provedor; resultados além
		// das chamadas enviadas são descartados.
		if len(results) > len(currentChunk) {
			results = results[:len(currentChunk)]
		}

		for idx, result := range results {
			request := currentChunk[idx]
			if result.IsSuccess() && len(result.Body) > 0 {
				var envelope struct {
					Paging *metadomain.Paging `json:"paging"`
				}
				if err := json.Unmarshal(result.Body, &envelope); err == nil {
					if next := nextPageRelativeURL(request.relativeURL, envelope.Paging, graphVersion); next != "" {
						nextRequest := request
						nextRequest.relativeURL = next
						pending = append(pending, nextRequest)
					}
				}
			}
			if err := fn(request, result); err != nil {
				return err
			}
		}
	}

	return nil
}
