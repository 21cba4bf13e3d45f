package graphclient

import (
	"fmt"
	"net/http"
	"net/url"

	metadomain "github.com/vfg2006/meta-dashboard-api/infrastructure/integrator/meta/domain"
)

// BatchRequest envia as chamadas em chunks pelo endpoint de batch da Graph
// API e devolve os resultados normalizados na mesma ordem da entrada. Uma
// falha em qualquer chunk aborta a operação inteira; resultados parciais de
// chunks anteriores não são devolvidos.
func (c *Client) BatchRequest(
	calls []metadomain.BatchCall,
	entity string,
	batchSize int,
	includeHeaders bool,
) ([]metadomain.BatchResult, error) {
	if len(calls) == 0 {
		c.log(entity, "batch_request chamado com 0 calls.")
		return []metadomain.BatchResult{}, nil
	}

	size := batchSize
	if size < 1 {
		size = c.batchSize
	}

	totalChunks := (len(calls) + size - 1) / size
	results := make([]metadomain.BatchResult, 0, len(calls))

	for start, chunkIndex := 0, 1; start < len(calls); start, chunkIndex = start+size, chunkIndex+1 {
		end := start + size
		if end > len(calls) {
			end = len(calls)
		}
		chunk := calls[start:end]

		c.log(entity, fmt.Sprintf("Chunk %d/%d do batch com %d calls (chunk_size=%d).", chunkIndex, totalChunks, len(chunk), size))

		payload, err := json.Marshal(chunk)
		if err != nil {
			return nil, &ClientError{Kind: KindParse, Message: err.Error(), Err: err}
		}

		form := url.Values{}
		form.Set("batch", string(payload))
		form.Set("include_headers", fmt.Sprintf("%t", includeHeaders))

		body, err := c.RequestWithRetry(http.MethodPost, "/", nil, form, entity, 0)
		if err != nil {
			c.log(entity, fmt.Sprintf("Chunk %d/%d do batch falhou: %v", chunkIndex, totalChunks, err))
			return nil, err
		}

		var rawResults []metadomain.RawBatchResult
		if err := json.Unmarshal(body, &rawResults); err != nil {
			c.log(entity, "Formato inesperado na resposta do batch (esperava lista).")
			return nil, &ClientError{Kind: KindParse, Message: "resposta do batch não é uma lista", Err: err}
		}

		normalized := normalizeBatchResults(rawResults)
		errorCount := 0
		for _, result := range normalized {
			if result.StatusCode >= 400 {
				errorCount++
			}
		}
		c.log(entity, fmt.Sprintf("Chunk %d concluído com %d resultados e %d não-2xx.", chunkIndex, len(normalized), errorCount))

		results = append(results, normalized...)
	}

	c.log(entity, fmt.Sprintf("Batch finalizado com %d resultados no total.", len(results)))
	return results, nil
}

// normalizeBatchResults converte os resultados brutos: o body vira JSON
// decodificado quando a string é JSON válido, senão fica nulo e o texto
// original permanece em BodyRaw. Entradas nulas (chamadas que expiraram no
// lado da Meta) viram status 500.
func normalizeBatchResults(rawResults []metadomain.RawBatchResult) []metadomain.BatchResult {
	normalized := make([]metadomain.BatchResult, 0, len(rawResults))
	for _, raw := range rawResults {
		statusCode := raw.Code
		if statusCode == 0 {
			statusCode = http.StatusInternalServerError
		}

		result := metadomain.BatchResult{
			StatusCode: statusCode,
			Headers:    raw.Headers,
			BodyRaw:    raw.Body,
		}
		if raw.Body != "" && json.Valid([]byte(raw.Body)) {
			result.Body = []byte(raw.Body)
		}

		normalized = append(normalized, result)
	}
	return normalized
}
