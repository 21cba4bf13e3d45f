package graphclient

import (
	"fmt"
	"net/http"
	"net/url"

	metadomain "github.com/vfg2006/meta-dashboard-api/infrastructure/integrator/meta/domain"
)

// Paginate percorre todas as páginas de um edge de listagem e entrega cada
// item bruto a fn. A próxima página vem de paging.next (URL absoluta,
// seguida sem os params originais) ou do cursor after (mesclado nos params
// originais). Um erro do cliente ou de fn interrompe a iteração na hora;
// pageLimit <= 0 significa sem limite.
func (c *Client) Paginate(
	pathOrURL string,
	params url.Values,
	entity string,
	pageLimit int,
	fn func(item []byte) error,
) error {
	currentPath := pathOrURL
	currentParams := cloneValues(params)
	page := 1

	for currentPath != "" {
		if pageLimit > 0 && page > pageLimit {
			c.log(entity, fmt.Sprintf("Paginação interrompida por page_limit=%d.", pageLimit))
			return nil
		}

		c.log(entity, fmt.Sprintf("Buscando página %d.", page))
		body, err := c.RequestWithRetry(http.MethodGet, currentPath, currentParams, nil, entity, 0)
		if err != nil {
			c.log(entity, fmt.Sprintf("Erro na paginação (página %d): %v", page, err))
			return err
		}

		var envelope metadomain.ListEnvelope
		if unmarshalErr := json.Unmarshal(body, &envelope); unmarshalErr != nil {
			envelope = metadomain.ListEnvelope{}
		}

		c.log(entity, fmt.Sprintf("Página %d recebeu %d itens.", page, len(envelope.Data)))
		for _, item := range envelope.Data {
			if err := fn(item); err != nil {
				return err
			}
		}

		nextURL := ""
		afterCursor := ""
		if envelope.Paging != nil {
			nextURL = envelope.Paging.Next
			if envelope.Paging.Cursors != nil {
				afterCursor = envelope.Paging.Cursors.After
			}
			if afterCursor == "" && nextURL != "" {
				afterCursor = afterCursorFromURL(nextURL)
			}
		}

		if nextURL != "" {
			c.log(entity, fmt.Sprintf("Próxima página via paging.next (after=%s).", afterCursor))
			currentPath = nextURL
			currentParams = url.Values{}
			page++
			continue
		}

		if afterCursor != "" {
			c.log(entity, fmt.Sprintf("Próxima página via cursor after=%s.", afterCursor))
			currentPath = pathOrURL
			currentParams = cloneValues(params)
			currentParams.Set("after", afterCursor)
			page++
			continue
		}

		c.log(entity, fmt.Sprintf("Paginação concluída na página %d.", page))
		return nil
	}

	return nil
}

func afterCursorFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return parsed.Query().Get("after")
}
