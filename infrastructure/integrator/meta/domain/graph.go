package metadomain

import "encoding/json"

// Tipos de transporte da Graph API compartilhados pelo cliente e pelas
// etapas de sincronização.

type Cursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

type Paging struct {
	Cursors *Cursors `json:"cursors"`
	Next    string   `json:"next"`
}

// ListEnvelope é o envelope padrão de listagem: {data: [...], paging: {...}}.
// Os itens ficam como json.RawMessage porque cada edge tem um formato próprio.
type ListEnvelope struct {
	Data   []json.RawMessage `json:"data"`
	Paging *Paging           `json:"paging"`
}

// ErrorResponse representa a estrutura de erro da API do Meta
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails contém os detalhes de erro da API do Meta
type ErrorDetails struct {
	Message      string      `json:"message"`
	Type         string      `json:"type"`
	Code         int         `json:"code"`
	ErrorSubcode int         `json:"error_subcode,omitempty"`
	FBTraceID    string      `json:"fbtrace_id"`
	ErrorData    interface{} `json:"error_data,omitempty"`
}

// BatchCall é uma chamada individual do endpoint de batch da Graph API.
type BatchCall struct {
	Method      string `json:"method"`
	RelativeURL string `json:"relative_url"`
}

// RawBatchResult é o formato bruto devolvido pelo endpoint de batch; o body
// vem como string possivelmente contendo JSON serializado.
type RawBatchResult struct {
	Code    int           `json:"code"`
	Headers []BatchHeader `json:"headers"`
	Body    string        `json:"body"`
}

type BatchHeader struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// BatchResult é o resultado normalizado de uma chamada do batch: o body é
// decodificado quando a string bruta é JSON válido, senão fica nulo e o
// conteúdo original permanece em BodyRaw.
type BatchResult struct {
	StatusCode int
	Headers    []BatchHeader
	Body       json.RawMessage
	BodyRaw    string
}

// IsSuccess informa se a chamada individual do batch retornou 2xx.
func (r BatchResult) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// ErrorMessage extrai a mensagem de erro do body de um resultado de batch,
// preferindo error.message e caindo para os primeiros 400 caracteres brutos.
func (r BatchResult) ErrorMessage() string {
	if len(r.Body) > 0 {
		var envelope ErrorResponse
		if err := json.Unmarshal(r.Body, &envelope); err == nil && envelope.Error.Message != "" {
			return envelope.Error.Message
		}
	}
	if len(r.BodyRaw) > 400 {
		return r.BodyRaw[:400]
	}
	return r.BodyRaw
}
