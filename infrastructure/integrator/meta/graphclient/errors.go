package graphclient

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	// KindNetwork indica falha de transporte (conexão, timeout). Retriável
	// até o limite de tentativas.
	KindNetwork ErrorKind = "network"
	// KindProvider indica resposta não-2xx da Graph API. Retriável apenas
	// para o conjunto fixo de status codes.
	KindProvider ErrorKind = "provider"
	// KindParse indica corpo de resposta com formato inesperado.
	KindParse ErrorKind = "parse"
)

// ClientError é o erro tipado do cliente da Graph API.
type ClientError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *ClientError) Error() string {
	switch e.Kind {
	case KindProvider:
		return fmt.Sprintf("erro da Graph API (%d): %s", e.StatusCode, e.Message)
	case KindParse:
		return fmt.Sprintf("resposta inesperada da Graph API: %s", e.Message)
	default:
		return fmt.Sprintf("erro de rede ao chamar a Graph API: %s", e.Message)
	}
}

func (e *ClientError) Unwrap() error {
	return e.Err
}

// IsNetworkError informa se err é uma falha de transporte do cliente.
func IsNetworkError(err error) bool {
	return isKind(err, KindNetwork)
}

// IsProviderError informa se err é uma resposta não-2xx da Graph API.
func IsProviderError(err error) bool {
	return isKind(err, KindProvider)
}

func isKind(err error, kind ErrorKind) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Kind == kind
	}
	return false
}
