package connecting

// ConnectError carrega o código de erro da API junto da mensagem, no mesmo
// formato dos erros de autenticação.
type ConnectError struct {
	Code    string
	Message string
}

func (e *ConnectError) Error() string {
	return e.Message
}

func NewConnectError(code, message string) *ConnectError {
	return &ConnectError{Code: code, Message: message}
}
