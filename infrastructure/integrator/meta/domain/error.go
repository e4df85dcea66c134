package metadomain

import "fmt"

// ErrorResponse representa a estrutura de erro da API do Meta
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails contém os detalhes de erro da API do Meta
type ErrorDetails struct {
	Message      string `json:"message"`
	Type         string `json:"type"`
	Code         int    `json:"code"`
	ErrorSubcode int    `json:"error_subcode,omitempty"`
	FBTraceID    string `json:"fbtrace_id"`
}

// IsTokenExpired verifica se o erro é de token expirado
func (e *ErrorResponse) IsTokenExpired() bool {
	// O código 190 representa "token expirado" nas respostas da API do Meta
	// Possíveis subcódigos relacionados a problemas de token: 460, 463, 467
	return e.Error.Code == 190 ||
		(e.Error.Type == "OAuthException" && (e.Error.ErrorSubcode == 460 || e.Error.ErrorSubcode == 463 || e.Error.ErrorSubcode == 467))
}

// IsRateLimited indica limite de chamadas da conta ou do app
func (e *ErrorResponse) IsRateLimited() bool {
	switch e.Error.Code {
	case 4, 17, 32, 613, 80004:
		return true
	}
	return false
}

func (e *ErrorResponse) String() string {
	return fmt.Sprintf("meta: %s (code=%d subcode=%d trace=%s)", e.Error.Message, e.Error.Code, e.Error.ErrorSubcode, e.Error.FBTraceID)
}
