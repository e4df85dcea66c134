package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Códigos de erro da API
const (
	// Erros de autenticação (1000-1999)
	ErrInvalidToken          = "AUTH_006" // Token inválido
	ErrExpiredToken          = "AUTH_007" // Token expirado
	ErrInsufficientPrivilege = "AUTH_008" // Privilégios insuficientes

	// Erros de validação (2000-2999)
	ErrInvalidRequest        = "VAL_001" // Requisição inválida
	ErrMissingRequiredData   = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat         = "VAL_003" // Formato de dados inválido
	ErrInvalidTransition     = "VAL_004" // Transição de status não permitida
	ErrNoApprovedCreatives   = "VAL_005" // Campanha sem criativos aprovados
	ErrMissingTargeting      = "VAL_006" // Campanha sem segmentação ativa
	ErrInvalidBudget         = "VAL_007" // Orçamento ou alocação inválidos
	ErrInvalidDateRange      = "VAL_008" // Período inválido
	ErrUnsupportedPlatform   = "VAL_009" // Plataforma não suportada
	ErrCampaignNotFound      = "CMP_001" // Campanha não encontrada
	ErrCampaignLaunchFailure = "CMP_002" // Nenhuma plataforma lançou a campanha
	ErrRouteNotFound         = "API_001" // Rota inexistente
	ErrMethodNotAllowed      = "API_002" // Método não suportado pela rota

	// Erros do servidor (5000-5999)
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
	ErrExternalService   = "SRV_003" // Erro em serviço externo
	ErrCommunication     = "SRV_004" // Erro de comunicação
	ErrJobAlreadyRunning = "SRV_005" // Rotina agendada já em execução
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrExpiredToken:          http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrMissingRequiredData:   http.StatusBadRequest,
	ErrInvalidFormat:         http.StatusBadRequest,
	ErrInvalidTransition:     http.StatusConflict,
	ErrNoApprovedCreatives:   http.StatusBadRequest,
	ErrMissingTargeting:      http.StatusBadRequest,
	ErrInvalidBudget:         http.StatusBadRequest,
	ErrInvalidDateRange:      http.StatusBadRequest,
	ErrUnsupportedPlatform:   http.StatusBadRequest,
	ErrCampaignNotFound:      http.StatusNotFound,
	ErrCampaignLaunchFailure: http.StatusUnprocessableEntity,
	ErrRouteNotFound:         http.StatusNotFound,
	ErrMethodNotAllowed:      http.StatusMethodNotAllowed,
	ErrInternalServer:        http.StatusInternalServerError,
	ErrDatabaseOperation:     http.StatusInternalServerError,
	ErrExternalService:       http.StatusBadGateway,
	ErrCommunication:         http.StatusServiceUnavailable,
	ErrJobAlreadyRunning:     http.StatusConflict,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// StatusFor devolve o status HTTP de um código de erro
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	json.NewEncoder(w).Encode(apiErr)
}

// FromError cria um erro de API a partir de um erro Go
// Útil para quando você quer envolver um erro existente em um erro de API
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "Erro desconhecido",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}
