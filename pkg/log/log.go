package log

import (
	"context"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Fields é um alias para logrus.Fields
type Fields logrus.Fields

// Logger é uma interface que define os métodos de log
type Logger interface {
	WithField(key string, value interface{}) Logger
	WithFields(fields Fields) Logger
	WithError(err error) Logger
	WithContext(ctx context.Context) Logger

	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
}

// contextKey para armazenar o ID de correlação no contexto
type contextKey string

// CorrelationIDKey é a chave para armazenar o ID de correlação no contexto
const CorrelationIDKey contextKey = "correlation_id"
const correlationIDField = "correlation_id"

// logger implementa a interface Logger e encapsula logrus
type logger struct {
	entry *logrus.Entry
}

// L é uma instância global de Logger para uso direto
var L Logger = &logger{entry: logrus.NewEntry(logrus.StandardLogger())}

// IsDevelopment retorna verdadeiro se estamos em ambiente de desenvolvimento
func IsDevelopment() bool {
	env := os.Getenv("APP_ENV")
	return env == "" || env == "development" || env == "dev"
}

// developmentFields são os campos mantidos em desenvolvimento. O resto é omitido para logs mais limpos.
var developmentFields = map[string]bool{
	correlationIDField:     true,
	"method":               true,
	"path":                 true,
	"status_code":          true,
	"duration_ms":          true,
	"error":                true,
	"job":                  true,
	"platform":             true,
	"campaign_id":          true,
	"platform_campaign_id": true,
}

func keepInDevelopment(key string) bool {
	return developmentFields[key] || strings.HasPrefix(key, "user_") || strings.HasPrefix(key, "tenant_")
}

// WithField adiciona um único campo ao Logger
func (l *logger) WithField(key string, value interface{}) Logger {
	if IsDevelopment() && !keepInDevelopment(key) {
		return l
	}
	return &logger{entry: l.entry.WithField(key, value)}
}

// WithFields adiciona múltiplos campos ao Logger
func (l *logger) WithFields(fields Fields) Logger {
	if !IsDevelopment() {
		return &logger{entry: l.entry.WithFields(logrus.Fields(fields))}
	}

	relevantFields := make(logrus.Fields, len(fields))
	for k, v := range fields {
		if keepInDevelopment(k) {
			relevantFields[k] = v
		}
	}
	if len(relevantFields) == 0 {
		return l
	}
	return &logger{entry: l.entry.WithFields(relevantFields)}
}

// WithError adiciona um erro ao Logger
func (l *logger) WithError(err error) Logger {
	return &logger{entry: l.entry.WithError(err)}
}

// WithContext extrai informações do contexto para o Logger
func (l *logger) WithContext(ctx context.Context) Logger {
	if ctx == nil {
		return l
	}

	// Extrai o ID de correlação do contexto se existir
	if correlationID, ok := ctx.Value(CorrelationIDKey).(string); ok {
		return l.WithField(correlationIDField, correlationID)
	}

	return l
}

// Debug loga uma mensagem no nível debug
func (l *logger) Debug(args ...interface{}) {
	l.entry.Debug(args...)
}

// Debugf loga uma mensagem formatada no nível debug
func (l *logger) Debugf(format string, args ...interface{}) {
	l.entry.Debugf(format, args...)
}

// Info loga uma mensagem no nível info
func (l *logger) Info(args ...interface{}) {
	l.entry.Info(args...)
}

// Infof loga uma mensagem formatada no nível info
func (l *logger) Infof(format string, args ...interface{}) {
	l.entry.Infof(format, args...)
}

// Warn loga uma mensagem no nível warning
func (l *logger) Warn(args ...interface{}) {
	l.entry.Warn(args...)
}

// Warnf loga uma mensagem formatada no nível warning
func (l *logger) Warnf(format string, args ...interface{}) {
	l.entry.Warnf(format, args...)
}

// Error loga uma mensagem no nível error
func (l *logger) Error(args ...interface{}) {
	l.entry.Error(args...)
}

// Errorf loga uma mensagem formatada no nível error
func (l *logger) Errorf(format string, args ...interface{}) {
	l.entry.Errorf(format, args...)
}

// WithCorrelationID adiciona um ID de correlação ao contexto
func WithCorrelationID(ctx context.Context) (context.Context, string) {
	correlationID := uuid.New().String()
	return context.WithValue(ctx, CorrelationIDKey, correlationID), correlationID
}

// GetCorrelationID obtém o ID de correlação do contexto
func GetCorrelationID(ctx context.Context) string {
	if correlationID, ok := ctx.Value(CorrelationIDKey).(string); ok {
		return correlationID
	}
	return ""
}

// ForContext cria um logger com o ID de correlação do contexto
func ForContext(ctx context.Context) Logger {
	return L.WithContext(ctx)
}

// Entry devolve uma entrada do logrus com o ID de correlação do contexto, quando houver
func Entry(ctx context.Context) *logrus.Entry {
	entry := logrus.NewEntry(logrus.StandardLogger())
	if ctx == nil {
		return entry
	}
	if correlationID := GetCorrelationID(ctx); correlationID != "" {
		return entry.WithField(correlationIDField, correlationID)
	}
	return entry
}

// WithGivenCorrelationID grava no contexto um ID de correlação já existente
func WithGivenCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, CorrelationIDKey, correlationID)
}
