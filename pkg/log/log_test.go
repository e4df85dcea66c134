package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestCorrelationID(t *testing.T) {
	ctx, id := WithCorrelationID(context.Background())

	assert.NotEmpty(t, id)
	assert.Equal(t, id, GetCorrelationID(ctx))
	assert.Equal(t, "abc", GetCorrelationID(WithGivenCorrelationID(context.Background(), "abc")))
	assert.Empty(t, GetCorrelationID(context.Background()))
}

func TestEntry_CarriesCorrelationID(t *testing.T) {
	ctx := WithGivenCorrelationID(context.Background(), "corr-1")

	entry := Entry(ctx)

	assert.Equal(t, "corr-1", entry.Data[correlationIDField])
	assert.NotContains(t, Entry(context.Background()).Data, correlationIDField)
}

func TestWithFields_Development(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	var buf bytes.Buffer
	base := logrus.New()
	base.SetOutput(&buf)
	base.SetFormatter(&logrus.JSONFormatter{})
	l := &logger{entry: logrus.NewEntry(base)}

	l.WithFields(Fields{
		"campaign_id": "c1",
		"tenant_id":   "t1",
		"query":       "limit=10",
	}).Info("teste")

	out := buf.String()
	assert.Contains(t, out, `"campaign_id":"c1"`)
	assert.Contains(t, out, `"tenant_id":"t1"`)
	assert.NotContains(t, out, "query")
}

func TestWithFields_Production(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	var buf bytes.Buffer
	base := logrus.New()
	base.SetOutput(&buf)
	base.SetFormatter(&logrus.JSONFormatter{})
	l := &logger{entry: logrus.NewEntry(base)}

	l.WithField("query", "limit=10").Info("teste")

	assert.Contains(t, buf.String(), `"query":"limit=10"`)
}
