package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/campaign-engine/internal/domain"
)

func TestMarkFailedQuery_OnlyTouchesFailedConversions(t *testing.T) {
	query, args, err := markFailedQuery("cv1", "timeout")
	require.NoError(t, err)

	assert.Contains(t, query, "retry_count = retry_count + 1")
	assert.Contains(t, query, "WHERE id = $3 AND status = $4")
	assert.Equal(t, []any{domain.ConversionFailed, "timeout", "cv1", domain.ConversionFailed}, args)
	assert.NotContains(t, query, "<>")
}
