package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCampaignStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from     CampaignStatus
		to       CampaignStatus
		expected bool
	}{
		{CampaignStatusDraft, CampaignStatusLaunching, true},
		{CampaignStatusDraft, CampaignStatusActive, false},
		{CampaignStatusLaunching, CampaignStatusActive, true},
		{CampaignStatusLaunching, CampaignStatusFailed, true},
		{CampaignStatusLaunching, CampaignStatusCompleted, true},
		{CampaignStatusLaunching, CampaignStatusLaunching, false},
		{CampaignStatusActive, CampaignStatusPaused, true},
		{CampaignStatusPaused, CampaignStatusActive, true},
		{CampaignStatusActive, CampaignStatusOptimizing, true},
		{CampaignStatusOptimizing, CampaignStatusActive, true},
		{CampaignStatusFailed, CampaignStatusActive, false},
		{CampaignStatusCompleted, CampaignStatusActive, false},
		{CampaignStatusCompleted, CampaignStatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestCampaign_Days(t *testing.T) {
	c := &Campaign{
		StartDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	}
	now := time.Date(2026, 3, 11, 14, 0, 0, 0, time.UTC)

	assert.Equal(t, 30, c.TotalDays())
	assert.Equal(t, 10, c.ElapsedDays(now))
	assert.Equal(t, 20, c.DaysUntilEnd(now))
	assert.Equal(t, 0, c.DaysUntilEnd(time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC)))
}

func TestCampaign_SpentFraction(t *testing.T) {
	assert.Equal(t, 0.0, (&Campaign{SpentBudget: 10}).SpentFraction())
	assert.Equal(t, 0.8, (&Campaign{SpentBudget: 800, TotalBudget: 1000}).SpentFraction())
}

func TestDefaultTargeting(t *testing.T) {
	target := DefaultTargeting("cmp1", AudienceHints{Locations: []string{"BR"}, AgeMin: 30, AgeMax: 20})

	assert.Equal(t, "cmp1", target.CampaignID)
	assert.Equal(t, 30, target.AgeMin)
	assert.Equal(t, 65, target.AgeMax)
	assert.Equal(t, []string{"all"}, target.Genders)
	assert.Equal(t, []string{"BR"}, target.Locations)
	assert.True(t, target.Active)
}

func TestABTestConfig_Applied(t *testing.T) {
	applied := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

	open := ABTestConfig{Enabled: true}
	assert.False(t, open.IsResolved())
	assert.False(t, open.IsApplied())
	assert.Equal(t, VariantNone, open.Loser())

	resolved := ABTestConfig{Enabled: true, Winner: VariantB}
	assert.True(t, resolved.IsResolved())
	assert.False(t, resolved.IsApplied())
	assert.Equal(t, VariantA, resolved.Loser())

	resolved.AppliedAt = &applied
	assert.True(t, resolved.IsApplied())
}
