package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vetsupport/internal/model"
)

func newProfileFixture() (*ProfileService, *fakeProfileRepo, *fakeProfileCache, *CrisisService) {
	profileRepo := newFakeProfileRepo()
	profileCache := newFakeProfileCache()
	crisisSvc := NewCrisisService()
	svc := NewProfileService(profileRepo, profileCache, crisisSvc)
	return svc, profileRepo, profileCache, crisisSvc
}

func TestProfileGet(t *testing.T) {
	ctx := context.Background()

	t.Run("creates default profile on first access", func(t *testing.T) {
		svc, profileRepo, _, _ := newProfileFixture()

		profile, err := svc.Get(ctx, "vet_1")
		require.NoError(t, err)

		assert.Equal(t, "vet_1", profile.ID)
		assert.True(t, profile.PrivacySettings.AnonymousMode, "privacy defaults to anonymous")
		assert.False(t, profile.PrivacySettings.ShareWithVA)
		assert.NotNil(t, profile.DeploymentHistory)
		assert.NotNil(t, profile.CrisisContacts)
		assert.False(t, profile.OnboardingCompleted)

		stored, err := profileRepo.GetByID(ctx, "vet_1")
		require.NoError(t, err)
		require.NotNil(t, stored, "default profile is persisted")
	})

	t.Run("stored risk level re-derives crisis state", func(t *testing.T) {
		svc, profileRepo, profileCache, crisisSvc := newProfileFixture()
		profileRepo.profiles["vet_1"] = &model.VeteranProfile{
			ID:        "vet_1",
			RiskLevel: model.RiskHigh,
		}

		_, err := svc.Get(ctx, "vet_1")
		require.NoError(t, err)

		st := crisisSvc.State("vet_1")
		assert.Equal(t, model.CrisisHigh, st.Level)
		assert.True(t, st.InCrisis)

		cached, _ := profileCache.GetRiskLevel(ctx, "vet_1")
		assert.Equal(t, model.RiskHigh, cached)
	})

	t.Run("no risk level leaves crisis state alone", func(t *testing.T) {
		svc, _, _, crisisSvc := newProfileFixture()

		_, err := svc.Get(ctx, "vet_1")
		require.NoError(t, err)

		st := crisisSvc.State("vet_1")
		assert.Equal(t, model.CrisisNone, st.Level)
	})
}

func TestProfileUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("preserves assessment-owned fields", func(t *testing.T) {
		svc, profileRepo, _, _ := newProfileFixture()
		assessed := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
		profileRepo.profiles["vet_1"] = &model.VeteranProfile{
			ID:                 "vet_1",
			RiskLevel:          model.RiskModerate,
			LastAssessmentDate: &assessed,
			CreatedAt:          time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		}

		updated, err := svc.Update(ctx, "vet_1", &model.VeteranProfile{
			ServiceBranch: model.BranchArmy,
			Rank:          "Corporal",
			RiskLevel:     model.RiskCrisis, // must be ignored
		})
		require.NoError(t, err)

		assert.Equal(t, "vet_1", updated.ID)
		assert.Equal(t, model.BranchArmy, updated.ServiceBranch)
		assert.Equal(t, "Corporal", updated.Rank)
		assert.Equal(t, model.RiskModerate, updated.RiskLevel)
		require.NotNil(t, updated.LastAssessmentDate)
		assert.Equal(t, assessed, *updated.LastAssessmentDate)
		assert.Equal(t, 2026, updated.CreatedAt.Year())
	})

	t.Run("persists the update", func(t *testing.T) {
		svc, profileRepo, _, _ := newProfileFixture()

		_, err := svc.Update(ctx, "vet_1", &model.VeteranProfile{Rank: "Sergeant"})
		require.NoError(t, err)

		stored, err := profileRepo.GetByID(ctx, "vet_1")
		require.NoError(t, err)
		assert.Equal(t, "Sergeant", stored.Rank)
	})
}

func TestCompleteOnboarding(t *testing.T) {
	svc, _, _, _ := newProfileFixture()

	profile, err := svc.CompleteOnboarding(context.Background(), "vet_1", &model.VeteranProfile{
		ServiceBranch: model.BranchMarines,
	})
	require.NoError(t, err)
	assert.True(t, profile.OnboardingCompleted)
	assert.Equal(t, model.BranchMarines, profile.ServiceBranch)
}

func TestRiskLevel(t *testing.T) {
	ctx := context.Background()

	t.Run("prefers the cache", func(t *testing.T) {
		svc, profileRepo, profileCache, _ := newProfileFixture()
		profileRepo.profiles["vet_1"] = &model.VeteranProfile{ID: "vet_1", RiskLevel: model.RiskLow}
		require.NoError(t, profileCache.SetRiskLevel(ctx, "vet_1", model.RiskHigh))

		level, err := svc.RiskLevel(ctx, "vet_1")
		require.NoError(t, err)
		assert.Equal(t, model.RiskHigh, level)
	})

	t.Run("falls back to the profile", func(t *testing.T) {
		svc, profileRepo, _, _ := newProfileFixture()
		profileRepo.profiles["vet_1"] = &model.VeteranProfile{ID: "vet_1", RiskLevel: model.RiskModerate}

		level, err := svc.RiskLevel(ctx, "vet_1")
		require.NoError(t, err)
		assert.Equal(t, model.RiskModerate, level)
	})

	t.Run("empty when unknown veteran", func(t *testing.T) {
		svc, _, _, _ := newProfileFixture()

		level, err := svc.RiskLevel(ctx, "vet_x")
		require.NoError(t, err)
		assert.Empty(t, level)
	})
}
