package service

import (
	"context"
	"log"
	"time"

	"vetsupport/internal/cache"
	"vetsupport/internal/model"
	"vetsupport/internal/repository"
)

// ProfileService manages veteran profiles. Every fetch re-derives the
// crisis state from the stored risk level, so screens always see an
// escalation consistent with the latest classification.
type ProfileService struct {
	profileRepo  repository.ProfileRepo
	profileCache cache.ProfileCache
	crisisSvc    *CrisisService
}

// NewProfileService creates a new profile service
func NewProfileService(profileRepo repository.ProfileRepo, profileCache cache.ProfileCache, crisisSvc *CrisisService) *ProfileService {
	return &ProfileService{
		profileRepo:  profileRepo,
		profileCache: profileCache,
		crisisSvc:    crisisSvc,
	}
}

// Get fetches the profile, creating a default one on first access
func (s *ProfileService) Get(ctx context.Context, veteranID string) (*model.VeteranProfile, error) {
	profile, err := s.profileRepo.GetByID(ctx, veteranID)
	if err != nil {
		return nil, err
	}

	if profile == nil {
		profile = &model.VeteranProfile{
			ID:                veteranID,
			DeploymentHistory: []model.Deployment{},
			CrisisContacts:    []model.CrisisContact{},
			PrivacySettings: model.PrivacySettings{
				ShareWithVA:   false,
				AnonymousMode: true,
				FamilyAccess:  false,
			},
		}
		if err := s.profileRepo.Upsert(ctx, profile); err != nil {
			return nil, err
		}
	}

	if profile.RiskLevel != "" {
		s.crisisSvc.ApplyProfileRisk(veteranID, profile.RiskLevel)
		if err := s.profileCache.SetRiskLevel(ctx, veteranID, profile.RiskLevel); err != nil {
			log.Printf("Failed to cache risk level for veteran %s: %v", veteranID, err)
		}
	}
	return profile, nil
}

// Update replaces the profile's mutable fields. Risk level and assessment
// dates are owned by the assessment flow and preserved from the stored
// document.
func (s *ProfileService) Update(ctx context.Context, veteranID string, updates *model.VeteranProfile) (*model.VeteranProfile, error) {
	current, err := s.Get(ctx, veteranID)
	if err != nil {
		return nil, err
	}

	updates.ID = veteranID
	updates.RiskLevel = current.RiskLevel
	updates.LastAssessmentDate = current.LastAssessmentDate
	updates.CreatedAt = current.CreatedAt
	updates.UpdatedAt = time.Now().UTC()

	if err := s.profileRepo.Upsert(ctx, updates); err != nil {
		return nil, err
	}
	return updates, nil
}

// CompleteOnboarding stores the onboarding answers and marks onboarding done
func (s *ProfileService) CompleteOnboarding(ctx context.Context, veteranID string, profile *model.VeteranProfile) (*model.VeteranProfile, error) {
	profile.OnboardingCompleted = true
	return s.Update(ctx, veteranID, profile)
}

// RiskLevel returns the latest known risk level, preferring the cache
func (s *ProfileService) RiskLevel(ctx context.Context, veteranID string) (model.RiskLevel, error) {
	level, err := s.profileCache.GetRiskLevel(ctx, veteranID)
	if err == nil && level != "" {
		return level, nil
	}

	profile, err := s.profileRepo.GetByID(ctx, veteranID)
	if err != nil {
		return "", err
	}
	if profile == nil {
		return "", nil
	}
	return profile.RiskLevel, nil
}
