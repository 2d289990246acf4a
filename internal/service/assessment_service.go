package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"vetsupport/internal/cache"
	"vetsupport/internal/model"
	"vetsupport/internal/repository"
	"vetsupport/internal/scoring"
)

// Alert messages raised by assessment scoring
const (
	selfHarmAlertMessage   = "Suicidal ideation detected in assessment. Immediate support recommended."
	crisisTierAlertMessage = "Assessment indicates crisis-level risk. Professional support strongly recommended."
)

// AssessmentService runs the submission flow: validate, score, raise any
// crisis alert, generate recommendations, then persist.
type AssessmentService struct {
	assessmentRepo repository.AssessmentRepo
	profileRepo    repository.ProfileRepo
	profileCache   cache.ProfileCache
	crisisSvc      *CrisisService
}

// NewAssessmentService creates a new assessment service
func NewAssessmentService(
	assessmentRepo repository.AssessmentRepo,
	profileRepo repository.ProfileRepo,
	profileCache cache.ProfileCache,
	crisisSvc *CrisisService,
) *AssessmentService {
	return &AssessmentService{
		assessmentRepo: assessmentRepo,
		profileRepo:    profileRepo,
		profileCache:   profileCache,
		crisisSvc:      crisisSvc,
	}
}

// Instruments returns the supported questionnaires for the client to render
func (s *AssessmentService) Instruments() []scoring.Instrument {
	return scoring.Instruments()
}

// Submit scores a completed questionnaire. The order is fixed: scoring,
// alert emission, recommendation generation, persistence. A persistence
// failure is surfaced in the response but never rolls back the computed
// classification or a triggered alert.
func (s *AssessmentService) Submit(ctx context.Context, veteranID string, req *model.SubmitAssessmentRequest) (*model.SubmitAssessmentResponse, error) {
	var pcl5Score, phq9Score *int
	selfHarm := false

	switch req.Instrument {
	case model.InstrumentPCL5:
		score, err := scoring.ScorePCL5(req.Answers)
		if err != nil {
			return nil, err
		}
		pcl5Score = &score
	case model.InstrumentPHQ9:
		score, err := scoring.ScorePHQ9(req.Answers)
		if err != nil {
			return nil, err
		}
		phq9Score = &score
		selfHarm = scoring.SelfHarmFlagged(req.Answers)
	default:
		return nil, fmt.Errorf("unknown instrument: %s", req.Instrument)
	}

	riskLevel := scoring.ClassifyRisk(pcl5Score, phq9Score)

	// Exactly one alert per submission. Self-harm always escalates to
	// immediate, independent of the numeric level.
	if selfHarm {
		s.crisisSvc.TriggerAlert(veteranID, model.AlertImmediate, selfHarmAlertMessage)
	} else if riskLevel == model.RiskCrisis {
		s.crisisSvc.TriggerAlert(veteranID, model.AlertHigh, crisisTierAlertMessage)
	}

	recs := scoring.Recommendations(riskLevel, pcl5Score, phq9Score, selfHarm)

	assessment := &model.Assessment{
		VeteranID:       veteranID,
		Instrument:      req.Instrument,
		PCL5Score:       pcl5Score,
		PHQ9Score:       phq9Score,
		RiskLevel:       riskLevel,
		SelfHarmFlag:    selfHarm,
		Recommendations: recs,
		CompletedAt:     time.Now().UTC(),
	}

	saved := true
	if _, err := s.assessmentRepo.Create(ctx, assessment); err != nil {
		log.Printf("Failed to persist assessment for veteran %s: %v", veteranID, err)
		saved = false
	}

	if saved {
		if err := s.profileRepo.UpdateRiskLevel(ctx, veteranID, riskLevel, assessment.CompletedAt); err != nil {
			log.Printf("Failed to update profile risk level for veteran %s: %v", veteranID, err)
		}
		if err := s.profileCache.SetRiskLevel(ctx, veteranID, riskLevel); err != nil {
			log.Printf("Failed to cache risk level for veteran %s: %v", veteranID, err)
		}
	}

	// Fresh classification always re-derives crisis state, persisted or
	// not. A lower-risk result is the only thing that clears inCrisis.
	s.crisisSvc.ApplyProfileRisk(veteranID, riskLevel)

	return &model.SubmitAssessmentResponse{
		Assessment: assessment,
		Saved:      saved,
	}, nil
}

// History returns the veteran's most recent assessments, newest first
func (s *AssessmentService) History(ctx context.Context, veteranID string) ([]*model.Assessment, error) {
	return s.assessmentRepo.GetByVeteranID(ctx, veteranID, 10)
}
