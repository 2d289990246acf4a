package model

import "time"

// InstrumentType identifies a screening questionnaire
type InstrumentType string

const (
	InstrumentPCL5 InstrumentType = "PCL5" // PTSD Checklist for DSM-5
	InstrumentPHQ9 InstrumentType = "PHQ9" // Patient Health Questionnaire-9
)

// RiskLevel is the discrete severity classification derived from screening scores
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskCrisis   RiskLevel = "crisis"
)

// Assessment is a completed screening, persisted to the veteran's history.
// Records are append-only; a submission is never updated after creation.
type Assessment struct {
	ID              string         `json:"id" bson:"_id,omitempty"`
	VeteranID       string         `json:"veteranId" bson:"veteranId"`
	Instrument      InstrumentType `json:"instrument" bson:"instrument"`
	PCL5Score       *int           `json:"pcl5Score,omitempty" bson:"pcl5Score,omitempty"`
	PHQ9Score       *int           `json:"phq9Score,omitempty" bson:"phq9Score,omitempty"`
	RiskLevel       RiskLevel      `json:"riskLevel" bson:"riskLevel"`
	SelfHarmFlag    bool           `json:"selfHarmFlag" bson:"selfHarmFlag"`
	Recommendations []string       `json:"recommendations" bson:"recommendations"`
	CompletedAt     time.Time      `json:"completedAt" bson:"completedAt"`
}

// SubmitAssessmentRequest is the request body for submitting a completed questionnaire
type SubmitAssessmentRequest struct {
	Instrument InstrumentType `json:"instrument"`
	Answers    []int          `json:"answers"`
}

// SubmitAssessmentResponse is returned after scoring a submission.
// Saved is false when the score was computed but persistence failed;
// the classification and any triggered alert still stand.
type SubmitAssessmentResponse struct {
	Assessment *Assessment `json:"assessment"`
	Saved      bool        `json:"saved"`
}
