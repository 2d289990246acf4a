package scoring

import "vetsupport/internal/model"

// Recommendation lines. Order matters: the most urgent guidance comes
// first, and the two closing lines are always appended last.
const (
	RecCrisisIntervention = "Immediate crisis intervention recommended"
	RecCrisisLine         = "Contact Veterans Crisis Line: 988"
	RecProfessionalEval   = "Professional mental health evaluation recommended"
	RecVAProvider         = "Consider contacting your VA mental health provider"
	RecPTSDScreening      = "PTSD screening with qualified provider recommended"
	RecTraumaTherapy      = "Consider trauma-focused therapy (CPT, PE, EMDR)"
	RecDepressionScreen   = "Depression screening with qualified provider recommended"
	RecDepressionTherapy  = "Consider counseling or therapy for depression"
	RecCompanionCheckIns  = "Continue regular check-ins with Alex AI companion"
	RecPeerSupport        = "Engage with peer support groups"
)

// Recommendations builds the ordered guidance list for a classified
// assessment. The function is pure: identical inputs always produce an
// identical, identically ordered list.
func Recommendations(level model.RiskLevel, pcl5Score, phq9Score *int, selfHarm bool) []string {
	recs := []string{}

	if selfHarm {
		recs = append(recs, RecCrisisIntervention, RecCrisisLine)
	}

	if level == model.RiskCrisis || level == model.RiskHigh {
		recs = append(recs, RecProfessionalEval, RecVAProvider)
	}

	if pcl5Score != nil && *pcl5Score >= pcl5ModerateThreshold {
		recs = append(recs, RecPTSDScreening, RecTraumaTherapy)
	}

	if phq9Score != nil && *phq9Score >= phq9ModerateThreshold {
		recs = append(recs, RecDepressionScreen, RecDepressionTherapy)
	}

	recs = append(recs, RecCompanionCheckIns, RecPeerSupport)
	return recs
}
