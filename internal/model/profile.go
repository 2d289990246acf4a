package model

import "time"

// ServiceBranch is a US military service branch
type ServiceBranch string

const (
	BranchArmy       ServiceBranch = "army"
	BranchNavy       ServiceBranch = "navy"
	BranchAirForce   ServiceBranch = "air-force"
	BranchMarines    ServiceBranch = "marines"
	BranchCoastGuard ServiceBranch = "coast-guard"
	BranchSpaceForce ServiceBranch = "space-force"
)

// ServiceYears is the span of active service
type ServiceYears struct {
	Start string  `json:"start" bson:"start"`
	End   *string `json:"end" bson:"end"`
}

// Deployment is one entry in a veteran's deployment history
type Deployment struct {
	Location       string `json:"location" bson:"location"`
	StartDate      string `json:"startDate" bson:"startDate"`
	EndDate        string `json:"endDate" bson:"endDate"`
	CombatExposure bool   `json:"combatExposure" bson:"combatExposure"`
}

// CrisisContact is a person to reach out to during an escalation
type CrisisContact struct {
	Name         string `json:"name" bson:"name"`
	Relationship string `json:"relationship" bson:"relationship"`
	Phone        string `json:"phone" bson:"phone"`
	Primary      bool   `json:"primary" bson:"primary"`
}

// PrivacySettings controls what the veteran shares and with whom
type PrivacySettings struct {
	ShareWithVA   bool `json:"shareWithVA" bson:"shareWithVA"`
	AnonymousMode bool `json:"anonymousMode" bson:"anonymousMode"`
	FamilyAccess  bool `json:"familyAccess" bson:"familyAccess"`
}

// VeteranProfile is the persistent profile document for one veteran
type VeteranProfile struct {
	ID                  string          `json:"id" bson:"_id"`
	Email               string          `json:"email" bson:"email"`
	ServiceBranch       ServiceBranch   `json:"serviceBranch,omitempty" bson:"serviceBranch,omitempty"`
	ServiceYears        *ServiceYears   `json:"serviceYears,omitempty" bson:"serviceYears,omitempty"`
	Rank                string          `json:"rank,omitempty" bson:"rank,omitempty"`
	DeploymentHistory   []Deployment    `json:"deploymentHistory" bson:"deploymentHistory"`
	CrisisContacts      []CrisisContact `json:"crisisContacts" bson:"crisisContacts"`
	PrivacySettings     PrivacySettings `json:"privacySettings" bson:"privacySettings"`
	OnboardingCompleted bool            `json:"onboardingCompleted" bson:"onboardingCompleted"`
	LastAssessmentDate  *time.Time      `json:"lastAssessmentDate,omitempty" bson:"lastAssessmentDate,omitempty"`
	RiskLevel           RiskLevel       `json:"riskLevel,omitempty" bson:"riskLevel,omitempty"`
	CreatedAt           time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt" bson:"updatedAt"`
}
