package model

import "time"

// AlertLevel is the severity of a single crisis alert
type AlertLevel string

const (
	AlertLow       AlertLevel = "low"
	AlertModerate  AlertLevel = "moderate"
	AlertHigh      AlertLevel = "high"
	AlertImmediate AlertLevel = "immediate"
)

// CrisisLevel is the veteran's current escalation state. It extends
// AlertLevel with "none" for the initial, unescalated state.
type CrisisLevel string

const (
	CrisisNone      CrisisLevel = "none"
	CrisisLow       CrisisLevel = "low"
	CrisisModerate  CrisisLevel = "moderate"
	CrisisHigh      CrisisLevel = "high"
	CrisisImmediate CrisisLevel = "immediate"
)

// ResourceType categorizes a crisis resource
type ResourceType string

const (
	ResourceCrisis    ResourceType = "crisis"
	ResourceSupport   ResourceType = "support"
	ResourceEmergency ResourceType = "emergency"
	ResourceText      ResourceType = "text"
	ResourceChat      ResourceType = "chat"
)

// CrisisResource is a hotline or support service surfaced with alerts
type CrisisResource struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Phone           string       `json:"phone"`
	Text            string       `json:"text,omitempty"`
	Website         string       `json:"website,omitempty"`
	Description     string       `json:"description"`
	Available247    bool         `json:"available_24_7"`
	VeteranSpecific bool         `json:"veteran_specific"`
	Type            ResourceType `json:"type"`
}

// CrisisAlert is a timestamped record of a detected risk event.
// Alerts are only ever appended and acknowledged, never deleted.
type CrisisAlert struct {
	ID           string           `json:"id"`
	Level        AlertLevel       `json:"level"`
	Message      string           `json:"message"`
	Timestamp    time.Time        `json:"timestamp"`
	Acknowledged bool             `json:"acknowledged"`
	Resources    []CrisisResource `json:"resources"`
}

// CrisisState is a veteran's current escalation state. It lives in memory
// only and resets on server restart; the profile's risk level re-derives
// it on the next fetch.
type CrisisState struct {
	Level          CrisisLevel   `json:"level"`
	InCrisis       bool          `json:"inCrisis"`
	OverlayVisible bool          `json:"overlayVisible"`
	Alerts         []CrisisAlert `json:"alerts"`
}
