package service

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"vetsupport/internal/model"
)

// crisisResources is the fixed table of hotlines and support services
// attached to alerts and served to the crisis support screen.
var crisisResources = []model.CrisisResource{
	{
		ID:              "veterans-crisis-line",
		Name:            "Veterans Crisis Line",
		Phone:           "988",
		Text:            "838255",
		Website:         "https://www.veteranscrisisline.net/",
		Description:     "Free, confidential support for veterans in crisis and their families and friends",
		Available247:    true,
		VeteranSpecific: true,
		Type:            model.ResourceCrisis,
	},
	{
		ID:              "national-suicide-prevention",
		Name:            "National Suicide Prevention Lifeline",
		Phone:           "988",
		Website:         "https://suicidepreventionlifeline.org/",
		Description:     "Free and confidential emotional support to people in suicidal crisis",
		Available247:    true,
		VeteranSpecific: false,
		Type:            model.ResourceCrisis,
	},
	{
		ID:              "crisis-text-line",
		Name:            "Crisis Text Line",
		Phone:           "",
		Text:            "741741",
		Website:         "https://www.crisistextline.org/",
		Description:     "Free, 24/7 support for those in crisis via text",
		Available247:    true,
		VeteranSpecific: false,
		Type:            model.ResourceText,
	},
	{
		ID:              "emergency-services",
		Name:            "Emergency Services",
		Phone:           "911",
		Description:     "Immediate emergency response for life-threatening situations",
		Available247:    true,
		VeteranSpecific: false,
		Type:            model.ResourceEmergency,
	},
	{
		ID:              "va-mental-health",
		Name:            "VA Mental Health Services",
		Phone:           "1-877-222-8387",
		Website:         "https://www.mentalhealth.va.gov/",
		Description:     "VA mental health services and support",
		Available247:    false,
		VeteranSpecific: true,
		Type:            model.ResourceSupport,
	},
}

// CrisisService owns per-veteran crisis state: current level, alert list,
// and overlay visibility. State is held in memory only and resets on
// restart; the profile's stored risk level re-derives it on the next
// fetch. Alerts are append-only and acknowledging one never lowers the
// escalation - only a lower-risk classification from a new assessment or
// profile refresh clears inCrisis.
type CrisisService struct {
	mu          sync.Mutex
	states      map[string]*model.CrisisState
	broadcaster Broadcaster
}

// NewCrisisService creates a new crisis service
func NewCrisisService() *CrisisService {
	return &CrisisService{
		states: make(map[string]*model.CrisisState),
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *CrisisService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Resources returns the full crisis resource table
func (s *CrisisService) Resources() []model.CrisisResource {
	out := make([]model.CrisisResource, len(crisisResources))
	copy(out, crisisResources)
	return out
}

// resourcesForLevel filters the table for an alert. Immediate alerts only
// carry services reachable right now.
func resourcesForLevel(level model.AlertLevel) []model.CrisisResource {
	out := make([]model.CrisisResource, 0, len(crisisResources))
	for _, r := range crisisResources {
		if level == model.AlertImmediate && !r.Available247 {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (s *CrisisService) state(veteranID string) *model.CrisisState {
	st, ok := s.states[veteranID]
	if !ok {
		st = &model.CrisisState{
			Level:  model.CrisisNone,
			Alerts: []model.CrisisAlert{},
		}
		s.states[veteranID] = st
	}
	return st
}

// State returns a snapshot of the veteran's current crisis state
func (s *CrisisService) State(veteranID string) *model.CrisisState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state(veteranID)
	snapshot := &model.CrisisState{
		Level:          st.Level,
		InCrisis:       st.InCrisis,
		OverlayVisible: st.OverlayVisible,
		Alerts:         make([]model.CrisisAlert, len(st.Alerts)),
	}
	copy(snapshot.Alerts, st.Alerts)
	return snapshot
}

// TriggerAlert appends a new unacknowledged alert, newest first. An
// immediate or high alert forces the overlay up and marks the veteran in
// crisis.
func (s *CrisisService) TriggerAlert(veteranID string, level model.AlertLevel, message string) *model.CrisisAlert {
	alert := model.CrisisAlert{
		ID:        uuid.New().String(),
		Level:     level,
		Message:   message,
		Timestamp: time.Now().UTC(),
		Resources: resourcesForLevel(level),
	}

	s.mu.Lock()
	st := s.state(veteranID)
	st.Alerts = append([]model.CrisisAlert{alert}, st.Alerts...)

	if level == model.AlertImmediate || level == model.AlertHigh {
		st.OverlayVisible = true
		st.InCrisis = true
		st.Level = model.CrisisLevel(level)
	}
	s.mu.Unlock()

	log.Printf("Crisis alert triggered: veteran=%s level=%s", veteranID, level)

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToVeteran(veteranID, "crisis_alert", alert)
		s.broadcaster.BroadcastToVeteran(veteranID, "crisis_state", s.State(veteranID))
	}
	return &alert
}

// AcknowledgeAlert marks the named alert acknowledged. It never changes
// the escalation level or inCrisis, and repeating the call is a no-op.
// Returns false if no alert with that ID exists.
func (s *CrisisService) AcknowledgeAlert(veteranID, alertID string) bool {
	s.mu.Lock()
	st := s.state(veteranID)
	found := false
	for i := range st.Alerts {
		if st.Alerts[i].ID == alertID {
			st.Alerts[i].Acknowledged = true
			found = true
			break
		}
	}
	s.mu.Unlock()

	if found && s.broadcaster != nil {
		s.broadcaster.BroadcastToVeteran(veteranID, "crisis_state", s.State(veteranID))
	}
	return found
}

// DismissOverlay hides the intervention overlay. It deliberately leaves
// inCrisis untouched - only a new assessment or profile refresh clears it.
func (s *CrisisService) DismissOverlay(veteranID string) {
	s.mu.Lock()
	st := s.state(veteranID)
	st.OverlayVisible = false
	s.mu.Unlock()

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToVeteran(veteranID, "crisis_state", s.State(veteranID))
	}
}

// ApplyProfileRisk passively re-derives the escalation state from a fresh
// profile risk level. This is the only path that clears inCrisis.
func (s *CrisisService) ApplyProfileRisk(veteranID string, risk model.RiskLevel) {
	s.mu.Lock()
	st := s.state(veteranID)
	switch risk {
	case model.RiskCrisis:
		st.Level = model.CrisisImmediate
		st.InCrisis = true
	case model.RiskHigh:
		st.Level = model.CrisisHigh
		st.InCrisis = true
	case model.RiskModerate:
		st.Level = model.CrisisModerate
		st.InCrisis = false
	default:
		st.Level = model.CrisisLow
		st.InCrisis = false
	}
	s.mu.Unlock()

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToVeteran(veteranID, "crisis_state", s.State(veteranID))
	}
}
