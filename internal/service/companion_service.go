package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"vetsupport/internal/cache"
	"vetsupport/internal/model"
	"vetsupport/internal/repository"
)

var ErrNoActiveSession = errors.New("no active chat session")

const chatAlertMessage = "Crisis language detected in companion chat. Immediate support recommended."

// companionRule maps a keyword set to a scripted reply. Rules are matched
// in order against the lowercased message; the first hit wins, so the
// crisis rule must stay first.
type companionRule struct {
	keywords  []string
	reply     string
	resources []string
	crisis    bool
}

var companionRules = []companionRule{
	{
		keywords: []string{"suicide", "kill myself", "end it all", "not worth living", "hurt myself"},
		crisis:   true,
		reply: `I'm really concerned about what you're sharing with me. Your life has value, and there are people who want to help. I want to connect you with immediate support right now.

The Veterans Crisis Line is available 24/7 at 988 (Press 1) or text 838255. They have specially trained counselors who understand military experiences.

You're not alone in this. Many veterans have felt this way and found their way through. Can you tell me if you're in a safe place right now?`,
		resources: []string{"Veterans Crisis Line: 988 Press 1", "Crisis Text: 838255", "Emergency: 911"},
	},
	{
		keywords: []string{"flashback", "nightmare", "triggered", "combat", "deployment"},
		reply: `Thank you for sharing that with me. PTSD symptoms like flashbacks and nightmares are common responses to combat trauma. Your brain is trying to process experiences that were overwhelming.

This doesn't mean you're broken or weak - it means you're human and you've been through something significant. There are evidence-based treatments like CPT and EMDR that have helped many veterans find relief.

What's been the most challenging part of dealing with these symptoms?`,
		resources: []string{"VA PTSD Treatment Locator", "Vet Centers", "PTSD Coach App"},
	},
	{
		keywords: []string{"panic", "anxiety", "worried", "scared", "nervous"},
		reply: `Anxiety after military service is very common. The hypervigilance that kept you safe in service can sometimes stick around when you don't need it anymore.

Some veterans find breathing exercises, grounding techniques, or progressive muscle relaxation helpful. The key is finding what works for you.

Have you noticed any particular triggers that tend to increase your anxiety?`,
		resources: []string{"Mindfulness Apps", "VA Mental Health Services", "Breathing Exercises"},
	},
}

// generalReplies rotate by exchange count when no rule matches
var generalReplies = []string{
	`I hear you. Military service creates unique experiences and challenges. What you're feeling is valid, and it's okay to talk about it here.`,
	`Thank you for trusting me with that. As someone who understands military culture, I want you to know that seeking support is a sign of strength, not weakness.`,
	`That sounds challenging. Many veterans face similar struggles during transition or even years after service. You're not alone in this.`,
	`I appreciate you sharing that with me. Your service and your experiences matter. How are you taking care of yourself right now?`,
}

// CompanionService is the scripted chat companion ("Alex"). Replies come
// from a fixed keyword rule table - there is no model behind it. Crisis
// keywords raise an immediate alert through the shared crisis state
// machine, the same contract assessment scoring uses.
type CompanionService struct {
	sessions    cache.SessionCache
	profileRepo repository.ProfileRepo
	crisisSvc   *CrisisService
	broadcaster Broadcaster
}

// NewCompanionService creates a new companion service
func NewCompanionService(sessions cache.SessionCache, profileRepo repository.ProfileRepo, crisisSvc *CrisisService) *CompanionService {
	return &CompanionService{
		sessions:    sessions,
		profileRepo: profileRepo,
		crisisSvc:   crisisSvc,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *CompanionService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// StartSession opens a fresh session and returns it with the greeting.
// Any previous session and its messages are discarded.
func (s *CompanionService) StartSession(ctx context.Context, veteranID string) (*model.ChatSession, *model.ChatMessage, error) {
	if err := s.sessions.Clear(ctx, veteranID); err != nil {
		return nil, nil, err
	}

	session := &model.ChatSession{
		ID:        uuid.New().String(),
		VeteranID: veteranID,
		StartedAt: time.Now().UTC(),
	}

	greeting := &model.ChatMessage{
		ID:        uuid.New().String(),
		Role:      model.RoleCompanion,
		Content:   s.greetingFor(ctx, veteranID),
		Timestamp: time.Now().UTC(),
	}

	if err := s.sessions.SetSession(ctx, veteranID, session); err != nil {
		return nil, nil, err
	}
	if err := s.sessions.AppendMessage(ctx, veteranID, greeting); err != nil {
		return nil, nil, err
	}

	log.Printf("Companion session started for veteran %s", veteranID)
	return session, greeting, nil
}

func (s *CompanionService) greetingFor(ctx context.Context, veteranID string) string {
	salutation := ""
	profile, err := s.profileRepo.GetByID(ctx, veteranID)
	if err == nil && profile != nil && profile.Rank != "" {
		salutation = " " + profile.Rank
	}

	return fmt.Sprintf(`Hello%s. I'm Alex, your AI mental health companion. I'm here to provide support and understanding as someone who gets military culture and the unique challenges veterans face.

This is a safe, confidential space where you can share what's on your mind. Whether you're dealing with transition challenges, stress, or just need someone to talk to - I'm here to listen and help.

How are you doing today?`, salutation)
}

// SendMessage records the veteran's message and produces the scripted
// reply. Requires an active session.
func (s *CompanionService) SendMessage(ctx context.Context, veteranID, content string) (*model.ChatMessage, error) {
	session, err := s.sessions.GetSession(ctx, veteranID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.EndedAt != nil {
		return nil, ErrNoActiveSession
	}

	userMsg := &model.ChatMessage{
		ID:        uuid.New().String(),
		Role:      model.RoleVeteran,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
	if err := s.sessions.AppendMessage(ctx, veteranID, userMsg); err != nil {
		return nil, err
	}

	reply := s.respond(session, content)
	if reply.CrisisDetected {
		s.crisisSvc.TriggerAlert(veteranID, model.AlertImmediate, chatAlertMessage)
		session.CrisisInterventions++
	}

	session.MessageCount += 2
	if err := s.sessions.SetSession(ctx, veteranID, session); err != nil {
		return nil, err
	}
	if err := s.sessions.AppendMessage(ctx, veteranID, reply); err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToVeteran(veteranID, "chat_message", reply)
	}
	return reply, nil
}

// respond applies the rule table. When nothing matches, the general
// replies rotate by exchange count so the conversation stays
// deterministic.
func (s *CompanionService) respond(session *model.ChatSession, content string) *model.ChatMessage {
	lowered := strings.ToLower(content)

	for _, rule := range companionRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lowered, kw) {
				return &model.ChatMessage{
					ID:                 uuid.New().String(),
					Role:               model.RoleCompanion,
					Content:            rule.reply,
					Timestamp:          time.Now().UTC(),
					CrisisDetected:     rule.crisis,
					ResourcesSuggested: rule.resources,
				}
			}
		}
	}

	exchange := session.MessageCount / 2
	return &model.ChatMessage{
		ID:        uuid.New().String(),
		Role:      model.RoleCompanion,
		Content:   generalReplies[exchange%len(generalReplies)],
		Timestamp: time.Now().UTC(),
	}
}

// DetectsCrisis reports whether a message would trip the crisis rule
func (s *CompanionService) DetectsCrisis(content string) bool {
	lowered := strings.ToLower(content)
	for _, kw := range companionRules[0].keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

// Session returns the active session, or nil if none
func (s *CompanionService) Session(ctx context.Context, veteranID string) (*model.ChatSession, error) {
	return s.sessions.GetSession(ctx, veteranID)
}

// History returns the session transcript in order
func (s *CompanionService) History(ctx context.Context, veteranID string) ([]*model.ChatMessage, error) {
	return s.sessions.GetMessages(ctx, veteranID)
}

// EndSession closes the active session. Ending an already-ended or
// missing session is a no-op.
func (s *CompanionService) EndSession(ctx context.Context, veteranID string) error {
	session, err := s.sessions.GetSession(ctx, veteranID)
	if err != nil {
		return err
	}
	if session == nil || session.EndedAt != nil {
		return nil
	}

	now := time.Now().UTC()
	session.EndedAt = &now
	return s.sessions.SetSession(ctx, veteranID, session)
}
