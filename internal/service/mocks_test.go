package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"vetsupport/internal/model"
)

// In-memory fakes for the Mongo repositories and Redis caches, so the
// service flows run without infrastructure.

type fakeAssessmentRepo struct {
	mu          sync.Mutex
	assessments []*model.Assessment
	failCreate  bool
}

func (r *fakeAssessmentRepo) Create(ctx context.Context, assessment *model.Assessment) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate {
		return "", fmt.Errorf("insert failed")
	}
	assessment.ID = fmt.Sprintf("a%d", len(r.assessments)+1)
	r.assessments = append(r.assessments, assessment)
	return assessment.ID, nil
}

func (r *fakeAssessmentRepo) GetByVeteranID(ctx context.Context, veteranID string, limit int) ([]*model.Assessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Assessment
	for i := len(r.assessments) - 1; i >= 0 && len(out) < limit; i-- {
		if r.assessments[i].VeteranID == veteranID {
			out = append(out, r.assessments[i])
		}
	}
	return out, nil
}

func (r *fakeAssessmentRepo) GetLatest(ctx context.Context, veteranID string) (*model.Assessment, error) {
	all, err := r.GetByVeteranID(ctx, veteranID, 1)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

type riskUpdate struct {
	level      model.RiskLevel
	assessedAt time.Time
}

type fakeProfileRepo struct {
	mu          sync.Mutex
	profiles    map[string]*model.VeteranProfile
	riskUpdates map[string][]riskUpdate
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{
		profiles:    make(map[string]*model.VeteranProfile),
		riskUpdates: make(map[string][]riskUpdate),
	}
}

func (r *fakeProfileRepo) GetByID(ctx context.Context, veteranID string) (*model.VeteranProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[veteranID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProfileRepo) Upsert(ctx context.Context, profile *model.VeteranProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *profile
	r.profiles[profile.ID] = &cp
	return nil
}

func (r *fakeProfileRepo) UpdateRiskLevel(ctx context.Context, veteranID string, level model.RiskLevel, assessedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.riskUpdates[veteranID] = append(r.riskUpdates[veteranID], riskUpdate{level, assessedAt})
	if p, ok := r.profiles[veteranID]; ok {
		p.RiskLevel = level
		p.LastAssessmentDate = &assessedAt
	}
	return nil
}

type fakeProfileCache struct {
	mu     sync.Mutex
	levels map[string]model.RiskLevel
}

func newFakeProfileCache() *fakeProfileCache {
	return &fakeProfileCache{levels: make(map[string]model.RiskLevel)}
}

func (c *fakeProfileCache) SetRiskLevel(ctx context.Context, veteranID string, level model.RiskLevel) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.levels[veteranID] = level
	return nil
}

func (c *fakeProfileCache) GetRiskLevel(ctx context.Context, veteranID string) (model.RiskLevel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.levels[veteranID], nil
}

type fakeSessionCache struct {
	mu       sync.Mutex
	sessions map[string]*model.ChatSession
	messages map[string][]*model.ChatMessage
}

func newFakeSessionCache() *fakeSessionCache {
	return &fakeSessionCache{
		sessions: make(map[string]*model.ChatSession),
		messages: make(map[string][]*model.ChatMessage),
	}
}

func (c *fakeSessionCache) SetSession(ctx context.Context, veteranID string, session *model.ChatSession) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := *session
	c.sessions[veteranID] = &cp
	return nil
}

func (c *fakeSessionCache) GetSession(ctx context.Context, veteranID string) (*model.ChatSession, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.sessions[veteranID]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (c *fakeSessionCache) AppendMessage(ctx context.Context, veteranID string, msg *model.ChatMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages[veteranID] = append(c.messages[veteranID], msg)
	return nil
}

func (c *fakeSessionCache) GetMessages(ctx context.Context, veteranID string) ([]*model.ChatMessage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*model.ChatMessage, len(c.messages[veteranID]))
	copy(out, c.messages[veteranID])
	return out, nil
}

func (c *fakeSessionCache) Clear(ctx context.Context, veteranID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, veteranID)
	delete(c.messages, veteranID)
	return nil
}

type broadcastEvent struct {
	veteranID string
	msgType   string
	payload   interface{}
}

type fakeBroadcaster struct {
	mu     sync.Mutex
	events []broadcastEvent
}

func (b *fakeBroadcaster) BroadcastToVeteran(veteranID, msgType string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, broadcastEvent{veteranID, msgType, payload})
}

func (b *fakeBroadcaster) eventsOfType(msgType string) []broadcastEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []broadcastEvent
	for _, e := range b.events {
		if e.msgType == msgType {
			out = append(out, e)
		}
	}
	return out
}
