package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vetsupport/internal/model"
)

func TestCrisisServiceInitialState(t *testing.T) {
	svc := NewCrisisService()
	st := svc.State("vet_1")

	assert.Equal(t, model.CrisisNone, st.Level)
	assert.False(t, st.InCrisis)
	assert.False(t, st.OverlayVisible)
	assert.Empty(t, st.Alerts)
}

func TestTriggerAlert(t *testing.T) {
	t.Run("immediate alert escalates", func(t *testing.T) {
		svc := NewCrisisService()
		alert := svc.TriggerAlert("vet_1", model.AlertImmediate, "test alert")

		require.NotNil(t, alert)
		assert.NotEmpty(t, alert.ID)
		assert.False(t, alert.Acknowledged)

		st := svc.State("vet_1")
		assert.True(t, st.InCrisis)
		assert.True(t, st.OverlayVisible)
		assert.Equal(t, model.CrisisImmediate, st.Level)
	})

	t.Run("high alert escalates", func(t *testing.T) {
		svc := NewCrisisService()
		svc.TriggerAlert("vet_1", model.AlertHigh, "test alert")

		st := svc.State("vet_1")
		assert.True(t, st.InCrisis)
		assert.True(t, st.OverlayVisible)
		assert.Equal(t, model.CrisisHigh, st.Level)
	})

	t.Run("moderate alert records without escalating", func(t *testing.T) {
		svc := NewCrisisService()
		svc.TriggerAlert("vet_1", model.AlertModerate, "test alert")

		st := svc.State("vet_1")
		assert.False(t, st.InCrisis)
		assert.False(t, st.OverlayVisible)
		assert.Equal(t, model.CrisisNone, st.Level)
		assert.Len(t, st.Alerts, 1)
	})

	t.Run("alerts ordered newest first", func(t *testing.T) {
		svc := NewCrisisService()
		first := svc.TriggerAlert("vet_1", model.AlertLow, "first")
		second := svc.TriggerAlert("vet_1", model.AlertLow, "second")

		st := svc.State("vet_1")
		require.Len(t, st.Alerts, 2)
		assert.Equal(t, second.ID, st.Alerts[0].ID)
		assert.Equal(t, first.ID, st.Alerts[1].ID)
	})

	t.Run("immediate alerts carry only always-available resources", func(t *testing.T) {
		svc := NewCrisisService()
		alert := svc.TriggerAlert("vet_1", model.AlertImmediate, "test alert")

		require.NotEmpty(t, alert.Resources)
		for _, r := range alert.Resources {
			assert.True(t, r.Available247, "resource %s", r.ID)
		}
	})

	t.Run("lower alerts carry the full table", func(t *testing.T) {
		svc := NewCrisisService()
		alert := svc.TriggerAlert("vet_1", model.AlertHigh, "test alert")
		assert.Len(t, alert.Resources, len(svc.Resources()))
	})

	t.Run("broadcasts alert and state", func(t *testing.T) {
		svc := NewCrisisService()
		b := &fakeBroadcaster{}
		svc.SetBroadcaster(b)

		svc.TriggerAlert("vet_1", model.AlertImmediate, "test alert")

		assert.Len(t, b.eventsOfType("crisis_alert"), 1)
		assert.Len(t, b.eventsOfType("crisis_state"), 1)
	})

	t.Run("state is per veteran", func(t *testing.T) {
		svc := NewCrisisService()
		svc.TriggerAlert("vet_1", model.AlertImmediate, "test alert")

		other := svc.State("vet_2")
		assert.False(t, other.InCrisis)
		assert.Empty(t, other.Alerts)
	})
}

func TestAcknowledgeAlert(t *testing.T) {
	t.Run("marks acknowledged and nothing else", func(t *testing.T) {
		svc := NewCrisisService()
		alert := svc.TriggerAlert("vet_1", model.AlertImmediate, "test alert")

		ok := svc.AcknowledgeAlert("vet_1", alert.ID)
		require.True(t, ok)

		st := svc.State("vet_1")
		assert.True(t, st.Alerts[0].Acknowledged)
		assert.True(t, st.InCrisis)
		assert.True(t, st.OverlayVisible)
		assert.Equal(t, model.CrisisImmediate, st.Level)
	})

	t.Run("idempotent", func(t *testing.T) {
		svc := NewCrisisService()
		alert := svc.TriggerAlert("vet_1", model.AlertHigh, "test alert")

		assert.True(t, svc.AcknowledgeAlert("vet_1", alert.ID))
		assert.True(t, svc.AcknowledgeAlert("vet_1", alert.ID))

		st := svc.State("vet_1")
		assert.True(t, st.Alerts[0].Acknowledged)
		assert.True(t, st.InCrisis)
	})

	t.Run("unknown alert returns false", func(t *testing.T) {
		svc := NewCrisisService()
		assert.False(t, svc.AcknowledgeAlert("vet_1", "nope"))
	})

	t.Run("only the named alert changes", func(t *testing.T) {
		svc := NewCrisisService()
		first := svc.TriggerAlert("vet_1", model.AlertHigh, "first")
		svc.TriggerAlert("vet_1", model.AlertHigh, "second")

		svc.AcknowledgeAlert("vet_1", first.ID)

		st := svc.State("vet_1")
		require.Len(t, st.Alerts, 2)
		assert.False(t, st.Alerts[0].Acknowledged)
		assert.True(t, st.Alerts[1].Acknowledged)
	})
}

func TestDismissOverlay(t *testing.T) {
	svc := NewCrisisService()
	svc.TriggerAlert("vet_1", model.AlertImmediate, "test alert")

	svc.DismissOverlay("vet_1")

	st := svc.State("vet_1")
	assert.False(t, st.OverlayVisible)
	assert.True(t, st.InCrisis, "dismissing the overlay must not clear the crisis")
	assert.Equal(t, model.CrisisImmediate, st.Level)
}

func TestApplyProfileRisk(t *testing.T) {
	tests := []struct {
		name         string
		risk         model.RiskLevel
		wantLevel    model.CrisisLevel
		wantInCrisis bool
	}{
		{"crisis maps to immediate", model.RiskCrisis, model.CrisisImmediate, true},
		{"high maps to high", model.RiskHigh, model.CrisisHigh, true},
		{"moderate clears inCrisis", model.RiskModerate, model.CrisisModerate, false},
		{"low clears inCrisis", model.RiskLow, model.CrisisLow, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewCrisisService()
			svc.ApplyProfileRisk("vet_1", tt.risk)

			st := svc.State("vet_1")
			assert.Equal(t, tt.wantLevel, st.Level)
			assert.Equal(t, tt.wantInCrisis, st.InCrisis)
		})
	}

	t.Run("is the only path out of crisis", func(t *testing.T) {
		svc := NewCrisisService()
		svc.TriggerAlert("vet_1", model.AlertImmediate, "test alert")
		require.True(t, svc.State("vet_1").InCrisis)

		svc.ApplyProfileRisk("vet_1", model.RiskLow)

		st := svc.State("vet_1")
		assert.False(t, st.InCrisis)
		assert.Equal(t, model.CrisisLow, st.Level)
		assert.Len(t, st.Alerts, 1, "alert history survives de-escalation")
	})

	t.Run("does not touch the overlay", func(t *testing.T) {
		svc := NewCrisisService()
		svc.TriggerAlert("vet_1", model.AlertImmediate, "test alert")

		svc.ApplyProfileRisk("vet_1", model.RiskLow)
		assert.True(t, svc.State("vet_1").OverlayVisible)
	})
}

func TestStateSnapshotIsolation(t *testing.T) {
	svc := NewCrisisService()
	svc.TriggerAlert("vet_1", model.AlertHigh, "test alert")

	snapshot := svc.State("vet_1")
	snapshot.Alerts[0].Acknowledged = true
	snapshot.InCrisis = false

	fresh := svc.State("vet_1")
	assert.False(t, fresh.Alerts[0].Acknowledged)
	assert.True(t, fresh.InCrisis)
}
