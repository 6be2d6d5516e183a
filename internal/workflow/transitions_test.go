package workflow

import (
	"testing"

	"tradedesk/internal/models"
)

var validPairs = []struct {
	state  models.TradeState
	action models.Action
	next   models.TradeState
}{
	{models.StateDraft, models.ActionSubmit, models.StatePendingApproval},
	{models.StateDraft, models.ActionUpdate, models.StateDraft},
	{models.StatePendingApproval, models.ActionApprove, models.StateApproved},
	{models.StatePendingApproval, models.ActionCancel, models.StateCancelled},
	{models.StatePendingApproval, models.ActionUpdate, models.StateNeedsReapproval},
	{models.StateNeedsReapproval, models.ActionApprove, models.StateApproved},
	{models.StateNeedsReapproval, models.ActionCancel, models.StateCancelled},
	{models.StateNeedsReapproval, models.ActionUpdate, models.StateNeedsReapproval},
	{models.StateApproved, models.ActionSend, models.StateSent},
	{models.StateApproved, models.ActionCancel, models.StateCancelled},
	{models.StateApproved, models.ActionUpdate, models.StateNeedsReapproval},
	{models.StateSent, models.ActionBook, models.StateExecuted},
	{models.StateSent, models.ActionCancel, models.StateCancelled},
}

func TestNextValidPairs(t *testing.T) {
	for _, tt := range validPairs {
		next, ok := Next(tt.state, tt.action)
		if !ok {
			t.Fatalf("Next(%s, %s): expected legal transition", tt.state, tt.action)
		}
		if next != tt.next {
			t.Fatalf("Next(%s, %s) = %s, want %s", tt.state, tt.action, next, tt.next)
		}
	}
}

func TestNextRejectsUnlistedPairs(t *testing.T) {
	valid := map[models.TradeState]map[models.Action]bool{}
	for _, tt := range validPairs {
		if valid[tt.state] == nil {
			valid[tt.state] = map[models.Action]bool{}
		}
		valid[tt.state][tt.action] = true
	}
	for _, state := range models.States() {
		for _, action := range models.Actions() {
			if valid[state][action] {
				continue
			}
			if _, ok := Next(state, action); ok {
				t.Fatalf("Next(%s, %s): expected illegal transition", state, action)
			}
		}
	}
}

func TestTerminalStates(t *testing.T) {
	for _, state := range models.States() {
		terminal := state == models.StateExecuted || state == models.StateCancelled
		if got := Terminal(state); got != terminal {
			t.Fatalf("Terminal(%s) = %v, want %v", state, got, terminal)
		}
	}
}

func TestActionsFor(t *testing.T) {
	actions := ActionsFor(models.StatePendingApproval)
	if len(actions) != 3 {
		t.Fatalf("expected 3 actions for pending_approval, got %v", actions)
	}
	if got := ActionsFor(models.StateExecuted); len(got) != 0 {
		t.Fatalf("expected no actions for executed, got %v", got)
	}
}
