// Package workflow defines the static transition table governing the trade
// lifecycle. The table is initialized once and never mutated; any (state,
// action) pair not listed here is illegal.
package workflow

import (
	"sort"

	"tradedesk/internal/models"
)

// transitions maps current state -> action -> next state. Updating a trade
// that is pending or already approved forces needs_reapproval so an approved
// trade can never drift silently from what was reviewed.
var transitions = map[models.TradeState]map[models.Action]models.TradeState{
	models.StateDraft: {
		models.ActionSubmit: models.StatePendingApproval,
		models.ActionUpdate: models.StateDraft,
	},
	models.StatePendingApproval: {
		models.ActionApprove: models.StateApproved,
		models.ActionCancel:  models.StateCancelled,
		models.ActionUpdate:  models.StateNeedsReapproval,
	},
	models.StateNeedsReapproval: {
		models.ActionApprove: models.StateApproved,
		models.ActionCancel:  models.StateCancelled,
		models.ActionUpdate:  models.StateNeedsReapproval,
	},
	models.StateApproved: {
		models.ActionSend:   models.StateSent,
		models.ActionCancel: models.StateCancelled,
		models.ActionUpdate: models.StateNeedsReapproval,
	},
	models.StateSent: {
		models.ActionBook:   models.StateExecuted,
		models.ActionCancel: models.StateCancelled,
	},
}

// Next returns the state reached by applying action in state, and whether
// the move is legal.
func Next(state models.TradeState, action models.Action) (models.TradeState, bool) {
	next, ok := transitions[state][action]
	return next, ok
}

// Terminal reports whether state has no outgoing transitions.
func Terminal(state models.TradeState) bool {
	return len(transitions[state]) == 0
}

// ActionsFor lists the legal actions in state, sorted for stable output.
func ActionsFor(state models.TradeState) []models.Action {
	row := transitions[state]
	out := make([]models.Action, 0, len(row))
	for action := range row {
		out = append(out, action)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
