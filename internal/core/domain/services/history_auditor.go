package services

import (
	"fmt"

	"storefront/internal/core/domain/model/order"
)

// ReplayError pinpoints the first history entry that breaks the walk.
type ReplayError struct {
	Index   int
	EntryID string
	Reason  string
}

func (e *ReplayError) Error() string {
	return fmt.Sprintf("history entry #%d (%s): %s", e.Index, e.EntryID, e.Reason)
}

// HistoryAuditor replays audit trails against the transition table.
type HistoryAuditor struct{}

func NewHistoryAuditor() HistoryAuditor {
	return HistoryAuditor{}
}

// Replay walks entries in the order they were stored and returns the status they end in.
// Each entry must start where the previous one ended, and every status change
// must be an edge of the transition table. An empty history replays to Unknown.
func (HistoryAuditor) Replay(entries []*order.HistoryEntry) (order.Status, error) {
	current := order.Unknown

	for i, e := range entries {
		if err := e.Validate(); err != nil {
			return current, &ReplayError{Index: i, Reason: err.Error()}
		}

		if i > 0 && e.PreviousStatus() != current {
			return current, &ReplayError{
				Index:   i,
				EntryID: e.ID().String(),
				Reason:  fmt.Sprintf("previous status %q does not follow %q", e.PreviousStatus(), current),
			}
		}

		if e.IsStatusChange() && !e.PreviousStatus().CanTransitionTo(e.Status()) {
			return current, &ReplayError{
				Index:   i,
				EntryID: e.ID().String(),
				Reason:  order.NewIllegalTransitionError(e.PreviousStatus(), e.Status()).Error(),
			}
		}

		current = e.Status()
	}

	return current, nil
}

// Verify replays the history of o and checks it starts from Pending, where
// every order is placed, and ends in the stored status.
func (a HistoryAuditor) Verify(o *order.Order, entries []*order.HistoryEntry) error {
	if len(entries) == 0 {
		if o.Status() != order.Pending {
			return &ReplayError{Index: -1, Reason: fmt.Sprintf("no history but status is %q", o.Status())}
		}
		return nil
	}

	if first := entries[0]; first.PreviousStatus() != order.Pending {
		return &ReplayError{
			Index:   0,
			EntryID: first.ID().String(),
			Reason:  fmt.Sprintf("history starts from %q instead of %q", first.PreviousStatus(), order.Pending),
		}
	}

	final, err := a.Replay(entries)
	if err != nil {
		return err
	}
	if final != o.Status() {
		return &ReplayError{
			Index:   len(entries) - 1,
			EntryID: entries[len(entries)-1].ID().String(),
			Reason:  fmt.Sprintf("history ends in %q but order is %q", final, o.Status()),
		}
	}
	return nil
}
