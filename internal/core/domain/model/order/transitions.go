package order

import (
	"fmt"
	"slices"
)

// transitions is the adjacency list of legal status changes. Every registered
// status must have an entry, terminal ones with an empty set.
var transitions = map[Status][]Status{
	Pending:        {Confirmed, Cancelled, PaymentFailed, OnHold},
	Confirmed:      {Processing, Cancelled, OnHold},
	PaymentFailed:  {Pending, Cancelled},
	OnHold:         {Confirmed, Processing, Cancelled},
	Processing:     {Shipped, Cancelled, OnHold},
	Shipped:        {OutForDelivery, Delivered},
	OutForDelivery: {Delivered},
	Delivered:      {Returned, Refunded},
	Returned:       {Refunded},
	Refunded:       {},
	Cancelled:      {},
}

func init() {
	if err := checkTransitionTable(transitions); err != nil {
		panic(err)
	}
}

// checkTransitionTable verifies that table has an entry for every registered
// status and that every edge points at a registered status other than its source.
func checkTransitionTable(table map[Status][]Status) error {
	for _, s := range AllStatuses() {
		if _, ok := table[s]; !ok {
			return fmt.Errorf("transition table has no entry for status %q", s)
		}
	}

	for from, targets := range table {
		if err := from.Validate(); err != nil {
			return fmt.Errorf("transition table has entry for unregistered status: %w", err)
		}
		for _, to := range targets {
			if err := to.Validate(); err != nil {
				return fmt.Errorf("transition table edge from %q: %w", from, err)
			}
			if to == from {
				return fmt.Errorf("transition table has self edge on %q", from)
			}
		}
	}

	return nil
}

// CanTransitionTo reports whether the table lists the edge s -> to.
func (s Status) CanTransitionTo(to Status) bool {
	return slices.Contains(transitions[s], to)
}

// AllowedTransitions returns a copy of the outgoing edges of s.
func (s Status) AllowedTransitions() []Status {
	return slices.Clone(transitions[s])
}

// IsTerminal reports whether s has no outgoing edges.
func (s Status) IsTerminal() bool {
	return s.Validate() == nil && len(transitions[s]) == 0
}
