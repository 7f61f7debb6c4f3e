package queries

import (
	"errors"
	"slices"

	"storefront/internal/core/domain/model/identity"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery pages through all orders, newest first, optionally narrowed
// to a set of statuses. Only order managers may run it.
type ListOrdersQuery struct {
	statuses []order.Status
	limit    int
	offset   int
	actor    identity.Actor

	guard guard.ConstructorGuard
}

// NewListOrdersQuery parses raw status names; an unknown name fails with
// order.ErrInvalidStatus. A zero limit selects DefaultListLimit.
func NewListOrdersQuery(rawStatuses []string, limit, offset int, actor identity.Actor) (ListOrdersQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}

	statuses := make([]order.Status, 0, len(rawStatuses))
	for _, raw := range rawStatuses {
		s, err := order.ParseStatus(raw)
		if err != nil {
			return ListOrdersQuery{}, err
		}
		if !slices.Contains(statuses, s) {
			statuses = append(statuses, s)
		}
	}

	if limit == 0 {
		limit = DefaultListLimit
	}
	if limit < 1 || limit > MaxListLimit {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxListLimit)
	}
	if offset < 0 {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("offset", offset, 0, "unbounded")
	}

	return ListOrdersQuery{
		statuses: statuses,
		limit:    limit,
		offset:   offset,
		actor:    actor,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Statuses() []order.Status { return slices.Clone(q.statuses) }
func (q ListOrdersQuery) Limit() int               { return q.limit }
func (q ListOrdersQuery) Offset() int              { return q.offset }
func (q ListOrdersQuery) Actor() identity.Actor    { return q.actor }
