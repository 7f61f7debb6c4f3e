package commands

import (
	"errors"
	"time"

	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

const MaxAuditBatch = 500

var ErrAuditHistoryCommandIsNotConstructed = errors.New(
	"AuditHistoryCommand must be created via NewAuditHistoryCommand constructor",
)

// AuditHistoryCommand asks for the audit trails of up to limit orders
// positioned after the cursor and updated no later than until to be replayed
// against the transition table.
type AuditHistoryCommand struct { //nolint:recvcheck //using for validation
	after ports.UpdateCursor
	until time.Time
	limit int

	guard guard.ConstructorGuard
}

func NewAuditHistoryCommand(after ports.UpdateCursor, until time.Time, limit int) (AuditHistoryCommand, error) {
	if limit < 1 || limit > MaxAuditBatch {
		return AuditHistoryCommand{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxAuditBatch)
	}

	return AuditHistoryCommand{
		after: after,
		until: until,
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c AuditHistoryCommand) Validate() error {
	return c.guard.Validate(ErrAuditHistoryCommandIsNotConstructed)
}

func (c AuditHistoryCommand) After() ports.UpdateCursor { return c.after }
func (c AuditHistoryCommand) Until() time.Time          { return c.until }
func (c AuditHistoryCommand) Limit() int                { return c.limit }
