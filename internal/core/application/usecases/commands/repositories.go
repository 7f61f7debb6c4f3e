package commands

import (
	"context"

	"storefront/internal/core/ports"
)

type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	OrderHistoryRepoFactory interface {
		OrderHistoryRepository() ports.OrderHistoryRepository
	}

	// OrderUoW is the transaction scope of every order command: the order row
	// and its history rows are written together.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		OrderHistoryRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}
)
