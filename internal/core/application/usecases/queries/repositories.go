// Package queries contains read-only operations. Queries never open transactions and
// never change state.
package queries

import (
	"brillante/internal/core/ports"
)

type (
	// RepositoryProvider exposes repositories outside of a transaction.
	RepositoryProvider interface {
		OrderRepository() ports.OrderRepository
		SessionRepository() ports.SessionRepository
	}

	// RepositoryProviderFactory creates repository providers.
	RepositoryProviderFactory interface {
		Create() RepositoryProvider
	}
)
