// Package repository defines the interfaces for the persistence layer.
package repository

import "context"

// RepositoryFactory hands out repository instances bound to one running
// transaction.
type RepositoryFactory interface {
	// NewDeliveryRepository creates a delivery repository bound to the transaction.
	NewDeliveryRepository() DeliveryRepository

	// NewHistoryRepository creates a history repository bound to the transaction.
	NewHistoryRepository() HistoryRepository
}

// TransactionManager runs a unit of work inside a single database
// transaction. The dispatcher uses it to make the sent transition and the
// history append atomic.
type TransactionManager interface {
	Execute(ctx context.Context, fn func(repoFactory RepositoryFactory) error) error
}
