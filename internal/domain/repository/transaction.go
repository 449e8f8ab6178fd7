package repository

import "context"

// TransactionManager defines the interface for managing database transactions.
// This allows the use case layer to handle transactions without depending on a specific DB driver like GORM.
type TransactionManager interface {
	// Execute runs a function within a database transaction.
	// If the function returns an error, the transaction is rolled back. Otherwise, it's committed.
	// All repository operations within the function will use the same database transaction.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides repository instances bound to a specific
// transaction, so every operation inside one Execute call shares a connection.
type RepositoryFactory interface {
	// UserRepo returns a UserRepository bound to the current transaction.
	UserRepo() UserRepository

	// StoryRepo returns a StoryRepository bound to the current transaction.
	StoryRepo() StoryRepository

	// CustomizationRepo returns a CustomizationRepository bound to the current transaction.
	CustomizationRepo() CustomizationRepository

	// BookRepo returns a CustomizedBookRepository bound to the current transaction.
	BookRepo() CustomizedBookRepository

	// OrderRepo returns an OrderRepository bound to the current transaction.
	OrderRepo() OrderRepository

	// SavedBookRepo returns a SavedBookRepository bound to the current transaction.
	SavedBookRepo() SavedBookRepository
}
