package ledger

import (
	"context"

	"github.com/erp/ledger/internal/domain/shared"
	"github.com/google/uuid"
)

// AccountRepository defines persistence for accounts
type AccountRepository interface {
	// FindByID returns an account without locking
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	// FindByIDForUpdate returns an account and holds a row lock until the
	// surrounding transaction ends
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Account, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Account, int64, error)
	ExistsByAccountNumber(ctx context.Context, accountNumber string) (bool, error)
	// Create inserts a new account
	Create(ctx context.Context, account *Account) error
	// SaveWithLock persists an account whose Version was incremented once
	// since it was loaded, failing if another writer got there first
	SaveWithLock(ctx context.Context, account *Account) error
	// Delete removes an account together with its journal. An account still
	// referenced by orders or payments fails with NewAccountInUseError.
	Delete(ctx context.Context, id uuid.UUID) error
}

// EntryRepository defines persistence for the append-only ledger journal
type EntryRepository interface {
	Append(ctx context.Context, entry *Entry) error
	FindByAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) ([]Entry, int64, error)
	// ListByAccount returns every entry for an account in posting order
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]Entry, error)
}
