// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/splitbill/internal/models"
)

// ErrNotFound is returned when a record does not exist or belongs to another owner.
var ErrNotFound = errors.New("not found")

// BillRepository persists bills. Every call is scoped to an owner; a bill
// owned by someone else behaves as if it did not exist.
type BillRepository interface {
	// GetBill retrieves a bill with its items, assignments and adjustments.
	GetBill(ctx context.Context, ownerID, billID string) (*models.Bill, error)

	// ListBills returns every bill of the owner, most recent date first.
	ListBills(ctx context.Context, ownerID string) ([]*models.Bill, error)

	// ListBillsByDateRange returns bills whose date falls within [start, end]
	// (both YYYY-MM-DD, inclusive), most recent first. Undated bills are excluded.
	ListBillsByDateRange(ctx context.Context, ownerID, start, end string) ([]*models.Bill, error)

	// SaveBills inserts or replaces bills in a single transaction.
	SaveBills(ctx context.Context, bills []*models.Bill) error

	// DeleteBill removes one bill.
	DeleteBill(ctx context.Context, ownerID, billID string) error

	// DeleteAllBills removes every bill of the owner.
	DeleteAllBills(ctx context.Context, ownerID string) error
}

// PeopleRepository persists the owner's list of people bills can be split with.
type PeopleRepository interface {
	GetPerson(ctx context.Context, ownerID, personID string) (*models.Person, error)
	ListPeople(ctx context.Context, ownerID string) ([]models.Person, error)

	// FindPeopleByName matches names case-insensitively.
	FindPeopleByName(ctx context.Context, ownerID, name string) ([]models.Person, error)

	// SavePeople inserts or renames people in a single transaction.
	SavePeople(ctx context.Context, ownerID string, people []models.Person) error

	DeletePerson(ctx context.Context, ownerID, personID string) error
	DeleteAllPeople(ctx context.Context, ownerID string) error
}

// Store is the full storage backend.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	BillRepository
	PeopleRepository

	// Close releases any resources held by the store.
	Close() error
}
