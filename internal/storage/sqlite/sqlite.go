// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/splitbill/internal/models"
	"github.com/mmynk/splitbill/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Pragmas go in the DSN so every pooled connection gets them.
	dsn := "file:" + dbPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const billColumns = `id, owner_id, name_original, name_english, date, time, currency, target_currency,
	sub_total, grand_total, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBill(row rowScanner) (*models.Bill, error) {
	bill := &models.Bill{
		Items:       []models.BillItem{},
		Adjustments: []models.Adjustment{},
	}
	err := row.Scan(
		&bill.ID,
		&bill.OwnerID,
		&bill.Name.Original,
		&bill.Name.English,
		&bill.Date,
		&bill.Time,
		&bill.Currency.Original,
		&bill.Currency.Target,
		&bill.Totals.SubTotal,
		&bill.Totals.GrandTotal,
		&bill.CreatedAt,
		&bill.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return bill, nil
}

// GetBill retrieves a bill by ID, including items, assignments and adjustments.
func (s *SQLiteStore) GetBill(ctx context.Context, ownerID, billID string) (*models.Bill, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+billColumns+" FROM bills WHERE id = ? AND owner_id = ?",
		billID, ownerID,
	)
	bill, err := scanBill(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("bill %s: %w", billID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}

	if err := s.loadLines(ctx, bill); err != nil {
		return nil, err
	}
	return bill, nil
}

// ListBills returns all of the owner's bills, most recent date first.
func (s *SQLiteStore) ListBills(ctx context.Context, ownerID string) ([]*models.Bill, error) {
	return s.listBills(ctx,
		"SELECT "+billColumns+" FROM bills WHERE owner_id = ? ORDER BY date DESC, created_at DESC",
		ownerID,
	)
}

// ListBillsByDateRange returns bills dated within [start, end], most recent date first.
func (s *SQLiteStore) ListBillsByDateRange(ctx context.Context, ownerID, start, end string) ([]*models.Bill, error) {
	return s.listBills(ctx,
		"SELECT "+billColumns+` FROM bills
		WHERE owner_id = ? AND date != '' AND date >= ? AND date <= ?
		ORDER BY date DESC, created_at DESC`,
		ownerID, start, end,
	)
}

func (s *SQLiteStore) listBills(ctx context.Context, query string, args ...any) ([]*models.Bill, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}

	var bills []*models.Bill
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, bill)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}

	// Lines are loaded after the cursor is closed; the pool holds one connection.
	for _, bill := range bills {
		if err := s.loadLines(ctx, bill); err != nil {
			return nil, err
		}
	}
	return bills, nil
}

// loadLines fills in items, their assignments and adjustments, in stored order.
func (s *SQLiteStore) loadLines(ctx context.Context, bill *models.Bill) error {
	itemRows, err := s.db.QueryContext(ctx,
		"SELECT id, name_original, name_english, amount FROM bill_items WHERE bill_id = ? ORDER BY position",
		bill.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get items: %w", err)
	}
	for itemRows.Next() {
		item := models.BillItem{SelectedPeople: []models.Person{}}
		if err := itemRows.Scan(&item.ID, &item.Name.Original, &item.Name.English, &item.Amount); err != nil {
			itemRows.Close()
			return fmt.Errorf("failed to scan item: %w", err)
		}
		bill.Items = append(bill.Items, item)
	}
	itemRows.Close()
	if err := itemRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate items: %w", err)
	}

	assignRows, err := s.db.QueryContext(ctx,
		`SELECT item_position, person_id, person_name FROM item_people
		WHERE bill_id = ? ORDER BY item_position, position`,
		bill.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get item assignments: %w", err)
	}
	for assignRows.Next() {
		var pos int
		var p models.Person
		if err := assignRows.Scan(&pos, &p.ID, &p.Name); err != nil {
			assignRows.Close()
			return fmt.Errorf("failed to scan assignment: %w", err)
		}
		if pos < 0 || pos >= len(bill.Items) {
			continue
		}
		bill.Items[pos].SelectedPeople = append(bill.Items[pos].SelectedPeople, p)
	}
	assignRows.Close()
	if err := assignRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate assignments: %w", err)
	}

	adjRows, err := s.db.QueryContext(ctx,
		`SELECT id, tracking_id, name_original, name_english, amount FROM adjustments
		WHERE bill_id = ? ORDER BY position`,
		bill.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get adjustments: %w", err)
	}
	for adjRows.Next() {
		var adj models.Adjustment
		if err := adjRows.Scan(&adj.ID, &adj.TrackingID, &adj.Name.Original, &adj.Name.English, &adj.Amount); err != nil {
			adjRows.Close()
			return fmt.Errorf("failed to scan adjustment: %w", err)
		}
		bill.Adjustments = append(bill.Adjustments, adj)
	}
	adjRows.Close()
	if err := adjRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate adjustments: %w", err)
	}

	return nil
}

// SaveBills upserts bills and replaces their lines in one transaction.
// Missing IDs and timestamps are filled in on the passed bills.
func (s *SQLiteStore) SaveBills(ctx context.Context, bills []*models.Bill) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	for _, bill := range bills {
		if bill.ID == "" {
			bill.ID = uuid.New().String()
		}
		if bill.CreatedAt == 0 {
			bill.CreatedAt = now
		}
		if bill.UpdatedAt == 0 {
			bill.UpdatedAt = bill.CreatedAt
		}

		var owner string
		err := tx.QueryRowContext(ctx, "SELECT owner_id FROM bills WHERE id = ?", bill.ID).Scan(&owner)
		switch {
		case errors.Is(err, sql.ErrNoRows):
		case err != nil:
			return fmt.Errorf("failed to check bill owner: %w", err)
		case owner != bill.OwnerID:
			return fmt.Errorf("bill %s: %w", bill.ID, storage.ErrNotFound)
		}

		if err := saveBill(ctx, tx, bill); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func saveBill(ctx context.Context, tx *sql.Tx, bill *models.Bill) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO bills (`+billColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name_original = excluded.name_original,
			name_english = excluded.name_english,
			date = excluded.date,
			time = excluded.time,
			currency = excluded.currency,
			target_currency = excluded.target_currency,
			sub_total = excluded.sub_total,
			grand_total = excluded.grand_total,
			updated_at = excluded.updated_at`,
		bill.ID, bill.OwnerID, bill.Name.Original, bill.Name.English, bill.Date, bill.Time,
		bill.Currency.Original, bill.Currency.Target,
		bill.Totals.SubTotal.String(), bill.Totals.GrandTotal.String(),
		bill.CreatedAt, bill.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert bill: %w", err)
	}

	for _, table := range []string{"item_people", "bill_items", "adjustments"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE bill_id = ?", bill.ID); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for i, item := range bill.Items {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO bill_items (bill_id, position, id, name_original, name_english, amount) VALUES (?, ?, ?, ?, ?, ?)",
			bill.ID, i, item.ID, item.Name.Original, item.Name.English, item.Amount.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}

		for j, p := range item.SelectedPeople {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO item_people (bill_id, item_position, position, person_id, person_name) VALUES (?, ?, ?, ?, ?)",
				bill.ID, i, j, p.ID, p.Name,
			)
			if err != nil {
				return fmt.Errorf("failed to insert item assignment: %w", err)
			}
		}
	}

	for i, adj := range bill.Adjustments {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO adjustments (bill_id, position, id, tracking_id, name_original, name_english, amount)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			bill.ID, i, adj.ID, adj.TrackingID, adj.Name.Original, adj.Name.English, adj.Amount.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert adjustment: %w", err)
		}
	}

	return nil
}

// DeleteBill removes a bill and, through cascades, its lines.
func (s *SQLiteStore) DeleteBill(ctx context.Context, ownerID, billID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM bills WHERE id = ? AND owner_id = ?", billID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("bill %s: %w", billID, storage.ErrNotFound)
	}
	return nil
}

// DeleteAllBills removes every bill of the owner.
func (s *SQLiteStore) DeleteAllBills(ctx context.Context, ownerID string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM bills WHERE owner_id = ?", ownerID); err != nil {
		return fmt.Errorf("failed to delete bills: %w", err)
	}
	return nil
}
