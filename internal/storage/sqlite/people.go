package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitbill/internal/models"
	"github.com/mmynk/splitbill/internal/storage"
)

// GetPerson retrieves one of the owner's people.
func (s *SQLiteStore) GetPerson(ctx context.Context, ownerID, personID string) (*models.Person, error) {
	p := &models.Person{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name FROM people WHERE id = ? AND owner_id = ?",
		personID, ownerID,
	).Scan(&p.ID, &p.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("person %s: %w", personID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get person: %w", err)
	}
	return p, nil
}

// ListPeople returns the owner's people ordered by name.
func (s *SQLiteStore) ListPeople(ctx context.Context, ownerID string) ([]models.Person, error) {
	return s.queryPeople(ctx,
		"SELECT id, name FROM people WHERE owner_id = ? ORDER BY name COLLATE NOCASE, created_at",
		ownerID,
	)
}

// FindPeopleByName returns the owner's people whose name matches exactly,
// ignoring case and surrounding spaces.
func (s *SQLiteStore) FindPeopleByName(ctx context.Context, ownerID, name string) ([]models.Person, error) {
	return s.queryPeople(ctx,
		"SELECT id, name FROM people WHERE owner_id = ? AND name = ? COLLATE NOCASE ORDER BY created_at",
		ownerID, strings.TrimSpace(name),
	)
}

func (s *SQLiteStore) queryPeople(ctx context.Context, query string, args ...any) ([]models.Person, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query people: %w", err)
	}
	defer rows.Close()

	people := []models.Person{}
	for rows.Next() {
		var p models.Person
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating people: %w", err)
	}
	return people, nil
}

// SavePeople inserts new people and renames existing ones. People without an
// ID are given one.
func (s *SQLiteStore) SavePeople(ctx context.Context, ownerID string, people []models.Person) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	for i := range people {
		p := &people[i]
		if p.ID == "" {
			p.ID = uuid.New().String()
		}

		var owner string
		err := tx.QueryRowContext(ctx, "SELECT owner_id FROM people WHERE id = ?", p.ID).Scan(&owner)
		switch {
		case errors.Is(err, sql.ErrNoRows):
		case err != nil:
			return fmt.Errorf("failed to check person owner: %w", err)
		case owner != ownerID:
			return fmt.Errorf("person %s: %w", p.ID, storage.ErrNotFound)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO people (id, owner_id, name, created_at) VALUES (?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET name = excluded.name`,
			p.ID, ownerID, p.Name, now,
		)
		if err != nil {
			return fmt.Errorf("failed to save person: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeletePerson removes a person from the owner's list. Bills that reference
// the person keep their copy of the name.
func (s *SQLiteStore) DeletePerson(ctx context.Context, ownerID, personID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM people WHERE id = ? AND owner_id = ?", personID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete person: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete person: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("person %s: %w", personID, storage.ErrNotFound)
	}
	return nil
}

// DeleteAllPeople clears the owner's people list.
func (s *SQLiteStore) DeleteAllPeople(ctx context.Context, ownerID string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM people WHERE owner_id = ?", ownerID); err != nil {
		return fmt.Errorf("failed to delete people: %w", err)
	}
	return nil
}
