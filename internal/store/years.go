package store

import (
	"database/sql"
	"fmt"
)

// CreateYear inserts a new year. A duplicate name returns ErrNameTaken.
func (s *Store) CreateYear(name string) (*Year, error) {
	result, err := s.db.Exec("INSERT INTO years (name) VALUES (?)", name)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("year %q: %w", name, ErrNameTaken)
		}
		return nil, fmt.Errorf("failed to insert year: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get year ID: %w", err)
	}

	return s.GetYear(id)
}

// GetYear retrieves a year by id. Returns (nil, nil) if absent.
func (s *Store) GetYear(id int64) (*Year, error) {
	y := &Year{}
	err := s.db.QueryRow(`
		SELECT id, name, created_at FROM years WHERE id = ?
	`, id).Scan(&y.ID, &y.Name, &y.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get year: %w", err)
	}

	return y, nil
}

// GetYearByName retrieves a year by its unique name. Returns (nil, nil) if absent.
func (s *Store) GetYearByName(name string) (*Year, error) {
	y := &Year{}
	err := s.db.QueryRow(`
		SELECT id, name, created_at FROM years WHERE name = ?
	`, name).Scan(&y.ID, &y.Name, &y.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get year: %w", err)
	}

	return y, nil
}

// ListYears retrieves all years, latest first.
func (s *Store) ListYears() ([]*Year, error) {
	rows, err := s.db.Query(`
		SELECT id, name, created_at FROM years ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query years: %w", err)
	}
	defer rows.Close()

	var years []*Year
	for rows.Next() {
		y := &Year{}
		if err := rows.Scan(&y.ID, &y.Name, &y.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan year: %w", err)
		}
		years = append(years, y)
	}

	return years, rows.Err()
}

// RenameYear updates a year's name. A duplicate name returns ErrNameTaken.
func (s *Store) RenameYear(id int64, name string) error {
	_, err := s.db.Exec("UPDATE years SET name = ? WHERE id = ?", name, id)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("year %q: %w", name, ErrNameTaken)
		}
		return fmt.Errorf("failed to rename year: %w", err)
	}
	return nil
}

// DeleteYear removes a year row. Semesters, subjects and lessons below it
// are removed by foreign-key cascade; associated image files are NOT - the
// caller must clean those up first (see library.DeleteYear).
func (s *Store) DeleteYear(id int64) error {
	_, err := s.db.Exec("DELETE FROM years WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete year: %w", err)
	}
	return nil
}
