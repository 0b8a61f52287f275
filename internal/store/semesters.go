package store

import (
	"database/sql"
	"fmt"
)

// CreateSemester inserts a new semester under a year.
func (s *Store) CreateSemester(yearID int64, name string) (*Semester, error) {
	result, err := s.db.Exec(`
		INSERT INTO semesters (year_id, name) VALUES (?, ?)
	`, yearID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to insert semester: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get semester ID: %w", err)
	}

	return s.GetSemester(id)
}

// GetSemester retrieves a semester by id. Returns (nil, nil) if absent.
func (s *Store) GetSemester(id int64) (*Semester, error) {
	sem := &Semester{}
	err := s.db.QueryRow(`
		SELECT id, year_id, name, created_at FROM semesters WHERE id = ?
	`, id).Scan(&sem.ID, &sem.YearID, &sem.Name, &sem.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get semester: %w", err)
	}

	return sem, nil
}

// GetSemesterByName retrieves the first semester with the given name under
// a year (names are not unique within a year; creation order wins).
// Returns (nil, nil) if absent.
func (s *Store) GetSemesterByName(yearID int64, name string) (*Semester, error) {
	sem := &Semester{}
	err := s.db.QueryRow(`
		SELECT id, year_id, name, created_at FROM semesters
		WHERE year_id = ? AND name = ?
		ORDER BY id LIMIT 1
	`, yearID, name).Scan(&sem.ID, &sem.YearID, &sem.Name, &sem.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get semester: %w", err)
	}

	return sem, nil
}

// ListSemesters retrieves a year's semesters in creation order.
func (s *Store) ListSemesters(yearID int64) ([]*Semester, error) {
	rows, err := s.db.Query(`
		SELECT id, year_id, name, created_at FROM semesters
		WHERE year_id = ? ORDER BY id
	`, yearID)
	if err != nil {
		return nil, fmt.Errorf("failed to query semesters: %w", err)
	}
	defer rows.Close()

	var semesters []*Semester
	for rows.Next() {
		sem := &Semester{}
		if err := rows.Scan(&sem.ID, &sem.YearID, &sem.Name, &sem.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan semester: %w", err)
		}
		semesters = append(semesters, sem)
	}

	return semesters, rows.Err()
}

// ListSemestersByName retrieves every semester with the given name across
// all years, in creation order. Used by subject propagation.
func (s *Store) ListSemestersByName(name string) ([]*Semester, error) {
	rows, err := s.db.Query(`
		SELECT id, year_id, name, created_at FROM semesters
		WHERE name = ? ORDER BY id
	`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query semesters: %w", err)
	}
	defer rows.Close()

	var semesters []*Semester
	for rows.Next() {
		sem := &Semester{}
		if err := rows.Scan(&sem.ID, &sem.YearID, &sem.Name, &sem.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan semester: %w", err)
		}
		semesters = append(semesters, sem)
	}

	return semesters, rows.Err()
}

// RenameSemester updates a semester's name.
func (s *Store) RenameSemester(id int64, name string) error {
	_, err := s.db.Exec("UPDATE semesters SET name = ? WHERE id = ?", name, id)
	if err != nil {
		return fmt.Errorf("failed to rename semester: %w", err)
	}
	return nil
}

// DeleteSemester removes a semester row; subjects and lessons below it go
// with it via cascade. Image files must be cleaned up by the caller first.
func (s *Store) DeleteSemester(id int64) error {
	_, err := s.db.Exec("DELETE FROM semesters WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete semester: %w", err)
	}
	return nil
}
