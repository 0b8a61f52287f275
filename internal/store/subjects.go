package store

import (
	"database/sql"
	"fmt"
)

// CreateSubject inserts a new subject under a semester.
func (s *Store) CreateSubject(semesterID int64, name string) (*Subject, error) {
	result, err := s.db.Exec(`
		INSERT INTO subjects (semester_id, name) VALUES (?, ?)
	`, semesterID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to insert subject: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get subject ID: %w", err)
	}

	return s.GetSubject(id)
}

// GetSubject retrieves a subject by id. Returns (nil, nil) if absent.
func (s *Store) GetSubject(id int64) (*Subject, error) {
	sub := &Subject{}
	err := s.db.QueryRow(`
		SELECT id, semester_id, name, created_at FROM subjects WHERE id = ?
	`, id).Scan(&sub.ID, &sub.SemesterID, &sub.Name, &sub.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subject: %w", err)
	}

	return sub, nil
}

// GetSubjectByName retrieves the first subject with the given name under a
// semester. Returns (nil, nil) if absent.
func (s *Store) GetSubjectByName(semesterID int64, name string) (*Subject, error) {
	sub := &Subject{}
	err := s.db.QueryRow(`
		SELECT id, semester_id, name, created_at FROM subjects
		WHERE semester_id = ? AND name = ?
		ORDER BY id LIMIT 1
	`, semesterID, name).Scan(&sub.ID, &sub.SemesterID, &sub.Name, &sub.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subject: %w", err)
	}

	return sub, nil
}

// ListSubjects retrieves a semester's subjects ordered by name
// (id breaks ties so the ordering is deterministic).
func (s *Store) ListSubjects(semesterID int64) ([]*Subject, error) {
	rows, err := s.db.Query(`
		SELECT id, semester_id, name, created_at FROM subjects
		WHERE semester_id = ? ORDER BY name, id
	`, semesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to query subjects: %w", err)
	}
	defer rows.Close()

	var subjects []*Subject
	for rows.Next() {
		sub := &Subject{}
		if err := rows.Scan(&sub.ID, &sub.SemesterID, &sub.Name, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan subject: %w", err)
		}
		subjects = append(subjects, sub)
	}

	return subjects, rows.Err()
}

// RenameSubject updates a subject's name.
func (s *Store) RenameSubject(id int64, name string) error {
	_, err := s.db.Exec("UPDATE subjects SET name = ? WHERE id = ?", name, id)
	if err != nil {
		return fmt.Errorf("failed to rename subject: %w", err)
	}
	return nil
}

// DeleteSubject removes a subject row; lessons below it go with it via
// cascade. Image files must be cleaned up by the caller first.
func (s *Store) DeleteSubject(id int64) error {
	_, err := s.db.Exec("DELETE FROM subjects WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete subject: %w", err)
	}
	return nil
}
