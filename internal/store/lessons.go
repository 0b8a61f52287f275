package store

import (
	"database/sql"
	"fmt"
)

// InsertLesson inserts a lesson row and fills in its assigned ID.
// An empty ImagePath is stored as NULL (root containers).
func (s *Store) InsertLesson(l *Lesson) error {
	result, err := s.db.Exec(`
		INSERT INTO lessons (subject_id, name, image_path, is_container)
		VALUES (?, ?, NULLIF(?, ''), ?)
	`, l.SubjectID, l.Name, l.ImagePath, l.IsContainer)
	if err != nil {
		return fmt.Errorf("failed to insert lesson: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get lesson ID: %w", err)
	}
	l.ID = id

	return nil
}

// GetLesson retrieves a lesson by id. Returns (nil, nil) if absent.
func (s *Store) GetLesson(id int64) (*Lesson, error) {
	l := &Lesson{}
	err := s.db.QueryRow(`
		SELECT id, subject_id, name, COALESCE(image_path, ''), is_container, created_at
		FROM lessons WHERE id = ?
	`, id).Scan(&l.ID, &l.SubjectID, &l.Name, &l.ImagePath, &l.IsContainer, &l.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson: %w", err)
	}

	return l, nil
}

// ListLessons retrieves every lesson under a subject, root and nested at
// any depth, latest first. Hierarchy-aware filtering is layered on top by
// the callers (see internal/hier and internal/library).
func (s *Store) ListLessons(subjectID int64) ([]*Lesson, error) {
	rows, err := s.db.Query(`
		SELECT id, subject_id, name, COALESCE(image_path, ''), is_container, created_at
		FROM lessons WHERE subject_id = ?
		ORDER BY id DESC
	`, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lessons: %w", err)
	}
	defer rows.Close()

	var lessons []*Lesson
	for rows.Next() {
		l := &Lesson{}
		err := rows.Scan(&l.ID, &l.SubjectID, &l.Name, &l.ImagePath, &l.IsContainer, &l.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		lessons = append(lessons, l)
	}

	return lessons, rows.Err()
}

// UpdateLessonImagePath rewrites a lesson's image_path. An empty path is
// stored as NULL. Used by the importer's reference fix-up passes.
func (s *Store) UpdateLessonImagePath(id int64, imagePath string) error {
	_, err := s.db.Exec(`
		UPDATE lessons SET image_path = NULLIF(?, '') WHERE id = ?
	`, imagePath, id)
	if err != nil {
		return fmt.Errorf("failed to update lesson image path: %w", err)
	}
	return nil
}

// RenameLesson updates a lesson's name.
func (s *Store) RenameLesson(id int64, name string) error {
	_, err := s.db.Exec("UPDATE lessons SET name = ? WHERE id = ?", name, id)
	if err != nil {
		return fmt.Errorf("failed to rename lesson: %w", err)
	}
	return nil
}

// DeleteLesson removes a single lesson row. Deleting an absent id is a
// no-op, which makes the recursive deletion engine idempotent.
func (s *Store) DeleteLesson(id int64) error {
	_, err := s.db.Exec("DELETE FROM lessons WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete lesson: %w", err)
	}
	return nil
}

// CountLessons returns the number of lesson rows under a subject.
func (s *Store) CountLessons(subjectID int64) (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM lessons WHERE subject_id = ?", subjectID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count lessons: %w", err)
	}
	return count, nil
}
