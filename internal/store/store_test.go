package store

import (
	"errors"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreOpenAndMigrate(t *testing.T) {
	s := openTestStore(t)

	version, err := s.getSchemaVersion()
	if err != nil {
		t.Fatalf("failed to get schema version: %v", err)
	}
	if version != currentSchemaVersion {
		t.Errorf("expected schema version %d, got %d", currentSchemaVersion, version)
	}

	tables := []string{"years", "semesters", "subjects", "lessons", "schema_version"}
	for _, table := range tables {
		var count int
		err := s.db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		if err != nil {
			t.Fatalf("failed to query table %s: %v", table, err)
		}
		if count != 1 {
			t.Errorf("expected table %s to exist", table)
		}
	}
}

func TestYearNameTaken(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.CreateYear("2025/2026"); err != nil {
		t.Fatalf("failed to create year: %v", err)
	}

	_, err := s.CreateYear("2025/2026")
	if !errors.Is(err, ErrNameTaken) {
		t.Errorf("expected ErrNameTaken, got %v", err)
	}

	// Renaming onto an existing name is the same violation.
	other, err := s.CreateYear("2026/2027")
	if err != nil {
		t.Fatalf("failed to create year: %v", err)
	}
	if err := s.RenameYear(other.ID, "2025/2026"); !errors.Is(err, ErrNameTaken) {
		t.Errorf("expected ErrNameTaken on rename, got %v", err)
	}
}

func TestListOrderings(t *testing.T) {
	s := openTestStore(t)

	y1, _ := s.CreateYear("2024/2025")
	y2, err := s.CreateYear("2025/2026")
	if err != nil {
		t.Fatalf("failed to create year: %v", err)
	}

	// Years: latest first.
	years, err := s.ListYears()
	if err != nil {
		t.Fatalf("failed to list years: %v", err)
	}
	if len(years) != 2 || years[0].ID != y2.ID || years[1].ID != y1.ID {
		t.Errorf("expected years latest first, got %+v", years)
	}

	// Semesters: creation order.
	s.CreateSemester(y1.ID, "Semester 1")
	s.CreateSemester(y1.ID, "Semester 2")
	semesters, err := s.ListSemesters(y1.ID)
	if err != nil {
		t.Fatalf("failed to list semesters: %v", err)
	}
	if len(semesters) != 2 || semesters[0].Name != "Semester 1" {
		t.Errorf("expected semesters in creation order, got %+v", semesters)
	}

	// Subjects: name ascending.
	s.CreateSubject(semesters[0].ID, "Physics")
	s.CreateSubject(semesters[0].ID, "Algebra")
	subjects, err := s.ListSubjects(semesters[0].ID)
	if err != nil {
		t.Fatalf("failed to list subjects: %v", err)
	}
	if len(subjects) != 2 || subjects[0].Name != "Algebra" || subjects[1].Name != "Physics" {
		t.Errorf("expected subjects by name, got %+v", subjects)
	}
}

func TestCascadeDelete(t *testing.T) {
	s := openTestStore(t)

	year, _ := s.CreateYear("2025/2026")
	sem, _ := s.CreateSemester(year.ID, "Semester 1")
	sub, _ := s.CreateSubject(sem.ID, "Algebra")

	l := &Lesson{SubjectID: sub.ID, Name: "Page 1", ImagePath: "/files/p1.jpg"}
	if err := s.InsertLesson(l); err != nil {
		t.Fatalf("failed to insert lesson: %v", err)
	}

	if err := s.DeleteYear(year.ID); err != nil {
		t.Fatalf("failed to delete year: %v", err)
	}

	for _, q := range []string{
		"SELECT COUNT(*) FROM semesters",
		"SELECT COUNT(*) FROM subjects",
		"SELECT COUNT(*) FROM lessons",
	} {
		var count int
		if err := s.db.QueryRow(q).Scan(&count); err != nil {
			t.Fatalf("count query failed: %v", err)
		}
		if count != 0 {
			t.Errorf("%s: expected 0 after cascade, got %d", q, count)
		}
	}
}

func TestSemesterByNameAcrossYears(t *testing.T) {
	s := openTestStore(t)

	y1, _ := s.CreateYear("2024/2025")
	y2, _ := s.CreateYear("2025/2026")
	s.CreateSemester(y1.ID, "Semester 1")
	s.CreateSemester(y1.ID, "Semester 2")
	s.CreateSemester(y2.ID, "Semester 1")

	matches, err := s.ListSemestersByName("Semester 1")
	if err != nil {
		t.Fatalf("failed to list semesters by name: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("expected 2 matching semesters, got %d", len(matches))
	}
}
