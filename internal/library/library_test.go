package library

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"github.com/Arezki-Cherfouh/Lesson-Vault-sub000/internal/hier"
	"github.com/Arezki-Cherfouh/Lesson-Vault-sub000/internal/media"
	"github.com/Arezki-Cherfouh/Lesson-Vault-sub000/internal/store"
)

func newTestLibrary(t *testing.T) *Library {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return New(s, media.New(afero.NewMemMapFs(), "/vault"))
}

// testSubject creates year/semester/subject scaffolding.
func testSubject(t *testing.T, lib *Library) *store.Subject {
	t.Helper()
	year, err := lib.Store().CreateYear("2025/2026")
	if err != nil {
		t.Fatalf("failed to create year: %v", err)
	}
	sem, err := lib.Store().CreateSemester(year.ID, "Semester 1")
	if err != nil {
		t.Fatalf("failed to create semester: %v", err)
	}
	sub, err := lib.Store().CreateSubject(sem.ID, "Algebra")
	if err != nil {
		t.Fatalf("failed to create subject: %v", err)
	}
	return sub
}

func TestSeedYear(t *testing.T) {
	lib := newTestLibrary(t)

	year, err := lib.SeedYear("2025/2026")
	if err != nil {
		t.Fatalf("failed to seed year: %v", err)
	}

	semesters, err := lib.Store().ListSemesters(year.ID)
	if err != nil {
		t.Fatalf("failed to list semesters: %v", err)
	}
	if len(semesters) != SeededSemesters {
		t.Fatalf("expected %d seeded semesters, got %d", SeededSemesters, len(semesters))
	}
	if semesters[0].Name != "Semester 1" || semesters[2].Name != "Semester 3" {
		t.Errorf("unexpected semester names: %+v", semesters)
	}
}

func TestRootLessonsAndDirectChildren(t *testing.T) {
	lib := newTestLibrary(t)
	sub := testSubject(t, lib)

	rootLeaf, err := lib.AddPhotoLesson(sub.ID, "Cover", sourceImage(t, lib, "cover.jpg"))
	if err != nil {
		t.Fatalf("failed to add root leaf: %v", err)
	}
	week, err := lib.AddFolder(sub.ID, "Week 1")
	if err != nil {
		t.Fatalf("failed to add folder: %v", err)
	}
	page1, err := lib.AddPhotoToFolder(week, "Page 1", sourceImage(t, lib, "p1.jpg"))
	if err != nil {
		t.Fatalf("failed to add nested leaf: %v", err)
	}
	day, err := lib.AddSubfolder(week, "Day A")
	if err != nil {
		t.Fatalf("failed to add subfolder: %v", err)
	}
	page2, err := lib.AddPhotoToFolder(day, "Page 2", sourceImage(t, lib, "p2.jpg"))
	if err != nil {
		t.Fatalf("failed to add grandchild leaf: %v", err)
	}

	roots, err := lib.RootLessons(sub.ID)
	if err != nil {
		t.Fatalf("failed to list roots: %v", err)
	}
	if len(roots) != 2 {
		t.Fatalf("expected 2 root items, got %d", len(roots))
	}
	for _, r := range roots {
		if r.ID != rootLeaf.ID && r.ID != week.ID {
			t.Errorf("unexpected root item %+v", r)
		}
	}

	// Direct children of Week 1: Page 1 and Day A, but never Page 2.
	children, err := lib.DirectChildren(week)
	if err != nil {
		t.Fatalf("failed to list children: %v", err)
	}
	if len(children) != 2 {
		t.Fatalf("expected 2 direct children, got %d", len(children))
	}
	for _, c := range children {
		if c.ID == page2.ID {
			t.Error("grandchild leaked into direct children")
		}
	}

	grandchildren, err := lib.DirectChildren(day)
	if err != nil {
		t.Fatalf("failed to list grandchildren: %v", err)
	}
	if len(grandchildren) != 1 || grandchildren[0].ID != page2.ID {
		t.Errorf("expected only Page 2 under Day A, got %+v", grandchildren)
	}

	// Encoded keys reference the immediate parent only.
	if !hier.IsDirectChildOf(page1.ImagePath, week.ID) {
		t.Errorf("Page 1 key %q should reference Week 1", page1.ImagePath)
	}
	if !hier.IsDirectChildOf(page2.ImagePath, day.ID) {
		t.Errorf("Page 2 key %q should reference Day A", page2.ImagePath)
	}
}

func TestDeepDeleteContainer(t *testing.T) {
	lib := newTestLibrary(t)
	sub := testSubject(t, lib)
	fsys := lib.Files()

	// Week 1 > {Page 1, Day A > Page 2}
	week, _ := lib.AddFolder(sub.ID, "Week 1")
	page1, _ := lib.AddPhotoToFolder(week, "Page 1", sourceImage(t, lib, "p1.jpg"))
	day, _ := lib.AddSubfolder(week, "Day A")
	page2, _ := lib.AddPhotoToFolder(day, "Page 2", sourceImage(t, lib, "p2.jpg"))

	p1File := hier.StripAllPrefixes(page1.ImagePath)
	p2File := hier.StripAllPrefixes(page2.ImagePath)
	if !fsys.Exists(p1File) || !fsys.Exists(p2File) {
		t.Fatal("expected both leaf files on disk before delete")
	}

	if err := lib.DeepDelete(week.ID); err != nil {
		t.Fatalf("deep delete failed: %v", err)
	}

	// N+1 rows gone: the container plus its 3 transitive descendants.
	count, err := lib.Store().CountLessons(sub.ID)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 lessons after deep delete, got %d", count)
	}
	for _, id := range []int64{week.ID, page1.ID, day.ID, page2.ID} {
		l, _ := lib.Store().GetLesson(id)
		if l != nil {
			t.Errorf("lesson %d still present", id)
		}
	}

	if fsys.Exists(p1File) || fsys.Exists(p2File) {
		t.Error("expected leaf files removed")
	}
}

func TestDeepDeleteAbsentIsNoop(t *testing.T) {
	lib := newTestLibrary(t)

	if err := lib.DeepDelete(9999); err != nil {
		t.Errorf("deep delete of absent lesson should be a no-op, got %v", err)
	}
}

func TestDeepDeleteSurvivesMissingFile(t *testing.T) {
	lib := newTestLibrary(t)
	sub := testSubject(t, lib)

	leaf, _ := lib.AddPhotoLesson(sub.ID, "Cover", sourceImage(t, lib, "cover.jpg"))
	// Pull the file out from under the row; the store stays authoritative.
	lib.Files().Delete(leaf.ImagePath)

	if err := lib.DeepDelete(leaf.ID); err != nil {
		t.Fatalf("deep delete should swallow missing files, got %v", err)
	}
	if l, _ := lib.Store().GetLesson(leaf.ID); l != nil {
		t.Error("row should be gone despite missing file")
	}
}

func TestClearContainerKeepsContainer(t *testing.T) {
	lib := newTestLibrary(t)
	sub := testSubject(t, lib)

	week, _ := lib.AddFolder(sub.ID, "Week 1")
	lib.AddPhotoToFolder(week, "Page 1", sourceImage(t, lib, "p1.jpg"))
	day, _ := lib.AddSubfolder(week, "Day A")
	lib.AddPhotoToFolder(day, "Page 2", sourceImage(t, lib, "p2.jpg"))

	if err := lib.ClearContainer(week); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	count, _ := lib.Store().CountLessons(sub.ID)
	if count != 1 {
		t.Errorf("expected only the container to remain, got %d rows", count)
	}
	l, _ := lib.Store().GetLesson(week.ID)
	if l == nil {
		t.Error("container itself must survive a clear")
	}
}

func TestCreateSubjectPropagateSiblings(t *testing.T) {
	lib := newTestLibrary(t)

	year, _ := lib.SeedYear("2025/2026")
	semesters, _ := lib.Store().ListSemesters(year.ID)

	_, err := lib.CreateSubject(semesters[0].ID, "Algebra", PropagateSiblings)
	if err != nil {
		t.Fatalf("failed to create subject: %v", err)
	}

	for _, sem := range semesters {
		got, err := lib.Store().GetSubjectByName(sem.ID, "Algebra")
		if err != nil {
			t.Fatalf("lookup failed: %v", err)
		}
		if got == nil {
			t.Errorf("expected Algebra in semester %d", sem.ID)
		}
	}
}

func TestCreateSubjectPropagateAllYears(t *testing.T) {
	lib := newTestLibrary(t)

	y1, _ := lib.SeedYear("2024/2025")
	y2, _ := lib.SeedYear("2025/2026")
	sems1, _ := lib.Store().ListSemesters(y1.ID)
	sems2, _ := lib.Store().ListSemesters(y2.ID)

	// Propagates to name-matching semesters across years, not to the
	// other semesters of the same year.
	_, err := lib.CreateSubject(sems1[0].ID, "Physics", PropagateAllYears)
	if err != nil {
		t.Fatalf("failed to create subject: %v", err)
	}

	if got, _ := lib.Store().GetSubjectByName(sems2[0].ID, "Physics"); got == nil {
		t.Error("expected Physics in the matching semester of the other year")
	}
	if got, _ := lib.Store().GetSubjectByName(sems1[1].ID, "Physics"); got != nil {
		t.Error("did not expect Physics in a non-matching sibling semester")
	}
}

func TestDeleteYearCleansFiles(t *testing.T) {
	lib := newTestLibrary(t)
	sub := testSubject(t, lib)

	leaf, _ := lib.AddPhotoLesson(sub.ID, "Cover", sourceImage(t, lib, "cover.jpg"))
	week, _ := lib.AddFolder(sub.ID, "Week 1")
	nested, _ := lib.AddPhotoToFolder(week, "Page 1", sourceImage(t, lib, "p1.jpg"))

	years, _ := lib.Store().ListYears()
	if err := lib.DeleteYear(years[0].ID); err != nil {
		t.Fatalf("failed to delete year: %v", err)
	}

	if lib.Files().Exists(leaf.ImagePath) {
		t.Error("root leaf file should be gone")
	}
	if lib.Files().Exists(hier.StripAllPrefixes(nested.ImagePath)) {
		t.Error("nested leaf file should be gone")
	}
	if count, _ := lib.Store().CountLessons(sub.ID); count != 0 {
		t.Error("lesson rows should be gone via cascade")
	}
}

// sourceImage writes a fake photo through the library's own filesystem.
func sourceImage(t *testing.T, lib *Library, name string) string {
	t.Helper()
	path := "/photos/" + name
	if err := lib.Files().Write(path, []byte(fmt.Sprintf("bytes-of-%s", name))); err != nil {
		t.Fatalf("failed to write source image: %v", err)
	}
	return path
}
