package archive

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arezki-Cherfouh/Lesson-Vault-sub000/internal/hier"
	"github.com/Arezki-Cherfouh/Lesson-Vault-sub000/internal/library"
	"github.com/Arezki-Cherfouh/Lesson-Vault-sub000/internal/store"
)

func importArchive(t *testing.T, lib *library.Library, archivePath string) *ImportResult {
	t.Helper()
	importer := NewImporter(&ImporterConfig{Store: lib.Store(), Files: lib.Files()})
	result, err := importer.Import(archivePath)
	require.NoError(t, err)
	return result
}

// buildNestedSource creates the reference tree:
// Week 1 (root folder) > {Page 1 (leaf), Day A (folder) > Page 2 (leaf)}
func buildNestedSource(t *testing.T, lib *library.Library) (week, page1, day, page2 *store.Lesson) {
	t.Helper()
	sub := scaffold(t, lib, "2025/2026", "Semester 1", "Algebra")

	var err error
	week, err = lib.AddFolder(sub.ID, "Week 1")
	require.NoError(t, err)
	page1, err = lib.AddPhotoToFolder(week, "Page 1", photo(t, lib, "p1.jpg"))
	require.NoError(t, err)
	day, err = lib.AddSubfolder(week, "Day A")
	require.NoError(t, err)
	page2, err = lib.AddPhotoToFolder(day, "Page 2", photo(t, lib, "p2.jpg"))
	require.NoError(t, err)
	return
}

// destLessonsByName indexes the destination subject's lessons by name.
func destLessonsByName(t *testing.T, lib *library.Library) map[string]*store.Lesson {
	t.Helper()
	years, err := lib.Store().ListYears()
	require.NoError(t, err)
	require.Len(t, years, 1)
	sems, err := lib.Store().ListSemesters(years[0].ID)
	require.NoError(t, err)
	require.Len(t, sems, 1)
	subs, err := lib.Store().ListSubjects(sems[0].ID)
	require.NoError(t, err)
	require.Len(t, subs, 1)

	lessons, err := lib.Store().ListLessons(subs[0].ID)
	require.NoError(t, err)

	byName := make(map[string]*store.Lesson)
	for _, l := range lessons {
		byName[l.Name] = l
	}
	return byName
}

func TestImportRemapsNestedReferences(t *testing.T) {
	src := newTestVault(t)
	buildNestedSource(t, src)
	_, archivePath := exportVault(t, src)

	dst := newTestVault(t)
	result := importArchive(t, dst, archivePath)
	assert.Equal(t, 4, result.Lessons)
	assert.Zero(t, result.Skipped)

	byName := destLessonsByName(t, dst)
	week := byName["Week 1"]
	page1 := byName["Page 1"]
	day := byName["Day A"]
	page2 := byName["Page 2"]
	require.NotNil(t, week)
	require.NotNil(t, page1)
	require.NotNil(t, day)
	require.NotNil(t, page2)

	// Root container: no encoded key at all.
	assert.True(t, week.IsContainer)
	assert.Empty(t, week.ImagePath)

	// Page 1 hangs off the remapped Week 1 id and points at a fresh file.
	assert.True(t, hier.IsDirectChildOf(page1.ImagePath, week.ID),
		"got %q, want child of %d", page1.ImagePath, week.ID)
	freshP1 := hier.StripAllPrefixes(page1.ImagePath)
	assert.True(t, dst.Files().Exists(freshP1))

	// Day A is a folder marker under the remapped Week 1 id.
	assert.Equal(t, hier.EncodeFolderMarker(week.ID), day.ImagePath)

	// Page 2 hangs off the remapped Day A id, not Week 1's.
	assert.True(t, hier.IsDirectChildOf(page2.ImagePath, day.ID),
		"got %q, want child of %d", page2.ImagePath, day.ID)

	// Blob bytes made it through intact.
	data, err := dst.Files().Read(freshP1)
	require.NoError(t, err)
	assert.Equal(t, []byte("bytes-of-p1.jpg"), data)
	data, err = dst.Files().Read(hier.StripAllPrefixes(page2.ImagePath))
	require.NoError(t, err)
	assert.Equal(t, []byte("bytes-of-p2.jpg"), data)
}

func TestImportRoundTripCounts(t *testing.T) {
	src := newTestVault(t)
	buildNestedSource(t, src)
	// A second year with a root leaf, to cover more than one branch.
	sub2 := scaffold(t, src, "2024/2025", "Semester 1", "History")
	_, err := src.AddPhotoLesson(sub2.ID, "Map", photo(t, src, "map.png"))
	require.NoError(t, err)

	exportResult, archivePath := exportVault(t, src)

	dst := newTestVault(t)
	importResult := importArchive(t, dst, archivePath)

	assert.Equal(t, exportResult.Years, importResult.YearsCreated)
	assert.Equal(t, exportResult.Semesters, importResult.SemestersCreated)
	assert.Equal(t, exportResult.Subjects, importResult.SubjectsCreated)
	assert.Equal(t, exportResult.Lessons, importResult.Lessons)

	years, err := dst.Store().ListYears()
	require.NoError(t, err)
	assert.Len(t, years, 2)
}

func TestImportTwiceMergesContainersNotLessons(t *testing.T) {
	src := newTestVault(t)
	buildNestedSource(t, src)
	_, archivePath := exportVault(t, src)

	dst := newTestVault(t)
	first := importArchive(t, dst, archivePath)
	second := importArchive(t, dst, archivePath)

	// Second pass reuses every year/semester/subject by name.
	assert.Zero(t, second.YearsCreated)
	assert.Zero(t, second.SemestersCreated)
	assert.Zero(t, second.SubjectsCreated)

	years, err := dst.Store().ListYears()
	require.NoError(t, err)
	require.Len(t, years, 1)
	sems, err := dst.Store().ListSemesters(years[0].ID)
	require.NoError(t, err)
	require.Len(t, sems, 1)
	subs, err := dst.Store().ListSubjects(sems[0].ID)
	require.NoError(t, err)
	require.Len(t, subs, 1)

	// Lessons are never deduplicated.
	count, err := dst.Store().CountLessons(subs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, first.Lessons+second.Lessons, count)
	assert.Equal(t, 8, count)
}

func TestImportDanglingParentKeptVerbatim(t *testing.T) {
	src := newTestVault(t)
	sub := scaffold(t, src, "2025/2026", "Semester 1", "Algebra")

	// A leaf claiming a parent that exists nowhere in the export.
	stored := photo(t, src, "orphan.jpg")
	orphan := &store.Lesson{
		SubjectID: sub.ID,
		Name:      "Orphan",
		ImagePath: hier.EncodeLeaf(9999, stored),
	}
	require.NoError(t, src.Store().InsertLesson(orphan))

	_, archivePath := exportVault(t, src)

	dst := newTestVault(t)
	result := importArchive(t, dst, archivePath)
	assert.Equal(t, 1, result.Lessons)

	byName := destLessonsByName(t, dst)
	imported := byName["Orphan"]
	require.NotNil(t, imported)

	// The unmapped parent id survives; the row imports as an orphaned
	// nested item rather than being rejected.
	assert.True(t, strings.HasPrefix(imported.ImagePath, "FC:9999:"),
		"got %q", imported.ImagePath)
}

func TestImportSkipsMissingBlob(t *testing.T) {
	src := newTestVault(t)
	sub := scaffold(t, src, "2025/2026", "Semester 1", "Algebra")
	leaf, err := src.AddPhotoLesson(sub.ID, "Cover", photo(t, src, "a.jpg"))
	require.NoError(t, err)
	// Remove the file after insert so export writes no blob for it.
	require.NoError(t, src.Files().Delete(leaf.ImagePath))

	_, archivePath := exportVault(t, src)

	dst := newTestVault(t)
	result := importArchive(t, dst, archivePath)
	assert.Zero(t, result.Lessons)
	assert.Equal(t, 1, result.Skipped)
}

func TestImportMissingManifestAborts(t *testing.T) {
	// A zip with blobs but no manifest is unusable as a whole.
	archivePath := filepath.Join(t.TempDir(), "broken.zip")
	f, err := os.Create(archivePath)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("files/1.jpg")
	require.NoError(t, err)
	_, err = w.Write([]byte("bytes"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	dst := newTestVault(t)
	importer := NewImporter(&ImporterConfig{Store: dst.Store(), Files: dst.Files()})
	_, err = importer.Import(archivePath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ManifestName)
}

func TestImportUnreadableArchiveAborts(t *testing.T) {
	archivePath := filepath.Join(t.TempDir(), "garbage.zip")
	require.NoError(t, os.WriteFile(archivePath, []byte("not a zip"), 0o644))

	dst := newTestVault(t)
	importer := NewImporter(&ImporterConfig{Store: dst.Store(), Files: dst.Files()})
	_, err := importer.Import(archivePath)
	require.Error(t, err)
}
