package archive

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/Arezki-Cherfouh/Lesson-Vault-sub000/internal/hier"
	"github.com/Arezki-Cherfouh/Lesson-Vault-sub000/internal/media"
	"github.com/Arezki-Cherfouh/Lesson-Vault-sub000/internal/store"
	"github.com/Arezki-Cherfouh/Lesson-Vault-sub000/internal/util"
)

// Importer merges an exported archive into a destination store whose
// identifiers are unrelated to the source's. Years, semesters and
// subjects are matched by name within their scope; lessons are always
// inserted fresh, with every encoded parent reference rewritten to the
// newly assigned destination ids.
type Importer struct {
	store        *store.Store
	files        *media.FileStore
	showProgress bool
}

// ImporterConfig holds importer configuration
type ImporterConfig struct {
	Store        *store.Store
	Files        *media.FileStore
	ShowProgress bool
}

// NewImporter creates an Importer.
func NewImporter(cfg *ImporterConfig) *Importer {
	return &Importer{
		store:        cfg.Store,
		files:        cfg.Files,
		showProgress: cfg.ShowProgress,
	}
}

// ImportResult summarizes one import run.
type ImportResult struct {
	YearsCreated     int
	SemestersCreated int
	SubjectsCreated  int
	Lessons          int
	Skipped          int
}

// Import merges the archive at archivePath into the destination store.
// Per-lesson failures are skipped; an unreadable archive or a missing
// manifest aborts the whole operation.
func (im *Importer) Import(archivePath string) (*ImportResult, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	defer zr.Close()

	manifest, blobs, err := readArchive(&zr.Reader)
	if err != nil {
		return nil, err
	}

	var bar *progressbar.ProgressBar
	if im.showProgress {
		bar = progressbar.NewOptions(-1,
			progressbar.OptionSetDescription("Importing"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("lessons"),
			progressbar.OptionThrottle(200*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)
	}

	result := &ImportResult{}

	for _, ye := range manifest.Years {
		year, err := im.findOrCreateYear(ye.Name, result)
		if err != nil {
			return nil, err
		}
		for _, se := range ye.Semesters {
			sem, err := im.findOrCreateSemester(year.ID, se.Name, result)
			if err != nil {
				return nil, err
			}
			for _, sube := range se.Subjects {
				sub, err := im.findOrCreateSubject(sem.ID, sube.Name, result)
				if err != nil {
					return nil, err
				}
				n := im.importSubject(year, sem, sub, sube.Lessons, blobs, result)
				if bar != nil {
					bar.Add(n)
				}
			}
		}
	}

	if bar != nil {
		bar.Finish()
	}

	return result, nil
}

// readArchive locates and parses the manifest and indexes the blob
// entries by name.
func readArchive(zr *zip.Reader) (*Manifest, map[string]*zip.File, error) {
	var manifestFile *zip.File
	blobs := make(map[string]*zip.File)
	for _, f := range zr.File {
		if f.Name == ManifestName {
			manifestFile = f
			continue
		}
		blobs[f.Name] = f
	}
	if manifestFile == nil {
		return nil, nil, fmt.Errorf("archive has no %s", ManifestName)
	}

	rc, err := manifestFile.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open manifest: %w", err)
	}
	defer rc.Close()

	manifest := &Manifest{}
	if err := json.NewDecoder(rc).Decode(manifest); err != nil {
		return nil, nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	return manifest, blobs, nil
}

func (im *Importer) findOrCreateYear(name string, result *ImportResult) (*store.Year, error) {
	year, err := im.store.GetYearByName(name)
	if err != nil {
		return nil, err
	}
	if year != nil {
		return year, nil
	}
	year, err = im.store.CreateYear(name)
	if err != nil {
		return nil, err
	}
	result.YearsCreated++
	return year, nil
}

func (im *Importer) findOrCreateSemester(yearID int64, name string, result *ImportResult) (*store.Semester, error) {
	sem, err := im.store.GetSemesterByName(yearID, name)
	if err != nil {
		return nil, err
	}
	if sem != nil {
		return sem, nil
	}
	sem, err = im.store.CreateSemester(yearID, name)
	if err != nil {
		return nil, err
	}
	result.SemestersCreated++
	return sem, nil
}

func (im *Importer) findOrCreateSubject(semesterID int64, name string, result *ImportResult) (*store.Subject, error) {
	sub, err := im.store.GetSubjectByName(semesterID, name)
	if err != nil {
		return nil, err
	}
	if sub != nil {
		return sub, nil
	}
	sub, err = im.store.CreateSubject(semesterID, name)
	if err != nil {
		return nil, err
	}
	result.SubjectsCreated++
	return sub, nil
}

// importSubject materializes one subject's lessons in three passes:
//
//  1. insert every row (root containers first), building the
//     source-id -> destination-id map and writing leaf blobs to fresh
//     destination paths
//  2. rewrite nested leaf image_path values: remapped prefix chain plus
//     the fresh file path from pass 1
//  3. rewrite nested container markers through the same map
//
// Returns the number of source lessons walked.
func (im *Importer) importSubject(year *store.Year, sem *store.Semester, sub *store.Subject,
	lessons []LessonEntry, blobs map[string]*zip.File, result *ImportResult) int {

	idMap := make(map[int64]int64)
	freshPaths := make(map[int64]string)

	// Pass 1 - assign destination identity.
	for _, src := range sortForImport(lessons) {
		if src.IsContainer {
			row := &store.Lesson{SubjectID: sub.ID, Name: src.Name, IsContainer: true}
			if err := im.store.InsertLesson(row); err != nil {
				util.WarnLog("Skipping folder %q: %v", src.Name, err)
				result.Skipped++
				continue
			}
			idMap[src.ID] = row.ID
			result.Lessons++
			continue
		}

		realPath := hier.StripAllPrefixes(src.ImagePath)
		if realPath == "" || realPath == hier.FolderMarker {
			// Malformed or non-leaf entry.
			result.Skipped++
			continue
		}

		blob, ok := blobs[BlobKey(src.ID, media.Extension(realPath))]
		if !ok {
			util.DebugLog("Skipping lesson %q: no archive blob for source id %d", src.Name, src.ID)
			result.Skipped++
			continue
		}

		fresh := im.freshPath(year, sem, sub, src)
		if err := im.writeBlob(blob, fresh); err != nil {
			util.WarnLog("Skipping lesson %q: %v", src.Name, err)
			result.Skipped++
			continue
		}

		// No FC: prefix yet; pass 2 adds the remapped chain.
		row := &store.Lesson{SubjectID: sub.ID, Name: src.Name, ImagePath: fresh}
		if err := im.store.InsertLesson(row); err != nil {
			util.WarnLog("Skipping lesson %q: %v", src.Name, err)
			result.Skipped++
			continue
		}
		idMap[src.ID] = row.ID
		freshPaths[src.ID] = fresh
		result.Lessons++
	}

	// Pass 2 - rewrite nested leaf references.
	for _, src := range lessons {
		destID, ok := idMap[src.ID]
		if !ok || src.IsContainer || src.ImagePath == "" {
			continue
		}
		if !hier.IsNested(src.ImagePath) {
			// Root leaf keeps its fresh path, no prefix.
			continue
		}
		newPath := rewriteLeafPath(src.ImagePath, freshPaths[src.ID], idMap)
		if err := im.store.UpdateLessonImagePath(destID, newPath); err != nil {
			util.WarnLog("Could not fix up lesson %q: %v", src.Name, err)
		}
	}

	// Pass 3 - rewrite nested container markers.
	for _, src := range lessons {
		destID, ok := idMap[src.ID]
		if !ok || !src.IsContainer || src.ImagePath == "" {
			continue
		}
		newPath := hier.RemapPrefixes(src.ImagePath, idMap)
		if err := im.store.UpdateLessonImagePath(destID, newPath); err != nil {
			util.WarnLog("Could not fix up folder %q: %v", src.Name, err)
		}
	}

	return len(lessons)
}

// freshPath builds a destination file path namespaced by the resolved
// year/semester/subject names plus the lesson name, a timestamp and the
// source id, so two imports can never collide.
func (im *Importer) freshPath(year *store.Year, sem *store.Semester, sub *store.Subject, src LessonEntry) string {
	realPath := hier.StripAllPrefixes(src.ImagePath)
	name := fmt.Sprintf("%s_%d_%d%s",
		safeName(src.Name), time.Now().UnixNano(), src.ID, media.Extension(realPath))
	return filepath.Join(im.files.Root(), "imported",
		safeName(year.Name), safeName(sem.Name), safeName(sub.Name), name)
}

// writeBlob copies one archive entry to the file store.
func (im *Importer) writeBlob(blob *zip.File, destPath string) error {
	rc, err := blob.Open()
	if err != nil {
		return fmt.Errorf("failed to open archive blob: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return fmt.Errorf("failed to read archive blob: %w", err)
	}

	return im.files.Write(destPath, data)
}

// safeName makes an entity name usable as a path segment.
func safeName(name string) string {
	r := strings.NewReplacer("/", "-", "\\", "-", ":", "-", " ", "_")
	s := r.Replace(strings.TrimSpace(name))
	if s == "" {
		return "unnamed"
	}
	return s
}
