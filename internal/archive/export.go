package archive

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/Arezki-Cherfouh/Lesson-Vault-sub000/internal/hier"
	"github.com/Arezki-Cherfouh/Lesson-Vault-sub000/internal/media"
	"github.com/Arezki-Cherfouh/Lesson-Vault-sub000/internal/store"
	"github.com/Arezki-Cherfouh/Lesson-Vault-sub000/internal/util"
)

// Exporter walks the entire store top to bottom and produces one
// self-contained zip archive.
type Exporter struct {
	store        *store.Store
	files        *media.FileStore
	showProgress bool
}

// ExporterConfig holds exporter configuration
type ExporterConfig struct {
	Store        *store.Store
	Files        *media.FileStore
	ShowProgress bool
}

// NewExporter creates an Exporter.
func NewExporter(cfg *ExporterConfig) *Exporter {
	return &Exporter{
		store:        cfg.Store,
		files:        cfg.Files,
		showProgress: cfg.ShowProgress,
	}
}

// ExportResult summarizes one export run.
type ExportResult struct {
	Years        int
	Semesters    int
	Subjects     int
	Lessons      int
	Blobs        int
	SkippedFiles int
	BytesWritten int64
}

// Export writes the archive to destPath. Leaf images that cannot be read
// are skipped; only failures against the archive itself abort the run.
func (e *Exporter) Export(destPath string) (*ExportResult, error) {
	out, err := os.Create(destPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create archive: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)

	var bar *progressbar.ProgressBar
	if e.showProgress {
		bar = progressbar.NewOptions(-1,
			progressbar.OptionSetDescription("Exporting"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("lessons"),
			progressbar.OptionThrottle(200*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)
	}

	result := &ExportResult{}
	manifest := &Manifest{ExportedAt: time.Now().UTC()}

	years, err := e.store.ListYears()
	if err != nil {
		return nil, err
	}

	for _, year := range years {
		ye := YearEntry{ID: year.ID, Name: year.Name, Semesters: []SemesterEntry{}}
		semesters, err := e.store.ListSemesters(year.ID)
		if err != nil {
			return nil, err
		}

		for _, sem := range semesters {
			se := SemesterEntry{ID: sem.ID, Name: sem.Name, Subjects: []SubjectEntry{}}
			subjects, err := e.store.ListSubjects(sem.ID)
			if err != nil {
				return nil, err
			}

			for _, sub := range subjects {
				sube, n, err := e.exportSubject(zw, sub, result)
				if err != nil {
					return nil, err
				}
				if bar != nil {
					bar.Add(n)
				}
				se.Subjects = append(se.Subjects, sube)
				result.Subjects++
			}

			ye.Semesters = append(ye.Semesters, se)
			result.Semesters++
		}

		manifest.Years = append(manifest.Years, ye)
		result.Years++
	}

	if bar != nil {
		bar.Finish()
	}

	mw, err := zw.Create(ManifestName)
	if err != nil {
		return nil, fmt.Errorf("failed to create manifest entry: %w", err)
	}
	enc := json.NewEncoder(mw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(manifest); err != nil {
		return nil, fmt.Errorf("failed to write manifest: %w", err)
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}

	info, err := out.Stat()
	if err == nil {
		result.BytesWritten = info.Size()
	}

	return result, nil
}

// exportSubject records one subject's lessons in the manifest, verbatim,
// and copies each resolvable leaf image into the archive. Returns the
// number of lessons walked for progress accounting.
func (e *Exporter) exportSubject(zw *zip.Writer, sub *store.Subject, result *ExportResult) (SubjectEntry, int, error) {
	sube := SubjectEntry{ID: sub.ID, Name: sub.Name, Lessons: []LessonEntry{}}

	// Root and nested, any depth, in one query.
	lessons, err := e.store.ListLessons(sub.ID)
	if err != nil {
		return sube, 0, err
	}

	for _, l := range lessons {
		sube.Lessons = append(sube.Lessons, lessonEntry(l))
		result.Lessons++

		realPath := hier.StripAllPrefixes(l.ImagePath)
		if realPath == "" || realPath == hier.FolderMarker {
			// Container, not a leaf.
			continue
		}
		if !e.files.Exists(realPath) {
			util.DebugLog("Skipping lesson %d: image %s not found", l.ID, realPath)
			result.SkippedFiles++
			continue
		}

		data, err := e.files.Read(realPath)
		if err != nil {
			util.WarnLog("Skipping lesson %d: %v", l.ID, err)
			result.SkippedFiles++
			continue
		}

		w, err := zw.Create(BlobKey(l.ID, media.Extension(realPath)))
		if err != nil {
			return sube, 0, fmt.Errorf("failed to create archive entry: %w", err)
		}
		if _, err := w.Write(data); err != nil {
			return sube, 0, fmt.Errorf("failed to write archive entry: %w", err)
		}
		result.Blobs++
	}

	return sube, len(lessons), nil
}
