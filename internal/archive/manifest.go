// Package archive packs the whole vault (rows plus image files) into a
// single zip and merges such archives back with identity remapping.
//
// The manifest keeps source identifiers and raw encoded image_path values
// verbatim; remapping to destination identifiers is entirely the
// importer's job.
package archive

import (
	"fmt"
	"time"

	"github.com/Arezki-Cherfouh/Lesson-Vault-sub000/internal/store"
)

// ManifestName is the archive entry holding the hierarchy document.
const ManifestName = "manifest.json"

// Manifest mirrors the relational hierarchy at export time.
type Manifest struct {
	ExportedAt time.Time   `json:"exportedAt"`
	Years      []YearEntry `json:"years"`
}

// YearEntry is one exported year.
type YearEntry struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Semesters []SemesterEntry `json:"semesters"`
}

// SemesterEntry is one exported semester.
type SemesterEntry struct {
	ID       int64          `json:"id"`
	Name     string         `json:"name"`
	Subjects []SubjectEntry `json:"subjects"`
}

// SubjectEntry is one exported subject with its full lesson list, root and
// nested at any depth.
type SubjectEntry struct {
	ID      int64         `json:"id"`
	Name    string        `json:"name"`
	Lessons []LessonEntry `json:"lessons"`
}

// LessonEntry is a lesson row exactly as stored. ImagePath carries the
// raw encoded value, FC: prefixes included; empty means NULL.
type LessonEntry struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	ImagePath   string `json:"imagePath,omitempty"`
	IsContainer bool   `json:"isContainer"`
}

// BlobKey is the archive entry name for a leaf lesson's image. Keyed by
// the lesson's own id rather than its name or path, so entries stay
// unique across unlimited nesting depth and duplicate names. ext includes
// the leading dot.
func BlobKey(lessonID int64, ext string) string {
	return fmt.Sprintf("files/%d%s", lessonID, ext)
}

func lessonEntry(l *store.Lesson) LessonEntry {
	return LessonEntry{
		ID:          l.ID,
		Name:        l.Name,
		ImagePath:   l.ImagePath,
		IsContainer: l.IsContainer,
	}
}
