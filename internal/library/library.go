// Package library is the service layer tying the relational store to the
// image file store: lesson creation under the folder-encoding scheme, the
// recursive deletion engine, seeding, and subject propagation.
package library

import (
	"fmt"

	"github.com/Arezki-Cherfouh/Lesson-Vault-sub000/internal/hier"
	"github.com/Arezki-Cherfouh/Lesson-Vault-sub000/internal/media"
	"github.com/Arezki-Cherfouh/Lesson-Vault-sub000/internal/store"
	"github.com/Arezki-Cherfouh/Lesson-Vault-sub000/internal/util"
)

// SeededSemesters is the number of semesters created with each new year.
const SeededSemesters = 3

// Library combines the store and the file store. All operations run
// serially; callers must not trigger two at once against the same store.
type Library struct {
	store *store.Store
	files *media.FileStore
}

// New creates a Library.
func New(s *store.Store, f *media.FileStore) *Library {
	return &Library{store: s, files: f}
}

// Store exposes the underlying relational store.
func (lib *Library) Store() *store.Store {
	return lib.store
}

// Files exposes the underlying file store.
func (lib *Library) Files() *media.FileStore {
	return lib.files
}

// SeedYear creates a year plus its default semesters ("Semester 1".."3").
// A duplicate year name returns store.ErrNameTaken.
func (lib *Library) SeedYear(name string) (*store.Year, error) {
	year, err := lib.store.CreateYear(name)
	if err != nil {
		return nil, err
	}
	for i := 1; i <= SeededSemesters; i++ {
		if _, err := lib.store.CreateSemester(year.ID, fmt.Sprintf("Semester %d", i)); err != nil {
			return nil, fmt.Errorf("failed to seed semesters: %w", err)
		}
	}
	return year, nil
}

// RootLessons returns a subject's root items: lessons whose image_path
// carries no encoded parent key (root leaves and root containers).
func (lib *Library) RootLessons(subjectID int64) ([]*store.Lesson, error) {
	lessons, err := lib.store.ListLessons(subjectID)
	if err != nil {
		return nil, err
	}
	var roots []*store.Lesson
	for _, l := range lessons {
		if !hier.IsNested(l.ImagePath) {
			roots = append(roots, l)
		}
	}
	return roots, nil
}

// DirectChildren returns the lessons nested directly inside a container.
// Grandchildren carry a different parent id in their prefix and are
// excluded by construction.
func (lib *Library) DirectChildren(container *store.Lesson) ([]*store.Lesson, error) {
	lessons, err := lib.store.ListLessons(container.SubjectID)
	if err != nil {
		return nil, err
	}
	var children []*store.Lesson
	for _, l := range lessons {
		if hier.IsDirectChildOf(l.ImagePath, container.ID) {
			children = append(children, l)
		}
	}
	return children, nil
}

// AddPhotoLesson copies an image into the file store and creates a root
// leaf lesson pointing at the stored copy.
func (lib *Library) AddPhotoLesson(subjectID int64, name, srcImage string) (*store.Lesson, error) {
	stored, err := lib.files.Import(srcImage)
	if err != nil {
		return nil, err
	}
	l := &store.Lesson{SubjectID: subjectID, Name: name, ImagePath: stored}
	if err := lib.store.InsertLesson(l); err != nil {
		return nil, err
	}
	return l, nil
}

// AddFolder creates a root container lesson. Containers never hold a file
// of their own.
func (lib *Library) AddFolder(subjectID int64, name string) (*store.Lesson, error) {
	l := &store.Lesson{SubjectID: subjectID, Name: name, IsContainer: true}
	if err := lib.store.InsertLesson(l); err != nil {
		return nil, err
	}
	return l, nil
}

// AddPhotoToFolder copies an image into the file store and creates a leaf
// nested directly inside the given container.
func (lib *Library) AddPhotoToFolder(container *store.Lesson, name, srcImage string) (*store.Lesson, error) {
	if !container.IsContainer {
		return nil, fmt.Errorf("lesson %d is not a folder", container.ID)
	}
	stored, err := lib.files.Import(srcImage)
	if err != nil {
		return nil, err
	}
	l := &store.Lesson{
		SubjectID: container.SubjectID,
		Name:      name,
		ImagePath: hier.EncodeLeaf(container.ID, stored),
	}
	if err := lib.store.InsertLesson(l); err != nil {
		return nil, err
	}
	return l, nil
}

// AddSubfolder creates a container nested directly inside another one.
func (lib *Library) AddSubfolder(container *store.Lesson, name string) (*store.Lesson, error) {
	if !container.IsContainer {
		return nil, fmt.Errorf("lesson %d is not a folder", container.ID)
	}
	l := &store.Lesson{
		SubjectID:   container.SubjectID,
		Name:        name,
		ImagePath:   hier.EncodeFolderMarker(container.ID),
		IsContainer: true,
	}
	if err := lib.store.InsertLesson(l); err != nil {
		return nil, err
	}
	return l, nil
}

// PropagateScope controls where CreateSubject replicates a new subject.
type PropagateScope int

const (
	// PropagateNone creates the subject in one semester only.
	PropagateNone PropagateScope = iota
	// PropagateSiblings also creates it in the other semesters of the
	// same year.
	PropagateSiblings
	// PropagateAllYears also creates it in every semester across all
	// years whose name matches the target semester's.
	PropagateAllYears
)

// CreateSubject creates a subject under a semester, optionally replicating
// it per scope. Replication is a convenience, not an enforced invariant:
// semesters that already have a subject with that name are skipped.
func (lib *Library) CreateSubject(semesterID int64, name string, scope PropagateScope) (*store.Subject, error) {
	sem, err := lib.store.GetSemester(semesterID)
	if err != nil {
		return nil, err
	}
	if sem == nil {
		return nil, fmt.Errorf("semester %d not found", semesterID)
	}

	subject, err := lib.store.CreateSubject(semesterID, name)
	if err != nil {
		return nil, err
	}

	var targets []*store.Semester
	switch scope {
	case PropagateSiblings:
		targets, err = lib.store.ListSemesters(sem.YearID)
	case PropagateAllYears:
		targets, err = lib.store.ListSemestersByName(sem.Name)
	}
	if err != nil {
		return nil, err
	}

	for _, t := range targets {
		if t.ID == semesterID {
			continue
		}
		existing, err := lib.store.GetSubjectByName(t.ID, name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			continue
		}
		if _, err := lib.store.CreateSubject(t.ID, name); err != nil {
			return nil, err
		}
	}

	return subject, nil
}

// DeleteSubject removes a subject and everything under it, image files
// included. File cleanup has to happen before the row delete: the
// database cascade cannot see files on disk.
func (lib *Library) DeleteSubject(subjectID int64) error {
	if err := lib.deleteSubjectFiles(subjectID); err != nil {
		return err
	}
	return lib.store.DeleteSubject(subjectID)
}

// DeleteSemester removes a semester and everything under it.
func (lib *Library) DeleteSemester(semesterID int64) error {
	subjects, err := lib.store.ListSubjects(semesterID)
	if err != nil {
		return err
	}
	for _, sub := range subjects {
		if err := lib.deleteSubjectFiles(sub.ID); err != nil {
			return err
		}
	}
	return lib.store.DeleteSemester(semesterID)
}

// DeleteYear removes a year and everything under it.
func (lib *Library) DeleteYear(yearID int64) error {
	semesters, err := lib.store.ListSemesters(yearID)
	if err != nil {
		return err
	}
	for _, sem := range semesters {
		subjects, err := lib.store.ListSubjects(sem.ID)
		if err != nil {
			return err
		}
		for _, sub := range subjects {
			if err := lib.deleteSubjectFiles(sub.ID); err != nil {
				return err
			}
		}
	}
	return lib.store.DeleteYear(yearID)
}

// deleteSubjectFiles walks every lesson under a subject, containers and
// leaves alike, and removes leaf image files. Rows are left to the
// foreign-key cascade. Filesystem failures are logged and swallowed; the
// store is authoritative.
func (lib *Library) deleteSubjectFiles(subjectID int64) error {
	lessons, err := lib.store.ListLessons(subjectID)
	if err != nil {
		return err
	}
	for _, l := range lessons {
		lib.deleteLeafFile(l)
	}
	return nil
}

// deleteLeafFile removes a leaf lesson's backing file, if any.
func (lib *Library) deleteLeafFile(l *store.Lesson) {
	if l.IsContainer {
		return
	}
	path := hier.StripAllPrefixes(l.ImagePath)
	if path == "" || path == hier.FolderMarker {
		return
	}
	if err := lib.files.Delete(path); err != nil {
		util.WarnLog("Could not delete image for lesson %d: %v", l.ID, err)
	}
}
