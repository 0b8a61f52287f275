package library

import (
	"github.com/Arezki-Cherfouh/Lesson-Vault-sub000/internal/hier"
	"github.com/Arezki-Cherfouh/Lesson-Vault-sub000/internal/store"
)

// DeepDelete removes a lesson and all of its transitive descendants, rows
// and image files both. The parent link lives in an encoded string column,
// invisible to the database's own cascade, so the subtree has to be walked
// here. Calling it on an absent id is a no-op.
func (lib *Library) DeepDelete(lessonID int64) error {
	target, err := lib.store.GetLesson(lessonID)
	if err != nil {
		return err
	}
	if target == nil {
		return nil
	}

	children, err := lib.childIndex(target.SubjectID)
	if err != nil {
		return err
	}

	return lib.deepDelete(target, children)
}

// DeepDeleteMany applies DeepDelete to several lessons (multi-select bulk
// delete). A lesson already removed as a descendant of an earlier target
// is skipped by idempotence.
func (lib *Library) DeepDeleteMany(lessonIDs []int64) error {
	for _, id := range lessonIDs {
		if err := lib.DeepDelete(id); err != nil {
			return err
		}
	}
	return nil
}

// ClearContainer removes every direct and transitive child of a container
// but keeps the container row itself.
func (lib *Library) ClearContainer(container *store.Lesson) error {
	children, err := lib.childIndex(container.SubjectID)
	if err != nil {
		return err
	}
	for _, child := range children[container.ID] {
		if err := lib.deepDelete(child, children); err != nil {
			return err
		}
	}
	return nil
}

// childIndex builds a parent-id -> direct-children map for one subject in
// a single query, so the recursion below never re-scans the table.
func (lib *Library) childIndex(subjectID int64) (map[int64][]*store.Lesson, error) {
	lessons, err := lib.store.ListLessons(subjectID)
	if err != nil {
		return nil, err
	}
	children := make(map[int64][]*store.Lesson)
	for _, l := range lessons {
		if parent, ok := hier.ParentID(l.ImagePath); ok {
			children[parent] = append(children[parent], l)
		}
	}
	return children, nil
}

// deepDelete removes a lesson's subtree depth-first: descendants before
// the lesson itself, files before rows. File deletion failures are
// swallowed; the row deletion proceeds regardless.
func (lib *Library) deepDelete(l *store.Lesson, children map[int64][]*store.Lesson) error {
	if l.IsContainer {
		for _, child := range children[l.ID] {
			if err := lib.deepDelete(child, children); err != nil {
				return err
			}
		}
	} else {
		lib.deleteLeafFile(l)
	}
	return lib.store.DeleteLesson(l.ID)
}
