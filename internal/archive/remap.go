package archive

import (
	"strings"

	"github.com/Arezki-Cherfouh/Lesson-Vault-sub000/internal/hier"
)

// sortForImport returns the subject's lessons with root containers first,
// everything else keeping its relative order. Container rows must exist
// (and have destination ids) before any child row references them, and
// the manifest guarantees no topological order beyond this.
func sortForImport(lessons []LessonEntry) []LessonEntry {
	sorted := make([]LessonEntry, 0, len(lessons))
	for _, l := range lessons {
		if l.IsContainer && !hier.IsNested(l.ImagePath) {
			sorted = append(sorted, l)
		}
	}
	for _, l := range lessons {
		if l.IsContainer && !hier.IsNested(l.ImagePath) {
			continue
		}
		sorted = append(sorted, l)
	}
	return sorted
}

// rewriteLeafPath rebuilds a nested leaf's encoded key for the
// destination store: the source prefix chain remapped through idMap,
// followed by the freshly written destination file path. Pure function,
// no I/O. A source parent id absent from idMap stays in place, leaving a
// dangling but well-formed reference.
func rewriteLeafPath(srcImagePath, freshPath string, idMap map[int64]int64) string {
	var b strings.Builder
	s := srcImagePath
	for {
		id, rest, ok := hier.SplitPrefix(s)
		if !ok {
			break
		}
		if mapped, found := idMap[id]; found {
			id = mapped
		}
		b.WriteString(hier.ChildPrefix(id))
		s = rest
	}
	b.WriteString(freshPath)
	return b.String()
}
