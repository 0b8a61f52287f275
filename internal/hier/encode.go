// Package hier implements the folder-encoding scheme for nested lessons.
//
// The lessons table has no parent-lesson column. A lesson nested inside a
// container carries its parent in the image_path column instead, as a
// single-level textual prefix:
//
//	FC:<parentLessonID>:<real file path>   nested leaf
//	FC:<parentLessonID>:__folder__         nested container
//
// Depth is realized transitively: each level stores only its immediate
// parent's id, never a chain of prefixes.
package hier

import (
	"fmt"
	"strings"
)

// FolderMarker is the literal payload of a nested container's encoded key.
const FolderMarker = "__folder__"

// prefixToken starts every encoded key.
const prefixToken = "FC:"

// EncodeLeaf returns the image_path value for a leaf nested directly
// inside the given container.
func EncodeLeaf(containerID int64, realPath string) string {
	return fmt.Sprintf("%s%d:%s", prefixToken, containerID, realPath)
}

// EncodeFolderMarker returns the image_path value for a container nested
// directly inside another container.
func EncodeFolderMarker(containerID int64) string {
	return EncodeLeaf(containerID, FolderMarker)
}

// ChildPrefix returns the prefix shared by every direct child of the
// given container.
func ChildPrefix(containerID int64) string {
	return fmt.Sprintf("%s%d:", prefixToken, containerID)
}

// IsDirectChildOf reports whether an image_path marks a lesson as a direct
// child of the given container. Grandchildren are excluded by construction:
// their prefix carries their own parent's id, not this one's.
func IsDirectChildOf(imagePath string, containerID int64) bool {
	return strings.HasPrefix(imagePath, ChildPrefix(containerID))
}

// IsNested reports whether an image_path carries an encoded parent key.
// Root items (bare paths, or the empty string used for root containers)
// are not nested.
//
// Known limitation: a real file path that itself begins with "FC:" is
// indistinguishable from an encoded key and will be misclassified.
func IsNested(imagePath string) bool {
	return strings.HasPrefix(imagePath, prefixToken)
}

// RealPath strips the single "FC:<containerID>:" prefix from a nested
// leaf's image_path. Values that are not children of the given container
// are returned unchanged.
func RealPath(imagePath string, containerID int64) string {
	return strings.TrimPrefix(imagePath, ChildPrefix(containerID))
}

// StripAllPrefixes removes every leading "FC:<id>:" segment and returns
// the remaining payload. For a root leaf this is the path itself; for a
// nested leaf the real file path; for a nested container the folder
// marker. Stops at the first segment whose id part is not a decimal
// integer, so a bare path starting with unrelated text is never touched.
func StripAllPrefixes(imagePath string) string {
	s := imagePath
	for {
		_, rest, ok := SplitPrefix(s)
		if !ok {
			return s
		}
		s = rest
	}
}

// SplitPrefix splits one leading "FC:<id>:" segment off an image_path.
// It returns the parent id, the remainder, and whether a well-formed
// segment was present.
func SplitPrefix(imagePath string) (int64, string, bool) {
	if !strings.HasPrefix(imagePath, prefixToken) {
		return 0, imagePath, false
	}
	body := imagePath[len(prefixToken):]
	i := strings.IndexByte(body, ':')
	if i <= 0 {
		return 0, imagePath, false
	}
	var id int64
	for _, c := range body[:i] {
		if c < '0' || c > '9' {
			return 0, imagePath, false
		}
		id = id*10 + int64(c-'0')
	}
	return id, body[i+1:], true
}

// ParentID returns the immediate parent container id encoded in an
// image_path, or false for root items and malformed keys.
func ParentID(imagePath string) (int64, bool) {
	id, _, ok := SplitPrefix(imagePath)
	return id, ok
}

// RemapPrefixes rewrites every leading "FC:<oldID>:" segment of an
// image_path using the given old→new id mapping. An id absent from the
// mapping is left unchanged, producing a dangling but well-formed key.
// The payload beyond the prefix chain is never modified.
func RemapPrefixes(imagePath string, idMap map[int64]int64) string {
	var b strings.Builder
	s := imagePath
	for {
		id, rest, ok := SplitPrefix(s)
		if !ok {
			b.WriteString(s)
			return b.String()
		}
		if mapped, found := idMap[id]; found {
			id = mapped
		}
		b.WriteString(ChildPrefix(id))
		s = rest
	}
}
