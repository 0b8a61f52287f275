package main

import (
	"fmt"
	"strings"

	"github.com/Arezki-Cherfouh/Lesson-Vault-sub000/internal/hier"
	"github.com/Arezki-Cherfouh/Lesson-Vault-sub000/internal/library"
	"github.com/Arezki-Cherfouh/Lesson-Vault-sub000/internal/store"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the whole vault as a tree",
	Args:  cobra.NoArgs,
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	lib, closeLib, err := openLibrary()
	if err != nil {
		return err
	}
	defer closeLib()

	years, err := lib.Store().ListYears()
	if err != nil {
		return err
	}

	for _, year := range years {
		fmt.Printf("%s (id %d)\n", year.Name, year.ID)

		semesters, err := lib.Store().ListSemesters(year.ID)
		if err != nil {
			return err
		}
		for _, sem := range semesters {
			fmt.Printf("  %s (id %d)\n", sem.Name, sem.ID)

			subjects, err := lib.Store().ListSubjects(sem.ID)
			if err != nil {
				return err
			}
			for _, sub := range subjects {
				fmt.Printf("    %s (id %d)\n", sub.Name, sub.ID)
				if err := showSubjectTree(lib, sub.ID); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// showSubjectTree prints a subject's lessons with folder nesting, built
// from a single query plus an in-memory child index.
func showSubjectTree(lib *library.Library, subjectID int64) error {
	lessons, err := lib.Store().ListLessons(subjectID)
	if err != nil {
		return err
	}

	children := make(map[int64][]*store.Lesson)
	var roots []*store.Lesson
	for _, l := range lessons {
		if parent, ok := hier.ParentID(l.ImagePath); ok {
			children[parent] = append(children[parent], l)
		} else {
			roots = append(roots, l)
		}
	}

	var walk func(ls []*store.Lesson, depth int)
	walk = func(ls []*store.Lesson, depth int) {
		indent := strings.Repeat("  ", depth+3)
		for _, l := range ls {
			if l.IsContainer {
				fmt.Printf("%s[%s] (id %d)\n", indent, l.Name, l.ID)
				walk(children[l.ID], depth+1)
			} else {
				fmt.Printf("%s%s (id %d)\n", indent, l.Name, l.ID)
			}
		}
	}
	walk(roots, 0)

	return nil
}
