package main

import (
	"fmt"

	"github.com/Arezki-Cherfouh/Lesson-Vault-sub000/internal/store"
	"github.com/Arezki-Cherfouh/Lesson-Vault-sub000/internal/util"
	"github.com/spf13/cobra"
)

var lessonCmd = &cobra.Command{
	Use:   "lesson",
	Short: "Manage lessons (photos and folders)",
}

var lessonInFolder int64

var lessonAddCmd = &cobra.Command{
	Use:   "add <subject-id> <name> <image-file>",
	Short: "Add a photo lesson",
	Long: `Copy an image into the vault and create a photo lesson for it.
With --in <folder-id> the lesson is nested inside that folder instead of
sitting at the subject's root.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, closeLib, err := openLibrary()
		if err != nil {
			return err
		}
		defer closeLib()

		subjectID, err := parseID(args[0])
		if err != nil {
			return err
		}

		var l *store.Lesson
		if lessonInFolder > 0 {
			folder, err := lookupFolder(lib.Store(), lessonInFolder)
			if err != nil {
				return err
			}
			l, err = lib.AddPhotoToFolder(folder, args[1], args[2])
			if err != nil {
				return err
			}
		} else {
			l, err = lib.AddPhotoLesson(subjectID, args[1], args[2])
			if err != nil {
				return err
			}
		}

		util.SuccessLog("Created lesson %q (id %d)", l.Name, l.ID)
		return nil
	},
}

var lessonMkdirCmd = &cobra.Command{
	Use:   "mkdir <subject-id> <name>",
	Short: "Create a folder lesson",
	Long: `Create a folder lesson. Folders hold no image of their own and can
nest to any depth via --in <folder-id>.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, closeLib, err := openLibrary()
		if err != nil {
			return err
		}
		defer closeLib()

		subjectID, err := parseID(args[0])
		if err != nil {
			return err
		}

		var l *store.Lesson
		if lessonInFolder > 0 {
			folder, err := lookupFolder(lib.Store(), lessonInFolder)
			if err != nil {
				return err
			}
			l, err = lib.AddSubfolder(folder, args[1])
			if err != nil {
				return err
			}
		} else {
			l, err = lib.AddFolder(subjectID, args[1])
			if err != nil {
				return err
			}
		}

		util.SuccessLog("Created folder %q (id %d)", l.Name, l.ID)
		return nil
	},
}

var lessonListCmd = &cobra.Command{
	Use:   "list <subject-id>",
	Short: "List a subject's root lessons, latest first",
	Long: `List a subject's root lessons. With --in <folder-id> the direct
children of that folder are listed instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, closeLib, err := openLibrary()
		if err != nil {
			return err
		}
		defer closeLib()

		subjectID, err := parseID(args[0])
		if err != nil {
			return err
		}

		var lessons []*store.Lesson
		if lessonInFolder > 0 {
			folder, err := lookupFolder(lib.Store(), lessonInFolder)
			if err != nil {
				return err
			}
			lessons, err = lib.DirectChildren(folder)
			if err != nil {
				return err
			}
		} else {
			lessons, err = lib.RootLessons(subjectID)
			if err != nil {
				return err
			}
		}

		for _, l := range lessons {
			kind := "photo"
			if l.IsContainer {
				kind = "folder"
			}
			fmt.Printf("%6d  %-6s  %s\n", l.ID, kind, l.Name)
		}
		return nil
	},
}

var lessonRenameCmd = &cobra.Command{
	Use:   "rename <id> <new-name>",
	Short: "Rename a lesson",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, closeLib, err := openLibrary()
		if err != nil {
			return err
		}
		defer closeLib()

		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := lib.Store().RenameLesson(id, args[1]); err != nil {
			return err
		}
		util.SuccessLog("Renamed lesson %d to %q", id, args[1])
		return nil
	},
}

var lessonRmCmd = &cobra.Command{
	Use:   "rm <id>...",
	Short: "Delete lessons (folders recursively)",
	Long: `Delete one or more lessons. Deleting a folder removes all of its
contents at any depth, image files included.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, closeLib, err := openLibrary()
		if err != nil {
			return err
		}
		defer closeLib()

		ids := make([]int64, 0, len(args))
		for _, arg := range args {
			id, err := parseID(arg)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}

		if err := lib.DeepDeleteMany(ids); err != nil {
			return err
		}
		util.SuccessLog("Deleted %d lesson(s)", len(ids))
		return nil
	},
}

var lessonClearCmd = &cobra.Command{
	Use:   "clear <folder-id>",
	Short: "Empty a folder without deleting the folder itself",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, closeLib, err := openLibrary()
		if err != nil {
			return err
		}
		defer closeLib()

		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		folder, err := lookupFolder(lib.Store(), id)
		if err != nil {
			return err
		}
		if err := lib.ClearContainer(folder); err != nil {
			return err
		}
		util.SuccessLog("Cleared folder %q (id %d)", folder.Name, folder.ID)
		return nil
	},
}

// lookupFolder fetches a lesson and checks it is a container.
func lookupFolder(s *store.Store, id int64) (*store.Lesson, error) {
	l, err := s.GetLesson(id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, fmt.Errorf("lesson %d not found", id)
	}
	if !l.IsContainer {
		return nil, fmt.Errorf("lesson %d (%q) is not a folder", id, l.Name)
	}
	return l, nil
}

func init() {
	lessonAddCmd.Flags().Int64Var(&lessonInFolder, "in", 0, "nest inside this folder lesson")
	lessonMkdirCmd.Flags().Int64Var(&lessonInFolder, "in", 0, "nest inside this folder lesson")
	lessonListCmd.Flags().Int64Var(&lessonInFolder, "in", 0, "list this folder's direct children")
	lessonCmd.AddCommand(lessonAddCmd, lessonMkdirCmd, lessonListCmd, lessonRenameCmd, lessonRmCmd, lessonClearCmd)
	rootCmd.AddCommand(lessonCmd)
}
