package main

import (
	"fmt"

	"github.com/Arezki-Cherfouh/Lesson-Vault-sub000/internal/util"
	"github.com/spf13/cobra"
)

var semesterCmd = &cobra.Command{
	Use:   "semester",
	Short: "Manage semesters",
}

var semesterAddCmd = &cobra.Command{
	Use:   "add <year-id> <name>",
	Short: "Add a semester to a year",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, closeLib, err := openLibrary()
		if err != nil {
			return err
		}
		defer closeLib()

		yearID, err := parseID(args[0])
		if err != nil {
			return err
		}
		sem, err := lib.Store().CreateSemester(yearID, args[1])
		if err != nil {
			return err
		}
		util.SuccessLog("Created semester %q (id %d)", sem.Name, sem.ID)
		return nil
	},
}

var semesterListCmd = &cobra.Command{
	Use:   "list <year-id>",
	Short: "List a year's semesters in creation order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, closeLib, err := openLibrary()
		if err != nil {
			return err
		}
		defer closeLib()

		yearID, err := parseID(args[0])
		if err != nil {
			return err
		}
		semesters, err := lib.Store().ListSemesters(yearID)
		if err != nil {
			return err
		}
		for _, sem := range semesters {
			fmt.Printf("%6d  %s\n", sem.ID, sem.Name)
		}
		return nil
	},
}

var semesterRenameCmd = &cobra.Command{
	Use:   "rename <id> <new-name>",
	Short: "Rename a semester",
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
		if err := lib.Store().RenameSemester(id, args[1]); err != nil {
			return err
		}
		util.SuccessLog("Renamed semester %d to %q", id, args[1])
		return nil
	},
}

var semesterRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a semester and everything under it",
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
		if err := lib.DeleteSemester(id); err != nil {
			return err
		}
		util.SuccessLog("Deleted semester %d", id)
		return nil
	},
}

func init() {
	semesterCmd.AddCommand(semesterAddCmd, semesterListCmd, semesterRenameCmd, semesterRmCmd)
	rootCmd.AddCommand(semesterCmd)
}
