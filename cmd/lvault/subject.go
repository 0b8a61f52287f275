package main

import (
	"fmt"

	"github.com/Arezki-Cherfouh/Lesson-Vault-sub000/internal/library"
	"github.com/Arezki-Cherfouh/Lesson-Vault-sub000/internal/util"
	"github.com/spf13/cobra"
)

var subjectCmd = &cobra.Command{
	Use:   "subject",
	Short: "Manage subjects",
}

var (
	subjectAllSemesters bool
	subjectAllYears     bool
)

var subjectAddCmd = &cobra.Command{
	Use:   "add <semester-id> <name>",
	Short: "Add a subject to a semester",
	Long: `Add a subject to a semester. With --all-semesters the subject is also
created in the other semesters of the same year; with --all-years it is
created in every semester with a matching name across all years. Semesters
that already have a subject with that name are left alone.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, closeLib, err := openLibrary()
		if err != nil {
			return err
		}
		defer closeLib()

		semesterID, err := parseID(args[0])
		if err != nil {
			return err
		}

		scope := library.PropagateNone
		switch {
		case subjectAllYears:
			scope = library.PropagateAllYears
		case subjectAllSemesters:
			scope = library.PropagateSiblings
		}

		sub, err := lib.CreateSubject(semesterID, args[1], scope)
		if err != nil {
			return err
		}
		util.SuccessLog("Created subject %q (id %d)", sub.Name, sub.ID)
		return nil
	},
}

var subjectListCmd = &cobra.Command{
	Use:   "list <semester-id>",
	Short: "List a semester's subjects by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, closeLib, err := openLibrary()
		if err != nil {
			return err
		}
		defer closeLib()

		semesterID, err := parseID(args[0])
		if err != nil {
			return err
		}
		subjects, err := lib.Store().ListSubjects(semesterID)
		if err != nil {
			return err
		}
		for _, sub := range subjects {
			fmt.Printf("%6d  %s\n", sub.ID, sub.Name)
		}
		return nil
	},
}

var subjectRenameCmd = &cobra.Command{
	Use:   "rename <id> <new-name>",
	Short: "Rename a subject",
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
		if err := lib.Store().RenameSubject(id, args[1]); err != nil {
			return err
		}
		util.SuccessLog("Renamed subject %d to %q", id, args[1])
		return nil
	},
}

var subjectRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a subject and everything under it",
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
		if err := lib.DeleteSubject(id); err != nil {
			return err
		}
		util.SuccessLog("Deleted subject %d", id)
		return nil
	},
}

func init() {
	subjectAddCmd.Flags().BoolVar(&subjectAllSemesters, "all-semesters", false, "also create in the year's other semesters")
	subjectAddCmd.Flags().BoolVar(&subjectAllYears, "all-years", false, "also create in matching semesters across all years")
	subjectCmd.AddCommand(subjectAddCmd, subjectListCmd, subjectRenameCmd, subjectRmCmd)
	rootCmd.AddCommand(subjectCmd)
}
