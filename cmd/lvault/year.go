package main

import (
	"errors"
	"fmt"

	"github.com/Arezki-Cherfouh/Lesson-Vault-sub000/internal/store"
	"github.com/Arezki-Cherfouh/Lesson-Vault-sub000/internal/util"
	"github.com/spf13/cobra"
)

var yearCmd = &cobra.Command{
	Use:   "year",
	Short: "Manage years",
}

var yearAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a year (with default semesters)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, closeLib, err := openLibrary()
		if err != nil {
			return err
		}
		defer closeLib()

		year, err := lib.SeedYear(args[0])
		if err != nil {
			if errors.Is(err, store.ErrNameTaken) {
				return fmt.Errorf("year %q already exists", args[0])
			}
			return err
		}
		util.SuccessLog("Created year %q (id %d)", year.Name, year.ID)
		return nil
	},
}

var yearListCmd = &cobra.Command{
	Use:   "list",
	Short: "List years, latest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, closeLib, err := openLibrary()
		if err != nil {
			return err
		}
		defer closeLib()

		years, err := lib.Store().ListYears()
		if err != nil {
			return err
		}
		for _, y := range years {
			fmt.Printf("%6d  %s\n", y.ID, y.Name)
		}
		return nil
	},
}

var yearRenameCmd = &cobra.Command{
	Use:   "rename <id> <new-name>",
	Short: "Rename a year",
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
		if err := lib.Store().RenameYear(id, args[1]); err != nil {
			if errors.Is(err, store.ErrNameTaken) {
				return fmt.Errorf("year %q already exists", args[1])
			}
			return err
		}
		util.SuccessLog("Renamed year %d to %q", id, args[1])
		return nil
	},
}

var yearRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a year and everything under it",
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
		if err := lib.DeleteYear(id); err != nil {
			return err
		}
		util.SuccessLog("Deleted year %d", id)
		return nil
	},
}

func init() {
	yearCmd.AddCommand(yearAddCmd, yearListCmd, yearRenameCmd, yearRmCmd)
	rootCmd.AddCommand(yearCmd)
}
