package main

import (
	"errors"
	"fmt"

	"github.com/Arezki-Cherfouh/Lesson-Vault-sub000/internal/library"
	"github.com/Arezki-Cherfouh/Lesson-Vault-sub000/internal/store"
	"github.com/Arezki-Cherfouh/Lesson-Vault-sub000/internal/util"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init <year-name>",
	Short: "Create the vault and seed a first year with default semesters",
	Long: `Create (or open) the vault database and seed a year with three
default semesters. Safe to run against an existing vault; only the given
year is added.`,
	Args: cobra.ExactArgs(1),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
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

	util.SuccessLog("Created year %q (id %d) with %d semesters", year.Name, year.ID, library.SeededSemesters)
	return nil
}
