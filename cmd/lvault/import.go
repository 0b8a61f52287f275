package main

import (
	"fmt"
	"time"

	"github.com/Arezki-Cherfouh/Lesson-Vault-sub000/internal/archive"
	"github.com/Arezki-Cherfouh/Lesson-Vault-sub000/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var importCmd = &cobra.Command{
	Use:   "import <archive-file>",
	Short: "Merge an exported archive into this vault",
	Long: `Merge an archive produced by 'lvault export' into this vault.
Years, semesters and subjects are matched by name and reused; lessons are
always inserted fresh, with folder references rewritten to this vault's
ids. Corrupt or incomplete entries are skipped, not fatal.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	lib, closeLib, err := openLibrary()
	if err != nil {
		return err
	}
	defer closeLib()

	importer := archive.NewImporter(&archive.ImporterConfig{
		Store:        lib.Store(),
		Files:        lib.Files(),
		ShowProgress: !viper.GetBool("quiet"),
	})

	start := time.Now()
	result, err := importer.Import(args[0])
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	util.InfoLog("Created %d years, %d semesters, %d subjects",
		result.YearsCreated, result.SemestersCreated, result.SubjectsCreated)
	if result.Skipped > 0 {
		util.WarnLog("Skipped %d lesson(s)", result.Skipped)
	}
	util.SuccessLog("Imported %d lesson(s) in %s", result.Lessons, time.Since(start).Round(time.Millisecond))
	return nil
}
