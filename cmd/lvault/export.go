package main

import (
	"fmt"
	"time"

	"github.com/Arezki-Cherfouh/Lesson-Vault-sub000/internal/archive"
	"github.com/Arezki-Cherfouh/Lesson-Vault-sub000/internal/util"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var exportCmd = &cobra.Command{
	Use:   "export [archive-file]",
	Short: "Export the whole vault to a portable archive",
	Long: `Export every year, semester, subject and lesson plus the backing
image files into a single zip archive. The archive can be merged into any
other vault with 'lvault import'.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	lib, closeLib, err := openLibrary()
	if err != nil {
		return err
	}
	defer closeLib()

	dest := fmt.Sprintf("lvault-export-%s.zip", time.Now().Format("20060102-150405"))
	if len(args) == 1 {
		dest = args[0]
	}

	exporter := archive.NewExporter(&archive.ExporterConfig{
		Store:        lib.Store(),
		Files:        lib.Files(),
		ShowProgress: !viper.GetBool("quiet"),
	})

	start := time.Now()
	result, err := exporter.Export(dest)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	util.InfoLog("Exported %d years, %d semesters, %d subjects, %d lessons",
		result.Years, result.Semesters, result.Subjects, result.Lessons)
	util.InfoLog("Images: %d exported, %d skipped", result.Blobs, result.SkippedFiles)
	util.SuccessLog("Wrote %s (%s) in %s",
		dest, humanize.Bytes(uint64(result.BytesWritten)), time.Since(start).Round(time.Millisecond))
	return nil
}
