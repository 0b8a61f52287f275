package main

import (
	"fmt"
	"os"

	"github.com/Arezki-Cherfouh/Lesson-Vault-sub000/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Version is set at build time
	Version = "dev"

	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "lvault",
		Short: "Lesson Vault - organize lesson photos by year, semester and subject",
		Long: `lvault organizes scanned lesson photos in a Year > Semester > Subject
hierarchy, with lessons nestable in folders to any depth. The whole vault
(database rows plus image files) can be exported to a single portable
archive and merged back into any other vault without duplicating years,
semesters or subjects.`,
		Version: Version,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./lvault.yaml)")
	rootCmd.PersistentFlags().String("db", "lvault.db", "vault database file")
	rootCmd.PersistentFlags().String("media", "lvault-media", "directory holding lesson images")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "quiet output (errors only)")

	// Bind flags to viper
	viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))
	viper.BindPFlag("media", rootCmd.PersistentFlags().Lookup("media"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("lvault")
		viper.SetConfigType("yaml")
	}

	// Read in environment variables that match
	viper.SetEnvPrefix("LVAULT")
	viper.AutomaticEnv()

	// Plain output when piped
	util.SetColors(util.IsTerminal(os.Stderr.Fd()))

	if err := viper.ReadInConfig(); err == nil && !viper.GetBool("quiet") {
		util.InfoLog("Using config file: %s", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
