package main

import (
	"fmt"
	"strconv"

	"github.com/Arezki-Cherfouh/Lesson-Vault-sub000/internal/library"
	"github.com/Arezki-Cherfouh/Lesson-Vault-sub000/internal/media"
	"github.com/Arezki-Cherfouh/Lesson-Vault-sub000/internal/store"
	"github.com/Arezki-Cherfouh/Lesson-Vault-sub000/internal/util"
	"github.com/spf13/viper"
)

// openLibrary opens the vault (database plus media directory) per the
// global flags and applies log settings. The returned closer must be
// deferred.
func openLibrary() (*library.Library, func(), error) {
	util.SetVerbose(viper.GetBool("verbose"))
	util.SetQuiet(viper.GetBool("quiet"))

	dbPath := viper.GetString("db")
	util.DebugLog("Opening database: %s", dbPath)

	db, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	files := media.NewOS(viper.GetString("media"))
	lib := library.New(db, files)

	return lib, func() { db.Close() }, nil
}

// parseID parses a decimal row id argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}
