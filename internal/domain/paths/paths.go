// Package paths initializes ytbatch's filepaths and directories.
package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"ytbatch/internal/domain/consts"
)

const (
	progDir    = ".ytbatch"
	dbFile     = "ytbatch.db"
	logFile    = "ytbatch.log"
	cookiesDir = "cookies"
)

// File and directory path strings.
var (
	HomeProgDir string
	DBFilePath  string
	LogFilePath string
	CookiesDir  string
)

// InitProgFilesDirs initializes necessary program directories and filepaths.
func InitProgFilesDirs() error {
	userHomeDir, err := os.UserHomeDir()
	if err != nil {
		return errors.New("failed to get home directory")
	}

	// Home dir ~/.ytbatch
	HomeProgDir = filepath.Join(userHomeDir, progDir)
	if _, err := os.Stat(HomeProgDir); os.IsNotExist(err) {
		if err := os.MkdirAll(HomeProgDir, consts.PermsHomeProgDir); err != nil {
			return fmt.Errorf("failed to make directories: %w", err)
		}
	}

	DBFilePath = filepath.Join(HomeProgDir, dbFile)
	LogFilePath = filepath.Join(HomeProgDir, logFile)
	CookiesDir = filepath.Join(HomeProgDir, cookiesDir)
	return nil
}
