package internal

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

var (
	// DefaultConfigPath is the default path to the config file
	DefaultAppName    = "corpusbatch"
	DefaultConfigPath = filepath.Join(getHomeDir(), ".config", DefaultAppName)

	// DefaultVocabFileName is the flat word-list file expected under the corpus root.
	DefaultVocabFileName = "imdb.vocab"

	// Clip defaults were chosen as the 98% quantile of the reference corpus.
	DefaultSntClip = 100
	DefaultTxtClip = 40

	DefaultBatchSize  = 32
	DefaultDiversity  = 10
	DefaultNumWorkers = 4

	// DefaultCacheCapacity comfortably exceeds the 50k reviews of the reference corpus.
	DefaultCacheCapacity = 50_000
)

func getHomeDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		cwd, cwdErr := os.Getwd()
		if cwdErr != nil {
			return "/tmp"
		}
		return cwd
	}
	return homeDir
}

// GetLogger returns a properly configured zerolog logger instance
func GetLogger() zerolog.Logger {
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
