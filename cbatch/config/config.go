package config

import (
	"fmt"
	"path/filepath"
	"strings"

	internal "github.com/ZanzyTHEbar/corpusbatch/cbatch"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	Corpus CorpusConfig `mapstructure:"corpus"`
	Loader LoaderConfig `mapstructure:"loader"`
}

// CorpusConfig stores corpus location and tokenization settings.
type CorpusConfig struct {
	Root          string `mapstructure:"root"`
	VocabFile     string `mapstructure:"vocabFile"`
	SntClip       int    `mapstructure:"sntClip"`
	TxtClip       int    `mapstructure:"txtClip"`
	CacheCapacity int    `mapstructure:"cacheCapacity"`
}

// LoaderConfig stores batching and worker settings.
type LoaderConfig struct {
	BatchSize  int `mapstructure:"batchSize"`
	Diversity  int `mapstructure:"diversity"`
	NumWorkers int `mapstructure:"numWorkers"`
}

var AppConfig Config

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(configPath string) (*Config, error) {
	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("..")
		viper.AddConfigPath(filepath.Join("etc", internal.DefaultAppName))
		viper.AddConfigPath(internal.DefaultConfigPath)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Set default values
	viper.SetDefault("corpus.root", ".")
	viper.SetDefault("corpus.vocabFile", internal.DefaultVocabFileName)
	viper.SetDefault("corpus.sntClip", internal.DefaultSntClip)
	viper.SetDefault("corpus.txtClip", internal.DefaultTxtClip)
	viper.SetDefault("corpus.cacheCapacity", internal.DefaultCacheCapacity)
	viper.SetDefault("loader.batchSize", internal.DefaultBatchSize)
	viper.SetDefault("loader.diversity", internal.DefaultDiversity)
	viper.SetDefault("loader.numWorkers", internal.DefaultNumWorkers)

	viper.AutomaticEnv()                                   // Read in environment variables that match
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // e.g. corpus.sntClip becomes CORPUS_SNTCLIP

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; defaults will be used.
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	err := viper.Unmarshal(&AppConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	return &AppConfig, nil
}
