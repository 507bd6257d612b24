package cfg

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// loadConfigFile reads file and merges its values below flags and environment.
//
// Keys may be written kebab-case or snake_case ("output_dir" and "output-dir" are the same key).
func loadConfigFile(file string) error {
	info, err := os.Stat(file)
	if err != nil {
		return fmt.Errorf("failed check for config file path: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("config file %q is a directory, should be a file", file)
	}

	fv := viper.New()
	fv.SetConfigFile(file)
	if err := fv.ReadInConfig(); err != nil {
		return err
	}

	normalized := make(map[string]any, len(fv.AllKeys()))
	for _, k := range fv.AllKeys() {
		normalized[strings.ReplaceAll(k, "_", "-")] = fv.Get(k)
	}
	return viper.MergeConfigMap(normalized)
}
