package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const dotenvFilename = ".env"

func loadDotEnv(v *viper.Viper, path string) error {
	v.SetConfigFile(path)
	v.SetConfigType("env")
	return v.ReadInConfig()
}

func findDotEnv(filename string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, filename)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", os.ErrNotExist
}
