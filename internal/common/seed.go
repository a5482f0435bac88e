package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"novares-ledger-go/internal/models"

	"gopkg.in/yaml.v2"
)

type SeedConfig struct {
	Members []models.FoundingMember `yaml:"members"`
}

// LoadFoundingMembers reads the founding member seed file
func LoadFoundingMembers(seedFile string) ([]models.FoundingMember, error) {
	var seedPath string
	if filepath.IsAbs(seedFile) {
		seedPath = seedFile
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		seedPath = filepath.Join(wd, seedFile)
	}

	data, err := os.ReadFile(seedPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", seedFile, err)
	}

	var config SeedConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", seedFile, err)
	}

	for i, m := range config.Members {
		if strings.TrimSpace(m.Name) == "" {
			return nil, fmt.Errorf("member at index %d missing name", i)
		}
		if strings.TrimSpace(m.Email) == "" {
			return nil, fmt.Errorf("member at index %d missing email", i)
		}
		if m.PasswordHash == "" {
			return nil, fmt.Errorf("member at index %d missing password_hash", i)
		}
	}

	return config.Members, nil
}
