package policy

import (
	"os"
	"path/filepath"

	"github.com/maxbolgarin/errm"
	"gopkg.in/yaml.v3"

	"github.com/Ishanpathak1/ghanalytics/pkg/model"
)

// LoadProfileFromFile loads a sampling profile from a YAML file.
func LoadProfileFromFile(path string) (*model.SamplingPolicy, error) {
	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath) // #nosec G304
	if err != nil {
		return nil, errm.Wrap(err, "failed to read profile file")
	}

	profile, err := LoadProfileFromBytes(data)
	if err != nil {
		return nil, err
	}
	if profile.Name == "" {
		profile.Name = filepath.Base(cleanPath)
	}
	return profile, nil
}

// LoadProfileFromBytes loads a sampling profile from YAML bytes. Fields
// left out keep their default values.
func LoadProfileFromBytes(data []byte) (*model.SamplingPolicy, error) {
	profile := model.DefaultSamplingPolicy()
	profile.Name = ""
	profile.Description = ""

	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, errm.Wrap(err, "failed to parse profile")
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return &profile, nil
}

// SaveProfileToFile saves a sampling profile to a YAML file.
func SaveProfileToFile(profile *model.SamplingPolicy, path string) error {
	if err := profile.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(profile)
	if err != nil {
		return errm.Wrap(err, "failed to marshal profile")
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return errm.Wrap(err, "failed to write profile file")
	}

	return nil
}
