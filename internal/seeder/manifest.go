package seeder

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ManifestPath names the run manifest kept next to a sqlite database.
func ManifestPath(dbPath string) string {
	return dbPath + ".manifest.yaml"
}

func WriteManifest(path string, sum *Summary) error {
	data, err := yaml.Marshal(sum)
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest %s: %w", path, err)
	}
	return nil
}

func ReadManifest(path string) (*Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sum Summary
	if err := yaml.Unmarshal(data, &sum); err != nil {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", path, err)
	}
	return &sum, nil
}
