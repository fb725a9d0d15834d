package preset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// GeneratePresetPath creates a timestamped preset filename
func GeneratePresetPath() string {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join("presets", fmt.Sprintf("preset_%s.yaml", timestamp))
}

// FindLatestPreset finds the most recent preset file in the presets directory
func FindLatestPreset() (string, error) {
	presetsDir := "presets"

	entries, err := os.ReadDir(presetsDir)
	if err != nil {
		return "", fmt.Errorf("failed to read presets directory: %w", err)
	}

	var presets []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".yaml") {
			presets = append(presets, filepath.Join(presetsDir, entry.Name()))
		}
	}

	if len(presets) == 0 {
		return "", fmt.Errorf("no preset files found in %s", presetsDir)
	}

	// Sort by modification time (newest first)
	sort.Slice(presets, func(i, j int) bool {
		infoI, _ := os.Stat(presets[i])
		infoJ, _ := os.Stat(presets[j])
		return infoI.ModTime().After(infoJ.ModTime())
	})

	return presets[0], nil
}
