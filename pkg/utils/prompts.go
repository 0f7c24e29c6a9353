package utils

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// promptFile is the on-disk shape of a YAML prompt document.
type promptFile struct {
	Instructions string `yaml:"instructions"`
}

// LoadPrompt loads role instructions from the given file path.
// Files with a .yaml or .yml extension must contain an `instructions` key;
// any other file is read as plain text. The path must be exact, no fallback
// searching is performed.
func LoadPrompt(filePath string) (string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read prompt file %s: %w", filePath, err)
	}

	if strings.HasSuffix(filePath, ".yaml") || strings.HasSuffix(filePath, ".yml") {
		var doc promptFile
		if err := yaml.Unmarshal(content, &doc); err != nil {
			return "", fmt.Errorf("failed to parse prompt file %s: %w", filePath, err)
		}
		if doc.Instructions == "" {
			return "", fmt.Errorf("prompt file %s has no instructions key", filePath)
		}
		return strings.TrimSpace(doc.Instructions), nil
	}

	return strings.TrimSpace(string(content)), nil
}

// LoadPromptWithFallback loads role instructions from a file path, returning
// the fallback string if the file cannot be loaded.
func LoadPromptWithFallback(filePath, fallback string) string {
	if content, err := LoadPrompt(filePath); err == nil {
		return content
	}
	return fallback
}
