// Package prompts holds the LLM prompt templates, embedded at compile
// time as JSON files mapping key to template text.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

// Parsed files are cached; prompt files never change at runtime.
var (
	mu    sync.Mutex
	cache = make(map[string]map[string]string)
)

// Get retrieves a prompt by filename (without path) and key
func Get(filename, key string) (string, error) {
	prompts, err := loadFile(filename)
	if err != nil {
		return "", err
	}

	prompt, ok := prompts[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return prompt, nil
}

// MustGet is Get for prompts the program cannot run without
func MustGet(filename, key string) string {
	prompt, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Format substitutes {{.Key}} placeholders with values from data.
// Placeholders without a matching key are left in place.
func Format(template string, data map[string]string) string {
	result := template
	for key, value := range data {
		result = strings.ReplaceAll(result, "{{."+key+"}}", value)
	}
	return result
}

// List returns the prompt keys available in a file
func List(filename string) ([]string, error) {
	prompts, err := loadFile(filename)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(prompts))
	for key := range prompts {
		keys = append(keys, key)
	}
	return keys, nil
}

// ClearCache drops all parsed files. Only tests need this.
func ClearCache() {
	mu.Lock()
	cache = make(map[string]map[string]string)
	mu.Unlock()
}

func loadFile(filename string) (map[string]string, error) {
	mu.Lock()
	defer mu.Unlock()

	if prompts, ok := cache[filename]; ok {
		return prompts, nil
	}

	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}

	var prompts map[string]string
	if err := json.Unmarshal(data, &prompts); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	cache[filename] = prompts
	return prompts, nil
}
