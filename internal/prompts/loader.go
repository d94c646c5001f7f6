// Package prompts holds the LLM prompt templates for skill analysis and
// project suggestions. Each JSON file maps keys to templates and is embedded
// at build time.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"sync"
)

// Template files.
const (
	AnalysisFile  = "analysis.json"
	ResourcesFile = "resources.json"
)

//go:embed *.json
var files embed.FS

var (
	loadOnce sync.Once
	library  map[string]map[string]string
	loadErr  error
)

// load parses every embedded file on first use.
func load() (map[string]map[string]string, error) {
	loadOnce.Do(func() {
		names, err := fs.Glob(files, "*.json")
		if err != nil {
			loadErr = err
			return
		}
		library = make(map[string]map[string]string, len(names))
		for _, name := range names {
			data, err := files.ReadFile(name)
			if err != nil {
				loadErr = fmt.Errorf("read prompt file %s: %w", name, err)
				return
			}
			var entries map[string]string
			if err := json.Unmarshal(data, &entries); err != nil {
				loadErr = fmt.Errorf("parse prompt file %s: %w", name, err)
				return
			}
			library[name] = entries
		}
	})
	return library, loadErr
}

// Get returns the template stored under key in file.
func Get(file, key string) (string, error) {
	lib, err := load()
	if err != nil {
		return "", err
	}
	entries, ok := lib[file]
	if !ok {
		return "", fmt.Errorf("prompt file %s not found", file)
	}
	tmpl, ok := entries[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, file)
	}
	return tmpl, nil
}

// MustGet is Get for templates that ship with the binary. It panics when the
// template is missing.
func MustGet(file, key string) string {
	tmpl, err := Get(file, key)
	if err != nil {
		panic(fmt.Sprintf("prompts: %v", err))
	}
	return tmpl
}

var placeholder = regexp.MustCompile(`\{\{\.(\w+)\}\}`)

// Format substitutes {{.Key}} placeholders with values from data. Unknown
// placeholders are left in place.
func Format(tmpl string, data map[string]string) string {
	return placeholder.ReplaceAllStringFunc(tmpl, func(m string) string {
		if v, ok := data[placeholder.FindStringSubmatch(m)[1]]; ok {
			return v
		}
		return m
	})
}

// List returns the keys defined in file, sorted.
func List(file string) ([]string, error) {
	lib, err := load()
	if err != nil {
		return nil, err
	}
	entries, ok := lib[file]
	if !ok {
		return nil, fmt.Errorf("prompt file %s not found", file)
	}
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
