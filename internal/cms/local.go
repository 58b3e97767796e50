package cms

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// localSource maps a query to the YAML file that stands in for it offline.
type localSource struct {
	file   string
	schema string
}

var (
	localStartPage       = localSource{file: "start_page.yaml", schema: "start_page.json"}
	localFeatureSections = localSource{file: "feature_sections.yaml", schema: "feature_sections.json"}
	localPosts           = localSource{file: "posts.yaml", schema: "posts.json"}

	localSources = []localSource{localStartPage, localFeatureSections, localPosts}
)

var (
	schemaOnce sync.Once
	schemas    map[string]*jsonschema.Schema
	schemaErr  error
)

func compiledSchemas() (map[string]*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiled := map[string]*jsonschema.Schema{}
		for _, src := range localSources {
			data, err := schemaFS.ReadFile("schemas/" + src.schema)
			if err != nil {
				schemaErr = err
				return
			}
			if err := compiler.AddResource(src.schema, bytes.NewReader(data)); err != nil {
				schemaErr = fmt.Errorf("cms: add schema %s: %w", src.schema, err)
				return
			}
		}
		for _, src := range localSources {
			s, err := compiler.Compile(src.schema)
			if err != nil {
				schemaErr = fmt.Errorf("cms: compile schema %s: %w", src.schema, err)
				return
			}
			compiled[src.schema] = s
		}
		schemas = compiled
	})
	return schemas, schemaErr
}

// readLocal loads a YAML content file, validates it, and returns it as JSON.
func readLocal(dir string, src localSource) (string, error) {
	path := filepath.Join(dir, src.file)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("cms: read %s: %w", path, err)
	}
	raw, err := yamlToJSON(data)
	if err != nil {
		return "", fmt.Errorf("cms: parse %s: %w", path, err)
	}
	if err := validate(src, raw); err != nil {
		return "", fmt.Errorf("cms: %s: %w", path, err)
	}
	return string(raw), nil
}

func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

func validate(src localSource, raw []byte) error {
	compiled, err := compiledSchemas()
	if err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}
	return compiled[src.schema].Validate(doc)
}

// LintIssue is a problem found in a local content file.
type LintIssue struct {
	File string
	Err  error
}

func (i LintIssue) String() string { return i.File + ": " + i.Err.Error() }

// Lint validates every known content file in dir. Missing files are not issues.
func Lint(dir string) []LintIssue {
	var issues []LintIssue
	for _, src := range localSources {
		if _, err := readLocal(dir, src); err != nil && !errors.Is(err, ErrNotFound) {
			issues = append(issues, LintIssue{File: src.file, Err: err})
		}
	}
	sort.Slice(issues, func(i, j int) bool { return issues[i].File < issues[j].File })
	return issues
}
