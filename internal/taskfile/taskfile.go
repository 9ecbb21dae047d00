// Package taskfile reads task lists from JSON or TOML files.
package taskfile

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/evanschultz/moncal/internal/domain"
)

// ErrInvalidTaskFile wraps every decode or presence-check failure.
var ErrInvalidTaskFile = errors.New("invalid task file")

// Format identifies a task file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

//go:embed task.schema.json
var taskSchema string

const taskSchemaURL = "moncal://task.schema.json"

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// FormatForPath picks TOML for .toml files and JSON otherwise.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatJSON
}

// Load reads a task file. A missing file yields an empty list.
func Load(path string) ([]domain.Task, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return []domain.Task{}, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []domain.Task{}, nil
		}
		return nil, fmt.Errorf("read task file: %w", err)
	}
	tasks, err := Parse(content, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tasks, nil
}

// Parse decodes task file content in the given format.
func Parse(content []byte, format Format) ([]domain.Task, error) {
	if len(bytes.TrimSpace(content)) == 0 {
		return []domain.Task{}, nil
	}
	switch format {
	case FormatTOML:
		return parseTOML(content)
	case FormatJSON, "":
		return parseJSON(content)
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidTaskFile, format)
	}
}

// parseJSON schema-checks the raw document before decoding it.
func parseJSON(content []byte) ([]domain.Task, error) {
	schema, err := loadSchema()
	if err != nil {
		return nil, fmt.Errorf("compile task schema: %w", err)
	}

	decoder := json.NewDecoder(bytes.NewReader(content))
	decoder.UseNumber()
	var doc any
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode json: %v", ErrInvalidTaskFile, err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, schemaError(err)
	}

	var tasks []domain.Task
	if err := json.Unmarshal(content, &tasks); err != nil {
		return nil, fmt.Errorf("%w: decode json: %v", ErrInvalidTaskFile, err)
	}
	return checkTasks(tasks)
}

// tomlTask keeps required fields as pointers so absence is detectable.
type tomlTask struct {
	Year        *int               `toml:"year"`
	Month       *int               `toml:"month"`
	Day         *int               `toml:"day"`
	Task        *string            `toml:"task"`
	Description string             `toml:"description"`
	Color       string             `toml:"color"`
	Attributes  []domain.Attribute `toml:"attributes"`
}

type tomlDocument struct {
	Tasks []tomlTask `toml:"tasks"`
}

func parseTOML(content []byte) ([]domain.Task, error) {
	var doc tomlDocument
	if err := toml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode toml: %v", ErrInvalidTaskFile, err)
	}
	tasks := make([]domain.Task, 0, len(doc.Tasks))
	for idx, raw := range doc.Tasks {
		missing := make([]string, 0, 4)
		if raw.Year == nil {
			missing = append(missing, "year")
		}
		if raw.Month == nil {
			missing = append(missing, "month")
		}
		if raw.Day == nil {
			missing = append(missing, "day")
		}
		if raw.Task == nil {
			missing = append(missing, "task")
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("%w: tasks[%d]: missing %s", ErrInvalidTaskFile, idx, strings.Join(missing, ", "))
		}
		tasks = append(tasks, domain.Task{
			Year:        *raw.Year,
			Month:       *raw.Month,
			Day:         *raw.Day,
			Task:        *raw.Task,
			Description: raw.Description,
			Color:       raw.Color,
			Attributes:  raw.Attributes,
		})
	}
	return checkTasks(tasks)
}

// checkTasks applies the domain presence checks. Dates are not range-checked.
func checkTasks(tasks []domain.Task) ([]domain.Task, error) {
	if tasks == nil {
		tasks = []domain.Task{}
	}
	for idx, task := range tasks {
		if err := task.Validate(); err != nil {
			return nil, fmt.Errorf("%w: tasks[%d]: %w", ErrInvalidTaskFile, idx, err)
		}
	}
	return tasks, nil
}

func loadSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(taskSchemaURL, strings.NewReader(taskSchema)); err != nil {
			compileErr = err
			return
		}
		compiledSchema, compileErr = compiler.Compile(taskSchemaURL)
	})
	return compiledSchema, compileErr
}

// schemaError flattens a jsonschema failure into one wrapped error listing each leaf cause.
func schemaError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return fmt.Errorf("%w: %v", ErrInvalidTaskFile, err)
	}
	messages := make([]string, 0)
	collectSchemaMessages(ve, &messages)
	return fmt.Errorf("%w: %s", ErrInvalidTaskFile, strings.Join(messages, "; "))
}

func collectSchemaMessages(err *jsonschema.ValidationError, out *[]string) {
	if err == nil {
		return
	}
	if len(err.Causes) == 0 {
		location := err.InstanceLocation
		if location == "" {
			location = "/"
		}
		*out = append(*out, fmt.Sprintf("%s: %s", location, err.Message))
		return
	}
	for _, cause := range err.Causes {
		collectSchemaMessages(cause, out)
	}
}
