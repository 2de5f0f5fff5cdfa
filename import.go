package buddy

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	log "github.com/sirupsen/logrus"
)

var (
	// ErrImportParse is wrapped by an *ImportError when the imported text is not JSON.
	ErrImportParse = errors.New("failed to parse JSON")

	// ErrImportShape is wrapped by an *ImportError when the imported JSON is not an array.
	ErrImportShape = errors.New("invalid data format")
)

// ImportError is returned (inside ImportResult) when an import is rejected as a whole. The task list is
// left unchanged.
type ImportError struct {
	Kind  error // ErrImportParse or ErrImportShape
	Cause error // Underlying decoding error, if any
}

func (e *ImportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Cause)
	}
	return e.Kind.Error()
}

// Unwrap returns the kind, so that errors.Is(err, ErrImportShape) works.
func (e *ImportError) Unwrap() error {
	return e.Kind
}

// ImportResult is what Store.Import returns. On success Count is the number of accepted tasks; on failure
// Err is an *ImportError.
type ImportResult struct {
	Success bool
	Count   int
	Err     error
}

//go:embed task.schema.json
var taskSchemaJSON string

const taskSchemaURL = "https://github.com/nicolagi/buddy/task.schema.json"

var taskSchema = mustCompileTaskSchema()

func mustCompileTaskSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(taskSchemaURL, strings.NewReader(taskSchemaJSON)); err != nil {
		panic(fmt.Sprintf("task schema: %v", err))
	}
	return compiler.MustCompile(taskSchemaURL)
}

// parseImport decodes an import payload into the tasks it accepts. Elements that don't look like tasks
// are skipped; so are elements repeating an id already accepted, keeping the first.
func parseImport(text string) ([]Task, error) {
	var elements []json.RawMessage
	var probe interface{}
	if err := json.Unmarshal([]byte(text), &probe); err != nil {
		return nil, &ImportError{Kind: ErrImportParse, Cause: err}
	}
	if _, ok := probe.([]interface{}); !ok {
		return nil, &ImportError{Kind: ErrImportShape}
	}
	if err := json.Unmarshal([]byte(text), &elements); err != nil {
		return nil, &ImportError{Kind: ErrImportShape, Cause: err}
	}
	accepted := make([]Task, 0, len(elements))
	seen := make(map[string]bool, len(elements))
	for i, raw := range elements {
		task, err := validTask(raw)
		if err != nil {
			log.WithFields(log.Fields{
				"index": i,
				"cause": err,
			}).Debug("Skipping imported element")
			continue
		}
		if seen[task.ID] {
			log.WithFields(log.Fields{
				"index": i,
				"id":    task.ID,
			}).Debug("Skipping imported element with duplicate id")
			continue
		}
		seen[task.ID] = true
		accepted = append(accepted, task)
	}
	return accepted, nil
}

// validTask checks one element against the task schema and decodes it.
func validTask(raw json.RawMessage) (Task, error) {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return Task{}, err
	}
	if err := taskSchema.Validate(v); err != nil {
		return Task{}, err
	}
	var task Task
	if err := json.Unmarshal(raw, &task); err != nil {
		return Task{}, err
	}
	return task, nil
}
