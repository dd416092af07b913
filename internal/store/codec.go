package store

import (
	"encoding/json"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Makepad-fr/simpletodo/internal/model"
)

const blobSchemaURL = "simpletodo://todos.schema.json"

const blobSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "text", "done"],
    "properties": {
      "id":   {"type": "string", "minLength": 1},
      "text": {"type": "string", "pattern": "\\S"},
      "done": {"type": "boolean"}
    }
  }
}`

var schema = jsonschema.MustCompileString(blobSchemaURL, blobSchema)

// Encode serializes tasks into the persisted layout: a JSON array of
// {id, text, done}. A nil list encodes as [].
func Encode(tasks []model.Task) (string, error) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	b, err := json.Marshal(tasks)
	if err != nil {
		return "", fmt.Errorf("json marshal: %w", err)
	}
	return string(b), nil
}

// Decode parses a persisted blob. It rejects anything that does not match
// the schema, duplicate ids, and text that is blank after trimming.
func Decode(blob string) ([]model.Task, error) {
	var raw interface{}
	if err := json.Unmarshal([]byte(blob), &raw); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if err := schema.Validate(raw); err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}

	var tasks []model.Task
	if err := json.Unmarshal([]byte(blob), &tasks); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	seen := make(map[string]struct{}, len(tasks))
	for i := range tasks {
		tasks[i].Text = strings.TrimSpace(tasks[i].Text)
		if _, dup := seen[tasks[i].ID]; dup {
			return nil, fmt.Errorf("duplicate id %q at index %d", tasks[i].ID, i)
		}
		seen[tasks[i].ID] = struct{}{}
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}
