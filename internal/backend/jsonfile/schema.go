package jsonfile

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// schemaURL is the resource name the schema is registered under.
const schemaURL = "tasks.schema.json"

// schemaSource describes the tasks file: an array of task objects.
// done may be omitted in hand-edited files and then reads as false.
const schemaSource = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "todo tasks file",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["title"],
    "properties": {
      "title": {"type": "string"},
      "done": {"type": "boolean"}
    }
  }
}`

var taskFileSchema = jsonschema.MustCompileString(schemaURL, schemaSource)

// ValidationError reports the first schema violation found in a tasks file.
type ValidationError struct {
	Path string // location in the document, e.g. [2].title
	Msg  string
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("invalid tasks file: %s: %s", e.Path, e.Msg)
	}
	return fmt.Sprintf("invalid tasks file: %s", e.Msg)
}

func validate(doc interface{}) error {
	err := taskFileSchema.Validate(doc)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	leaf := firstLeaf(ve)
	return &ValidationError{
		Path: pointerToPath(leaf.InstanceLocation),
		Msg:  leaf.Message,
	}
}

// firstLeaf walks the cause tree down to the most specific error.
func firstLeaf(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}

// pointerToPath turns a JSON pointer like /2/title into [2].title.
func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
