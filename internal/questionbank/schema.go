package questionbank

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// documentSchema describes the native JSON bank document.
const documentSchema = `{
  "type": "object",
  "required": ["questions"],
  "additionalProperties": false,
  "properties": {
    "title": {"type": "string"},
    "objective": {"type": "string"},
    "questions": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["category", "variable", "description", "options"],
        "additionalProperties": false,
        "properties": {
          "category": {"type": "string", "minLength": 1},
          "variable": {"type": "string", "minLength": 1},
          "description": {"type": "string"},
          "options": {
            "type": "array",
            "items": {"type": "string"},
            "minItems": 5,
            "maxItems": 5
          },
          "sub_questions": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["text", "options"],
              "additionalProperties": false,
              "properties": {
                "text": {"type": "string"},
                "options": {
                  "type": "array",
                  "items": {"type": "string"},
                  "minItems": 2
                }
              }
            }
          }
        }
      }
    }
  }
}`

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func bankSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		def, err := jsonschema.UnmarshalJSON(bytes.NewReader([]byte(documentSchema)))
		if err != nil {
			compileErr = fmt.Errorf("parse bank schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://question-bank.json"
		if err := c.AddResource(url, def); err != nil {
			compileErr = fmt.Errorf("add bank schema: %w", err)
			return
		}
		compiled, compileErr = c.Compile(url)
	})
	return compiled, compileErr
}

// validateDocument checks raw JSON against the bank document schema.
func validateDocument(data []byte) error {
	s, err := bankSchema()
	if err != nil {
		return err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("parse json: %w", err)
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBank, err)
	}
	return nil
}
