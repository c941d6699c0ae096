// Package schema validates the persisted snapshot documents.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const tasksSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "array",
	"items": {
		"type": "object",
		"properties": {
			"id":        {"type": ["integer", "null"]},
			"task":      {"type": ["string", "null"]},
			"completed": {"type": ["boolean", "null"]},
			"assignee":  {"type": ["string", "null"]},
			"creator":   {"type": ["string", "null"]}
		}
	}
}`

const adminsSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "array",
	"items": {
		"type": "object",
		"required": ["username", "password"],
		"properties": {
			"username": {"type": "string"},
			"password": {"type": "string"}
		}
	}
}`

var (
	tasks  = jsonschema.MustCompileString("tasks.schema.json", tasksSchema)
	admins = jsonschema.MustCompileString("admins.schema.json", adminsSchema)
)

// ValidateTasks checks a task snapshot document.
func ValidateTasks(data []byte) error {
	return validate(tasks, data)
}

// ValidateAdmins checks an administrator credential document.
func ValidateAdmins(data []byte) error {
	return validate(admins, data)
}

func validate(s *jsonschema.Schema, data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("schema violation: %w", err)
	}
	return nil
}
