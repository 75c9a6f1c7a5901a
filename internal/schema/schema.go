// Package schema validates stored values against embedded JSON schemas.
package schema

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"todomaster/internal/service"
)

//go:embed schemas/*.json
var files embed.FS

const (
	usersURL = "https://todomaster.local/schemas/users.json"
	tasksURL = "https://todomaster.local/schemas/tasks.json"
)

// Validator holds the compiled schemas.
type Validator struct {
	users *jsonschema.Schema
	tasks *jsonschema.Schema
}

// New compiles the embedded schemas.
func New() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	for url, name := range map[string]string{usersURL: "users.json", tasksURL: "tasks.json"} {
		data, err := files.ReadFile("schemas/" + name)
		if err != nil {
			return nil, err
		}
		if err := compiler.AddResource(url, bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("add schema %s: %w", name, err)
		}
	}

	users, err := compiler.Compile(usersURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	tasks, err := compiler.Compile(tasksURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Validator{users: users, tasks: tasks}, nil
}

// Users validates the value stored under the users key.
func (v *Validator) Users(key, raw string) []service.Problem {
	problems := validate(v.users, key, raw)
	if len(problems) > 0 {
		return problems
	}

	// Uniqueness is not expressible per item in the schema.
	var users []service.Account
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		return []service.Problem{{Key: key, Message: err.Error()}}
	}
	seen := make(map[string]bool, len(users))
	for _, u := range users {
		if seen[u.Username] {
			problems = append(problems, service.Problem{
				Key:     key,
				Message: fmt.Sprintf("duplicate username %q", u.Username),
			})
		}
		seen[u.Username] = true
	}
	return problems
}

// Tasks validates a task collection value.
func (v *Validator) Tasks(key, raw string) []service.Problem {
	problems := validate(v.tasks, key, raw)
	if len(problems) > 0 {
		return problems
	}

	var tasks []service.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return []service.Problem{{Key: key, Message: err.Error()}}
	}
	seen := make(map[int64]bool, len(tasks))
	for _, t := range tasks {
		if seen[t.ID] {
			problems = append(problems, service.Problem{
				Key:     key,
				Message: fmt.Sprintf("duplicate task id %d", t.ID),
			})
		}
		seen[t.ID] = true
	}
	return problems
}

func validate(s *jsonschema.Schema, key, raw string) []service.Problem {
	var doc interface{}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return []service.Problem{{Key: key, Message: fmt.Sprintf("not valid JSON: %v", err)}}
	}

	err := s.Validate(doc)
	if err == nil {
		return nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []service.Problem{{Key: key, Message: err.Error()}}
	}

	var msgs []string
	collectLeaves(ve, &msgs)
	if len(msgs) == 0 {
		msgs = append(msgs, ve.Message)
	}
	sort.Strings(msgs)

	problems := make([]service.Problem, 0, len(msgs))
	for _, m := range msgs {
		problems = append(problems, service.Problem{Key: key, Message: m})
	}
	return problems
}

// collectLeaves gathers the messages of the innermost causes.
func collectLeaves(ve *jsonschema.ValidationError, out *[]string) {
	if ve == nil {
		return
	}
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		*out = append(*out, strings.TrimSpace(loc+": "+ve.Message))
		return
	}
	for _, c := range ve.Causes {
		collectLeaves(c, out)
	}
}
