package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"todomaster/internal/service"
)

// TaskRef represents a parsed task reference.
type TaskRef struct {
	Position int   // 1-based position as printed by list; 0 when ByID
	ID       int64 // raw task id; set when ByID
	ByID     bool  // true for the @<id> form
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses a task reference from args.
//
// Parsing rules:
// 1. No args → ErrTaskRefRequired
// 2. All digits (e.g. 3) → position in the list
// 3. '@' followed by digits (e.g. @1700000000000) → raw task id
// 4. Anything else, or more than one arg → error: invalid task reference: <ref>
func ParseTaskRef(args []string) (TaskRef, error) {
	if len(args) == 0 {
		return TaskRef{}, ErrTaskRefRequired
	}
	if len(args) > 1 {
		return TaskRef{}, fmt.Errorf("invalid task reference: %s", strings.Join(args, " "))
	}

	arg := args[0]

	if isAllDigits(arg) {
		num, err := strconv.Atoi(arg)
		if err != nil {
			return TaskRef{}, fmt.Errorf("invalid task reference: %s", arg)
		}
		return TaskRef{Position: num}, nil
	}

	if rest, ok := strings.CutPrefix(arg, "@"); ok && isAllDigits(rest) {
		id, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return TaskRef{}, fmt.Errorf("invalid task reference: %s", arg)
		}
		return TaskRef{ID: id, ByID: true}, nil
	}

	return TaskRef{}, fmt.Errorf("invalid task reference: %s", arg)
}

// Resolve finds the task ref points at.
func (r TaskRef) Resolve(list []service.Task) (service.Task, error) {
	if r.ByID {
		for _, t := range list {
			if t.ID == r.ID {
				return t, nil
			}
		}
		return service.Task{}, fmt.Errorf("task not found: @%d", r.ID)
	}
	if r.Position < 1 || r.Position > len(list) {
		return service.Task{}, fmt.Errorf("task number out of range: %d", r.Position)
	}
	return list[r.Position-1], nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
