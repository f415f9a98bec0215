package ir

import (
	"fmt"
	"strings"
)

// ValidationIssue represents a single validation problem
type ValidationIssue struct {
	Code    string   // e.g., "MISSING_INITIAL", "DUPLICATE_TRANSITION"
	Message string   // Human-readable description
	Path    []string // e.g., ["states", "armed", "on", "trigger+"]
}

// String returns a human-readable representation of the issue
func (v ValidationIssue) String() string {
	if len(v.Path) > 0 {
		return fmt.Sprintf("[%s] %s (at %s)", v.Code, v.Message, strings.Join(v.Path, "."))
	}
	return fmt.Sprintf("[%s] %s", v.Code, v.Message)
}

// ValidationError contains all validation issues found during validation
type ValidationError struct {
	Issues []ValidationIssue
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "validation failed"
	}
	if len(e.Issues) == 1 {
		return e.Issues[0].String()
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("validation failed with %d issues:\n", len(e.Issues)))
	for i, issue := range e.Issues {
		b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, issue.String()))
	}
	return b.String()
}

// AddIssue adds a validation issue to the error
func (e *ValidationError) AddIssue(code, message string, path ...string) {
	e.Issues = append(e.Issues, ValidationIssue{
		Code:    code,
		Message: message,
		Path:    path,
	})
}

// HasIssues returns true if there are any validation issues
func (e *ValidationError) HasIssues() bool {
	return len(e.Issues) > 0
}

// HasCode reports whether any issue carries the given code
func (e *ValidationError) HasCode(code string) bool {
	for _, issue := range e.Issues {
		if issue.Code == code {
			return true
		}
	}
	return false
}

// Validation error codes
const (
	ErrCodeMissingInitial      = "MISSING_INITIAL"
	ErrCodeInitialNotFound     = "INITIAL_NOT_FOUND"
	ErrCodeInvalidTarget       = "INVALID_TARGET"
	ErrCodeDuplicateState      = "DUPLICATE_STATE"
	ErrCodeDuplicateTransition = "DUPLICATE_TRANSITION"
	ErrCodeForeignState        = "FOREIGN_STATE"
	ErrCodeMissingEntry        = "MISSING_ENTRY"
	ErrCodeMissingGuard        = "MISSING_GUARD"
	ErrCodeInvalidParent       = "INVALID_PARENT"
)

// Validate checks the machine configuration for errors
func Validate(m *MachineConfig) *ValidationError {
	errs := &ValidationError{}

	if m.Initial == NoState {
		errs.AddIssue(ErrCodeMissingInitial, "initial state is required")
	} else if m.GetState(m.Initial) == nil {
		errs.AddIssue(ErrCodeInitialNotFound,
			fmt.Sprintf("initial state %d not found in states", m.Initial))
	}

	seen := make(map[string]StateID, len(m.States))
	for _, state := range m.States {
		statePath := []string{"states", state.Name}

		if prev, ok := seen[state.Name]; ok {
			errs.AddIssue(ErrCodeDuplicateState,
				fmt.Sprintf("state name '%s' is used by states %d and %d", state.Name, prev, state.ID),
				statePath...)
		} else {
			seen[state.Name] = state.ID
		}

		if state.ID != RootState {
			// Parents must precede children in the arena
			if state.Parent == NoState || state.Parent >= state.ID {
				errs.AddIssue(ErrCodeInvalidParent,
					fmt.Sprintf("state '%s' has invalid parent %d", state.Name, state.Parent),
					statePath...)
			}
			if state.Entry == nil {
				errs.AddIssue(ErrCodeMissingEntry,
					fmt.Sprintf("state '%s' has no entry function", state.Name),
					statePath...)
			}
		}

		for _, trans := range state.Transitions.entries {
			transPath := append(append([]string(nil), statePath...), "on", trans.Event.String())

			switch trans.Kind {
			case TransitionComputed:
				if trans.Compute == nil {
					errs.AddIssue(ErrCodeMissingGuard,
						"computed transition has no function", transPath...)
				}
				continue
			case TransitionGuarded:
				if trans.Guard == nil {
					errs.AddIssue(ErrCodeMissingGuard,
						"guarded transition has no guard", transPath...)
				}
			}

			if m.GetState(trans.Target) == nil {
				errs.AddIssue(ErrCodeInvalidTarget,
					fmt.Sprintf("transition target %d not found", trans.Target),
					transPath...)
			}
		}
	}

	if errs.HasIssues() {
		return errs
	}
	return nil
}
