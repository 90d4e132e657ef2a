package core

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by a structural operation satisfies
// errors.Is against exactly one of these.
var (
	// ErrConfiguration means no agent root could be resolved (no project context).
	ErrConfiguration = errors.New("no project context: agent root cannot be resolved")
	// ErrNotFound means an expected skill or agent directory is missing.
	ErrNotFound = errors.New("not found")
	// ErrConflict means the destination is already occupied.
	ErrConflict = errors.New("already exists")
	// ErrInvalidState means the operation is meaningless for the current agent kind.
	ErrInvalidState = errors.New("invalid state")
	// ErrInvalidName is returned for skill or category names that cannot be
	// used as a single path component.
	ErrInvalidName = errors.New("invalid name")
	// ErrIO wraps an underlying read/write/copy/rename/delete failure.
	ErrIO = errors.New("i/o failure")
	// ErrLaunch means the relocated process could not be started.
	ErrLaunch = errors.New("launch failed")
)

// OpError records a failed filesystem or process operation.
// It unwraps to both its Kind sentinel and the underlying error, so callers
// can test errors.Is(err, ErrIO) as well as errors.Is(err, fs.ErrExist).
type OpError struct {
	Kind error
	Op   string
	Path string
	Err  error
}

func (e *OpError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *OpError) Unwrap() []error { return []error{e.Kind, e.Err} }

func ioError(op, path string, err error) error {
	return &OpError{Kind: ErrIO, Op: op, Path: path, Err: err}
}

func launchError(path string, err error) error {
	return &OpError{Kind: ErrLaunch, Op: "launching", Path: path, Err: err}
}

// ConflictError reports that a skill of the same name already exists in the
// target agent tree. State tells which of the two roots holds it.
type ConflictError struct {
	Skill string
	Agent AgentKind
	State SkillState
	Path  string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("skill %q already exists in %s %s skills (%s)",
		e.Skill, e.Agent.DisplayName(), e.State, e.Path)
}

// Is makes ConflictError match ErrConflict.
func (e *ConflictError) Is(target error) bool { return target == ErrConflict }
