package quiz

import "fmt"

// NotFoundError indicates a roadmap, roadmap item or question does not
// exist (or is not visible to the requesting user).
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// InvalidOperationError indicates the request is well-formed but not
// allowed for this item, e.g. a quiz for a project milestone.
type InvalidOperationError struct {
	Message string
}

func (e *InvalidOperationError) Error() string { return e.Message }

// MalformedOutputError indicates the question generator returned output
// that cannot be turned into pool questions.
type MalformedOutputError struct {
	Reason string
	Err    error
}

func (e *MalformedOutputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed generator output: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed generator output: %s", e.Reason)
}

func (e *MalformedOutputError) Unwrap() error { return e.Err }

// GenerationError indicates the question generator itself failed, e.g.
// the LLM provider was unavailable or rate limited.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string { return "generate questions: " + e.Err.Error() }

func (e *GenerationError) Unwrap() error { return e.Err }

var (
	errRoadmapNotFound  = &NotFoundError{Message: "Roadmap not found"}
	errItemNotFound     = &NotFoundError{Message: "Roadmap item not found"}
	errQuestionNotFound = &NotFoundError{Message: "Question not found"}
	errProjectItem      = &InvalidOperationError{
		Message: "Quizzes are not available for project items; project milestones are validated by submission",
	}
)
