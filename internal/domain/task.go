package domain

import "unicode/utf8"

// Field limits for a Task.
const (
	MaxTitleLength       = 50
	MaxDescriptionLength = 100

	// DefaultCompleted is applied when a task is created without an
	// explicit completed flag.
	DefaultCompleted = true
)

// Task is the single entity tracked by the service. Its identifier is not
// part of the record; the store keys tasks by ID.
type Task struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// NewTask builds a Task from its fields. A nil completed flag takes
// DefaultCompleted. Returns a *ValidationError if a field is out of bounds.
func NewTask(title, description string, completed *bool) (*Task, error) {
	task := &Task{
		Title:       title,
		Description: description,
		Completed:   DefaultCompleted,
	}
	if completed != nil {
		task.Completed = *completed
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks the length limits of Title and Description. Lengths are
// counted in characters, not bytes.
func (t *Task) Validate() error {
	if utf8.RuneCountInString(t.Title) > MaxTitleLength {
		return NewValidationError("title", "too long", ErrFieldTooLong)
	}

	if utf8.RuneCountInString(t.Description) > MaxDescriptionLength {
		return NewValidationError("description", "too long", ErrFieldTooLong)
	}

	return nil
}

// MarkIncomplete clears the completed flag. This is what a delete does.
func (t *Task) MarkIncomplete() {
	t.Completed = false
}
