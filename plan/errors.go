package plan

import "fmt"

// MissingInformation reports that a seed variety cannot be priced or
// ordered because the data needed to do so is absent. It is a
// recoverable condition: callers collect the message and move on to
// the next variety.
type MissingInformation struct {
	Message string
}

func (m *MissingInformation) Error() string {
	return m.Message
}

// UnsplittableTask reports an attempt to split a task which cannot be
// sub-divided. The scheduler never does this in correct usage, so
// seeing one indicates a logic bug rather than bad input.
type UnsplittableTask struct {
	Kind TaskKind
}

func (u *UnsplittableTask) Error() string {
	return fmt.Sprintf("task kind %q cannot be split", u.Kind)
}
