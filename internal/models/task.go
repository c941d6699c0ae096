package model

// Task is one entry of the task snapshot. Every field is optional on the
// wire; absent fields stay nil and are omitted when encoded.
type Task struct {
	ID        *int64  `json:"id,omitempty"`
	Task      *string `json:"task,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
	Assignee  *string `json:"assignee,omitempty"`
	Creator   *string `json:"creator,omitempty"`
}

// HasID reports whether the task carries the given id.
func (t Task) HasID(id int64) bool {
	return t.ID != nil && *t.ID == id
}
