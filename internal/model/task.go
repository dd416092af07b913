package model

// Task is the domain model for a todo entry.
// Only Done changes after creation.
type Task struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}
