// Package service defines the domain types and the interface the UI layers use.
package service

// Account is a registered username/password pair.
// Password holds a bcrypt hash, or the plaintext password for records
// written before hashing was introduced.
type Account struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Task represents a single to-do item owned by one account.
type Task struct {
	ID        int64  `json:"id" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	Completed bool   `json:"completed" yaml:"completed"`
	CreatedAt string `json:"createdAt" yaml:"createdAt"`
}

// State is the session context passed into and returned from every
// Service operation. The zero value is the logged-out state.
type State struct {
	User  string
	Tasks []Task
}

// LoggedIn reports whether the state belongs to an active session.
func (s State) LoggedIn() bool {
	return s.User != ""
}

// Stats summarizes a task collection.
type Stats struct {
	Total     int `json:"total" yaml:"total"`
	Completed int `json:"completed" yaml:"completed"`
	Pending   int `json:"pending" yaml:"pending"`
}

// Percent returns the completed share in the range [0, 100].
func (s Stats) Percent() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Completed) / float64(s.Total) * 100
}

// Problem describes one invalid stored value found by Verify.
type Problem struct {
	Key     string
	Message string
}
