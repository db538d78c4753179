package models

// User represents a team member in the user directory. Authentication and
// the role model live outside this service; the engine only stamps names.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Team  string `json:"team,omitempty"`
	Role  string `json:"role,omitempty"`
}

// SystemUser is stamped as UpdatedBy on records mutated by scheduled jobs.
const SystemUser = "system"
