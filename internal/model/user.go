package model

// User is the single session record persisted under the "user" key.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Valid reports whether u carries the fields a session needs.
func (u User) Valid() bool {
	return u.ID != "" && u.Email != ""
}
