package model

// Todo matches the shape served by the todo API.
// External data; the app never writes it back.
type Todo struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	UserID    int    `json:"userId"`
}
