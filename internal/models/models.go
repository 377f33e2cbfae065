package models

// DescriptionMaxLen is the longest description accepted from a form, in characters.
const DescriptionMaxLen = 25

// Todo is a single task row.
type Todo struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Done        bool   `json:"done"`
}

// NewTodo is the form submitted to add a todo.
type NewTodo struct {
	Description string `form:"description" binding:"required,min=1,max=25"`
}

// RenameTodo is the form submitted to replace a todo description.
type RenameTodo struct {
	Description string `form:"description" binding:"required,min=1,max=25"`
}
