package entities

// Task - внутренняя задача; для дашборда важен только заблокированный статус.
type Task struct {
	ID     string `json:"id" db:"id"`
	Title  string `json:"title" db:"title"`
	Status string `json:"status" db:"status"`
}

const TaskStatusBlocked = "BLOCKED"
