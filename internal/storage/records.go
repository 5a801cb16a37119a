package storage

// TaskRecord is the persisted JSON form of a task.
type TaskRecord struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Memo        string  `json:"memo"`
	DueDate     *string `json:"dueDate"`
	FolderID    *string `json:"folderId"`
	Completed   bool    `json:"completed"`
	CreatedAt   string  `json:"createdAt"`
	CompletedAt *string `json:"completedAt"`
}

// FolderRecord is the persisted JSON form of a folder.
type FolderRecord struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}
