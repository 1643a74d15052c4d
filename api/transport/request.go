package transport

// TaskRequest is the create and edit payload. Due dates accept RFC 3339 or YYYY-MM-DD.
type TaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	Completed   *bool  `json:"completed"`
	DueDate     string `json:"due_date"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

type ReorderRequest struct {
	FromID string `json:"from_id"`
	ToID   string `json:"to_id"`
}

type BulkRequest struct {
	IDs    []string `json:"ids"`
	Status string   `json:"status,omitempty"`
}

type SignInRequest struct {
	IDToken string `json:"id_token"`
}

type RefreshRequest struct {
	TTL int64 `json:"ttl_seconds"`
}
