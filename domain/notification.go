package domain

type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityError Severity = "error"
)

// Notification is the user-visible outcome of an operation.
type Notification struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

func Info(title, description string) Notification {
	return Notification{Title: title, Description: description, Severity: SeverityInfo}
}

func Failure(description string) Notification {
	return Notification{Title: "Error", Description: description, Severity: SeverityError}
}
