package models

import (
	"time"
)

// Contact message statuses. A message starts as "new"; administrators may
// move it freely between any of the three states.
const (
	ContactStatusNew     = "new"
	ContactStatusRead    = "read"
	ContactStatusReplied = "replied"
)

var validContactStatuses = map[string]bool{
	ContactStatusNew:     true,
	ContactStatusRead:    true,
	ContactStatusReplied: true,
}

// ValidContactStatus reports whether status is one of new/read/replied.
func ValidContactStatus(status string) bool {
	return validContactStatuses[status]
}

// Contact is a message submitted through the public contact form. It has no
// relationship to User; the submitted fields are immutable, only Status moves.
type Contact struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}
