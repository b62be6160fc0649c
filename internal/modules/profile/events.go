package profile

import (
	"time"

	"github.com/nfrund/issuedesk/internal/pubsub"
)

// ItemReturned is published after the backend accepted a return.
type ItemReturned struct {
	IssueID    string    `json:"issueId"`
	RollNumber string    `json:"roll"`
	ViewID     string    `json:"viewId"`
	ReturnedAt time.Time `json:"returnedAt"`
}

// TopicItemReturned carries ItemReturned events.
var TopicItemReturned = pubsub.NewTopic[ItemReturned]("profile.issue.returned")
