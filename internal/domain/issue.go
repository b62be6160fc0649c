package domain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// IssueID identifies an issue record. The backend may use numeric or string
// identifiers; the original form is kept so it can be sent back unchanged.
type IssueID struct {
	value   string
	numeric bool
}

// ParseIssueID builds a string-typed IssueID from its textual form. The wire
// form of an ID seen in a URL is unknown; resolve it against the fetched
// records before sending it back to the backend.
func ParseIssueID(s string) IssueID {
	return IssueID{value: s}
}

// NumericIssueID builds an IssueID that is sent as a JSON number.
func NumericIssueID(n int64) IssueID {
	return IssueID{value: strconv.FormatInt(n, 10), numeric: true}
}

func (id IssueID) String() string { return id.value }

// IsNumeric reports whether the ID travels as a JSON number.
func (id IssueID) IsNumeric() bool { return id.numeric }

// IsZero reports whether the ID is unset.
func (id IssueID) IsZero() bool { return id.value == "" }

func (id IssueID) MarshalJSON() ([]byte, error) {
	if id.numeric {
		return []byte(id.value), nil
	}
	return json.Marshal(id.value)
}

func (id *IssueID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = IssueID{value: s}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("issue id must be a string or number: %w", err)
	}
	*id = IssueID{value: n.String(), numeric: true}
	return nil
}

// IssueRecord is one lending of a physical item to a user.
type IssueRecord struct {
	ID       IssueID
	ItemName string
	Quantity int
	// IssueDate is nil when the backend sent no date or an unparseable one.
	IssueDate *time.Time
	// DaysToReturn of 0 means there is no deadline.
	DaysToReturn int
	Returned     bool
}

// issueRecordJSON is the wire shape returned by the issue backend.
type issueRecordJSON struct {
	ID           IssueID `json:"id"`
	MongoID      IssueID `json:"_id"`
	ItemName     string  `json:"itemName"`
	Quantity     int     `json:"quantity"`
	IssueDate    string  `json:"issueDate"`
	DaysToReturn int     `json:"daysToReturn"`
	Returned     bool    `json:"returned"`
}

func (r *IssueRecord) UnmarshalJSON(data []byte) error {
	var raw issueRecordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	id := raw.ID
	if id.IsZero() {
		id = raw.MongoID
	}
	*r = IssueRecord{
		ID:           id,
		ItemName:     raw.ItemName,
		Quantity:     raw.Quantity,
		IssueDate:    OptionalTimestamp(raw.IssueDate),
		DaysToReturn: raw.DaysToReturn,
		Returned:     raw.Returned,
	}
	return nil
}

func (r IssueRecord) MarshalJSON() ([]byte, error) {
	raw := issueRecordJSON{
		ID:           r.ID,
		ItemName:     r.ItemName,
		Quantity:     r.Quantity,
		DaysToReturn: r.DaysToReturn,
		Returned:     r.Returned,
	}
	if r.IssueDate != nil {
		raw.IssueDate = r.IssueDate.Format(time.RFC3339Nano)
	}
	return json.Marshal(struct {
		ID           IssueID `json:"id"`
		ItemName     string  `json:"itemName"`
		Quantity     int     `json:"quantity"`
		IssueDate    string  `json:"issueDate,omitempty"`
		DaysToReturn int     `json:"daysToReturn"`
		Returned     bool    `json:"returned"`
	}{raw.ID, raw.ItemName, raw.Quantity, raw.IssueDate, raw.DaysToReturn, raw.Returned})
}

// HasDeadline reports whether a "return within" notice applies to the record.
func (r IssueRecord) HasDeadline() bool {
	return r.DaysToReturn > 0 && !r.Returned
}

// IssueService is the external issue backend.
type IssueService interface {
	// ListIssues returns every issue recorded for the roll number, in server order.
	ListIssues(ctx context.Context, rollNumber string) ([]IssueRecord, error)
	// ReturnItem marks one issue returned.
	ReturnItem(ctx context.Context, id IssueID) error
}
