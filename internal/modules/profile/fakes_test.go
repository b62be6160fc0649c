package profile

import (
	"context"
	"sync"
	"time"

	"github.com/nfrund/issuedesk/internal/domain"
)

// fakeIssues is an in-memory IssueService that records every call.
type fakeIssues struct {
	mu sync.Mutex

	lists     [][]domain.IssueRecord // successive ListIssues results; the last repeats
	listErr   error
	returnErr error

	listCalls   []string
	returnCalls []domain.IssueID
}

func (f *fakeIssues) ListIssues(_ context.Context, roll string) ([]domain.IssueRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.listCalls = append(f.listCalls, roll)
	if f.listErr != nil {
		return nil, f.listErr
	}
	if len(f.lists) == 0 {
		return []domain.IssueRecord{}, nil
	}
	idx := len(f.listCalls) - 1
	if idx >= len(f.lists) {
		idx = len(f.lists) - 1
	}
	return f.lists[idx], nil
}

func (f *fakeIssues) ReturnItem(_ context.Context, id domain.IssueID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.returnCalls = append(f.returnCalls, id)
	return f.returnErr
}

func (f *fakeIssues) calls() (lists, returns int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.listCalls), len(f.returnCalls)
}

func ptrTime(t time.Time) *time.Time { return &t }

var issuedOn = time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)

func drillRecord(returned bool) domain.IssueRecord {
	return domain.IssueRecord{
		ID:           domain.ParseIssueID("1"),
		ItemName:     "Drill",
		Quantity:     1,
		IssueDate:    ptrTime(issuedOn),
		DaysToReturn: 7,
		Returned:     returned,
	}
}

func member(roll string) domain.Member {
	return domain.Member{
		Profile: domain.Profile{
			DisplayName: "Asha Rao",
			Department:  "Mechanical",
			LastLogin:   ptrTime(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)),
		},
		RollNumber: roll,
		Degree:     "B.Tech",
	}
}
