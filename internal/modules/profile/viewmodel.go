package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/nfrund/issuedesk/internal/domain"
)

// State is the lifecycle position of a ViewModel.
type State int

const (
	StateIdle State = iota
	StateCheckingAuth
	StateUnauthenticated
	StateReadyNoIssues
	StateLoading
	StateReady
	StateReadyError
	// StateRedirected is an admin identity handed off to the inventory view.
	StateRedirected
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCheckingAuth:
		return "checking-auth"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateReadyNoIssues:
		return "ready-no-issues"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateReadyError:
		return "ready-error"
	case StateRedirected:
		return "redirected"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// SignalKind identifies what the view should do next.
type SignalKind int

const (
	SignalRedirectLogin SignalKind = iota + 1
	SignalNavigateInventory
	SignalNavigateLanding
	SignalNotifySuccess
	SignalNotifyError
)

// Signal is a navigation or notification request emitted by a ViewModel.
type Signal struct {
	Kind    SignalKind
	Message string
}

// IsNavigation reports whether the signal leaves the profile page.
func (s Signal) IsNavigation() bool {
	switch s.Kind {
	case SignalRedirectLogin, SignalNavigateInventory, SignalNavigateLanding:
		return true
	}
	return false
}

const (
	msgReturnSucceeded = "Item returned successfully!"
	msgReturnFailed    = "Failed to return item"
)

// SessionClearer ends the signed-in session.
type SessionClearer interface {
	Clear() error
}

// ClearFunc adapts a function to SessionClearer.
type ClearFunc func() error

func (f ClearFunc) Clear() error { return f() }

// Snapshot is an immutable copy of a ViewModel for rendering.
type Snapshot struct {
	ID       string
	State    State
	Identity domain.Identity
	Issues   []domain.IssueRecord
}

// ViewModel drives one profile page: it checks the identity, loads the member's
// issues and handles returns. Operations are serialised by an internal mutex, so
// at most one fetch is in flight per activation.
type ViewModel struct {
	mu       sync.Mutex
	id       string
	issues   domain.IssueService
	logger   *slog.Logger
	state    State
	identity domain.Identity
	records  []domain.IssueRecord
	signals  []Signal
}

// NewViewModel creates an Idle view-model backed by the issue service.
func NewViewModel(issues domain.IssueService, logger *slog.Logger) *ViewModel {
	if logger == nil {
		logger = slog.Default()
	}
	return &ViewModel{
		id:      uuid.NewString(),
		issues:  issues,
		logger:  logger,
		state:   StateIdle,
		records: []domain.IssueRecord{},
	}
}

// ID identifies the view-model across requests.
func (vm *ViewModel) ID() string { return vm.id }

// Activate runs the authentication guard and, for members, the initial fetch.
// It returns domain.ErrAuthMissing when unauthenticated; a failed fetch is not
// an error to the caller and leaves the view in StateReadyError.
func (vm *ViewModel) Activate(ctx context.Context, auth domain.AuthResult) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if vm.state != StateIdle {
		return fmt.Errorf("activate in state %s: %w", vm.state, domain.ErrNotReady)
	}
	vm.state = StateCheckingAuth

	id, ok := auth.Identity()
	if !ok {
		vm.state = StateUnauthenticated
		vm.emit(Signal{Kind: SignalRedirectLogin})
		return domain.ErrAuthMissing
	}
	vm.identity = id

	switch v := id.(type) {
	case domain.Guest:
		vm.state = StateReadyNoIssues
	case domain.Admin:
		// The identity is recorded before the hand-off, as the page would have
		// known who the admin was before navigating away.
		vm.state = StateRedirected
		vm.emit(Signal{Kind: SignalNavigateInventory})
	case domain.Member:
		vm.fetch(ctx, v.RollNumber)
	default:
		return fmt.Errorf("unsupported identity %T: %w", id, domain.ErrInvalidIdentity)
	}
	return nil
}

// ReturnItem marks an issue returned and then reloads the full list from the
// backend; the local record is never patched. It requires StateReady.
func (vm *ViewModel) ReturnItem(ctx context.Context, issueID domain.IssueID) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if vm.state != StateReady {
		return fmt.Errorf("return in state %s: %w", vm.state, domain.ErrNotReady)
	}
	member, ok := vm.identity.(domain.Member)
	if !ok {
		return fmt.Errorf("return for %T: %w", vm.identity, domain.ErrNotReady)
	}

	if err := vm.issues.ReturnItem(ctx, issueID); err != nil {
		vm.logger.Error("Error returning item", "issue_id", issueID.String(), "error", err)
		vm.emit(Signal{Kind: SignalNotifyError, Message: returnFailureMessage(err)})
		return err
	}

	vm.fetch(ctx, member.RollNumber)
	vm.emit(Signal{Kind: SignalNotifySuccess, Message: msgReturnSucceeded})
	return nil
}

// Logout clears the session and sends the browser to the landing page.
func (vm *ViewModel) Logout(ctx context.Context, session SessionClearer) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if err := session.Clear(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	vm.identity = nil
	vm.records = []domain.IssueRecord{}
	vm.emit(Signal{Kind: SignalNavigateLanding})
	return nil
}

// Snapshot returns a copy of the current state.
func (vm *ViewModel) Snapshot() Snapshot {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	issues := make([]domain.IssueRecord, len(vm.records))
	copy(issues, vm.records)
	return Snapshot{
		ID:       vm.id,
		State:    vm.state,
		Identity: vm.identity,
		Issues:   issues,
	}
}

// FindIssue returns the fetched record whose ID has the given text form.
func (s Snapshot) FindIssue(id string) (domain.IssueRecord, bool) {
	if id == "" {
		return domain.IssueRecord{}, false
	}
	for _, rec := range s.Issues {
		if rec.ID.String() == id {
			return rec, true
		}
	}
	return domain.IssueRecord{}, false
}

// TakeSignals returns and clears the pending signals.
func (vm *ViewModel) TakeSignals() []Signal {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	signals := vm.signals
	vm.signals = nil
	return signals
}

// fetch replaces the issue list wholesale. Callers must hold vm.mu.
func (vm *ViewModel) fetch(ctx context.Context, roll string) {
	vm.state = StateLoading

	records, err := vm.issues.ListIssues(ctx, roll)
	if err != nil {
		vm.logger.Error("Error fetching issues", "roll", roll, "error", err)
		vm.records = []domain.IssueRecord{}
		vm.state = StateReadyError
		return
	}
	if records == nil {
		records = []domain.IssueRecord{}
	}
	vm.records = records
	vm.state = StateReady
}

func (vm *ViewModel) emit(s Signal) {
	vm.signals = append(vm.signals, s)
}

// returnFailureMessage prefers the backend's message over the generic one.
func returnFailureMessage(err error) string {
	var rerr *domain.ReturnError
	if errors.As(err, &rerr) && rerr.Message != "" {
		return rerr.Message
	}
	return msgReturnFailed
}
