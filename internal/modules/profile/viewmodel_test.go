package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/nfrund/issuedesk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestViewModel_Activate(t *testing.T) {
	ctx := context.Background()

	t.Run("unauthenticated redirects before any fetch", func(t *testing.T) {
		issues := &fakeIssues{}
		vm := NewViewModel(issues, nil)

		err := vm.Activate(ctx, domain.Unauthenticated())

		require.ErrorIs(t, err, domain.ErrAuthMissing)
		assert.Equal(t, StateUnauthenticated, vm.Snapshot().State)
		assert.Equal(t, []Signal{{Kind: SignalRedirectLogin}}, vm.TakeSignals())
		lists, returns := issues.calls()
		assert.Zero(t, lists)
		assert.Zero(t, returns)
	})

	t.Run("guest never fetches", func(t *testing.T) {
		issues := &fakeIssues{}
		vm := NewViewModel(issues, nil)

		require.NoError(t, vm.Activate(ctx, domain.Authenticated(domain.Guest{})))

		snap := vm.Snapshot()
		assert.Equal(t, StateReadyNoIssues, snap.State)
		assert.Empty(t, snap.Issues)
		assert.Empty(t, vm.TakeSignals())
		lists, _ := issues.calls()
		assert.Zero(t, lists)
	})

	t.Run("admin is handed to inventory", func(t *testing.T) {
		issues := &fakeIssues{}
		vm := NewViewModel(issues, nil)
		admin := domain.Admin{Profile: domain.Profile{DisplayName: "Root"}, RollNumber: "A1"}

		require.NoError(t, vm.Activate(ctx, domain.Authenticated(admin)))

		snap := vm.Snapshot()
		assert.Equal(t, StateRedirected, snap.State)
		assert.Equal(t, admin, snap.Identity)
		assert.Equal(t, []Signal{{Kind: SignalNavigateInventory}}, vm.TakeSignals())
		lists, _ := issues.calls()
		assert.Zero(t, lists)
	})

	t.Run("member loads issues", func(t *testing.T) {
		issues := &fakeIssues{lists: [][]domain.IssueRecord{{drillRecord(false)}}}
		vm := NewViewModel(issues, nil)

		require.NoError(t, vm.Activate(ctx, domain.Authenticated(member("21B1234"))))

		snap := vm.Snapshot()
		assert.Equal(t, StateReady, snap.State)
		require.Len(t, snap.Issues, 1)
		assert.Equal(t, "Drill", snap.Issues[0].ItemName)
		assert.Equal(t, []string{"21B1234"}, issues.listCalls)
	})

	t.Run("member fetch failure degrades to an empty list", func(t *testing.T) {
		issues := &fakeIssues{listErr: domain.ErrFetchFailed}
		vm := NewViewModel(issues, nil)

		require.NoError(t, vm.Activate(ctx, domain.Authenticated(member("21B1234"))))

		snap := vm.Snapshot()
		assert.Equal(t, StateReadyError, snap.State)
		assert.Empty(t, snap.Issues)
		assert.Empty(t, vm.TakeSignals(), "a failed load is silent")
	})

	t.Run("second activation is rejected", func(t *testing.T) {
		issues := &fakeIssues{}
		vm := NewViewModel(issues, nil)
		require.NoError(t, vm.Activate(ctx, domain.Authenticated(domain.Guest{})))

		err := vm.Activate(ctx, domain.Authenticated(domain.Guest{}))
		assert.ErrorIs(t, err, domain.ErrNotReady)
	})
}

func TestViewModel_ReturnItem(t *testing.T) {
	ctx := context.Background()

	t.Run("success re-fetches then notifies", func(t *testing.T) {
		issues := &fakeIssues{lists: [][]domain.IssueRecord{
			{drillRecord(false)},
			{drillRecord(true)},
		}}
		vm := NewViewModel(issues, nil)
		require.NoError(t, vm.Activate(ctx, domain.Authenticated(member("21B1234"))))

		require.NoError(t, vm.ReturnItem(ctx, domain.ParseIssueID("1")))

		snap := vm.Snapshot()
		assert.Equal(t, StateReady, snap.State)
		require.Len(t, snap.Issues, 1)
		assert.True(t, snap.Issues[0].Returned)
		assert.Equal(t, []Signal{{Kind: SignalNotifySuccess, Message: "Item returned successfully!"}}, vm.TakeSignals())

		lists, returns := issues.calls()
		assert.Equal(t, 2, lists)
		assert.Equal(t, 1, returns)
		assert.Equal(t, "1", issues.returnCalls[0].String())
	})

	t.Run("state mirrors the re-fetch even if the item is still pending", func(t *testing.T) {
		issues := &fakeIssues{lists: [][]domain.IssueRecord{{drillRecord(false)}}}
		vm := NewViewModel(issues, nil)
		require.NoError(t, vm.Activate(ctx, domain.Authenticated(member("21B1234"))))

		require.NoError(t, vm.ReturnItem(ctx, domain.ParseIssueID("1")))

		snap := vm.Snapshot()
		require.Len(t, snap.Issues, 1)
		assert.False(t, snap.Issues[0].Returned)
	})

	t.Run("backend message is surfaced", func(t *testing.T) {
		issues := &fakeIssues{
			lists:     [][]domain.IssueRecord{{drillRecord(false)}},
			returnErr: &domain.ReturnError{StatusCode: 409, Message: "Already returned"},
		}
		vm := NewViewModel(issues, nil)
		require.NoError(t, vm.Activate(ctx, domain.Authenticated(member("21B1234"))))

		err := vm.ReturnItem(ctx, domain.ParseIssueID("1"))

		require.ErrorIs(t, err, domain.ErrReturnFailed)
		assert.Equal(t, []Signal{{Kind: SignalNotifyError, Message: "Already returned"}}, vm.TakeSignals())
		snap := vm.Snapshot()
		assert.Equal(t, StateReady, snap.State)
		assert.False(t, snap.Issues[0].Returned)
		lists, _ := issues.calls()
		assert.Equal(t, 1, lists, "no re-fetch after a failed return")
	})

	t.Run("generic message without a backend message", func(t *testing.T) {
		issues := &fakeIssues{returnErr: errors.New("connection refused")}
		vm := NewViewModel(issues, nil)
		require.NoError(t, vm.Activate(ctx, domain.Authenticated(member("21B1234"))))

		require.Error(t, vm.ReturnItem(ctx, domain.ParseIssueID("1")))
		assert.Equal(t, []Signal{{Kind: SignalNotifyError, Message: "Failed to return item"}}, vm.TakeSignals())
	})

	t.Run("failed re-fetch still reports success", func(t *testing.T) {
		issues := &fakeIssues{lists: [][]domain.IssueRecord{{drillRecord(false)}}}
		vm := NewViewModel(issues, nil)
		require.NoError(t, vm.Activate(ctx, domain.Authenticated(member("21B1234"))))
		issues.listErr = domain.ErrFetchFailed

		require.NoError(t, vm.ReturnItem(ctx, domain.ParseIssueID("1")))

		snap := vm.Snapshot()
		assert.Equal(t, StateReadyError, snap.State)
		assert.Empty(t, snap.Issues)
		assert.Equal(t, []Signal{{Kind: SignalNotifySuccess, Message: "Item returned successfully!"}}, vm.TakeSignals())
	})

	t.Run("requires a ready view", func(t *testing.T) {
		issues := &fakeIssues{listErr: domain.ErrFetchFailed}
		vm := NewViewModel(issues, nil)
		require.NoError(t, vm.Activate(ctx, domain.Authenticated(member("21B1234"))))

		err := vm.ReturnItem(ctx, domain.ParseIssueID("1"))

		assert.ErrorIs(t, err, domain.ErrNotReady)
		_, returns := issues.calls()
		assert.Zero(t, returns)
	})
}

func TestViewModel_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("clears the session and navigates to landing", func(t *testing.T) {
		vm := NewViewModel(&fakeIssues{}, nil)
		cleared := false

		require.NoError(t, vm.Logout(ctx, ClearFunc(func() error {
			cleared = true
			return nil
		})))

		assert.True(t, cleared)
		assert.Equal(t, []Signal{{Kind: SignalNavigateLanding}}, vm.TakeSignals())
	})

	t.Run("stays put when the session cannot be cleared", func(t *testing.T) {
		vm := NewViewModel(&fakeIssues{}, nil)

		err := vm.Logout(ctx, ClearFunc(func() error { return errors.New("cookie store down") }))

		assert.Error(t, err)
		assert.Empty(t, vm.TakeSignals())
	})
}

func TestViewModel_TakeSignalsDrains(t *testing.T) {
	vm := NewViewModel(&fakeIssues{}, nil)
	_ = vm.Activate(context.Background(), domain.Unauthenticated())

	assert.Len(t, vm.TakeSignals(), 1)
	assert.Empty(t, vm.TakeSignals())
}

func genProfile() *rapid.Generator[domain.Profile] {
	return rapid.Custom(func(t *rapid.T) domain.Profile {
		return domain.Profile{
			DisplayName: rapid.String().Draw(t, "name"),
			Department:  rapid.String().Draw(t, "department"),
		}
	})
}

func TestViewModel_GuestsNeverFetch(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		issues := &fakeIssues{}
		vm := NewViewModel(issues, nil)

		if err := vm.Activate(context.Background(), domain.Authenticated(domain.Guest{Profile: genProfile().Draw(t, "profile")})); err != nil {
			t.Fatalf("activate: %v", err)
		}
		if lists, returns := issues.calls(); lists != 0 || returns != 0 {
			t.Fatalf("guest triggered %d fetches and %d returns", lists, returns)
		}
		if got := vm.Snapshot().State; got != StateReadyNoIssues {
			t.Fatalf("state = %s", got)
		}
	})
}

func TestViewModel_AdminsNavigateOnce(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		issues := &fakeIssues{}
		vm := NewViewModel(issues, nil)
		admin := domain.Admin{
			Profile:    genProfile().Draw(t, "profile"),
			RollNumber: rapid.StringMatching(`[A-Z0-9]{1,10}`).Draw(t, "roll"),
		}

		if err := vm.Activate(context.Background(), domain.Authenticated(admin)); err != nil {
			t.Fatalf("activate: %v", err)
		}
		signals := vm.TakeSignals()
		navigations := 0
		for _, s := range signals {
			if s.Kind == SignalNavigateInventory {
				navigations++
			}
		}
		if navigations != 1 || len(signals) != 1 {
			t.Fatalf("signals = %+v", signals)
		}
		if lists, _ := issues.calls(); lists != 0 {
			t.Fatalf("admin triggered %d fetches", lists)
		}
	})
}
