package chaos

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	mu         sync.Mutex
	condition  ConnectionStatus
	submitted  []Lead
	synced     []Lead
	submitErr  error
	fetchErr   error
	fetchCalls int
}

func (b *fakeBackend) SetNetworkCondition(s ConnectionStatus) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.condition = s
}

func (b *fakeBackend) FetchPropertyDetails(ctx context.Context) (*Property, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fetchCalls++
	if b.fetchErr != nil {
		return nil, b.fetchErr
	}
	return &Property{ID: "p-1", Title: "Riverside Villa"}, nil
}

func (b *fakeBackend) SubmitLead(ctx context.Context, lead Lead) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.submitErr != nil {
		return b.submitErr
	}
	b.submitted = append(b.submitted, lead)
	return nil
}

func (b *fakeBackend) SyncLeads(ctx context.Context, leads []Lead) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.synced = append(b.synced, leads...)
	return nil
}

type collector struct {
	mu    sync.Mutex
	items []Notification
}

func (c *collector) Notify(n Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, n)
}

func (c *collector) all() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notification, len(c.items))
	copy(out, c.items)
	return out
}

func (c *collector) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

type demoFixture struct {
	demo    *Demo
	sched   *ManualScheduler
	backend *fakeBackend
	notes   *collector
}

func newDemoFixture(t *testing.T, keepPending bool) *demoFixture {
	t.Helper()

	f := &demoFixture{
		sched:   NewManualScheduler(),
		backend: &fakeBackend{},
		notes:   &collector{},
	}
	demo, err := NewDemo(&DemoConfig{
		Backend:         f.backend,
		Scheduler:       f.sched,
		Notifier:        f.notes,
		Logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		KeepPendingSync: keepPending,
	})
	require.NoError(t, err)
	t.Cleanup(func() { demo.Close() })
	f.demo = demo
	return f
}

func (f *demoFixture) queueLeads(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, queued, err := f.demo.SubmitLead(context.Background(), LeadInput{Name: "Lead", Phone: "0901234567"})
		require.NoError(t, err)
		require.True(t, queued)
	}
}

func syncNotes(items []Notification) []Notification {
	var out []Notification
	for _, n := range items {
		if n.Synced > 0 {
			out = append(out, n)
		}
	}
	return out
}

func TestNewDemo_RequiresBackend(t *testing.T) {
	_, err := NewDemo(&DemoConfig{})
	require.Error(t, err)
	_, err = NewDemo(nil)
	require.Error(t, err)
}

func TestDemo_SetStatusEmitsOneNotification(t *testing.T) {
	f := newDemoFixture(t, false)

	cases := []struct {
		status ConnectionStatus
		kind   NotificationKind
		region ServerRegion
	}{
		{StatusOffline, KindError, RegionEdge},
		{StatusDegraded, KindWarning, RegionBackup},
		{StatusOnline, KindSuccess, RegionPrimary},
	}
	for _, tc := range cases {
		f.notes.reset()
		n := f.demo.SetStatus(tc.status)
		require.Equal(t, tc.kind, n.Kind)

		got := f.notes.all()
		require.Len(t, got, 1, "exactly one immediate notification for %s", tc.status)
		require.Equal(t, tc.kind, got[0].Kind)
		require.Equal(t, tc.region, f.demo.Region())
		require.Equal(t, tc.status, f.backend.condition)
	}
}

func TestDemo_SetStatusIgnoresZeroStatus(t *testing.T) {
	f := newDemoFixture(t, false)
	f.demo.SetStatus(StatusDegraded)
	f.notes.reset()

	n := f.demo.SetStatus(ConnectionStatus{})
	require.Equal(t, Notification{}, n)
	require.Empty(t, f.notes.all())
	require.Equal(t, StatusDegraded, f.demo.Status())
	require.Equal(t, RegionBackup, f.demo.Region())
	require.Equal(t, StatusDegraded, f.backend.condition)
	require.Equal(t, KindWarning, f.demo.Toast().Kind)
}

func TestDemo_RepeatedOnlineKeepsFirstDeadline(t *testing.T) {
	f := newDemoFixture(t, false)
	ctx := context.Background()

	f.demo.SetStatus(StatusOffline)
	f.queueLeads(t, 1)

	f.demo.SetStatus(StatusOnline)
	f.sched.Advance(1400 * time.Millisecond)
	f.demo.SetStatus(StatusOnline)
	f.sched.Advance(200 * time.Millisecond)

	n, _ := f.demo.PendingCount(ctx)
	require.Zero(t, n, "sync fires on the first deadline")
	require.Len(t, syncNotes(f.notes.all()), 1)
}

func TestDemo_OfflineLeadsAreQueuedInOrder(t *testing.T) {
	f := newDemoFixture(t, false)
	ctx := context.Background()

	f.demo.SetStatus(StatusDegraded)
	names := []string{"Hoa", "Minh", "Lan", "Tuan"}
	for _, name := range names {
		lead, queued, err := f.demo.SubmitLead(ctx, LeadInput{Name: name, Phone: "0901234567"})
		require.NoError(t, err)
		require.True(t, queued)
		require.False(t, lead.Synced)
		require.NotEmpty(t, lead.ID)
	}

	leads, err := f.demo.LocalLeads(ctx)
	require.NoError(t, err)
	require.Len(t, leads, len(names))
	for i, lead := range leads {
		require.Equal(t, names[i], lead.Name)
	}
	require.Empty(t, f.backend.submitted)
}

func TestDemo_OnlineLeadGoesDirect(t *testing.T) {
	f := newDemoFixture(t, false)
	ctx := context.Background()

	lead, queued, err := f.demo.SubmitLead(ctx, LeadInput{Name: "Quang", Phone: "0901234567"})
	require.NoError(t, err)
	require.False(t, queued)
	require.True(t, lead.Synced)
	require.Len(t, f.backend.submitted, 1)

	n, err := f.demo.PendingCount(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestDemo_OnlineLeadFallsBackToQueue(t *testing.T) {
	f := newDemoFixture(t, false)
	f.backend.submitErr = errors.New("connection reset")

	_, queued, err := f.demo.SubmitLead(context.Background(), LeadInput{Name: "Vy", Phone: "0901234567"})
	require.NoError(t, err)
	require.True(t, queued)

	n, _ := f.demo.PendingCount(context.Background())
	require.Equal(t, 1, n)
}

func TestDemo_SyncClearsQueueAfterDelay(t *testing.T) {
	f := newDemoFixture(t, false)
	ctx := context.Background()

	f.demo.SetStatus(StatusOffline)
	f.queueLeads(t, 3)

	f.notes.reset()
	f.demo.SetStatus(StatusOnline)
	require.Equal(t, SyncPending, f.demo.SyncState())

	f.sched.Advance(DefaultSyncDelay - time.Millisecond)
	n, _ := f.demo.PendingCount(ctx)
	require.Equal(t, 3, n, "nothing happens before the delay")

	f.sched.Advance(time.Millisecond)
	n, _ = f.demo.PendingCount(ctx)
	require.Zero(t, n)
	require.Equal(t, SyncIdle, f.demo.SyncState())

	got := f.notes.all()
	require.Len(t, got, 2)
	require.NotNil(t, got[0].Status, "status notification comes first")
	require.Equal(t, 3, got[1].Synced)
	require.Equal(t, KindSuccess, got[1].Kind)
	require.Len(t, syncNotes(got), 1)

	require.Len(t, f.backend.synced, 3)
	for _, lead := range f.backend.synced {
		require.True(t, lead.Synced)
	}
}

func TestDemo_SyncWithEmptyQueueIsSilent(t *testing.T) {
	f := newDemoFixture(t, false)

	f.demo.SetStatus(StatusOffline)
	f.notes.reset()
	f.demo.SetStatus(StatusOnline)
	f.sched.Advance(DefaultSyncDelay)

	got := f.notes.all()
	require.Len(t, got, 1, "only the status notification")
	require.Empty(t, syncNotes(got))
	require.Equal(t, SyncIdle, f.demo.SyncState())
}

func TestDemo_LeavingOnlineCancelsPendingSync(t *testing.T) {
	f := newDemoFixture(t, false)
	ctx := context.Background()

	f.demo.SetStatus(StatusOffline)
	f.queueLeads(t, 2)

	f.demo.SetStatus(StatusOnline)
	f.sched.Advance(500 * time.Millisecond)
	f.demo.SetStatus(StatusOffline)
	require.Equal(t, SyncIdle, f.demo.SyncState())

	f.sched.Advance(5 * time.Second)
	n, _ := f.demo.PendingCount(ctx)
	require.Equal(t, 2, n)
	require.Empty(t, syncNotes(f.notes.all()))
}

func TestDemo_KeepPendingSyncMatchesLegacyBehaviour(t *testing.T) {
	f := newDemoFixture(t, true)
	ctx := context.Background()

	f.demo.SetStatus(StatusOffline)
	f.queueLeads(t, 2)

	f.demo.SetStatus(StatusOnline)
	f.sched.Advance(500 * time.Millisecond)
	f.demo.SetStatus(StatusOffline)
	require.Equal(t, SyncPending, f.demo.SyncState())

	f.sched.Advance(time.Second)
	n, _ := f.demo.PendingCount(ctx)
	require.Zero(t, n, "legacy mode flushes even though the status is OFFLINE again")
	require.Len(t, syncNotes(f.notes.all()), 1)
}

func TestDemo_ClearLocalLeadsIsSilentAndIdempotent(t *testing.T) {
	f := newDemoFixture(t, false)
	ctx := context.Background()

	f.notes.reset()
	require.NoError(t, f.demo.ClearLocalLeads(ctx))
	require.NoError(t, f.demo.ClearLocalLeads(ctx))
	require.Empty(t, f.notes.all())

	n, err := f.demo.PendingCount(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestDemo_LoadPropertyFallback(t *testing.T) {
	f := newDemoFixture(t, false)
	ctx := context.Background()

	p, err := f.demo.LoadProperty(ctx)
	require.NoError(t, err)
	require.Equal(t, "p-1", p.ID)

	f.backend.fetchErr = errors.New("timeout")
	_, err = f.demo.LoadProperty(ctx)
	require.ErrorIs(t, err, ErrFetchFailed)

	kept, loading := f.demo.Property()
	require.False(t, loading)
	require.NotNil(t, kept, "previous listing stays on screen")
	require.Equal(t, "p-1", kept.ID)
}

func TestDemo_ToastAndSubscribe(t *testing.T) {
	f := newDemoFixture(t, false)

	ch, stop := f.demo.Subscribe(4)
	f.demo.SetStatus(StatusDegraded)
	f.demo.SetStatus(StatusOffline)

	first := <-ch
	second := <-ch
	require.Equal(t, KindWarning, first.Kind)
	require.Equal(t, KindError, second.Kind)

	toast := f.demo.Toast()
	require.NotNil(t, toast)
	require.Equal(t, KindError, toast.Kind)
	f.demo.DismissToast()
	require.Nil(t, f.demo.Toast())

	stop()
	_, open := <-ch
	require.False(t, open)
	stop()
}

func TestDemo_Snapshot(t *testing.T) {
	f := newDemoFixture(t, false)
	ctx := context.Background()

	f.demo.SetStatus(StatusDegraded)
	f.queueLeads(t, 1)

	st := f.demo.Snapshot(ctx)
	require.Equal(t, StatusDegraded, st.Status)
	require.Equal(t, RegionBackup, st.Region)
	require.Equal(t, "AWS Tokyo (Backup)", st.RegionName)
	require.Equal(t, 1, st.Pending)
	require.Equal(t, "IDLE", st.SyncState)
	require.NotNil(t, st.Toast)
}

func TestDemo_CloseCancelsPendingSync(t *testing.T) {
	f := newDemoFixture(t, false)

	f.demo.SetStatus(StatusOffline)
	f.queueLeads(t, 1)
	f.demo.SetStatus(StatusOnline)
	ch, _ := f.demo.Subscribe(1)

	require.NoError(t, f.demo.Close())
	require.NoError(t, f.demo.Close())
	f.sched.Advance(DefaultSyncDelay)

	n, _ := f.demo.PendingCount(context.Background())
	require.Equal(t, 1, n)
	_, open := <-ch
	require.False(t, open)

	_, _, err := f.demo.SubmitLead(context.Background(), LeadInput{Name: "x", Phone: "0901234567"})
	require.ErrorIs(t, err, ErrClosed)
}
