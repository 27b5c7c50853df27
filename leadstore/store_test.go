package leadstore

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/resiliencere/leadsync/chaos"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestInitializeDatabase(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, initializeDatabase(db))
	// Idempotent
	require.NoError(t, initializeDatabase(db))

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='_local_leads'").Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestStore_EnqueueListClear(t *testing.T) {
	ctx := context.Background()
	store, err := Open(":memory:", quietLogger())
	require.NoError(t, err)
	defer store.Close()

	now := time.UnixMilli(1_700_000_000_000)
	first := chaos.NewLead(chaos.LeadInput{Name: "Hoa", Phone: "0901111111", Email: "hoa@example.com"}, now)
	second := chaos.NewLead(chaos.LeadInput{Name: "Minh", Phone: "0902222222", Message: "Is parking included?"}, now.Add(time.Second))

	require.NoError(t, store.Enqueue(ctx, first))
	require.NoError(t, store.Enqueue(ctx, second))
	require.NoError(t, store.Enqueue(ctx, first), "duplicates are accepted")

	leads, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, leads, 3)
	require.Equal(t, first, leads[0])
	require.Equal(t, second, leads[1])
	require.Equal(t, first, leads[2])

	n, err := store.Len(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx))
	leads, err = store.List(ctx)
	require.NoError(t, err)
	require.Empty(t, leads)
}

func TestStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "leads.db")

	store, err := Open(path, quietLogger())
	require.NoError(t, err)
	names := []string{"An", "Binh", "Chi"}
	for _, name := range names {
		require.NoError(t, store.Enqueue(ctx, chaos.NewLead(chaos.LeadInput{Name: name, Phone: "0903333333"}, time.Now())))
	}
	require.NoError(t, store.Close())

	reopened, err := Open(path, quietLogger())
	require.NoError(t, err)
	defer reopened.Close()

	leads, err := reopened.List(ctx)
	require.NoError(t, err)
	require.Len(t, leads, len(names))
	for i, lead := range leads {
		require.Equal(t, names[i], lead.Name)
	}
}

func TestStore_DrivesDemoSync(t *testing.T) {
	ctx := context.Background()
	store, err := Open(":memory:", quietLogger())
	require.NoError(t, err)
	defer store.Close()

	sched := chaos.NewManualScheduler()
	var synced []int
	demo, err := chaos.NewDemo(&chaos.DemoConfig{
		Backend:       nopBackend{},
		Queue:         store,
		Scheduler:     sched,
		InitialStatus: chaos.StatusOffline,
		Logger:        quietLogger(),
		Notifier: chaos.NotifierFunc(func(n chaos.Notification) {
			if n.Synced > 0 {
				synced = append(synced, n.Synced)
			}
		}),
	})
	require.NoError(t, err)
	defer demo.Close()

	for i := 0; i < 2; i++ {
		_, queued, err := demo.SubmitLead(ctx, chaos.LeadInput{Name: "Lead", Phone: "0904444444"})
		require.NoError(t, err)
		require.True(t, queued)
	}

	demo.SetStatus(chaos.StatusOnline)
	sched.Advance(chaos.DefaultSyncDelay)

	n, err := store.Len(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
	require.Equal(t, []int{2}, synced)
}

type nopBackend struct{}

func (nopBackend) SetNetworkCondition(chaos.ConnectionStatus) {}
func (nopBackend) FetchPropertyDetails(context.Context) (*chaos.Property, error) {
	return &chaos.Property{}, nil
}
func (nopBackend) SubmitLead(context.Context, chaos.Lead) error { return nil }
func (nopBackend) SyncLeads(context.Context, []chaos.Lead) error { return nil }
