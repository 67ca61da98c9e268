package attendance

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestResolveActive_Empty(t *testing.T) {
	t.Parallel()

	active, err := ResolveActive(nil)
	if err != nil {
		t.Fatalf("ResolveActive returned error: %v", err)
	}
	if active != nil {
		t.Fatalf("expected nil active, got %+v", active)
	}
}

func TestResolveActive_IgnoresTerminal(t *testing.T) {
	t.Parallel()

	out := "01/01/2024, 05:00:00 PM"
	records := []*Record{
		{ID: "rec-1", Status: StatusClockedOut, ClockOut: &out},
		{ID: "rec-2", Status: StatusOnBreak},
	}

	active, err := ResolveActive(records)
	if err != nil {
		t.Fatalf("ResolveActive returned error: %v", err)
	}
	if active == nil || active.ID != "rec-2" {
		t.Fatalf("expected rec-2 active, got %+v", active)
	}
}

func TestResolveActive_MultipleActivePicksNewest(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	records := []*Record{
		{ID: "rec-1", Status: StatusClockedIn, CreatedAt: base},
		{ID: "rec-2", Status: StatusClockedIn, CreatedAt: base.Add(time.Minute)},
		{ID: "rec-3", Status: StatusClockedOut, CreatedAt: base.Add(2 * time.Minute)},
	}

	active, err := ResolveActive(records)
	if !errors.Is(err, ErrMultipleActiveSessions) {
		t.Fatalf("expected ErrMultipleActiveSessions, got %v", err)
	}
	if active == nil || active.ID != "rec-2" {
		t.Fatalf("expected newest active rec-2, got %+v", active)
	}

	// 同じ集合に再適用しても選択は変わらない。
	again, err := ResolveActive(records)
	if !errors.Is(err, ErrMultipleActiveSessions) {
		t.Fatalf("expected ErrMultipleActiveSessions, got %v", err)
	}
	if again.ID != active.ID {
		t.Fatalf("expected deterministic pick, got %s then %s", active.ID, again.ID)
	}
}

func TestResolveActive_TiesBreakByID(t *testing.T) {
	t.Parallel()

	created := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	records := []*Record{
		{ID: "rec-b", Status: StatusClockedIn, CreatedAt: created},
		{ID: "rec-a", Status: StatusOnLunch, CreatedAt: created},
	}

	active, err := ResolveActive(records)
	if !errors.Is(err, ErrMultipleActiveSessions) {
		t.Fatalf("expected ErrMultipleActiveSessions, got %v", err)
	}
	if active.ID != "rec-a" {
		t.Fatalf("expected rec-a by id order, got %s", active.ID)
	}
}

type stubFeed struct {
	deliver  func([]*Record)
	userID   string
	canceled bool
	err      error
}

func (f *stubFeed) SubscribeByUser(_ context.Context, userID string, deliver func([]*Record)) (CancelFunc, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.userID = userID
	f.deliver = deliver
	return func() { f.canceled = true }, nil
}

func TestWatcher_WatchUser_DeliversSnapshots(t *testing.T) {
	t.Parallel()

	feed := &stubFeed{}
	watcher := NewWatcher(feed)

	ch, cancel, err := watcher.WatchUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("WatchUser returned error: %v", err)
	}
	defer cancel()

	if feed.userID != "user-1" {
		t.Fatalf("expected subscription for user-1, got %q", feed.userID)
	}

	feed.deliver([]*Record{{ID: "rec-1", Status: StatusClockedIn}})

	snap := <-ch
	if snap.Err != nil {
		t.Fatalf("unexpected snapshot error: %v", snap.Err)
	}
	if snap.Active == nil || snap.Active.ID != "rec-1" {
		t.Fatalf("expected rec-1 active, got %+v", snap.Active)
	}
	if len(snap.Records) != 1 {
		t.Fatalf("expected full record set, got %d", len(snap.Records))
	}
}

func TestWatcher_WatchUser_KeepsLatestOnly(t *testing.T) {
	t.Parallel()

	feed := &stubFeed{}
	watcher := NewWatcher(feed)

	ch, cancel, err := watcher.WatchUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("WatchUser returned error: %v", err)
	}
	defer cancel()

	// 観測者が読む前に複数回配送されたら最新のみ残る。
	feed.deliver([]*Record{{ID: "rec-1", Status: StatusClockedIn}})
	feed.deliver([]*Record{{ID: "rec-1", Status: StatusOnBreak}})
	feed.deliver([]*Record{{ID: "rec-1", Status: StatusClockedOut}})

	snap := <-ch
	if snap.Active != nil {
		t.Fatalf("expected latest snapshot with no active record, got %+v", snap.Active)
	}

	select {
	case extra := <-ch:
		t.Fatalf("expected single buffered snapshot, got %+v", extra)
	default:
	}
}

func TestWatcher_WatchUser_SurfacesResolutionError(t *testing.T) {
	t.Parallel()

	feed := &stubFeed{}
	watcher := NewWatcher(feed)

	ch, cancel, err := watcher.WatchUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("WatchUser returned error: %v", err)
	}
	defer cancel()

	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	feed.deliver([]*Record{
		{ID: "rec-1", Status: StatusClockedIn, CreatedAt: base},
		{ID: "rec-2", Status: StatusClockedIn, CreatedAt: base.Add(time.Minute)},
	})

	snap := <-ch
	if !errors.Is(snap.Err, ErrMultipleActiveSessions) {
		t.Fatalf("expected ErrMultipleActiveSessions, got %v", snap.Err)
	}
	if snap.Active == nil || snap.Active.ID != "rec-2" {
		t.Fatalf("expected deterministic active, got %+v", snap.Active)
	}
}

func TestWatcher_WatchUser_SubscribeFailure(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("listen failed")
	watcher := NewWatcher(&stubFeed{err: wantErr})

	if _, _, err := watcher.WatchUser(context.Background(), "user-1"); !errors.Is(err, wantErr) {
		t.Fatalf("expected subscribe error, got %v", err)
	}
}
