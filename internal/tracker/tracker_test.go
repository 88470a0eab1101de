package tracker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/LapkoMarian/cartridges-bot/internal/dialog"
	"github.com/LapkoMarian/cartridges-bot/internal/domain/cartridges"
	"github.com/LapkoMarian/cartridges-bot/internal/storage"
	"github.com/LapkoMarian/cartridges-bot/internal/storage/sqlite"
)

type fakeSyncer struct {
	mu sync.Mutex
	n  int
}

func (f *fakeSyncer) Trigger() {
	f.mu.Lock()
	f.n++
	f.mu.Unlock()
}

func (f *fakeSyncer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.n
}

func newTestTracker(t *testing.T) (*Tracker, storage.Store, *dialog.Manager, *fakeSyncer) {
	t.Helper()
	store := sqlite.NewTestStore(t)
	states := dialog.NewManager()
	sync := &fakeSyncer{}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(store, states, sync, time.UTC, log), store, states, sync
}

func TestAddFlowExistingBatch(t *testing.T) {
	trk, store, states, _ := newTestTracker(t)
	ctx := context.Background()
	const chatID = int64(7)

	var batchID int64
	for i := 0; i < 3; i++ {
		id, err := store.CreateBatch(ctx, "01.01.2025")
		if err != nil {
			t.Fatalf("CreateBatch: %v", err)
		}
		batchID = id
	}

	trk.StartAdd(chatID)
	if st := states.Get(chatID); st.State != dialog.StateAddPickBatch {
		t.Fatalf("state = %s, want add_pick_batch", st.State)
	}
	if err := trk.ChooseBatch(ctx, chatID, batchID); err != nil {
		t.Fatalf("ChooseBatch: %v", err)
	}

	it, err := trk.SubmitLine(ctx, chatID, "20.10.2025, Accounting")
	if err != nil {
		t.Fatalf("SubmitLine: %v", err)
	}
	if it.BatchID != batchID {
		t.Errorf("batch id = %d, want %d", it.BatchID, batchID)
	}
	if it.Department != "Accounting" {
		t.Errorf("department = %q", it.Department)
	}
	if it.Status != cartridges.StatusWithdrawn {
		t.Errorf("status = %s, want withdrawn", it.Status)
	}
	if it.DateWithdrawn != "20.10.2025" {
		t.Errorf("date withdrawn = %q", it.DateWithdrawn)
	}
	if it.DateSent != "" || it.DateReturned != "" || it.DateIssued != "" {
		t.Errorf("later dates must be empty: %+v", it)
	}
	if st := states.Get(chatID); st.State != dialog.StateIdle {
		t.Errorf("session must return to idle, got %s", st.State)
	}
}

func TestAddFlowNewBatchClosesPrevious(t *testing.T) {
	trk, store, _, _ := newTestTracker(t)
	ctx := context.Background()
	const chatID = int64(7)

	oldID, err := trk.NewBatch(ctx)
	if err != nil {
		t.Fatalf("NewBatch: %v", err)
	}

	trk.StartAdd(chatID)
	newID, err := trk.ChooseNewBatch(ctx, chatID)
	if err != nil {
		t.Fatalf("ChooseNewBatch: %v", err)
	}

	it, err := trk.SubmitLine(ctx, chatID, "01.01.25, Legal")
	if err != nil {
		t.Fatalf("SubmitLine: %v", err)
	}
	if it.BatchID != newID {
		t.Errorf("item landed in batch %d, want new batch %d", it.BatchID, newID)
	}
	if it.DateWithdrawn != "01.01.2025" {
		t.Errorf("date withdrawn = %q, want normalized 01.01.2025", it.DateWithdrawn)
	}

	active, err := store.ActiveBatchID(ctx)
	if err != nil {
		t.Fatalf("ActiveBatchID: %v", err)
	}
	if active != newID {
		t.Errorf("active batch = %d, want %d", active, newID)
	}
	old, _ := store.GetBatch(ctx, oldID)
	if old.Status != "closed" {
		t.Errorf("previous batch status = %s, want closed", old.Status)
	}
}

func TestSubmitLineBadInputKeepsSession(t *testing.T) {
	trk, store, states, _ := newTestTracker(t)
	ctx := context.Background()
	const chatID = int64(7)

	bid, _ := store.CreateBatch(ctx, "01.01.2025")
	trk.StartAdd(chatID)
	if err := trk.ChooseBatch(ctx, chatID, bid); err != nil {
		t.Fatalf("ChooseBatch: %v", err)
	}

	_, err := trk.SubmitLine(ctx, chatID, "no comma here")
	if !errors.Is(err, cartridges.ErrBadItemLine) {
		t.Fatalf("err = %v, want ErrBadItemLine", err)
	}

	st := states.Get(chatID)
	if st.State != dialog.StateAddEnterItem {
		t.Errorf("state = %s, want add_enter_item preserved", st.State)
	}
	if id, _ := dialog.GetInt64(st.Payload, "batch_id"); id != bid {
		t.Errorf("batch_id = %d, want %d preserved", id, bid)
	}
	items, _ := store.ListAllItems(ctx)
	if len(items) != 0 {
		t.Errorf("no item must be created, got %d", len(items))
	}
}

func TestSubmitLineStaleBatchAborts(t *testing.T) {
	trk, store, states, _ := newTestTracker(t)
	ctx := context.Background()
	const chatID = int64(7)

	bid, _ := store.CreateBatch(ctx, "01.01.2025")
	trk.StartAdd(chatID)
	_ = trk.ChooseBatch(ctx, chatID, bid)

	if err := store.DeleteBatch(ctx, bid); err != nil {
		t.Fatalf("DeleteBatch: %v", err)
	}

	_, err := trk.SubmitLine(ctx, chatID, "Склад, 01.01.2025")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if st := states.Get(chatID); st.State != dialog.StateIdle {
		t.Errorf("stale batch must abort session, state = %s", st.State)
	}
}

func TestChooseBatchStaleAborts(t *testing.T) {
	trk, _, states, _ := newTestTracker(t)
	ctx := context.Background()
	const chatID = int64(7)

	trk.StartAdd(chatID)
	if err := trk.ChooseBatch(ctx, chatID, 99); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if st := states.Get(chatID); st.State != dialog.StateIdle {
		t.Errorf("state = %s, want idle", st.State)
	}
}

func TestEnsureActiveBatchLazilyCreates(t *testing.T) {
	trk, _, _, _ := newTestTracker(t)
	ctx := context.Background()

	id, err := trk.EnsureActiveBatch(ctx)
	if err != nil {
		t.Fatalf("EnsureActiveBatch: %v", err)
	}
	again, err := trk.EnsureActiveBatch(ctx)
	if err != nil {
		t.Fatalf("EnsureActiveBatch: %v", err)
	}
	if id != again {
		t.Errorf("second call created another batch: %d then %d", id, again)
	}
}

func TestSetStatusStampsOnlyOwnDate(t *testing.T) {
	trk, store, _, _ := newTestTracker(t)
	ctx := context.Background()

	bid, _ := store.CreateBatch(ctx, "01.01.2025")
	id, _ := store.CreateItem(ctx, bid, "Склад", "01.01.2025")

	it, err := trk.SetStatus(ctx, id, cartridges.StatusSent)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if it.Status != cartridges.StatusSent {
		t.Errorf("status = %s, want sent", it.Status)
	}
	if it.DateSent != trk.Today() {
		t.Errorf("date sent = %q, want today %q", it.DateSent, trk.Today())
	}
	if it.DateWithdrawn != "01.01.2025" {
		t.Errorf("date withdrawn changed: %q", it.DateWithdrawn)
	}

	// Зворотний перехід дозволено: картридж іде на друге коло.
	it, err = trk.SetStatus(ctx, id, cartridges.StatusWithdrawn)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if it.Status != cartridges.StatusWithdrawn {
		t.Errorf("status = %s, want withdrawn", it.Status)
	}
	if it.DateWithdrawn != trk.Today() {
		t.Errorf("date withdrawn = %q, want overwritten with today", it.DateWithdrawn)
	}
	if it.DateSent == "" {
		t.Error("date sent must not be cleared")
	}
}

func TestSetStatusRejectsUnknown(t *testing.T) {
	trk, store, _, _ := newTestTracker(t)
	ctx := context.Background()
	bid, _ := store.CreateBatch(ctx, "01.01.2025")
	id, _ := store.CreateItem(ctx, bid, "Склад", "01.01.2025")

	if _, err := trk.SetStatus(ctx, id, "bogus"); err == nil {
		t.Error("expected error for unknown status")
	}
}

func TestEveryMutationTriggersMirror(t *testing.T) {
	trk, store, _, sync := newTestTracker(t)
	ctx := context.Background()
	const chatID = int64(7)

	if _, err := trk.NewBatch(ctx); err != nil { // 1
		t.Fatalf("NewBatch: %v", err)
	}
	bid, _ := store.ActiveBatchID(ctx)

	trk.StartAdd(chatID)
	_ = trk.ChooseBatch(ctx, chatID, bid)
	it, err := trk.SubmitLine(ctx, chatID, "Склад, 01.01.2025") // 2
	if err != nil {
		t.Fatalf("SubmitLine: %v", err)
	}
	if _, err := trk.SetStatus(ctx, it.ID, cartridges.StatusSent); err != nil { // 3
		t.Fatalf("SetStatus: %v", err)
	}
	if err := trk.DeleteItem(ctx, it.ID); err != nil { // 4
		t.Fatalf("DeleteItem: %v", err)
	}
	if err := trk.DeleteBatch(ctx, bid); err != nil { // 5
		t.Fatalf("DeleteBatch: %v", err)
	}

	if got := sync.count(); got != 5 {
		t.Errorf("mirror triggered %d times, want 5", got)
	}
}

func TestDeleteMissingPropagatesNotFound(t *testing.T) {
	trk, _, _, sync := newTestTracker(t)
	ctx := context.Background()

	if err := trk.DeleteItem(ctx, 99); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("DeleteItem: err = %v, want ErrNotFound", err)
	}
	if err := trk.DeleteBatch(ctx, 99); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("DeleteBatch: err = %v, want ErrNotFound", err)
	}
	if got := sync.count(); got != 0 {
		t.Errorf("failed mutations must not trigger mirror, got %d", got)
	}
}
