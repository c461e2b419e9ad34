package wallet

import (
	"context"

	"clubledger/internal/logger"
	"clubledger/internal/metrics"

	"github.com/redis/go-redis/v9"
)

// ChangeNotifier decouples the write path from the live subscription:
// mutations announce "this club's wallets changed" and subscribers
// re-derive their snapshots.
type ChangeNotifier interface {
	NotifyWalletsChanged(ctx context.Context, clubID string)
}

// Snapshot is what each subscriber receives on every change: the full
// wallet list plus aggregates recomputed from it.
type Snapshot struct {
	Wallets []Wallet     `json:"wallets"`
	Stats   *WalletStats `json:"stats"`
}

// SnapshotSource is the read surface the watcher re-derives from.
type SnapshotSource interface {
	ListWallets(ctx context.Context, clubID string) ([]Wallet, error)
	Stats(ctx context.Context, clubID string) (*WalletStats, error)
}

type Watcher struct {
	rdb    *redis.Client
	source SnapshotSource
}

func NewWatcher(rdb *redis.Client, source SnapshotSource) *Watcher {
	return &Watcher{rdb: rdb, source: source}
}

func channelFor(clubID string) string {
	return "wallets:changed:" + clubID
}

// NotifyWalletsChanged publishes a change event for the club. Publish
// failures are logged, not propagated: the mutation that triggered the
// event has already committed.
func (w *Watcher) NotifyWalletsChanged(ctx context.Context, clubID string) {
	if err := w.rdb.Publish(ctx, channelFor(clubID), "changed").Err(); err != nil {
		logger.Errorf("Failed to publish wallet change for club %s: %v", clubID, err)
	}
}

// Watch delivers an initial snapshot and then one per change event until
// ctx is cancelled. Snapshots arrive in the order change events are
// observed, which is not necessarily the order mutations were issued.
func (w *Watcher) Watch(ctx context.Context, clubID string) (<-chan Snapshot, error) {
	sub := w.rdb.Subscribe(ctx, channelFor(clubID))

	// Confirm the subscription before the initial snapshot so no change
	// event between the two can be missed.
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, err
	}

	out := make(chan Snapshot, 1)

	go func() {
		defer close(out)
		defer sub.Close()

		metrics.WatcherSubscribers.Inc()
		defer metrics.WatcherSubscribers.Dec()

		if !w.emit(ctx, clubID, out) {
			return
		}

		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-msgs:
				if !ok {
					return
				}
				if !w.emit(ctx, clubID, out) {
					return
				}
			}
		}
	}()

	return out, nil
}

func (w *Watcher) emit(ctx context.Context, clubID string, out chan<- Snapshot) bool {
	snap, err := w.snapshot(ctx, clubID)
	if err != nil {
		logger.Errorf("Failed to build wallet snapshot for club %s: %v", clubID, err)
		// Keep the subscription alive; the next change event retries.
		return ctx.Err() == nil
	}

	select {
	case out <- *snap:
		return true
	case <-ctx.Done():
		return false
	}
}

func (w *Watcher) snapshot(ctx context.Context, clubID string) (*Snapshot, error) {
	wallets, err := w.source.ListWallets(ctx, clubID)
	if err != nil {
		return nil, err
	}

	stats, err := w.source.Stats(ctx, clubID)
	if err != nil {
		return nil, err
	}

	return &Snapshot{Wallets: wallets, Stats: stats}, nil
}
