package attendance

import (
	"context"
	"sort"
)

// ResolveActive は順序の定まらないレコード集合から現在のアクティブレコードを
// 決定します。アクティブが存在しなければ nil を返します。不変条件の上では
// アクティブは高々1件ですが、競合の結果2件以上観測された場合は作成日時の新しい
// もの(同時刻なら ID 順)を返しつつ ErrMultipleActiveSessions を併せて返し、
// 異常を握りつぶさず呼び出し側に観測させます。同一集合への再適用は常に同じ
// レコードを返します。
func ResolveActive(records []*Record) (*Record, error) {
	var active []*Record
	for _, r := range records {
		if r.IsActive() {
			active = append(active, r)
		}
	}

	switch len(active) {
	case 0:
		return nil, nil
	case 1:
		return active[0], nil
	}

	sort.Slice(active, func(i, j int) bool {
		if !active[i].CreatedAt.Equal(active[j].CreatedAt) {
			return active[i].CreatedAt.After(active[j].CreatedAt)
		}
		return active[i].ID < active[j].ID
	})

	return active[0], ErrMultipleActiveSessions
}

// Snapshot は変更フィードの1回の配送から解決した観測結果です。
type Snapshot struct {
	Records []*Record
	Active  *Record
	// Err はアクティブレコードの解決で観測した異常です(現状は
	// ErrMultipleActiveSessions のみ)。Active はその場合も決定的に選ばれています。
	Err error
}

// Watcher はストアの変更フィードを購読し、配送のたびにアクティブレコードを
// 解決して観測者へ再発行します。
type Watcher struct {
	feed Feed
}

// NewWatcher は Watcher を生成します。
func NewWatcher(feed Feed) *Watcher {
	return &Watcher{feed: feed}
}

// WatchUser はユーザーのレコード集合の変化を購読し、Snapshot を届けるチャネルと
// 購読解除関数を返します。チャネルは容量1の最新値セマンティクスで、観測者が
// 遅れても配送側は待ちません。ctx の取り消しまたは解除関数の呼び出しで購読は
// 終了します。
func (w *Watcher) WatchUser(ctx context.Context, userID string) (<-chan Snapshot, CancelFunc, error) {
	ch := make(chan Snapshot, 1)

	cancel, err := w.feed.SubscribeByUser(ctx, userID, func(records []*Record) {
		active, resolveErr := ResolveActive(records)
		publishLatest(ch, Snapshot{Records: records, Active: active, Err: resolveErr})
	})
	if err != nil {
		return nil, nil, err
	}

	return ch, cancel, nil
}

// publishLatest は容量1のチャネルへ古い値を捨てながら送信します。
func publishLatest(ch chan Snapshot, snap Snapshot) {
	for {
		select {
		case ch <- snap:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}
