package postgres

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Grazus98/ATTENDANCE-TRACKER-WAH/internal/core/attendance"
)

// notifyChannelName は勤怠テーブルのトリガーが NOTIFY するチャネル名です。
// ペイロードは変更が起きたレコードの user_id です。
const notifyChannelName = "attendance_records"

// NotifyFeed は PostgreSQL の LISTEN/NOTIFY を利用した変更フィードの実装です。
// 通知を受けるたびにユーザーのレコード全件を読み直して配送するため、配送は
// at-least-once で順序の保証はありません。
type NotifyFeed struct {
	pool *pgxpool.Pool
	repo attendance.Repository
}

// NewNotifyFeed は NotifyFeed を生成します。
func NewNotifyFeed(pool *pgxpool.Pool, repo attendance.Repository) *NotifyFeed {
	return &NotifyFeed{pool: pool, repo: repo}
}

// SubscribeByUser はユーザーのレコード集合の変更購読を開始します。購読直後に
// 現在の全件を1回配送し、以降は通知のたびに再配送します。deliver は購読側の
// ゴルーチンから逐次呼び出されます。
func (f *NotifyFeed) SubscribeByUser(ctx context.Context, userID string, deliver func([]*attendance.Record)) (attendance.CancelFunc, error) {
	subCtx, cancel := context.WithCancel(ctx)

	conn, err := f.pool.Acquire(subCtx)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("acquire listen connection: %w", err)
	}

	if _, err := conn.Exec(subCtx, "LISTEN "+notifyChannelName); err != nil {
		conn.Release()
		cancel()
		return nil, fmt.Errorf("listen %s: %w", notifyChannelName, err)
	}

	records, err := f.repo.ListByUser(subCtx, userID)
	if err != nil {
		conn.Release()
		cancel()
		return nil, fmt.Errorf("initial snapshot: %w", err)
	}
	deliver(records)

	go f.run(subCtx, conn, userID, deliver)

	return attendance.CancelFunc(cancel), nil
}

func (f *NotifyFeed) run(ctx context.Context, conn *pgxpool.Conn, userID string, deliver func([]*attendance.Record)) {
	defer conn.Release()

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			if errors.Is(ctx.Err(), context.Canceled) {
				return
			}
			log.Printf("attendance feed: wait for notification: %v", err)
			return
		}

		if notification.Payload != userID {
			continue
		}

		records, err := f.repo.ListByUser(ctx, userID)
		if err != nil {
			log.Printf("attendance feed: reload records for %s: %v", userID, err)
			continue
		}
		deliver(records)
	}
}
