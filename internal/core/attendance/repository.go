package attendance

import "context"

// Repository は勤怠レコード永続化の抽象です。実装はレコードストアに対して
// 生成済み識別子を返す作成、識別子指定の部分更新、一覧・点読み取りを提供します。
type Repository interface {
	// Create はレコードを新規作成し、ストアが生成した識別子を持つレコードを返します。
	Create(ctx context.Context, record *Record) (*Record, error)
	// Update は識別子指定で部分更新を行います。識別子が空または未知の場合は失敗します。
	Update(ctx context.Context, id string, update Update) (*Record, error)
	FindByID(ctx context.Context, id string) (*Record, error)
	// FindActiveByUser はユーザーの現在アクティブなレコードを返します。
	// 存在しない場合は ErrRecordNotFound を返します。
	FindActiveByUser(ctx context.Context, userID string) (*Record, error)
	ListByUser(ctx context.Context, userID string) ([]*Record, error)
	ListByDate(ctx context.Context, date string) ([]*Record, error)
	ListAll(ctx context.Context) ([]*Record, error)
	DeleteAll(ctx context.Context) error
}

// Update は1回の遷移で書き込む部分フィールド集合です。nil のフィールドは変更されません。
type Update struct {
	ClockOut   *string
	BreakStart *string
	BreakEnd   *string
	LunchStart *string
	LunchEnd   *string
	TotalHours *float64
	BreakHours *float64
	LunchHours *float64
	Status     *Status
}

// IsEmpty は書き込むフィールドが一つも無いかどうかを返します。
func (u Update) IsEmpty() bool {
	return u.ClockOut == nil &&
		u.BreakStart == nil &&
		u.BreakEnd == nil &&
		u.LunchStart == nil &&
		u.LunchEnd == nil &&
		u.TotalHours == nil &&
		u.BreakHours == nil &&
		u.LunchHours == nil &&
		u.Status == nil
}

// CancelFunc は購読を解除します。複数回呼んでも安全です。
type CancelFunc func()

// Feed はレコードストアの変更購読です。ユーザーのレコード集合のいずれかが
// 変化するたびに現在の全集合を配送します。配送は at-least-once で、
// 集合内の順序は保証されません。購読側は同一集合の再配送に冪等であることが必要です。
type Feed interface {
	SubscribeByUser(ctx context.Context, userID string, deliver func(records []*Record)) (CancelFunc, error)
}
