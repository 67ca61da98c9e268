package profile

import "context"

// Repository はプロフィール永続化の操作を定義します。
type Repository interface {
	// Save はプロフィールを UID をキーとして upsert します。
	Save(ctx context.Context, p *Profile) (*Profile, error)
	// FindByUID は UID でプロフィールを取得します。存在しない場合は
	// ErrProfileNotFound を返します。
	FindByUID(ctx context.Context, uid string) (*Profile, error)
}
