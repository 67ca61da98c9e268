package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/Grazus98/ATTENDANCE-TRACKER-WAH/internal/core/profile"
	pgdb "github.com/Grazus98/ATTENDANCE-TRACKER-WAH/internal/platform/db/postgres"
)

// ProfileRepository は PostgreSQL を利用したプロフィール永続化の実装です。
type ProfileRepository struct {
	pool pgdb.Queryer
}

// NewProfileRepository は ProfileRepository を生成します。
func NewProfileRepository(pool pgdb.Queryer) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

// Save はプロフィールを UID をキーとして upsert します。
func (r *ProfileRepository) Save(ctx context.Context, p *profile.Profile) (*profile.Profile, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO user_profiles (uid, email, full_name, department, created_at)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (uid) DO UPDATE
           SET email = EXCLUDED.email,
               full_name = EXCLUDED.full_name,
               department = EXCLUDED.department
        RETURNING uid, email, full_name, department, created_at
    `,
		p.UID,
		p.Email,
		p.FullName,
		p.Department,
		p.CreatedAt,
	)

	saved, err := scanProfile(row)
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// FindByUID は UID でプロフィールを取得します。
func (r *ProfileRepository) FindByUID(ctx context.Context, uid string) (*profile.Profile, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT uid, email, full_name, department, created_at
          FROM user_profiles
         WHERE uid = $1
         LIMIT 1
    `, uid)

	found, err := scanProfile(row)
	if err != nil {
		return nil, err
	}
	return found, nil
}

func scanProfile(row pgx.Row) (*profile.Profile, error) {
	var p profile.Profile
	if err := row.Scan(&p.UID, &p.Email, &p.FullName, &p.Department, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, profile.ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}
