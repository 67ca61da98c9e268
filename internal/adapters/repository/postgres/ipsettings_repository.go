package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/Grazus98/ATTENDANCE-TRACKER-WAH/internal/core/ipfilter"
	pgdb "github.com/Grazus98/ATTENDANCE-TRACKER-WAH/internal/platform/db/postgres"
)

// 設定は常に1行で、この ID の行だけを読み書きします。
const ipSettingsRowID = "current"

// IPSettingsRepository は PostgreSQL を利用した IP フィルタ設定永続化の実装です。
type IPSettingsRepository struct {
	pool pgdb.Queryer
}

// NewIPSettingsRepository は IPSettingsRepository を生成します。
func NewIPSettingsRepository(pool pgdb.Queryer) *IPSettingsRepository {
	return &IPSettingsRepository{pool: pool}
}

// Save は設定を upsert します。
func (r *IPSettingsRepository) Save(ctx context.Context, settings *ipfilter.Settings) (*ipfilter.Settings, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO ip_settings (id, allowed_public_ips, allowed_local_ips, enabled, updated_at, updated_by)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (id) DO UPDATE
           SET allowed_public_ips = EXCLUDED.allowed_public_ips,
               allowed_local_ips = EXCLUDED.allowed_local_ips,
               enabled = EXCLUDED.enabled,
               updated_at = EXCLUDED.updated_at,
               updated_by = EXCLUDED.updated_by
        RETURNING allowed_public_ips, allowed_local_ips, enabled, updated_at, updated_by
    `,
		ipSettingsRowID,
		settings.AllowedPublicIPs,
		settings.AllowedLocalIPs,
		settings.Enabled,
		settings.UpdatedAt,
		settings.UpdatedBy,
	)

	saved, err := scanIPSettings(row)
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// Find は現在の設定を取得します。
func (r *IPSettingsRepository) Find(ctx context.Context) (*ipfilter.Settings, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT allowed_public_ips, allowed_local_ips, enabled, updated_at, updated_by
          FROM ip_settings
         WHERE id = $1
         LIMIT 1
    `, ipSettingsRowID)

	found, err := scanIPSettings(row)
	if err != nil {
		return nil, err
	}
	return found, nil
}

func scanIPSettings(row pgx.Row) (*ipfilter.Settings, error) {
	var s ipfilter.Settings
	if err := row.Scan(&s.AllowedPublicIPs, &s.AllowedLocalIPs, &s.Enabled, &s.UpdatedAt, &s.UpdatedBy); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ipfilter.ErrSettingsNotFound
		}
		return nil, err
	}
	return &s, nil
}
