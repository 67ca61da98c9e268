package ipfilter

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"strings"
	"time"
)

// Repository は IP フィルタ設定の永続化操作を定義します。設定は単一行で、
// Save は常に上書きします。
type Repository interface {
	Save(ctx context.Context, settings *Settings) (*Settings, error)
	// Find は現在の設定を返します。未保存の場合は ErrSettingsNotFound を
	// 返します。
	Find(ctx context.Context) (*Settings, error)
}

// Clock は現在時刻の取得を抽象化するインターフェースです。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// Service は IP フィルタ設定のユースケースを提供します。
type Service struct {
	repo  Repository
	clock Clock
}

// NewService は Service を生成します。clock が nil の場合は実時刻を使用します。
func NewService(repo Repository, clock Clock) *Service {
	if clock == nil {
		clock = realClock{}
	}
	return &Service{repo: repo, clock: clock}
}

// Get は現在の設定を返します。未保存の場合はフィルタ無効の既定値を返します。
func (s *Service) Get(ctx context.Context) (*Settings, error) {
	settings, err := s.repo.Find(ctx)
	if err != nil {
		if errors.Is(err, ErrSettingsNotFound) {
			return DefaultSettings(), nil
		}
		return nil, fmt.Errorf("find ip settings: %w", err)
	}
	return settings, nil
}

// Save は設定を検証して保存します。updatedBy には操作者の識別子を渡します。
func (s *Service) Save(ctx context.Context, settings *Settings, updatedBy string) (*Settings, error) {
	if err := settings.Normalize(); err != nil {
		return nil, err
	}
	settings.UpdatedAt = s.clock.Now()
	settings.UpdatedBy = strings.TrimSpace(updatedBy)

	saved, err := s.repo.Save(ctx, settings)
	if err != nil {
		return nil, fmt.Errorf("save ip settings: %w", err)
	}
	return saved, nil
}

// Authorize は remoteAddr の接続元が打刻を許可されているか判定します。
// アドレスが解釈できない場合は拒否します。
func (s *Service) Authorize(ctx context.Context, remoteAddr string) (bool, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return false, err
	}
	if !settings.Enabled {
		return true, nil
	}

	addr, err := netip.ParseAddr(strings.TrimSpace(remoteAddr))
	if err != nil {
		return false, nil
	}
	return settings.Allows(addr), nil
}
