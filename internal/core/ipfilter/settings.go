package ipfilter

import (
	"errors"
	"fmt"
	"net/netip"
	"strings"
	"time"
)

var (
	// ErrSettingsNotFound は設定が未保存の場合のエラーです。
	ErrSettingsNotFound = errors.New("ipfilter: settings not found")
	// ErrInvalidEntry は許可リストの項目が IP アドレスにも CIDR にも
	// 解釈できない場合のエラーです。
	ErrInvalidEntry = errors.New("ipfilter: allow list entry is invalid")
)

// Settings は打刻を許可する接続元の設定です。Enabled が false の間は
// 全ての接続元を許可します。
type Settings struct {
	AllowedPublicIPs []string
	AllowedLocalIPs  []string
	Enabled          bool
	UpdatedAt        time.Time
	UpdatedBy        string
}

// DefaultSettings はフィルタ無効の初期設定を返します。
func DefaultSettings() *Settings {
	return &Settings{Enabled: false}
}

// Normalize は許可リストの各項目を検証し、空白を除去した形へ整えます。
func (s *Settings) Normalize() error {
	public, err := normalizeEntries(s.AllowedPublicIPs)
	if err != nil {
		return err
	}
	local, err := normalizeEntries(s.AllowedLocalIPs)
	if err != nil {
		return err
	}
	s.AllowedPublicIPs = public
	s.AllowedLocalIPs = local
	return nil
}

func normalizeEntries(entries []string) ([]string, error) {
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if _, err := netip.ParseAddr(entry); err == nil {
			out = append(out, entry)
			continue
		}
		if _, err := netip.ParsePrefix(entry); err == nil {
			out = append(out, entry)
			continue
		}
		return nil, fmt.Errorf("%w: %q", ErrInvalidEntry, entry)
	}
	return out, nil
}

// Allows は addr が許可リストのいずれかに一致するか判定します。
// フィルタが無効の場合は常に true です。
func (s *Settings) Allows(addr netip.Addr) bool {
	if !s.Enabled {
		return true
	}
	return matchesAny(addr, s.AllowedPublicIPs) || matchesAny(addr, s.AllowedLocalIPs)
}

func matchesAny(addr netip.Addr, entries []string) bool {
	for _, entry := range entries {
		if allowed, err := netip.ParseAddr(entry); err == nil {
			if allowed == addr {
				return true
			}
			continue
		}
		if prefix, err := netip.ParsePrefix(entry); err == nil && prefix.Contains(addr) {
			return true
		}
	}
	return false
}
