package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Clock は現在時刻の取得を抽象化するインターフェースです。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// Service はプロフィールのユースケースを提供します。
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

// SaveInput はプロフィール保存の入力です。
type SaveInput struct {
	UID        string
	Email      string
	FullName   string
	Department string
}

// Save はプロフィールを検証して upsert します。
func (s *Service) Save(ctx context.Context, in SaveInput) (*Profile, error) {
	p, err := NewProfile(in.UID, in.Email, in.FullName, in.Department)
	if err != nil {
		return nil, err
	}
	p.CreatedAt = s.clock.Now()

	saved, err := s.repo.Save(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return saved, nil
}

// Get は UID でプロフィールを取得します。
func (s *Service) Get(ctx context.Context, uid string) (*Profile, error) {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return nil, ErrInvalidUID
	}
	return s.repo.FindByUID(ctx, uid)
}

// GetOrFallback は UID でプロフィールを取得し、存在しない場合は認証情報から
// 表示名を合成した代替プロフィールを返します。代替は永続化しません。
func (s *Service) GetOrFallback(ctx context.Context, uid, email, displayName string) (*Profile, error) {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return nil, ErrInvalidUID
	}

	p, err := s.repo.FindByUID(ctx, uid)
	if err == nil {
		if strings.TrimSpace(p.FullName) == "" {
			p.FullName = fallbackName(email, displayName)
		}
		if strings.TrimSpace(p.Department) == "" {
			p.Department = DefaultDepartment
		}
		return p, nil
	}
	if !errors.Is(err, ErrProfileNotFound) {
		return nil, err
	}

	return &Profile{
		UID:        uid,
		Email:      strings.TrimSpace(email),
		FullName:   fallbackName(email, displayName),
		Department: DefaultDepartment,
	}, nil
}

// fallbackName は表示名、メールのローカル部、固定文字列の順で表示名を決めます。
func fallbackName(email, displayName string) string {
	if name := strings.TrimSpace(displayName); name != "" {
		return name
	}
	email = strings.TrimSpace(email)
	if local, _, ok := strings.Cut(email, "@"); ok && local != "" {
		return local
	}
	return "User"
}
