package attendance

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// Service は勤怠の状態遷移をまとめたユースケースです。遷移のガードを検証し、
// 1遷移につき1回の部分更新だけを書き込みます。ガード不成立の遷移は状態を
// 変えずに現在のレコードを返します。
type Service struct {
	repo  Repository
	clock Clock
	tx    TransactionManager
}

// UseCase は勤怠ユースケースの公開インターフェースです。
type UseCase interface {
	ClockIn(ctx context.Context, in ClockInInput) (*ClockInResult, error)
	ClockOut(ctx context.Context, userID string) (*Record, error)
	StartBreak(ctx context.Context, userID string) (*Record, error)
	EndBreak(ctx context.Context, userID string) (*Record, error)
	StartLunch(ctx context.Context, userID string) (*Record, error)
	EndLunch(ctx context.Context, userID string) (*Record, error)
	ForceClockOut(ctx context.Context, recordID string) (*Record, error)
	ListRecords(ctx context.Context, userID string) ([]*Record, error)
}

// NewService は Service を生成します。
func NewService(repo Repository, clock Clock, tx TransactionManager) *Service {
	if clock == nil {
		clock = NewClock()
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{repo: repo, clock: clock, tx: tx}
}

// ClockInInput は出勤打刻の入力です。
type ClockInInput struct {
	UserID     string
	Name       string
	Department string
}

// ClockInResult は出勤打刻の結果です。Resumed が真の場合、新規作成は行われず
// 既存のアクティブセッションが返されています。
type ClockInResult struct {
	Record  *Record
	Resumed bool
}

// ClockIn は新しいシフトを開始します。ガード確認と作成は別々のラウンドトリップに
// なるため、書き込み直前にアクティブレコードを再確認し、発見した場合は作成せず
// そのセッションの継続として返します。
func (s *Service) ClockIn(ctx context.Context, in ClockInInput) (*ClockInResult, error) {
	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		return nil, ErrInvalidUserID
	}

	var result *ClockInResult
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindActiveByUser(txCtx, userID)
		if err == nil {
			result = &ClockInResult{Record: existing, Resumed: true}
			return nil
		}
		if !errors.Is(err, ErrRecordNotFound) {
			return err
		}

		record, err := NewRecord(userID, in.Name, in.Department, s.clock.Now(), s.clock.Today())
		if err != nil {
			return err
		}

		created, err := s.repo.Create(txCtx, record)
		if err != nil {
			return err
		}

		result = &ClockInResult{Record: created}
		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}

// StartBreak は休憩を開始します。clocked-in 以外からの呼び出しはガード不成立として
// 何も書き込まず現在のレコードを返します。
func (s *Service) StartBreak(ctx context.Context, userID string) (*Record, error) {
	return s.transition(ctx, userID, StatusClockedIn, func(now string) Update {
		status := StatusOnBreak
		return Update{BreakStart: &now, Status: &status}
	})
}

// EndBreak は休憩を終了し clocked-in へ戻します。
func (s *Service) EndBreak(ctx context.Context, userID string) (*Record, error) {
	return s.transition(ctx, userID, StatusOnBreak, func(now string) Update {
		status := StatusClockedIn
		return Update{BreakEnd: &now, Status: &status}
	})
}

// StartLunch は昼休憩を開始します。
func (s *Service) StartLunch(ctx context.Context, userID string) (*Record, error) {
	return s.transition(ctx, userID, StatusClockedIn, func(now string) Update {
		status := StatusOnLunch
		return Update{LunchStart: &now, Status: &status}
	})
}

// EndLunch は昼休憩を終了し clocked-in へ戻します。
func (s *Service) EndLunch(ctx context.Context, userID string) (*Record, error) {
	return s.transition(ctx, userID, StatusOnLunch, func(now string) Update {
		status := StatusClockedIn
		return Update{LunchEnd: &now, Status: &status}
	})
}

func (s *Service) transition(ctx context.Context, userID string, from Status, build func(now string) Update) (*Record, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidUserID
	}

	var result *Record
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		record, err := s.findActive(txCtx, userID)
		if err != nil {
			return err
		}

		if record.Status != from {
			result = record
			return nil
		}

		updated, err := s.repo.Update(txCtx, record.ID, build(s.clock.Now()))
		if err != nil {
			return err
		}

		result = updated
		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}

// ClockOut はアクティブなシフトを終了し、実働・休憩・昼休憩の時間数を確定します。
// アクティブ3状態のいずれからでも退勤できます。
func (s *Service) ClockOut(ctx context.Context, userID string) (*Record, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidUserID
	}

	var result *Record
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		record, err := s.findActive(txCtx, userID)
		if err != nil {
			return err
		}

		updated, err := s.applyClockOut(txCtx, record)
		if err != nil {
			return err
		}

		result = updated
		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}

// ForceClockOut は管理操作としてレコード指定で退勤させます。効果は通常の退勤と
// 同一です。既に退勤済みのレコードは変更せずそのまま返します。
func (s *Service) ForceClockOut(ctx context.Context, recordID string) (*Record, error) {
	recordID = strings.TrimSpace(recordID)
	if recordID == "" {
		return nil, ErrInvalidID
	}

	var result *Record
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		record, err := s.repo.FindByID(txCtx, recordID)
		if err != nil {
			return err
		}

		if record.IsTerminal() {
			result = record
			return nil
		}

		updated, err := s.applyClockOut(txCtx, record)
		if err != nil {
			return err
		}

		result = updated
		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}

// ListRecords はユーザーの全レコードを返します。
func (s *Service) ListRecords(ctx context.Context, userID string) ([]*Record, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidUserID
	}

	var records []*Record
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.ListByUser(txCtx, userID)
		if err != nil {
			return err
		}
		records = found
		return nil
	}); err != nil {
		return nil, err
	}

	return records, nil
}

func (s *Service) findActive(ctx context.Context, userID string) (*Record, error) {
	record, err := s.repo.FindActiveByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return nil, ErrNoActiveSession
		}
		return nil, err
	}
	return record, nil
}

// applyClockOut は退勤の効果を1回の部分更新として書き込みます。休憩・昼休憩は
// 開始と終了が揃っている場合のみ計上し、開始のみで放置された区間は 0 とします。
func (s *Service) applyClockOut(ctx context.Context, record *Record) (*Record, error) {
	if strings.TrimSpace(record.ID) == "" {
		return nil, ErrMissingRecordID
	}

	now := s.clock.Now()

	total, err := ElapsedHours(record.ClockIn, now)
	if err != nil {
		return nil, fmt.Errorf("total hours: %w", err)
	}

	breakHours := 0.0
	if record.BreakStart != nil && record.BreakEnd != nil {
		breakHours, err = ElapsedHours(*record.BreakStart, *record.BreakEnd)
		if err != nil {
			return nil, fmt.Errorf("break hours: %w", err)
		}
	}

	lunchHours := 0.0
	if record.LunchStart != nil && record.LunchEnd != nil {
		lunchHours, err = ElapsedHours(*record.LunchStart, *record.LunchEnd)
		if err != nil {
			return nil, fmt.Errorf("lunch hours: %w", err)
		}
	}

	status := StatusClockedOut
	return s.repo.Update(ctx, record.ID, Update{
		ClockOut:   &now,
		TotalHours: &total,
		BreakHours: &breakHours,
		LunchHours: &lunchHours,
		Status:     &status,
	})
}
