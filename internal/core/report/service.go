package report

import (
	"context"
	"fmt"
	"io"

	"github.com/Grazus98/ATTENDANCE-TRACKER-WAH/internal/core/attendance"
)

// Service は管理者向けレポートのユースケースを提供します。
type Service struct {
	repo attendance.Repository
}

// NewService は Service を生成します。
func NewService(repo attendance.Repository) *Service {
	return &Service{repo: repo}
}

// Result は絞り込み済みレコードとその集計です。
type Result struct {
	Records []*attendance.Record
	Summary Summary
}

// Records は条件で絞り込んだレコード一覧と集計を返します。
func (s *Service) Records(ctx context.Context, filter Filter) (*Result, error) {
	records, err := s.list(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &Result{Records: records, Summary: Summarize(records)}, nil
}

// ExportCSV は条件で絞り込んだレコードを CSV として w へ書き出します。
func (s *Service) ExportCSV(ctx context.Context, filter Filter, w io.Writer) error {
	records, err := s.list(ctx, filter)
	if err != nil {
		return err
	}
	return WriteCSV(w, records)
}

// ClearAll は全レコードを削除します。
func (s *Service) ClearAll(ctx context.Context) error {
	if err := s.repo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("delete all records: %w", err)
	}
	return nil
}

func (s *Service) list(ctx context.Context, filter Filter) ([]*attendance.Record, error) {
	var (
		records []*attendance.Record
		err     error
	)
	// 日付指定がある場合はストア側で絞り込み、残りの条件をメモリ上で適用します。
	if filter.Date != "" {
		records, err = s.repo.ListByDate(ctx, filter.Date)
	} else {
		records, err = s.repo.ListAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return filter.Apply(records), nil
}
