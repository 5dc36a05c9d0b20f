// Package repository 提供数据访问层
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/zhiban/zhiban/pkg/model"
)

// ShiftRepository 班次定义仓储
type ShiftRepository struct {
	db DB
}

// NewShiftRepository 创建班次定义仓储
func NewShiftRepository(db DB) *ShiftRepository {
	return &ShiftRepository{db: db}
}

// LoadShiftDefinitions 加载全部启用的班次定义
func (r *ShiftRepository) LoadShiftDefinitions(ctx context.Context) ([]*model.ShiftDefinition, error) {
	query := `
		SELECT id, name, start_time, end_time, color, is_active, created_at, updated_at
		FROM shift_definitions
		WHERE deleted_at IS NULL AND is_active
		ORDER BY start_time, name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("查询班次定义失败: %w", err)
	}
	defer rows.Close()

	var shifts []*model.ShiftDefinition
	for rows.Next() {
		s := &model.ShiftDefinition{}
		if err := rows.Scan(
			&s.ID, &s.Name, &s.StartTime, &s.EndTime, &s.Color, &s.IsActive,
			&s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("扫描班次定义失败: %w", err)
		}
		shifts = append(shifts, s)
	}

	return shifts, rows.Err()
}

// Create 创建班次定义
func (r *ShiftRepository) Create(ctx context.Context, s *model.ShiftDefinition) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now

	query := `
		INSERT INTO shift_definitions (id, name, start_time, end_time, color, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.Name, s.StartTime, s.EndTime, s.Color, s.IsActive, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("创建班次定义失败: %w", err)
	}
	return nil
}
