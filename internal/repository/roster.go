// Package repository 提供数据访问层
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/zhiban/zhiban/pkg/model"
)

// Roster 值班表记录
type Roster struct {
	ID          uuid.UUID `json:"id"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	Status      string    `json:"status"` // draft/published/archived
	Diagnostic  string    `json:"diagnostic,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RosterRepository 值班表仓储
type RosterRepository struct {
	db DB
}

// NewRosterRepository 创建值班表仓储
func NewRosterRepository(db DB) *RosterRepository {
	return &RosterRepository{db: db}
}

// SaveRoster 保存值班表及其全部分配
// 引擎本身不做持久化，完成的表由服务层在此落库
func (r *RosterRepository) SaveRoster(ctx context.Context, roster *Roster, view map[string][]model.PersonAssignment) error {
	if roster.ID == uuid.Nil {
		roster.ID = uuid.New()
	}
	now := time.Now()
	roster.CreatedAt = now
	roster.UpdatedAt = now

	query := `
		INSERT INTO rosters (id, start_date, end_date, status, diagnostic, generated_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		roster.ID, roster.StartDate, roster.EndDate, roster.Status,
		roster.Diagnostic, roster.GeneratedAt, roster.CreatedAt, roster.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("保存值班表失败: %w", err)
	}

	insert := `
		INSERT INTO roster_assignments (id, roster_id, person_name, date, shift_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for date, assignments := range view {
		for _, a := range assignments {
			if _, err := r.db.ExecContext(ctx, insert,
				uuid.New(), roster.ID, a.Person, date, a.Shift, now,
			); err != nil {
				return fmt.Errorf("保存值班分配失败: %w", err)
			}
		}
	}

	return nil
}

// LoadScheduleHistory 加载 beforeDate 之前的排班历史
// 只回看 lookbackDays 天；历史仅用于评估跨周期边界的约束，调用方不得修改
func (r *RosterRepository) LoadScheduleHistory(ctx context.Context, beforeDate string, lookbackDays int) (model.History, error) {
	if lookbackDays <= 0 {
		lookbackDays = 14
	}
	since := model.AddDays(beforeDate, -lookbackDays)

	query := `
		SELECT person_name, date, shift_name
		FROM roster_assignments
		WHERE date < $1 AND date >= $2
		ORDER BY person_name, date
	`

	rows, err := r.db.QueryContext(ctx, query, beforeDate, since)
	if err != nil {
		return nil, fmt.Errorf("查询排班历史失败: %w", err)
	}
	defer rows.Close()

	history := model.History{}
	for rows.Next() {
		var person, date, shift string
		if err := rows.Scan(&person, &date, &shift); err != nil {
			return nil, fmt.Errorf("扫描排班历史失败: %w", err)
		}
		if history[person] == nil {
			history[person] = make(map[string]string)
		}
		history[person][date] = shift
	}

	return history, rows.Err()
}

// GetLatestRoster 获取最新值班表
func (r *RosterRepository) GetLatestRoster(ctx context.Context) (*Roster, error) {
	query := `
		SELECT id, start_date, end_date, status, diagnostic, generated_at, created_at, updated_at
		FROM rosters
		ORDER BY created_at DESC
		LIMIT 1
	`

	roster := &Roster{}
	err := r.db.QueryRowContext(ctx, query).Scan(
		&roster.ID, &roster.StartDate, &roster.EndDate, &roster.Status,
		&roster.Diagnostic, &roster.GeneratedAt, &roster.CreatedAt, &roster.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("查询最新值班表失败: %w", err)
	}
	return roster, nil
}
