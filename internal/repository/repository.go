// Package repository 提供数据访问层
//
// 核心引擎只通过这里的读取接口取得人员、班次、规则与历史数据；
// 存储细节（PostgreSQL）对引擎不可见。
package repository

import (
	"context"
	"database/sql"

	"github.com/zhiban/zhiban/pkg/model"
)

// DB 数据库接口
type DB interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Store 排班数据存取的聚合接口（引擎的外部协作者）
type Store interface {
	LoadStaff(ctx context.Context) ([]*model.Person, error)
	LoadShiftDefinitions(ctx context.Context) ([]*model.ShiftDefinition, error)
	LoadRules(ctx context.Context) (*model.Rules, error)
	LoadScheduleHistory(ctx context.Context, beforeDate string, lookbackDays int) (model.History, error)
	SaveRoster(ctx context.Context, roster *Roster, view map[string][]model.PersonAssignment) error
}

// PgStore PostgreSQL 实现
type PgStore struct {
	Staff   *StaffRepository
	Shifts  *ShiftRepository
	Rules   *RuleRepository
	Rosters *RosterRepository
}

// NewPgStore 创建 PostgreSQL 存储
func NewPgStore(db DB) *PgStore {
	return &PgStore{
		Staff:   NewStaffRepository(db),
		Shifts:  NewShiftRepository(db),
		Rules:   NewRuleRepository(db),
		Rosters: NewRosterRepository(db),
	}
}

// LoadStaff 加载全部在册人员
func (s *PgStore) LoadStaff(ctx context.Context) ([]*model.Person, error) {
	return s.Staff.LoadStaff(ctx)
}

// LoadShiftDefinitions 加载全部班次定义
func (s *PgStore) LoadShiftDefinitions(ctx context.Context) ([]*model.ShiftDefinition, error) {
	return s.Shifts.LoadShiftDefinitions(ctx)
}

// LoadRules 加载当前生效的排班规则
func (s *PgStore) LoadRules(ctx context.Context) (*model.Rules, error) {
	return s.Rules.LoadRules(ctx)
}

// LoadScheduleHistory 加载周期开始前的排班历史
func (s *PgStore) LoadScheduleHistory(ctx context.Context, beforeDate string, lookbackDays int) (model.History, error) {
	return s.Rosters.LoadScheduleHistory(ctx, beforeDate, lookbackDays)
}

// SaveRoster 保存一次生成的值班表
func (s *PgStore) SaveRoster(ctx context.Context, roster *Roster, view map[string][]model.PersonAssignment) error {
	return s.Rosters.SaveRoster(ctx, roster, view)
}
