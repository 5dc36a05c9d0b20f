// Package repository 提供数据访问层
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/zhiban/zhiban/pkg/model"
)

// StaffRepository 人员仓储
type StaffRepository struct {
	db DB
}

// NewStaffRepository 创建人员仓储
func NewStaffRepository(db DB) *StaffRepository {
	return &StaffRepository{db: db}
}

// LoadStaff 加载全部在册人员（按姓名排序，保证运行的确定性）
func (r *StaffRepository) LoadStaff(ctx context.Context) ([]*model.Person, error) {
	query := `
		SELECT id, name, employee_no, group_label, status, created_at, updated_at
		FROM persons
		WHERE deleted_at IS NULL
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("查询人员列表失败: %w", err)
	}
	defer rows.Close()

	var persons []*model.Person
	for rows.Next() {
		p := &model.Person{}
		if err := rows.Scan(
			&p.ID, &p.Name, &p.EmployeeNo, &p.GroupLabel, &p.Status,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("扫描人员记录失败: %w", err)
		}
		persons = append(persons, p)
	}

	return persons, rows.Err()
}

// Create 创建人员
func (r *StaffRepository) Create(ctx context.Context, p *model.Person) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	query := `
		INSERT INTO persons (id, name, employee_no, group_label, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Name, p.EmployeeNo, p.GroupLabel, p.Status, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("创建人员记录失败: %w", err)
	}
	return nil
}

// Delete 删除人员（软删除）
func (r *StaffRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE persons SET deleted_at = $2 WHERE id = $1", id, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("删除人员记录失败: %w", err)
	}
	return nil
}
