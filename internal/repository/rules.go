// Package repository 提供数据访问层
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/zhiban/zhiban/pkg/model"
)

// RuleRepository 排班规则仓储
// 规则配置整体以 JSONB 存储，加载时取最新生效版本
type RuleRepository struct {
	db DB
}

// NewRuleRepository 创建排班规则仓储
func NewRuleRepository(db DB) *RuleRepository {
	return &RuleRepository{db: db}
}

// LoadRules 加载当前生效的排班规则
// 无配置记录时返回空规则，缺失的可选字段按空集合处理
func (r *RuleRepository) LoadRules(ctx context.Context) (*model.Rules, error) {
	query := `
		SELECT config
		FROM rule_configs
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT 1
	`

	var configJSON []byte
	err := r.db.QueryRowContext(ctx, query).Scan(&configJSON)
	if err == sql.ErrNoRows {
		return &model.Rules{MaxConsecutiveDays: 1}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("查询排班规则失败: %w", err)
	}

	rules := &model.Rules{}
	if err := json.Unmarshal(configJSON, rules); err != nil {
		return nil, fmt.Errorf("解析排班规则失败: %w", err)
	}
	if rules.MaxConsecutiveDays < 1 {
		rules.MaxConsecutiveDays = 1
	}

	return rules, nil
}

// SaveRules 保存一份新的规则配置版本
func (r *RuleRepository) SaveRules(ctx context.Context, rules *model.Rules) error {
	configJSON, err := json.Marshal(rules)
	if err != nil {
		return fmt.Errorf("序列化排班规则失败: %w", err)
	}

	query := `
		INSERT INTO rule_configs (id, config, created_at)
		VALUES ($1, $2, $3)
	`

	_, err = r.db.ExecContext(ctx, query, uuid.New(), configJSON, time.Now())
	if err != nil {
		return fmt.Errorf("保存排班规则失败: %w", err)
	}
	return nil
}
