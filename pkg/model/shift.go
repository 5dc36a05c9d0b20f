// Package model 定义值班排班引擎的核心数据模型
package model

// ShiftDefinition 班次定义
type ShiftDefinition struct {
	BaseModel
	Name      string `json:"name" db:"name"`
	StartTime string `json:"start_time" db:"start_time"` // HH:MM
	EndTime   string `json:"end_time" db:"end_time"`     // HH:MM
	Color     string `json:"color,omitempty" db:"color"`
	IsActive  bool   `json:"is_active" db:"is_active"`
}

// ShiftRequirement 班次需求
// Priority 为空表示无显式优先级，排序时落在所有显式优先级之后
type ShiftRequirement struct {
	ShiftName string `json:"shift_name"`
	Headcount int    `json:"headcount"`
	Priority  *int   `json:"priority,omitempty"`
}

// HasPriority 检查需求是否带显式优先级
func (r ShiftRequirement) HasPriority() bool {
	return r.Priority != nil
}

// PriorityValue 返回优先级数值（数值越小优先级越高）
func (r ShiftRequirement) PriorityValue() int {
	if r.Priority == nil {
		return 0
	}
	return *r.Priority
}

// PersonAssignment 日期视图中的一条分配记录
type PersonAssignment struct {
	Person string `json:"person"`
	Shift  string `json:"shift"`
}
