// Package model 定义值班排班引擎的核心数据模型
package model

// Person 值班人员
// 姓名在一次排班运行中唯一，是贯穿引擎的自然键
type Person struct {
	BaseModel
	Name       string `json:"name" db:"name"`
	EmployeeNo string `json:"employee_no,omitempty" db:"employee_no"`
	GroupLabel string `json:"group_label,omitempty" db:"group_label"`
	Status     string `json:"status" db:"status"` // active/inactive
}

// IsActive 检查人员是否在排班范围内
func (p *Person) IsActive() bool {
	return p.Status == "" || p.Status == "active"
}

// PersonNames 提取人员姓名列表
func PersonNames(persons []*Person) []string {
	names := make([]string, 0, len(persons))
	for _, p := range persons {
		names = append(names, p.Name)
	}
	return names
}
