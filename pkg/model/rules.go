// Package model 定义值班排班引擎的核心数据模型
package model

// DefaultRestShiftName 休息日的默认字面值
const DefaultRestShiftName = "rest"

// Rules 排班规则配置
// 一次排班运行中视为只读
type Rules struct {
	MaxConsecutiveDays int              `json:"max_consecutive_days"`
	TotalRestDays      int              `json:"total_rest_days"`
	RestShiftName      string           `json:"rest_shift_name,omitempty"`
	CustomHolidays     []string         `json:"custom_holidays,omitempty"` // YYYY-MM-DD
	HalfDayShifts      []string         `json:"half_day_shifts,omitempty"`
	SchedulingRules    []SchedulingRule `json:"scheduling_rules,omitempty"`

	// 旧版单列表需求，仅在无命名规则时生效
	WeekdayRequirements []ShiftRequirement `json:"weekday_requirements,omitempty"`
	HolidayRequirements []ShiftRequirement `json:"holiday_requirements,omitempty"`
}

// SchedulingRule 命名排班规则
// ApplicableStaff 为空表示适用于未被其他规则认领的全部人员
type SchedulingRule struct {
	Name                string             `json:"name"`
	WeekdayRequirements []ShiftRequirement `json:"weekday_requirements,omitempty"`
	HolidayRequirements []ShiftRequirement `json:"holiday_requirements,omitempty"`
	ApplicableStaff     []string           `json:"applicable_staff,omitempty"`
}

// RestName 返回休息日字面值
func (r *Rules) RestName() string {
	if r.RestShiftName == "" {
		return DefaultRestShiftName
	}
	return r.RestShiftName
}

// IsHoliday 判断日期是否为自定义节假日
// 不在节假日集合中的日期一律按工作日处理
func (r *Rules) IsHoliday(date string) bool {
	for _, h := range r.CustomHolidays {
		if h == date {
			return true
		}
	}
	return false
}

// IsHalfDayShift 判断班次是否为半日班
func (r *Rules) IsHalfDayShift(shiftName string) bool {
	for _, s := range r.HalfDayShifts {
		if s == shiftName {
			return true
		}
	}
	return false
}

// HasNamedRules 检查是否配置了命名排班规则
func (r *Rules) HasNamedRules() bool {
	return len(r.SchedulingRules) > 0
}

// ValidateStaffPartition 检查各规则的适用人员是否互斥
// 返回第一个出现在多条规则中的人员姓名
func (r *Rules) ValidateStaffPartition() (string, bool) {
	seen := make(map[string]bool)
	for _, rule := range r.SchedulingRules {
		for _, name := range rule.ApplicableStaff {
			if seen[name] {
				return name, false
			}
			seen[name] = true
		}
	}
	return "", true
}
