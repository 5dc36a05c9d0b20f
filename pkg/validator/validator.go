// Package validator 提供值班表验证功能
package validator

import (
	"fmt"

	"github.com/zhiban/zhiban/pkg/model"
)

// ViolationType 违规类型
type ViolationType string

const (
	ViolationUnresolved  ViolationType = "unresolved"  // 存在未确定取值
	ViolationConsecutive ViolationType = "consecutive" // 连续工作天数超限
	ViolationPriority    ViolationType = "priority"    // 优先需求未精确满足
	ViolationPartition   ViolationType = "partition"   // 规则适用人员划分冲突
)

// Violation 违规信息
type Violation struct {
	Type     ViolationType `json:"type"`
	Severity string        `json:"severity"` // error/warning
	Person   string        `json:"person,omitempty"`
	Date     string        `json:"date,omitempty"`
	Shift    string        `json:"shift,omitempty"`
	Message  string        `json:"message"`
}

// Validator 值班表验证器
// 对已完成的值班表做事后校验，供导出前检查与测试使用
type Validator struct {
	rules   *model.Rules
	history model.History
}

// New 创建验证器
func New(rules *model.Rules, history model.History) *Validator {
	if history == nil {
		history = model.History{}
	}
	return &Validator{rules: rules, history: history}
}

// ValidateAll 执行全部校验
func (v *Validator) ValidateAll(schedule map[string]*model.ScheduleEntry, persons []*model.Person, dates []string) []Violation {
	var violations []Violation

	violations = append(violations, v.detectPartitionConflicts()...)
	violations = append(violations, v.detectUnresolved(schedule, persons, dates)...)
	violations = append(violations, v.detectConsecutiveViolations(schedule, persons, dates)...)
	violations = append(violations, v.detectPriorityShortfalls(schedule, persons, dates)...)

	return violations
}

// detectPartitionConflicts 校验规则适用人员互斥
func (v *Validator) detectPartitionConflicts() []Violation {
	name, ok := v.rules.ValidateStaffPartition()
	if ok {
		return nil
	}
	return []Violation{{
		Type:     ViolationPartition,
		Severity: "error",
		Person:   name,
		Message:  fmt.Sprintf("人员 %s 出现在多条排班规则的适用名单中", name),
	}}
}

// detectUnresolved 校验核心不变式：每人每天都有确定取值
func (v *Validator) detectUnresolved(schedule map[string]*model.ScheduleEntry, persons []*model.Person, dates []string) []Violation {
	var violations []Violation

	for _, p := range persons {
		entry := schedule[p.Name]
		for _, date := range dates {
			if entry == nil || !entry.Get(date).IsResolved() {
				violations = append(violations, Violation{
					Type:     ViolationUnresolved,
					Severity: "error",
					Person:   p.Name,
					Date:     date,
					Message:  fmt.Sprintf("人员 %s 在 %s 无确定取值", p.Name, date),
				})
			}
		}
	}

	return violations
}

// detectConsecutiveViolations 校验最大连续工作天数（含历史跨边界）
func (v *Validator) detectConsecutiveViolations(schedule map[string]*model.ScheduleEntry, persons []*model.Person, dates []string) []Violation {
	var violations []Violation
	if len(dates) == 0 {
		return nil
	}

	limit := float64(v.rules.MaxConsecutiveDays)
	for _, p := range persons {
		run := MaxConsecutiveRun(v.rules, v.history, schedule[p.Name], p.Name, dates)
		if run > limit {
			violations = append(violations, Violation{
				Type:     ViolationConsecutive,
				Severity: "error",
				Person:   p.Name,
				Message:  fmt.Sprintf("人员 %s 连续工作 %.1f 天，超过限制 %d 天", p.Name, run, v.rules.MaxConsecutiveDays),
			})
		}
	}

	return violations
}

// detectPriorityShortfalls 校验显式优先级需求的精确满足
// 仅报告缺口；候选人员不足导致的缺口同样会被报出，由调用方判断
func (v *Validator) detectPriorityShortfalls(schedule map[string]*model.ScheduleEntry, persons []*model.Person, dates []string) []Violation {
	var violations []Violation

	for _, date := range dates {
		for _, req := range v.priorityRequirementsFor(date) {
			assigned := 0
			for _, p := range persons {
				entry := schedule[p.Name]
				if entry == nil {
					continue
				}
				a := entry.Get(date)
				if a.IsWork() && a.Shift == req.ShiftName {
					assigned++
				}
			}
			if assigned != req.Headcount {
				violations = append(violations, Violation{
					Type:     ViolationPriority,
					Severity: "warning",
					Date:     date,
					Shift:    req.ShiftName,
					Message:  fmt.Sprintf("%s 班次 %s 需求 %d 人，实排 %d 人", date, req.ShiftName, req.Headcount, assigned),
				})
			}
		}
	}

	return violations
}

// priorityRequirementsFor 汇总某日期各规则的显式优先级需求
func (v *Validator) priorityRequirementsFor(date string) []model.ShiftRequirement {
	var reqs []model.ShiftRequirement

	collect := func(list []model.ShiftRequirement) {
		for _, r := range list {
			if r.HasPriority() {
				reqs = append(reqs, r)
			}
		}
	}

	if v.rules.HasNamedRules() {
		for _, rule := range v.rules.SchedulingRules {
			if v.rules.IsHoliday(date) {
				collect(rule.HolidayRequirements)
			} else {
				collect(rule.WeekdayRequirements)
			}
		}
		return reqs
	}

	if v.rules.IsHoliday(date) {
		collect(v.rules.HolidayRequirements)
	} else {
		collect(v.rules.WeekdayRequirements)
	}
	return reqs
}

// MaxConsecutiveRun 计算某人在"历史+值班表"合并视图下的最长连续工作天数
// 整班计 1.0，半日班计 0.5，休息或空档清零；窗口向周期两侧各延伸14天
func MaxConsecutiveRun(rules *model.Rules, history model.History, entry *model.ScheduleEntry, person string, dates []string) float64 {
	if len(dates) == 0 {
		return 0
	}

	run := 0.0
	maxRun := 0.0
	for _, date := range model.DatesBetween(model.AddDays(dates[0], -14), model.AddDays(dates[len(dates)-1], 14)) {
		var shift string
		if entry != nil && entry.InRange(date) {
			shift = entry.Get(date).Display(rules.RestName())
		} else if s, ok := history.Shift(person, date); ok {
			shift = s
		}

		switch {
		case shift == "" || shift == rules.RestName():
			run = 0
		case rules.IsHalfDayShift(shift):
			run += 0.5
		default:
			run += 1.0
		}
		if run > maxRun {
			maxRun = run
		}
	}

	return maxRun
}
