// Package stats 提供值班表统计分析功能
package stats

import (
	"github.com/zhiban/zhiban/pkg/model"
)

// CoverageMetrics 需求覆盖指标
type CoverageMetrics struct {
	TotalRequired   int     `json:"total_required"`   // 总需求人次
	TotalAssigned   int     `json:"total_assigned"`   // 按需排入人次
	OverallCoverage float64 `json:"overall_coverage"` // 整体覆盖率 (%)

	DailyCoverage map[string]DayCoverage `json:"daily_coverage"` // 每日覆盖情况

	ShiftCoverage map[string]float64 `json:"shift_coverage"` // 按班次覆盖率

	Shortfalls  []Shortfall `json:"shortfalls,omitempty"`  // 缺口明细
	Overstaffed []Shortfall `json:"overstaffed,omitempty"` // 超员明细
}

// DayCoverage 每日覆盖情况
type DayCoverage struct {
	Date         string  `json:"date"`
	Holiday      bool    `json:"holiday"`
	Required     int     `json:"required"`
	Assigned     int     `json:"assigned"`
	RestCount    int     `json:"rest_count"`
	CoverageRate float64 `json:"coverage_rate"`
}

// Shortfall 需求与实排的差异明细
type Shortfall struct {
	Date     string `json:"date"`
	Shift    string `json:"shift"`
	Required int    `json:"required"`
	Assigned int    `json:"assigned"`
	Delta    int    `json:"delta"`
}

// CoverageAnalyzer 需求覆盖分析器
type CoverageAnalyzer struct {
	rules *model.Rules
}

// NewCoverageAnalyzer 创建覆盖分析器
func NewCoverageAnalyzer(rules *model.Rules) *CoverageAnalyzer {
	return &CoverageAnalyzer{rules: rules}
}

// Analyze 对照规则需求分析值班表的覆盖情况
func (c *CoverageAnalyzer) Analyze(schedule map[string]*model.ScheduleEntry, persons []*model.Person, dates []string) *CoverageMetrics {
	metrics := &CoverageMetrics{
		DailyCoverage: make(map[string]DayCoverage),
		ShiftCoverage: make(map[string]float64),
	}

	shiftRequired := make(map[string]int)
	shiftAssigned := make(map[string]int)

	for _, date := range dates {
		required := c.requirementsFor(date)
		assigned := c.assignedCounts(schedule, persons, date)

		day := DayCoverage{Date: date, Holiday: c.rules.IsHoliday(date)}
		for shift, need := range required {
			have := assigned[shift]
			day.Required += need
			counted := have
			if counted > need {
				counted = need
			}
			day.Assigned += counted

			metrics.TotalRequired += need
			metrics.TotalAssigned += counted
			shiftRequired[shift] += need
			shiftAssigned[shift] += counted

			if have < need {
				metrics.Shortfalls = append(metrics.Shortfalls, Shortfall{
					Date: date, Shift: shift, Required: need, Assigned: have, Delta: have - need,
				})
			} else if have > need {
				metrics.Overstaffed = append(metrics.Overstaffed, Shortfall{
					Date: date, Shift: shift, Required: need, Assigned: have, Delta: have - need,
				})
			}
		}

		day.RestCount = assigned[c.rules.RestName()]
		if day.Required > 0 {
			day.CoverageRate = float64(day.Assigned) / float64(day.Required) * 100
		} else {
			day.CoverageRate = 100
		}
		metrics.DailyCoverage[date] = day
	}

	if metrics.TotalRequired > 0 {
		metrics.OverallCoverage = float64(metrics.TotalAssigned) / float64(metrics.TotalRequired) * 100
	} else {
		metrics.OverallCoverage = 100
	}

	for shift, need := range shiftRequired {
		if need > 0 {
			metrics.ShiftCoverage[shift] = float64(shiftAssigned[shift]) / float64(need) * 100
		}
	}

	return metrics
}

// requirementsFor 汇总某日期所有规则的需求人数（按班次名）
func (c *CoverageAnalyzer) requirementsFor(date string) map[string]int {
	required := make(map[string]int)

	collect := func(reqs []model.ShiftRequirement) {
		for _, r := range reqs {
			required[r.ShiftName] += r.Headcount
		}
	}

	if c.rules.HasNamedRules() {
		for _, rule := range c.rules.SchedulingRules {
			if c.rules.IsHoliday(date) {
				collect(rule.HolidayRequirements)
			} else {
				collect(rule.WeekdayRequirements)
			}
		}
		return required
	}

	if c.rules.IsHoliday(date) {
		collect(c.rules.HolidayRequirements)
	} else {
		collect(c.rules.WeekdayRequirements)
	}
	return required
}

// assignedCounts 统计某日期各班次（含休息）的实排人数
func (c *CoverageAnalyzer) assignedCounts(schedule map[string]*model.ScheduleEntry, persons []*model.Person, date string) map[string]int {
	assigned := make(map[string]int)
	for _, p := range persons {
		entry := schedule[p.Name]
		if entry == nil {
			continue
		}
		if name := entry.Get(date).Display(c.rules.RestName()); name != "" {
			assigned[name]++
		}
	}
	return assigned
}
