// Package engine 实现值班表生成引擎
package engine

import (
	"github.com/zhiban/zhiban/pkg/model"
)

// dayValue 合并视图中某日的归类
type dayValue int

const (
	dayGap  dayValue = iota // 无记录或尚未确定
	dayRest                 // 休息
	dayWork                 // 整日工作班
	dayHalf                 // 半日班
)

// Checker 资格检查器
// 基于"历史 + 进行中排班"的合并视图做纯谓词判断，自身不持有可变状态
type Checker struct {
	rules    *model.Rules
	history  model.History
	schedule map[string]*model.ScheduleEntry
}

// NewChecker 创建资格检查器
func NewChecker(rules *model.Rules, history model.History, schedule map[string]*model.ScheduleEntry) *Checker {
	return &Checker{rules: rules, history: history, schedule: schedule}
}

// dayAt 返回合并视图中某人某日的归类
// 进行中排班优先于历史记录
func (c *Checker) dayAt(person, date string) dayValue {
	if entry := c.schedule[person]; entry != nil && entry.InRange(date) {
		return c.classify(entry.Get(date))
	}
	if shift, ok := c.history.Shift(person, date); ok && shift != "" {
		if shift == c.rules.RestName() {
			return dayRest
		}
		if c.rules.IsHalfDayShift(shift) {
			return dayHalf
		}
		return dayWork
	}
	return dayGap
}

// classify 归类排班取值
func (c *Checker) classify(a model.Assignment) dayValue {
	switch a.State {
	case model.StateWork:
		if c.rules.IsHalfDayShift(a.Shift) {
			return dayHalf
		}
		return dayWork
	case model.StateRest:
		return dayRest
	default:
		return dayGap
	}
}

// isAssigned 检查某人某日是否已有确定取值
func (c *Checker) isAssigned(person, date string) bool {
	entry := c.schedule[person]
	return entry != nil && entry.Get(date).IsResolved()
}

// CanAssignShift 判断某人某日能否接受指定班次
// 在 [date-14, date+14] 窗口内假设性放入该班次后，计算最长连续工作天数：
// 整班计 1.0，半日班计 0.5，休息或空档将连续计数清零。
// 超过 MaxConsecutiveDays 即拒绝。
func (c *Checker) CanAssignShift(person, shift, date string) bool {
	if c.isAssigned(person, date) {
		return false
	}

	candidate := dayWork
	if c.rules.IsHalfDayShift(shift) {
		candidate = dayHalf
	}

	run := 0.0
	maxRun := 0.0
	for offset := -14; offset <= 14; offset++ {
		v := candidate
		if offset != 0 {
			v = c.dayAt(person, model.AddDays(date, offset))
		}

		switch v {
		case dayWork:
			run += 1.0
		case dayHalf:
			run += 0.5
		default:
			run = 0
		}
		if run > maxRun {
			maxRun = run
		}
	}

	return maxRun <= float64(c.rules.MaxConsecutiveDays)
}

// CanAssignRest 判断某人某日能否休息
// 四条规则按固定顺序评估，首个命中的拒绝规则即短路：
//  1. 前一日已休息则拒绝，除非该次休息是为打断之前≥5天的连续工作（此时放行）
//  2. 最近一次休息恰在 2 天前（近 5 日内）则拒绝，避免两次休息夹一个孤立工作日
//  3. 最近一次休息相隔 2-4 天且其间存在真实工作日则拒绝，保持休息日聚集
//  4. 其余情况接受，包括刚连续工作≥5天之后
func (c *Checker) CanAssignRest(person, date string) bool {
	if c.isAssigned(person, date) {
		return false
	}

	// 规则1：连续休息检查
	if c.dayAt(person, model.PreviousDate(date)) == dayRest {
		if !c.restBrokeLongRun(person, date) {
			return false
		}
	}

	// 最近一次休息仅在最近5天内查找
	nearest := 0
	for d := 1; d <= 5; d++ {
		if c.dayAt(person, model.AddDays(date, -d)) == dayRest {
			nearest = d
			break
		}
	}

	// 规则2：孤立工作日检查
	if nearest == 2 {
		return false
	}

	// 规则3：休息模式分隔检查
	if nearest >= 2 && nearest <= 4 && c.workDaysWithin(person, date, nearest) > 0 {
		return false
	}

	return true
}

// restBrokeLongRun 检查前一日的休息是否用于打断≥5天的连续工作
// 从两天前开始向前扫描不间断的非休息班次
func (c *Checker) restBrokeLongRun(person, date string) bool {
	run := 0
	for d := 2; d <= 30; d++ { // 防止无限回溯
		v := c.dayAt(person, model.AddDays(date, -d))
		if v != dayWork && v != dayHalf {
			break
		}
		run++
	}
	return run >= 5
}

// workDaysWithin 统计 date 前 span 天（不含两端）中的真实工作日数
func (c *Checker) workDaysWithin(person, date string, span int) int {
	count := 0
	for d := 1; d < span; d++ {
		v := c.dayAt(person, model.AddDays(date, -d))
		if v == dayWork || v == dayHalf {
			count++
		}
	}
	return count
}
