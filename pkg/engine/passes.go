// Package engine 实现值班表生成引擎
package engine

import (
	"sort"

	"github.com/zhiban/zhiban/pkg/model"
)

// sortByPriority 按优先级排序需求列表
// 带显式优先级的在前（数值小者优先），无优先级的保持原序落在最后
func sortByPriority(reqs []model.ShiftRequirement) []model.ShiftRequirement {
	sorted := make([]model.ShiftRequirement, len(reqs))
	copy(sorted, reqs)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, rj := sorted[i], sorted[j]
		if ri.HasPriority() != rj.HasPriority() {
			return ri.HasPriority()
		}
		if !ri.HasPriority() {
			return false
		}
		return ri.PriorityValue() < rj.PriorityValue()
	})
	return sorted
}

// hasPriorityRequirement 检查需求列表中是否存在显式优先级
func hasPriorityRequirement(reqs []model.ShiftRequirement) bool {
	for _, r := range reqs {
		if r.HasPriority() {
			return true
		}
	}
	return false
}

// containsShift 检查需求列表是否包含指定班次
func containsShift(reqs []model.ShiftRequirement, shift string) bool {
	for _, r := range reqs {
		if r.ShiftName == shift {
			return true
		}
	}
	return false
}

// inPeriod 检查日期是否落在本次运行周期内
func (e *Engine) inPeriod(date string) bool {
	if len(e.dates) == 0 {
		return false
	}
	return date >= e.dates[0] && date <= e.dates[len(e.dates)-1]
}

// rotatedCandidates 返回某日某班次的轮转后候选名单
// 候选条件：属于规则适用人员、当日尚未确定、通过班次资格检查
func (e *Engine) rotatedCandidates(scope *ruleScope, shift, date string) []*model.Person {
	var eligible []*model.Person
	for _, p := range scope.staff {
		if e.schedule[p.Name].Get(date).IsResolved() {
			continue
		}
		if !e.checker.CanAssignShift(p.Name, shift, date) {
			continue
		}
		eligible = append(eligible, p)
	}
	return RotateStaffForFairDistribution(eligible, date)
}

// priorityPass 阶段一：按优先级分配班次需求
// 按日期顺序处理，每日需求先按优先级排序；超出需求的既有分配被清回未确定
func (e *Engine) priorityPass(scope *ruleScope) {
	assigned := 0

	for _, date := range e.dates {
		reqs := sortByPriority(scope.requirementsFor(e.rules, date))
		for _, req := range reqs {
			have := int(e.stats.DateCount(date, req.ShiftName))
			if have > req.Headcount {
				e.trimExcess(scope, date, req)
				continue
			}

			short := req.Headcount - have
			if short <= 0 {
				continue
			}

			for _, p := range e.rotatedCandidates(scope, req.ShiftName, date) {
				if short <= 0 {
					break
				}
				e.assign(p.Name, date, model.Work(req.ShiftName))
				assigned++
				short--

				if e.rules.IsHalfDayShift(req.ShiftName) {
					e.extendHalfDay(scope, p.Name, req.ShiftName, date)
				}
			}
		}
	}

	e.log.PassComplete(scope.name, "priority", assigned)
}

// trimExcess 将某日某班次超出需求的分配清回未确定
// 按人员枚举顺序裁剪，直到计数与需求一致
func (e *Engine) trimExcess(scope *ruleScope, date string, req model.ShiftRequirement) {
	for _, p := range scope.staff {
		if int(e.stats.DateCount(date, req.ShiftName)) <= req.Headcount {
			return
		}
		a := e.schedule[p.Name].Get(date)
		if a.IsWork() && a.Shift == req.ShiftName {
			e.clear(p.Name, date)
		}
	}
}

// extendHalfDay 半日班连续性：尝试把同一班次延伸到次日
// 仅当次日需求仍含该班次、次日未确定且通过资格检查时延伸，且只延伸一次
func (e *Engine) extendHalfDay(scope *ruleScope, person, shift, date string) {
	next := model.NextDate(date)
	if !e.inPeriod(next) {
		return
	}
	if !containsShift(scope.requirementsFor(e.rules, next), shift) {
		return
	}
	if e.schedule[person].Get(next).IsResolved() {
		return
	}
	if !e.checker.CanAssignShift(person, shift, next) {
		return
	}
	e.assign(person, next, model.Work(shift))
}

// restBalancePass 阶段二：休息日均衡
// 逐人将休息当量拉向 TotalRestDays 目标：不足则转休，超出则转回班次
func (e *Engine) restBalancePass(scope *ruleScope) {
	if len(scope.staff) == 0 || len(e.dates) == 0 {
		return
	}

	target := float64(e.rules.TotalRestDays)

	// 每日休息人数上限由平均值推出
	average := len(scope.staff) * e.rules.TotalRestDays / len(e.dates)
	weekdayCeiling := average - 1
	holidayCeiling := average + 2

	converted := 0
	for _, p := range scope.staff {
		current := e.stats.RestEquivalent(p.Name)
		if current < target {
			converted += e.raiseRest(scope, p.Name, target, weekdayCeiling, holidayCeiling)
		} else if current > target {
			converted += e.lowerRest(scope, p.Name, target)
		}
	}

	e.log.PassComplete(scope.name, "rest-balance", converted)
}

// raiseRest 将未确定或非优先班次的日子转为休息，直到达到目标
// 跳过带显式优先级需求的日期，并遵守当日休息人数上限和休息资格检查
func (e *Engine) raiseRest(scope *ruleScope, person string, target float64, weekdayCeiling, holidayCeiling int) int {
	converted := 0

	for _, date := range e.dates {
		if e.stats.RestEquivalent(person) >= target {
			break
		}

		if hasPriorityRequirement(scope.requirementsFor(e.rules, date)) {
			continue
		}

		a := e.schedule[person].Get(date)
		if a.IsRest() {
			continue
		}

		ceiling := weekdayCeiling
		if e.rules.IsHoliday(date) {
			ceiling = holidayCeiling
		}
		if int(e.stats.RestCountOnDate(date)) >= ceiling {
			continue
		}

		// 休息资格检查要求当日未确定，先清空再检查，失败则还原
		if a.IsResolved() {
			e.clear(person, date)
		}
		if !e.checker.CanAssignRest(person, date) {
			if a.IsResolved() {
				e.assign(person, date, a)
			}
			continue
		}

		e.assign(person, date, model.Rest())
		converted++
	}

	return converted
}

// lowerRest 将多余的休息日转回仍有空缺的非优先班次
// 找不到合法改派时保留休息日不变
func (e *Engine) lowerRest(scope *ruleScope, person string, target float64) int {
	converted := 0

	for _, date := range e.dates {
		if e.stats.RestEquivalent(person) <= target {
			break
		}

		if !e.schedule[person].Get(date).IsRest() {
			continue
		}

		for _, req := range scope.requirementsFor(e.rules, date) {
			if req.HasPriority() {
				continue
			}
			if int(e.stats.DateCount(date, req.ShiftName)) >= req.Headcount {
				continue
			}

			e.clear(person, date)
			if e.checker.CanAssignShift(person, req.ShiftName, date) {
				e.assign(person, date, model.Work(req.ShiftName))
				converted++
				break
			}
			e.assign(person, date, model.Rest())
		}
	}

	return converted
}

// fillPass 阶段三：补齐非优先需求并兜底
// 结束后规则范围内每人每天都有确定取值
func (e *Engine) fillPass(scope *ruleScope) {
	assigned := 0

	for _, date := range e.dates {
		reqs := scope.requirementsFor(e.rules, date)

		for _, req := range reqs {
			if req.HasPriority() {
				continue
			}

			short := req.Headcount - int(e.stats.DateCount(date, req.ShiftName))
			if short <= 0 {
				continue
			}

			for _, p := range e.rotatedCandidates(scope, req.ShiftName, date) {
				if short <= 0 {
					break
				}
				e.assign(p.Name, date, model.Work(req.ShiftName))
				assigned++
				short--

				if e.rules.IsHalfDayShift(req.ShiftName) {
					e.extendHalfDay(scope, p.Name, req.ShiftName, date)
				}
			}
		}

		// 兜底：当日仍未确定的人员必须落到一个取值
		for _, p := range scope.staff {
			if e.schedule[p.Name].Get(date).IsResolved() {
				continue
			}
			if shift, ok := e.pickFillShift(scope, p.Name, date); ok {
				e.assign(p.Name, date, model.Work(shift))
				assigned++
				continue
			}
			e.assign(p.Name, date, model.Rest())
		}
	}

	e.log.PassComplete(scope.name, "fill", assigned)
}

// pickFillShift 为兜底选择一个工作班次
// 先找仍有空缺的非优先班次；若没有空缺但休息数已达标，
// 宁可超员安排班次也不再累积休息，避免突破休息配额
func (e *Engine) pickFillShift(scope *ruleScope, person, date string) (string, bool) {
	reqs := scope.requirementsFor(e.rules, date)

	for _, req := range reqs {
		if req.HasPriority() {
			continue
		}
		if int(e.stats.DateCount(date, req.ShiftName)) >= req.Headcount {
			continue
		}
		if e.checker.CanAssignShift(person, req.ShiftName, date) {
			return req.ShiftName, true
		}
	}

	if e.stats.RestEquivalent(person) >= float64(e.rules.TotalRestDays) {
		for _, req := range reqs {
			if req.HasPriority() {
				continue
			}
			if e.checker.CanAssignShift(person, req.ShiftName, date) {
				return req.ShiftName, true
			}
		}
	}

	return "", false
}

// EnforceTotalRestDaysRequirement 旧版规则路径的休息天数兜底
// 扫描每人的休息当量，不足时将工作日逐个转为休息，
// 每次转换后重新校验最大连续工作天数约束，违反则回退该次转换
func (e *Engine) EnforceTotalRestDaysRequirement() {
	target := float64(e.rules.TotalRestDays)

	for _, p := range e.persons {
		converted := 0
		for _, date := range e.dates {
			if e.stats.RestEquivalent(p.Name) >= target {
				break
			}

			a := e.schedule[p.Name].Get(date)
			if !a.IsWork() {
				continue
			}

			e.assign(p.Name, date, model.Rest())
			if e.maxRunExceeded(p.Name) {
				e.assign(p.Name, date, a)
				continue
			}
			converted++
		}

		if converted > 0 {
			e.log.RestQuotaEnforced(p.Name, converted)
		}
	}
}

// maxRunExceeded 检查某人在合并视图下的最长连续工作天数是否超限
func (e *Engine) maxRunExceeded(person string) bool {
	if len(e.dates) == 0 {
		return false
	}

	run := 0.0
	maxRun := 0.0
	for _, date := range model.DatesBetween(model.AddDays(e.dates[0], -14), model.AddDays(e.dates[len(e.dates)-1], 14)) {
		switch e.checker.dayAt(person, date) {
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

	return maxRun > float64(e.rules.MaxConsecutiveDays)
}
