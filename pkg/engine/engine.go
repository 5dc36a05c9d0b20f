// Package engine 实现值班表生成引擎
//
// 引擎对每条排班规则依次执行三个阶段：优先班次分配、休息日均衡、兜底补齐。
// 三个阶段共同保证周期内每人每天都落到一个确定取值（班次或休息）。
package engine

import (
	"strings"
	"time"

	"github.com/zhiban/zhiban/pkg/logger"
	"github.com/zhiban/zhiban/pkg/model"
)

// Engine 值班表生成引擎
// 一个 Engine 实例独占一次生成运行的全部工作状态，不可并发复用
type Engine struct {
	rules     *model.Rules
	persons   []*model.Person
	shiftDefs map[string]*model.ShiftDefinition
	history   model.History
	log       *logger.EngineLogger

	// 单次运行的工作状态
	dates    []string
	schedule map[string]*model.ScheduleEntry
	stats    *Tracker
	checker  *Checker
	diag     []string
}

// ruleScope 一条规则解析后的执行范围
// 旧版 Weekday/Holiday 需求列表被视为一条适用于全员的隐式规则
type ruleScope struct {
	name    string
	weekday []model.ShiftRequirement
	holiday []model.ShiftRequirement
	staff   []*model.Person
	legacy  bool
}

// requirementsFor 返回范围内某日期适用的需求列表
func (s *ruleScope) requirementsFor(rules *model.Rules, date string) []model.ShiftRequirement {
	if rules.IsHoliday(date) {
		return s.holiday
	}
	return s.weekday
}

// New 创建引擎
func New(persons []*model.Person, shifts []*model.ShiftDefinition, rules *model.Rules) *Engine {
	if rules == nil {
		rules = &model.Rules{MaxConsecutiveDays: 1}
	}

	defs := make(map[string]*model.ShiftDefinition, len(shifts))
	for _, s := range shifts {
		defs[s.Name] = s
	}

	active := make([]*model.Person, 0, len(persons))
	for _, p := range persons {
		if p.IsActive() {
			active = append(active, p)
		}
	}

	return &Engine{
		rules:     rules,
		persons:   active,
		shiftDefs: defs,
		history:   model.History{},
		log:       logger.NewEngineLogger(),
	}
}

// SetHistory 设置周期开始前的排班历史（只读，用于跨边界约束）
func (e *Engine) SetHistory(h model.History) {
	if h != nil {
		e.history = h
	}
}

// GeneratePersonBasedSchedule 生成按人员索引的值班表（引擎的原生表示）
func (e *Engine) GeneratePersonBasedSchedule(periodStart, periodEnd string) map[string]*model.ScheduleEntry {
	e.run(periodStart, periodEnd)
	return e.schedule
}

// GenerateSchedule 生成按日期索引的值班表视图
// 正常完成时诊断信息为空串，包括需求无法精确满足的情形
func (e *Engine) GenerateSchedule(periodStart, periodEnd string) (map[string][]model.PersonAssignment, string) {
	e.run(periodStart, periodEnd)
	return AggregateByDate(e.schedule, e.persons, e.dates, e.rules.RestName()), e.Diagnostic()
}

// Diagnostic 返回本次运行的诊断信息，正常为空串
func (e *Engine) Diagnostic() string {
	return strings.Join(e.diag, "; ")
}

// run 执行一次完整的生成运行
func (e *Engine) run(periodStart, periodEnd string) {
	started := time.Now()
	e.dates = model.DatesBetween(periodStart, periodEnd)
	e.schedule = make(map[string]*model.ScheduleEntry, len(e.persons))
	e.stats = NewTracker(e.rules)
	e.checker = NewChecker(e.rules, e.history, e.schedule)
	e.diag = nil

	// 周期为空（含结束早于开始）时返回空表
	if len(e.dates) == 0 {
		return
	}

	for _, p := range e.persons {
		e.schedule[p.Name] = model.NewScheduleEntry(p.Name, e.dates)
	}

	scopes := e.resolveScopes()
	e.log.StartRun(periodStart, periodEnd, len(e.persons), len(scopes))

	for i := range scopes {
		scope := &scopes[i]
		e.priorityPass(scope)
		e.restBalancePass(scope)
		e.fillPass(scope)
	}

	// 旧版规则路径额外补足休息天数
	if !e.rules.HasNamedRules() {
		e.EnforceTotalRestDaysRequirement()
	}

	e.assertResolved()
	e.log.RunComplete(periodStart, periodEnd, time.Since(started), e.Diagnostic())
}

// resolveScopes 将规则配置解析为互斥的执行范围
// 显式名单先认领人员；名单为空的规则认领剩余全部人员；
// 仍未被认领的人员归入一个无需求的兜底范围，由兜底阶段赋默认取值
func (e *Engine) resolveScopes() []ruleScope {
	if !e.rules.HasNamedRules() {
		return []ruleScope{{
			name:    "legacy",
			weekday: e.rules.WeekdayRequirements,
			holiday: e.rules.HolidayRequirements,
			staff:   e.persons,
			legacy:  true,
		}}
	}

	if name, ok := e.rules.ValidateStaffPartition(); !ok {
		// 配置不变式被破坏：按先认领者生效继续执行
		e.diag = append(e.diag, "人员 '"+name+"' 出现在多条规则的适用名单中")
	}

	claimed := make(map[string]bool)
	byName := make(map[string]*model.Person, len(e.persons))
	for _, p := range e.persons {
		byName[p.Name] = p
	}

	scopes := make([]ruleScope, 0, len(e.rules.SchedulingRules)+1)
	var openScope *ruleScope // 首个名单为空的规则

	for _, rule := range e.rules.SchedulingRules {
		scope := ruleScope{
			name:    rule.Name,
			weekday: rule.WeekdayRequirements,
			holiday: rule.HolidayRequirements,
		}
		for _, name := range rule.ApplicableStaff {
			if p, ok := byName[name]; ok && !claimed[name] {
				scope.staff = append(scope.staff, p)
				claimed[name] = true
			}
		}
		scopes = append(scopes, scope)
		if len(rule.ApplicableStaff) == 0 && openScope == nil {
			openScope = &scopes[len(scopes)-1]
		}
	}

	var unclaimed []*model.Person
	for _, p := range e.persons {
		if !claimed[p.Name] {
			unclaimed = append(unclaimed, p)
		}
	}

	if openScope != nil {
		openScope.staff = unclaimed
	} else if len(unclaimed) > 0 {
		// 未被任何规则覆盖的人员仍需得到默认取值
		scopes = append(scopes, ruleScope{name: "default", staff: unclaimed})
	}

	return scopes
}

// assign 提交一条分配并同步统计
func (e *Engine) assign(person, date string, a model.Assignment) {
	entry := e.schedule[person]
	if entry == nil || !entry.InRange(date) {
		return
	}
	if prev := entry.Get(date); prev.IsResolved() {
		e.stats.RemoveAssignment(person, prev.Display(e.rules.RestName()), date)
	}
	entry.Set(date, a)
	if a.IsResolved() {
		e.stats.RecordAssignment(person, a.Display(e.rules.RestName()), date)
	}
}

// clear 将某人某日清回未确定并同步统计
func (e *Engine) clear(person, date string) {
	entry := e.schedule[person]
	if entry == nil || !entry.InRange(date) {
		return
	}
	if prev := entry.Get(date); prev.IsResolved() {
		e.stats.RemoveAssignment(person, prev.Display(e.rules.RestName()), date)
	}
	entry.Clear(date)
}

// assertResolved 校验核心不变式：每人每天都有确定取值
// 残留未确定取值属于程序错误，兜底置为休息并记入诊断信息
func (e *Engine) assertResolved() {
	for _, p := range e.persons {
		entry := e.schedule[p.Name]
		for _, d := range e.dates {
			if !entry.Get(d).IsResolved() {
				logger.Error().
					Str("person", p.Name).
					Str("date", d).
					Msg("排班存在未确定取值")
				e.diag = append(e.diag, "人员 "+p.Name+" 在 "+d+" 存在未确定取值")
				e.assign(p.Name, d, model.Rest())
			}
		}
	}
}
