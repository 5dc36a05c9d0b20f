// Package engine 实现值班表生成引擎
package engine

import (
	"github.com/zhiban/zhiban/pkg/model"
)

// AggregateByDate 将按人员索引的值班表转换为按日期索引的视图
// 每个日期下按 persons 的顺序列出分配记录，保证输出确定性。
// 输入应为已完成的值班表；未确定取值不会出现在完成的表中
func AggregateByDate(schedule map[string]*model.ScheduleEntry, persons []*model.Person, dates []string, restName string) map[string][]model.PersonAssignment {
	view := make(map[string][]model.PersonAssignment, len(dates))

	for _, date := range dates {
		assignments := make([]model.PersonAssignment, 0, len(persons))
		for _, p := range persons {
			entry := schedule[p.Name]
			if entry == nil {
				continue
			}
			assignments = append(assignments, model.PersonAssignment{
				Person: p.Name,
				Shift:  entry.Get(date).Display(restName),
			})
		}
		view[date] = assignments
	}

	return view
}

// GenerateSchedule 生成按日期索引的值班表视图
// 便捷入口：一次调用即一次独立的生成运行
func GenerateSchedule(persons []*model.Person, shifts []*model.ShiftDefinition, rules *model.Rules, periodStart, periodEnd string) (map[string][]model.PersonAssignment, string) {
	return New(persons, shifts, rules).GenerateSchedule(periodStart, periodEnd)
}

// GeneratePersonBasedSchedule 生成按人员索引的值班表
// 便捷入口：一次调用即一次独立的生成运行
func GeneratePersonBasedSchedule(persons []*model.Person, shifts []*model.ShiftDefinition, rules *model.Rules, periodStart, periodEnd string) map[string]*model.ScheduleEntry {
	return New(persons, shifts, rules).GeneratePersonBasedSchedule(periodStart, periodEnd)
}
