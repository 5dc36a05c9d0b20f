// Package engine 实现值班表生成引擎
package engine

import (
	"github.com/zhiban/zhiban/pkg/model"
)

// Tracker 排班统计跟踪器
// 按人员和按日期维护各班次名的已分配计数，用于判断需求是否满足或超额。
// 计数是派生缓存，排班表本身才是权威数据。
type Tracker struct {
	rules      *model.Rules
	byPerson   map[string]map[string]float64 // 人员 -> 班次名 -> 计数
	byDate     map[string]map[string]float64 // 日期 -> 班次名 -> 计数
	restCredit map[string]float64            // 人员 -> 休息当量
}

// NewTracker 创建统计跟踪器
func NewTracker(rules *model.Rules) *Tracker {
	return &Tracker{
		rules:      rules,
		byPerson:   make(map[string]map[string]float64),
		byDate:     make(map[string]map[string]float64),
		restCredit: make(map[string]float64),
	}
}

// RecordAssignment 记录一次已提交的分配
// 同时更新人员计数和日期计数；半日班额外计入 0.5 休息当量
func (t *Tracker) RecordAssignment(person, shift, date string) {
	t.bump(person, shift, date, 1)

	if shift == t.rules.RestName() {
		t.restCredit[person] += 1.0
	} else if t.rules.IsHalfDayShift(shift) {
		t.restCredit[person] += 0.5
	}
}

// RemoveAssignment 撤销一次分配的计数
func (t *Tracker) RemoveAssignment(person, shift, date string) {
	t.bump(person, shift, date, -1)

	if shift == t.rules.RestName() {
		t.restCredit[person] -= 1.0
	} else if t.rules.IsHalfDayShift(shift) {
		t.restCredit[person] -= 0.5
	}
}

// bump 调整双向计数
func (t *Tracker) bump(person, shift, date string, delta float64) {
	if t.byPerson[person] == nil {
		t.byPerson[person] = make(map[string]float64)
	}
	if t.byDate[date] == nil {
		t.byDate[date] = make(map[string]float64)
	}
	t.byPerson[person][shift] += delta
	t.byDate[date][shift] += delta
}

// DateCount 返回某日某班次的已分配计数
func (t *Tracker) DateCount(date, shift string) float64 {
	return t.byDate[date][shift]
}

// PersonCount 返回某人某班次的累计计数
func (t *Tracker) PersonCount(person, shift string) float64 {
	return t.byPerson[person][shift]
}

// RestEquivalent 返回某人的休息当量
// 整休 1.0，半日班 0.5，普通工作班 0
func (t *Tracker) RestEquivalent(person string) float64 {
	return t.restCredit[person]
}

// RestCountOnDate 返回某日的休息人数
func (t *Tracker) RestCountOnDate(date string) float64 {
	return t.byDate[date][t.rules.RestName()]
}
