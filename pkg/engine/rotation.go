// Package engine 实现值班表生成引擎
package engine

import (
	"github.com/zhiban/zhiban/pkg/model"
)

// RotateStaffForFairDistribution 依日期轮转候选人员名单
// 起始下标 = 日期在当年的序号 mod 名单长度，返回从该下标起左旋后的名单。
// 随日期推进，分配优先权在名单中轮流移动，而不是始终偏向名单前部。
func RotateStaffForFairDistribution(staff []*model.Person, date string) []*model.Person {
	n := len(staff)
	if n <= 1 {
		return staff
	}

	start := model.DayOfYear(date) % n
	rotated := make([]*model.Person, 0, n)
	rotated = append(rotated, staff[start:]...)
	rotated = append(rotated, staff[:start]...)
	return rotated
}
