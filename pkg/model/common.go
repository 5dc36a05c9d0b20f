// Package model 定义值班排班引擎的核心数据模型
package model

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout 日期字符串格式
const DateLayout = "2006-01-02"

// BaseModel 基础模型（包含通用字段）
type BaseModel struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"-" db:"deleted_at"`
}

// NewBaseModel 创建新的基础模型
func NewBaseModel() BaseModel {
	now := time.Now()
	return BaseModel{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ParseDate 解析日期字符串
func ParseDate(date string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// AddDays 获取偏移若干天后的日期
func AddDays(date string, days int) string {
	t, ok := ParseDate(date)
	if !ok {
		return ""
	}
	return t.AddDate(0, 0, days).Format(DateLayout)
}

// PreviousDate 获取前一天日期
func PreviousDate(date string) string {
	return AddDays(date, -1)
}

// NextDate 获取后一天日期
func NextDate(date string) string {
	return AddDays(date, 1)
}

// DayOfYear 返回日期在当年中的序号（1月1日为1）
func DayOfYear(date string) int {
	t, ok := ParseDate(date)
	if !ok {
		return 0
	}
	return t.YearDay()
}

// DatesBetween 返回闭区间内的全部日期
// 结束日期早于开始日期时返回空切片
func DatesBetween(startDate, endDate string) []string {
	start, ok1 := ParseDate(startDate)
	end, ok2 := ParseDate(endDate)
	if !ok1 || !ok2 || end.Before(start) {
		return nil
	}

	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(DateLayout))
	}
	return dates
}

// DaysBetween 计算两个日期间隔的天数（同日为0）
func DaysBetween(startDate, endDate string) int {
	start, ok1 := ParseDate(startDate)
	end, ok2 := ParseDate(endDate)
	if !ok1 || !ok2 {
		return 0
	}
	return int(end.Sub(start).Hours() / 24)
}
