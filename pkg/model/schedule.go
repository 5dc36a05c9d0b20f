// Package model 定义值班排班引擎的核心数据模型
package model

// AssignmentState 排班单元格状态
type AssignmentState int

const (
	StateUnresolved AssignmentState = iota // 尚未确定
	StateWork                              // 工作班次
	StateRest                              // 休息
)

// Assignment 某人某日的排班取值
// 内部使用带标签的状态表示，仅在外部接口边界折叠为班次名字符串
type Assignment struct {
	State AssignmentState `json:"state"`
	Shift string          `json:"shift,omitempty"` // State 为 StateWork 时的班次名
}

// Unresolved 返回未确定取值
func Unresolved() Assignment {
	return Assignment{State: StateUnresolved}
}

// Work 返回工作班次取值
func Work(shiftName string) Assignment {
	return Assignment{State: StateWork, Shift: shiftName}
}

// Rest 返回休息取值
func Rest() Assignment {
	return Assignment{State: StateRest}
}

// IsResolved 检查取值是否已确定
func (a Assignment) IsResolved() bool {
	return a.State != StateUnresolved
}

// IsRest 检查取值是否为休息
func (a Assignment) IsRest() bool {
	return a.State == StateRest
}

// IsWork 检查取值是否为工作班次
func (a Assignment) IsWork() bool {
	return a.State == StateWork
}

// Display 折叠为外部接口使用的班次名
// 休息以配置的休息字面值表示；未确定返回空串，完成的排班中不应出现
func (a Assignment) Display(restName string) string {
	switch a.State {
	case StateWork:
		return a.Shift
	case StateRest:
		return restName
	default:
		return ""
	}
}

// ScheduleEntry 单人排班表（日期 -> 取值）
type ScheduleEntry struct {
	Person string                `json:"person"`
	Days   map[string]Assignment `json:"days"`
}

// NewScheduleEntry 创建单人排班表
func NewScheduleEntry(person string, dates []string) *ScheduleEntry {
	days := make(map[string]Assignment, len(dates))
	for _, d := range dates {
		days[d] = Unresolved()
	}
	return &ScheduleEntry{Person: person, Days: days}
}

// Get 获取某日取值，日期不在范围内时返回未确定
func (e *ScheduleEntry) Get(date string) Assignment {
	return e.Days[date]
}

// Set 设置某日取值
func (e *ScheduleEntry) Set(date string, a Assignment) {
	e.Days[date] = a
}

// Clear 将某日清回未确定
func (e *ScheduleEntry) Clear(date string) {
	e.Days[date] = Unresolved()
}

// InRange 检查日期是否在排班范围内
func (e *ScheduleEntry) InRange(date string) bool {
	_, ok := e.Days[date]
	return ok
}

// History 排班历史（周期开始前的既有排班，只读）
// 人员姓名 -> 日期 -> 班次名（休息以其字面值出现）
type History map[string]map[string]string

// Shift 查询历史中某人某日的班次
func (h History) Shift(person, date string) (string, bool) {
	days, ok := h[person]
	if !ok {
		return "", false
	}
	shift, ok := days[date]
	return shift, ok
}
