package model

import (
	"testing"
)

func TestRules_RestName(t *testing.T) {
	tests := []struct {
		name     string
		rules    Rules
		expected string
	}{
		{name: "默认字面值", rules: Rules{}, expected: "rest"},
		{name: "自定义字面值", rules: Rules{RestShiftName: "休"}, expected: "休"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rules.RestName(); got != tt.expected {
				t.Errorf("RestName() = %s, 期望 %s", got, tt.expected)
			}
		})
	}
}

func TestRules_IsHoliday(t *testing.T) {
	rules := Rules{CustomHolidays: []string{"2025-05-01", "2025-05-02"}}

	tests := []struct {
		date     string
		expected bool
	}{
		{"2025-05-01", true},
		{"2025-05-02", true},
		{"2025-05-03", false}, // 周六，但不在节假日集合中
		{"2025-05-04", false}, // 周日同理
	}

	for _, tt := range tests {
		if got := rules.IsHoliday(tt.date); got != tt.expected {
			t.Errorf("IsHoliday(%s) = %v, 期望 %v", tt.date, got, tt.expected)
		}
	}
}

func TestRules_IsHalfDayShift(t *testing.T) {
	rules := Rules{HalfDayShifts: []string{"早半班"}}

	if !rules.IsHalfDayShift("早半班") {
		t.Error("早半班应为半日班")
	}
	if rules.IsHalfDayShift("白班") {
		t.Error("白班不应为半日班")
	}
}

func TestRules_HasNamedRules(t *testing.T) {
	empty := Rules{}
	if empty.HasNamedRules() {
		t.Error("无命名规则时 HasNamedRules 应为 false")
	}

	named := Rules{SchedulingRules: []SchedulingRule{{Name: "A组"}}}
	if !named.HasNamedRules() {
		t.Error("有命名规则时 HasNamedRules 应为 true")
	}
}

func TestRules_ValidateStaffPartition(t *testing.T) {
	tests := []struct {
		name     string
		rules    Rules
		valid    bool
		conflict string
	}{
		{
			name: "互斥名单",
			rules: Rules{SchedulingRules: []SchedulingRule{
				{Name: "A组", ApplicableStaff: []string{"张三", "李四"}},
				{Name: "B组", ApplicableStaff: []string{"王五"}},
			}},
			valid: true,
		},
		{
			name: "跨规则重复",
			rules: Rules{SchedulingRules: []SchedulingRule{
				{Name: "A组", ApplicableStaff: []string{"张三", "李四"}},
				{Name: "B组", ApplicableStaff: []string{"李四", "王五"}},
			}},
			valid:    false,
			conflict: "李四",
		},
		{
			name:  "无命名规则",
			rules: Rules{},
			valid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, ok := tt.rules.ValidateStaffPartition()
			if ok != tt.valid {
				t.Fatalf("ValidateStaffPartition() = %v, 期望 %v", ok, tt.valid)
			}
			if !tt.valid && name != tt.conflict {
				t.Errorf("冲突人员 = %s, 期望 %s", name, tt.conflict)
			}
		})
	}
}

func TestShiftRequirement_Priority(t *testing.T) {
	p := 2
	withPriority := ShiftRequirement{ShiftName: "白班", Headcount: 2, Priority: &p}
	without := ShiftRequirement{ShiftName: "夜班", Headcount: 1}

	if !withPriority.HasPriority() {
		t.Error("带优先级的需求 HasPriority 应为 true")
	}
	if withPriority.PriorityValue() != 2 {
		t.Errorf("PriorityValue() = %d, 期望 2", withPriority.PriorityValue())
	}
	if without.HasPriority() {
		t.Error("不带优先级的需求 HasPriority 应为 false")
	}
}
