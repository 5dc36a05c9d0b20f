package engine

import (
	"testing"

	"github.com/zhiban/zhiban/pkg/model"
)

func makePersons(names ...string) []*model.Person {
	persons := make([]*model.Person, len(names))
	for i, n := range names {
		persons[i] = &model.Person{BaseModel: model.NewBaseModel(), Name: n}
	}
	return persons
}

func names(persons []*model.Person) []string {
	return model.PersonNames(persons)
}

func TestRotateStaffForFairDistribution(t *testing.T) {
	tests := []struct {
		name     string
		staff    []string
		date     string
		expected []string
	}{
		{
			name:     "空名单",
			staff:    nil,
			date:     "2025-01-05",
			expected: nil,
		},
		{
			name:     "单人名单不轮转",
			staff:    []string{"张三"},
			date:     "2025-01-05",
			expected: []string{"张三"},
		},
		{
			name:     "年内第3天对3取模为0",
			staff:    []string{"张三", "李四", "王五"},
			date:     "2025-01-03", // DayOfYear=3, 3%3=0
			expected: []string{"张三", "李四", "王五"},
		},
		{
			name:     "年内第4天对3取模为1",
			staff:    []string{"张三", "李四", "王五"},
			date:     "2025-01-04", // DayOfYear=4, 4%3=1
			expected: []string{"李四", "王五", "张三"},
		},
		{
			name:     "年内第5天对3取模为2",
			staff:    []string{"张三", "李四", "王五"},
			date:     "2025-01-05", // DayOfYear=5, 5%3=2
			expected: []string{"王五", "张三", "李四"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			staff := makePersons(tt.staff...)
			got := names(RotateStaffForFairDistribution(staff, tt.date))
			if len(got) != len(tt.expected) {
				t.Fatalf("轮转后长度 = %d, 期望 %d", len(got), len(tt.expected))
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("位置 %d = %s, 期望 %s", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestRotateStaffForFairDistribution_AdjacentDaysShift(t *testing.T) {
	staff := makePersons("甲", "乙", "丙", "丁")

	day1 := names(RotateStaffForFairDistribution(staff, "2025-06-01"))
	day2 := names(RotateStaffForFairDistribution(staff, "2025-06-02"))

	// 相邻两天的起始人员应相差一个位置
	idx := 0
	for i, n := range day1 {
		if n == day2[0] {
			idx = i
			break
		}
	}
	if idx != 1 {
		t.Errorf("相邻两天起始人员应前移一位, 实际偏移 %d", idx)
	}
}
