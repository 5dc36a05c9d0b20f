package stats

import (
	"testing"

	"github.com/zhiban/zhiban/pkg/model"
)

func TestCoverageAnalyzer_FullCoverage(t *testing.T) {
	rules := &model.Rules{
		MaxConsecutiveDays: 5,
		WeekdayRequirements: []model.ShiftRequirement{
			{ShiftName: "白班", Headcount: 1},
			{ShiftName: "夜班", Headcount: 1},
		},
	}
	dates := model.DatesBetween("2025-03-03", "2025-03-04")
	persons := makePersons("张三", "李四")
	schedule := buildSchedule(map[string]map[string]string{
		"张三": {"2025-03-03": "白班", "2025-03-04": "夜班"},
		"李四": {"2025-03-03": "夜班", "2025-03-04": "白班"},
	}, dates)

	metrics := NewCoverageAnalyzer(rules).Analyze(schedule, persons, dates)

	if metrics.TotalRequired != 4 {
		t.Errorf("TotalRequired = %d, 期望 4", metrics.TotalRequired)
	}
	if metrics.TotalAssigned != 4 {
		t.Errorf("TotalAssigned = %d, 期望 4", metrics.TotalAssigned)
	}
	if metrics.OverallCoverage != 100 {
		t.Errorf("OverallCoverage = %v, 期望 100", metrics.OverallCoverage)
	}
	if len(metrics.Shortfalls) != 0 {
		t.Errorf("完全覆盖不应有缺口, 实际 %d 条", len(metrics.Shortfalls))
	}
}

func TestCoverageAnalyzer_Shortfall(t *testing.T) {
	rules := &model.Rules{
		MaxConsecutiveDays: 5,
		WeekdayRequirements: []model.ShiftRequirement{
			{ShiftName: "白班", Headcount: 2},
		},
	}
	dates := model.DatesBetween("2025-03-03", "2025-03-03")
	persons := makePersons("张三", "李四")
	schedule := buildSchedule(map[string]map[string]string{
		"张三": {"2025-03-03": "白班"},
		"李四": {"2025-03-03": "rest"},
	}, dates)

	metrics := NewCoverageAnalyzer(rules).Analyze(schedule, persons, dates)

	if metrics.OverallCoverage != 50 {
		t.Errorf("OverallCoverage = %v, 期望 50", metrics.OverallCoverage)
	}
	if len(metrics.Shortfalls) != 1 {
		t.Fatalf("应有 1 条缺口, 实际 %d", len(metrics.Shortfalls))
	}
	sf := metrics.Shortfalls[0]
	if sf.Shift != "白班" || sf.Required != 2 || sf.Assigned != 1 || sf.Delta != -1 {
		t.Errorf("缺口明细不正确: %+v", sf)
	}

	day := metrics.DailyCoverage["2025-03-03"]
	if day.RestCount != 1 {
		t.Errorf("RestCount = %d, 期望 1", day.RestCount)
	}
	if day.CoverageRate != 50 {
		t.Errorf("CoverageRate = %v, 期望 50", day.CoverageRate)
	}
}

func TestCoverageAnalyzer_OverstaffedCappedAtNeed(t *testing.T) {
	rules := &model.Rules{
		MaxConsecutiveDays: 5,
		WeekdayRequirements: []model.ShiftRequirement{
			{ShiftName: "白班", Headcount: 1},
		},
	}
	dates := model.DatesBetween("2025-03-03", "2025-03-03")
	persons := makePersons("张三", "李四")
	schedule := buildSchedule(map[string]map[string]string{
		"张三": {"2025-03-03": "白班"},
		"李四": {"2025-03-03": "白班"},
	}, dates)

	metrics := NewCoverageAnalyzer(rules).Analyze(schedule, persons, dates)

	// 超员不抬高覆盖率
	if metrics.OverallCoverage != 100 {
		t.Errorf("OverallCoverage = %v, 期望 100", metrics.OverallCoverage)
	}
	if metrics.TotalAssigned != 1 {
		t.Errorf("TotalAssigned = %d, 期望按需求封顶为 1", metrics.TotalAssigned)
	}
	if len(metrics.Overstaffed) != 1 {
		t.Fatalf("应有 1 条超员明细, 实际 %d", len(metrics.Overstaffed))
	}
	if metrics.Overstaffed[0].Delta != 1 {
		t.Errorf("超员 Delta = %d, 期望 1", metrics.Overstaffed[0].Delta)
	}
}

func TestCoverageAnalyzer_HolidayRequirements(t *testing.T) {
	rules := &model.Rules{
		MaxConsecutiveDays: 5,
		CustomHolidays:     []string{"2025-03-04"},
		WeekdayRequirements: []model.ShiftRequirement{
			{ShiftName: "白班", Headcount: 1},
		},
		HolidayRequirements: []model.ShiftRequirement{
			{ShiftName: "假日班", Headcount: 2},
		},
	}
	dates := model.DatesBetween("2025-03-03", "2025-03-04")
	persons := makePersons("张三", "李四")
	schedule := buildSchedule(map[string]map[string]string{
		"张三": {"2025-03-03": "白班", "2025-03-04": "假日班"},
		"李四": {"2025-03-03": "rest", "2025-03-04": "假日班"},
	}, dates)

	metrics := NewCoverageAnalyzer(rules).Analyze(schedule, persons, dates)

	if !metrics.DailyCoverage["2025-03-04"].Holiday {
		t.Error("2025-03-04 应标记为节假日")
	}
	if metrics.DailyCoverage["2025-03-04"].Required != 2 {
		t.Errorf("节假日需求 = %d, 期望 2", metrics.DailyCoverage["2025-03-04"].Required)
	}
	if metrics.OverallCoverage != 100 {
		t.Errorf("OverallCoverage = %v, 期望 100", metrics.OverallCoverage)
	}
	if metrics.ShiftCoverage["假日班"] != 100 {
		t.Errorf("假日班覆盖率 = %v, 期望 100", metrics.ShiftCoverage["假日班"])
	}
}

func TestCoverageAnalyzer_NamedRulesAggregated(t *testing.T) {
	rules := &model.Rules{
		MaxConsecutiveDays: 5,
		SchedulingRules: []model.SchedulingRule{
			{Name: "A组", WeekdayRequirements: []model.ShiftRequirement{{ShiftName: "白班", Headcount: 1}}},
			{Name: "B组", WeekdayRequirements: []model.ShiftRequirement{{ShiftName: "白班", Headcount: 1}}},
		},
	}
	dates := model.DatesBetween("2025-03-03", "2025-03-03")
	persons := makePersons("张三", "李四")
	schedule := buildSchedule(map[string]map[string]string{
		"张三": {"2025-03-03": "白班"},
		"李四": {"2025-03-03": "白班"},
	}, dates)

	metrics := NewCoverageAnalyzer(rules).Analyze(schedule, persons, dates)

	// 多条规则对同一班次的需求按班次名汇总
	if metrics.TotalRequired != 2 {
		t.Errorf("TotalRequired = %d, 期望 2", metrics.TotalRequired)
	}
	if metrics.OverallCoverage != 100 {
		t.Errorf("OverallCoverage = %v, 期望 100", metrics.OverallCoverage)
	}
}
