package engine

import (
	"testing"

	"github.com/zhiban/zhiban/pkg/model"
)

func TestAggregateByDate(t *testing.T) {
	dates := []string{"2025-03-03", "2025-03-04"}
	persons := makePersons("张三", "李四")

	schedule := map[string]*model.ScheduleEntry{
		"张三": model.NewScheduleEntry("张三", dates),
		"李四": model.NewScheduleEntry("李四", dates),
	}
	schedule["张三"].Set("2025-03-03", model.Work("白班"))
	schedule["张三"].Set("2025-03-04", model.Rest())
	schedule["李四"].Set("2025-03-03", model.Rest())
	schedule["李四"].Set("2025-03-04", model.Work("夜班"))

	view := AggregateByDate(schedule, persons, dates, "休")

	if len(view) != 2 {
		t.Fatalf("视图应含 2 天, 实际 %d", len(view))
	}

	day1 := view["2025-03-03"]
	if len(day1) != 2 {
		t.Fatalf("每日应有 2 条记录, 实际 %d", len(day1))
	}

	// 输出顺序与人员列表一致
	if day1[0].Person != "张三" || day1[1].Person != "李四" {
		t.Errorf("记录顺序 = [%s, %s], 期望 [张三, 李四]", day1[0].Person, day1[1].Person)
	}
	if day1[0].Shift != "白班" {
		t.Errorf("张三班次 = %s, 期望 白班", day1[0].Shift)
	}

	// 休息折叠为配置的休息字面值
	if day1[1].Shift != "休" {
		t.Errorf("李四班次 = %s, 期望 休", day1[1].Shift)
	}
	if view["2025-03-04"][0].Shift != "休" {
		t.Errorf("张三次日班次 = %s, 期望 休", view["2025-03-04"][0].Shift)
	}
}

func TestAggregateByDate_MissingEntrySkipped(t *testing.T) {
	dates := []string{"2025-03-03"}
	persons := makePersons("张三", "李四")

	schedule := map[string]*model.ScheduleEntry{
		"张三": model.NewScheduleEntry("张三", dates),
	}
	schedule["张三"].Set("2025-03-03", model.Work("白班"))

	view := AggregateByDate(schedule, persons, dates, "rest")
	if len(view["2025-03-03"]) != 1 {
		t.Errorf("无排班记录的人员应被跳过, 实际 %d 条", len(view["2025-03-03"]))
	}
}
