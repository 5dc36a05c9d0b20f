package engine

import (
	"testing"

	"github.com/zhiban/zhiban/pkg/model"
)

func TestTracker_RecordAndRemove(t *testing.T) {
	rules := &model.Rules{MaxConsecutiveDays: 5}
	tracker := NewTracker(rules)

	tracker.RecordAssignment("张三", "白班", "2025-03-01")
	tracker.RecordAssignment("李四", "白班", "2025-03-01")
	tracker.RecordAssignment("张三", "夜班", "2025-03-02")

	if got := tracker.DateCount("2025-03-01", "白班"); got != 2 {
		t.Errorf("DateCount = %v, 期望 2", got)
	}
	if got := tracker.PersonCount("张三", "白班"); got != 1 {
		t.Errorf("PersonCount = %v, 期望 1", got)
	}

	tracker.RemoveAssignment("李四", "白班", "2025-03-01")
	if got := tracker.DateCount("2025-03-01", "白班"); got != 1 {
		t.Errorf("撤销后 DateCount = %v, 期望 1", got)
	}
}

func TestTracker_RestEquivalent(t *testing.T) {
	rules := &model.Rules{
		MaxConsecutiveDays: 5,
		HalfDayShifts:      []string{"早半班"},
	}
	tracker := NewTracker(rules)

	// 整休 1.0
	tracker.RecordAssignment("张三", "rest", "2025-03-01")
	if got := tracker.RestEquivalent("张三"); got != 1.0 {
		t.Errorf("整休后 RestEquivalent = %v, 期望 1.0", got)
	}

	// 半日班计 0.5
	tracker.RecordAssignment("张三", "早半班", "2025-03-02")
	if got := tracker.RestEquivalent("张三"); got != 1.5 {
		t.Errorf("半日班后 RestEquivalent = %v, 期望 1.5", got)
	}

	// 普通工作班不计
	tracker.RecordAssignment("张三", "白班", "2025-03-03")
	if got := tracker.RestEquivalent("张三"); got != 1.5 {
		t.Errorf("普通班后 RestEquivalent = %v, 期望 1.5", got)
	}

	// 撤销对称回退
	tracker.RemoveAssignment("张三", "早半班", "2025-03-02")
	if got := tracker.RestEquivalent("张三"); got != 1.0 {
		t.Errorf("撤销半日班后 RestEquivalent = %v, 期望 1.0", got)
	}
}

func TestTracker_RestCountOnDate(t *testing.T) {
	rules := &model.Rules{MaxConsecutiveDays: 5, RestShiftName: "休"}
	tracker := NewTracker(rules)

	tracker.RecordAssignment("张三", "休", "2025-03-01")
	tracker.RecordAssignment("李四", "休", "2025-03-01")
	tracker.RecordAssignment("王五", "白班", "2025-03-01")

	if got := tracker.RestCountOnDate("2025-03-01"); got != 2 {
		t.Errorf("RestCountOnDate = %v, 期望 2", got)
	}
	if got := tracker.RestCountOnDate("2025-03-02"); got != 0 {
		t.Errorf("无记录日期 RestCountOnDate = %v, 期望 0", got)
	}
}
