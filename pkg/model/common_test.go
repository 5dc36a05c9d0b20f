package model

import (
	"testing"
)

func TestDatesBetween(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		expected int
		first    string
		last     string
	}{
		{
			name:     "单日周期",
			start:    "2025-03-01",
			end:      "2025-03-01",
			expected: 1,
			first:    "2025-03-01",
			last:     "2025-03-01",
		},
		{
			name:     "一周周期",
			start:    "2025-03-01",
			end:      "2025-03-07",
			expected: 7,
			first:    "2025-03-01",
			last:     "2025-03-07",
		},
		{
			name:     "跨月周期",
			start:    "2025-02-27",
			end:      "2025-03-02",
			expected: 4,
			first:    "2025-02-27",
			last:     "2025-03-02",
		},
		{
			name:     "结束早于开始",
			start:    "2025-03-07",
			end:      "2025-03-01",
			expected: 0,
		},
		{
			name:     "无效日期",
			start:    "not-a-date",
			end:      "2025-03-01",
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dates := DatesBetween(tt.start, tt.end)
			if len(dates) != tt.expected {
				t.Fatalf("DatesBetween() 返回 %d 天, 期望 %d", len(dates), tt.expected)
			}
			if tt.expected > 0 {
				if dates[0] != tt.first {
					t.Errorf("首日 = %s, 期望 %s", dates[0], tt.first)
				}
				if dates[len(dates)-1] != tt.last {
					t.Errorf("末日 = %s, 期望 %s", dates[len(dates)-1], tt.last)
				}
			}
		})
	}
}

func TestAddDays(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		days     int
		expected string
	}{
		{name: "向后一天", date: "2025-03-01", days: 1, expected: "2025-03-02"},
		{name: "向前一天", date: "2025-03-01", days: -1, expected: "2025-02-28"},
		{name: "跨年", date: "2024-12-30", days: 3, expected: "2025-01-02"},
		{name: "闰年二月", date: "2024-02-28", days: 1, expected: "2024-02-29"},
		{name: "零偏移", date: "2025-03-01", days: 0, expected: "2025-03-01"},
		{name: "无效日期", date: "bad", days: 1, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AddDays(tt.date, tt.days); got != tt.expected {
				t.Errorf("AddDays(%s, %d) = %s, 期望 %s", tt.date, tt.days, got, tt.expected)
			}
		})
	}
}

func TestPreviousAndNextDate(t *testing.T) {
	if got := PreviousDate("2025-03-01"); got != "2025-02-28" {
		t.Errorf("PreviousDate() = %s, 期望 2025-02-28", got)
	}
	if got := NextDate("2025-02-28"); got != "2025-03-01" {
		t.Errorf("NextDate() = %s, 期望 2025-03-01", got)
	}
}

func TestDayOfYear(t *testing.T) {
	tests := []struct {
		date     string
		expected int
	}{
		{"2025-01-01", 1},
		{"2025-02-01", 32},
		{"2025-12-31", 365},
		{"2024-12-31", 366}, // 闰年
		{"invalid", 0},
	}

	for _, tt := range tests {
		if got := DayOfYear(tt.date); got != tt.expected {
			t.Errorf("DayOfYear(%s) = %d, 期望 %d", tt.date, got, tt.expected)
		}
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		start    string
		end      string
		expected int
	}{
		{"2025-03-01", "2025-03-01", 0},
		{"2025-03-01", "2025-03-08", 7},
		{"2025-03-08", "2025-03-01", -7},
	}

	for _, tt := range tests {
		if got := DaysBetween(tt.start, tt.end); got != tt.expected {
			t.Errorf("DaysBetween(%s, %s) = %d, 期望 %d", tt.start, tt.end, got, tt.expected)
		}
	}
}

func TestNewBaseModel(t *testing.T) {
	base := NewBaseModel()

	if base.ID.String() == "" {
		t.Error("ID should not be empty")
	}
	if base.CreatedAt.IsZero() {
		t.Error("CreatedAt should not be zero")
	}
	if base.UpdatedAt.IsZero() {
		t.Error("UpdatedAt should not be zero")
	}
}
