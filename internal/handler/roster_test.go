package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zhiban/zhiban/internal/config"
	"github.com/zhiban/zhiban/internal/repository"
	"github.com/zhiban/zhiban/pkg/model"
)

func postJSON(t *testing.T, handlerFunc http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("序列化请求失败: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(payload))
	w := httptest.NewRecorder()
	handlerFunc(w, req)
	return w
}

func TestRosterHandler_Generate(t *testing.T) {
	h := NewRosterHandler(nil, config.EngineConfig{})

	req := GenerateRequest{
		StartDate: "2025-03-03",
		EndDate:   "2025-03-05",
		Staff: []StaffInput{
			{Name: "张三"},
			{Name: "李四"},
		},
		Rules: &model.Rules{
			MaxConsecutiveDays: 5,
			WeekdayRequirements: []model.ShiftRequirement{
				{ShiftName: "白班", Headcount: 1},
			},
		},
	}

	w := postJSON(t, h.Generate, req)
	if w.Code != http.StatusOK {
		t.Fatalf("状态码 = %d, 期望 200, body: %s", w.Code, w.Body.String())
	}

	var resp GenerateResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if !resp.Success {
		t.Error("Success 应为 true")
	}
	if len(resp.Schedule) != 3 {
		t.Errorf("排班天数 = %d, 期望 3", len(resp.Schedule))
	}
	for date, assignments := range resp.Schedule {
		if len(assignments) != 2 {
			t.Errorf("%s 应有 2 条记录, 实际 %d", date, len(assignments))
		}
	}
}

func TestRosterHandler_Generate_ValidationErrors(t *testing.T) {
	h := NewRosterHandler(nil, config.EngineConfig{})

	tests := []struct {
		name string
		req  GenerateRequest
	}{
		{
			name: "缺少人员",
			req:  GenerateRequest{StartDate: "2025-03-03", EndDate: "2025-03-05"},
		},
		{
			name: "日期格式错误",
			req: GenerateRequest{
				StartDate: "03/03/2025",
				EndDate:   "2025-03-05",
				Staff:     []StaffInput{{Name: "张三"}},
			},
		},
		{
			name: "结束早于开始",
			req: GenerateRequest{
				StartDate: "2025-03-05",
				EndDate:   "2025-03-03",
				Staff:     []StaffInput{{Name: "张三"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, h.Generate, tt.req)
			if w.Code != http.StatusBadRequest {
				t.Errorf("状态码 = %d, 期望 400", w.Code)
			}
		})
	}
}

func TestRosterHandler_Generate_MethodNotAllowed(t *testing.T) {
	h := NewRosterHandler(nil, config.EngineConfig{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	h.Generate(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("GET 请求状态码 = %d, 期望 400", w.Code)
	}
}

func TestRosterHandler_Validate(t *testing.T) {
	h := NewRosterHandler(nil, config.EngineConfig{})

	req := ValidateRequest{
		StartDate: "2025-03-03",
		EndDate:   "2025-03-04",
		Staff:     []StaffInput{{Name: "张三"}},
		Rules:     &model.Rules{MaxConsecutiveDays: 5},
		Schedule: map[string]map[string]string{
			"张三": {"2025-03-03": "白班", "2025-03-04": "rest"},
		},
	}

	w := postJSON(t, h.Validate, req)
	if w.Code != http.StatusOK {
		t.Fatalf("状态码 = %d, 期望 200, body: %s", w.Code, w.Body.String())
	}

	var resp ValidateResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if !resp.IsValid {
		t.Errorf("合规排班 IsValid 应为 true, 违规: %+v", resp.Violations)
	}
}

func TestRosterHandler_Validate_DetectsUnresolved(t *testing.T) {
	h := NewRosterHandler(nil, config.EngineConfig{})

	req := ValidateRequest{
		StartDate: "2025-03-03",
		EndDate:   "2025-03-04",
		Staff:     []StaffInput{{Name: "张三"}},
		Rules:     &model.Rules{MaxConsecutiveDays: 5},
		Schedule: map[string]map[string]string{
			"张三": {"2025-03-03": "白班"}, // 03-04 缺失
		},
	}

	w := postJSON(t, h.Validate, req)
	var resp ValidateResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if resp.IsValid {
		t.Error("存在未确定取值时 IsValid 应为 false")
	}
	if len(resp.Violations) == 0 {
		t.Error("应返回违规明细")
	}
}

// stubStore 记录历史加载参数的内存实现
type stubStore struct {
	lookback int
}

func (s *stubStore) LoadStaff(ctx context.Context) ([]*model.Person, error) { return nil, nil }

func (s *stubStore) LoadShiftDefinitions(ctx context.Context) ([]*model.ShiftDefinition, error) {
	return nil, nil
}

func (s *stubStore) LoadRules(ctx context.Context) (*model.Rules, error) { return nil, nil }

func (s *stubStore) LoadScheduleHistory(ctx context.Context, beforeDate string, lookbackDays int) (model.History, error) {
	s.lookback = lookbackDays
	return model.History{}, nil
}

func (s *stubStore) SaveRoster(ctx context.Context, roster *repository.Roster, view map[string][]model.PersonAssignment) error {
	return nil
}

func TestRosterHandler_Generate_ConfiguredRestName(t *testing.T) {
	h := NewRosterHandler(nil, config.EngineConfig{RestShiftName: "休", HistoryLookbackDays: 14})

	// 无任何班次需求时回退为休息日，字面值应取自引擎配置
	req := GenerateRequest{
		StartDate: "2025-03-03",
		EndDate:   "2025-03-03",
		Staff:     []StaffInput{{Name: "张三"}},
		Rules:     &model.Rules{MaxConsecutiveDays: 5},
	}

	w := postJSON(t, h.Generate, req)
	if w.Code != http.StatusOK {
		t.Fatalf("状态码 = %d, 期望 200, body: %s", w.Code, w.Body.String())
	}

	var resp GenerateResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	assignments := resp.Schedule["2025-03-03"]
	if len(assignments) != 1 {
		t.Fatalf("应有 1 条记录, 实际 %d", len(assignments))
	}
	if assignments[0].Shift != "休" {
		t.Errorf("休息字面值 = %q, 期望 休", assignments[0].Shift)
	}
}

func TestRosterHandler_Generate_HistoryLookbackFromConfig(t *testing.T) {
	store := &stubStore{}
	h := NewRosterHandler(store, config.EngineConfig{RestShiftName: "rest", HistoryLookbackDays: 21})

	req := GenerateRequest{
		StartDate: "2025-03-03",
		EndDate:   "2025-03-04",
		Staff:     []StaffInput{{Name: "张三"}},
		Rules:     &model.Rules{MaxConsecutiveDays: 5},
		Options:   &GenerateOptions{LoadHistory: true},
	}

	w := postJSON(t, h.Generate, req)
	if w.Code != http.StatusOK {
		t.Fatalf("状态码 = %d, 期望 200, body: %s", w.Code, w.Body.String())
	}
	if store.lookback != 21 {
		t.Errorf("历史回看天数 = %d, 期望取配置值 21", store.lookback)
	}
}
