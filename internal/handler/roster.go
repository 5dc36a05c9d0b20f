// Package handler 提供HTTP请求处理器
package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/zhiban/zhiban/internal/config"
	"github.com/zhiban/zhiban/internal/metrics"
	"github.com/zhiban/zhiban/internal/repository"
	"github.com/zhiban/zhiban/pkg/engine"
	"github.com/zhiban/zhiban/pkg/errors"
	"github.com/zhiban/zhiban/pkg/logger"
	"github.com/zhiban/zhiban/pkg/model"
	"github.com/zhiban/zhiban/pkg/validator"
)

// RosterHandler 排班处理器
type RosterHandler struct {
	store     repository.Store // 未配置数据库时为nil
	engineCfg config.EngineConfig
}

// NewRosterHandler 创建排班处理器
func NewRosterHandler(store repository.Store, engineCfg config.EngineConfig) *RosterHandler {
	return &RosterHandler{store: store, engineCfg: engineCfg}
}

// applyRuleDefaults 用引擎配置补全请求未指定的规则字段
func (h *RosterHandler) applyRuleDefaults(rules *model.Rules) {
	if rules.RestShiftName == "" {
		rules.RestShiftName = h.engineCfg.RestShiftName
	}
}

// GenerateRequest 排班生成请求
type GenerateRequest struct {
	StartDate string           `json:"start_date"`
	EndDate   string           `json:"end_date"`
	Staff     []StaffInput     `json:"staff"`
	Shifts    []ShiftInput     `json:"shifts"`
	Rules     *model.Rules     `json:"rules"`
	History   model.History    `json:"history,omitempty"`
	Options   *GenerateOptions `json:"options,omitempty"`
}

// StaffInput 人员输入
type StaffInput struct {
	Name       string `json:"name"`
	EmployeeNo string `json:"employee_no,omitempty"`
	GroupLabel string `json:"group_label,omitempty"`
	Status     string `json:"status,omitempty"`
}

// ShiftInput 班次输入
type ShiftInput struct {
	Name      string `json:"name"`
	StartTime string `json:"start_time,omitempty"` // HH:MM
	EndTime   string `json:"end_time,omitempty"`   // HH:MM
	Color     string `json:"color,omitempty"`
}

// GenerateOptions 生成选项
type GenerateOptions struct {
	Persist     bool `json:"persist,omitempty"`      // 落库保存生成结果
	LoadHistory bool `json:"load_history,omitempty"` // 从数据库加载排班历史
}

// GenerateResponse 排班生成响应
type GenerateResponse struct {
	Success    bool                                `json:"success"`
	RosterID   string                              `json:"roster_id,omitempty"`
	Schedule   map[string][]model.PersonAssignment `json:"schedule"`
	Diagnostic string                              `json:"diagnostic,omitempty"`
	Duration   string                              `json:"duration"`
}

// Generate 生成排班
func (h *RosterHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}

	if err := validateGenerateRequest(&req); err != nil {
		respondError(w, err)
		return
	}

	persons := buildPersons(req.Staff)
	shifts := buildShifts(req.Shifts)
	if req.Rules != nil {
		h.applyRuleDefaults(req.Rules)
	}

	history := req.History
	if history == nil && req.Options != nil && req.Options.LoadHistory && h.store != nil {
		loaded, err := h.store.LoadScheduleHistory(r.Context(), req.StartDate, h.engineCfg.HistoryLookbackDays)
		if err != nil {
			logger.Warn().Err(err).Msg("加载排班历史失败，按无历史处理")
		} else {
			history = loaded
		}
	}

	start := time.Now()
	eng := engine.New(persons, shifts, req.Rules)
	if history != nil {
		eng.SetHistory(history)
	}
	schedule, diagnostic := eng.GenerateSchedule(req.StartDate, req.EndDate)
	duration := time.Since(start)

	metrics.RecordRosterGeneration(diagnostic == "", duration)

	resp := GenerateResponse{
		Success:    true,
		Schedule:   schedule,
		Diagnostic: diagnostic,
		Duration:   duration.String(),
	}

	if req.Options != nil && req.Options.Persist && h.store != nil {
		roster := &repository.Roster{
			StartDate:   req.StartDate,
			EndDate:     req.EndDate,
			Status:      "draft",
			Diagnostic:  diagnostic,
			GeneratedAt: start,
		}
		if err := h.store.SaveRoster(r.Context(), roster, schedule); err != nil {
			respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "保存值班表失败"))
			return
		}
		resp.RosterID = roster.ID.String()
	}

	respondJSON(w, http.StatusOK, resp)
}

// validateGenerateRequest 验证请求
func validateGenerateRequest(req *GenerateRequest) *errors.AppError {
	ve := &errors.ValidationErrors{}

	if req.StartDate == "" {
		ve.Add("start_date", "开始日期不能为空")
	}
	if req.EndDate == "" {
		ve.Add("end_date", "结束日期不能为空")
	}
	if len(req.Staff) == 0 {
		ve.Add("staff", "人员列表不能为空")
	}

	// 验证日期格式
	if req.StartDate != "" {
		if _, err := time.Parse(model.DateLayout, req.StartDate); err != nil {
			ve.Add("start_date", "日期格式无效，应为YYYY-MM-DD")
		}
	}
	if req.EndDate != "" {
		if _, err := time.Parse(model.DateLayout, req.EndDate); err != nil {
			ve.Add("end_date", "日期格式无效，应为YYYY-MM-DD")
		}
	}
	if req.StartDate != "" && req.EndDate != "" && req.EndDate < req.StartDate {
		ve.Add("end_date", "结束日期不能早于开始日期")
	}

	if ve.HasErrors() {
		return ve.ToAppError()
	}
	return nil
}

// ValidateRequest 排班验证请求
type ValidateRequest struct {
	StartDate string        `json:"start_date"`
	EndDate   string        `json:"end_date"`
	Staff     []StaffInput  `json:"staff"`
	Rules     *model.Rules  `json:"rules"`
	History   model.History `json:"history,omitempty"`
	// person -> date -> shift，休息日用休息字面值表示
	Schedule map[string]map[string]string `json:"schedule"`
}

// ValidateResponse 验证响应
type ValidateResponse struct {
	IsValid    bool                  `json:"is_valid"`
	Violations []validator.Violation `json:"violations"`
}

// Validate 验证排班
func (h *RosterHandler) Validate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return
	}

	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}

	if req.StartDate == "" || req.EndDate == "" {
		respondError(w, errors.New(errors.CodeInvalidInput, "排班周期不能为空"))
		return
	}
	if req.Rules == nil {
		req.Rules = &model.Rules{MaxConsecutiveDays: 1}
	}
	h.applyRuleDefaults(req.Rules)

	dates := model.DatesBetween(req.StartDate, req.EndDate)
	persons := buildPersons(req.Staff)
	schedule := buildSchedule(req.Schedule, persons, dates, req.Rules.RestName())

	v := validator.New(req.Rules, req.History)
	violations := v.ValidateAll(schedule, persons, dates)

	isValid := true
	for _, violation := range violations {
		if violation.Severity == "error" {
			isValid = false
			break
		}
	}

	resp := ValidateResponse{
		IsValid:    isValid,
		Violations: violations,
	}
	if resp.Violations == nil {
		resp.Violations = []validator.Violation{}
	}

	respondJSON(w, http.StatusOK, resp)
}

// buildPersons 将请求输入转换为人员模型
func buildPersons(inputs []StaffInput) []*model.Person {
	persons := make([]*model.Person, 0, len(inputs))
	for _, s := range inputs {
		persons = append(persons, &model.Person{
			BaseModel:  model.NewBaseModel(),
			Name:       s.Name,
			EmployeeNo: s.EmployeeNo,
			GroupLabel: s.GroupLabel,
			Status:     s.Status,
		})
	}
	return persons
}

// buildShifts 将请求输入转换为班次定义
func buildShifts(inputs []ShiftInput) []*model.ShiftDefinition {
	shifts := make([]*model.ShiftDefinition, 0, len(inputs))
	for _, s := range inputs {
		shifts = append(shifts, &model.ShiftDefinition{
			BaseModel: model.NewBaseModel(),
			Name:      s.Name,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Color:     s.Color,
			IsActive:  true,
		})
	}
	return shifts
}

// buildSchedule 将人员视图还原为内部排班表
func buildSchedule(raw map[string]map[string]string, persons []*model.Person, dates []string, restName string) map[string]*model.ScheduleEntry {
	schedule := make(map[string]*model.ScheduleEntry, len(persons))
	for _, p := range persons {
		entry := model.NewScheduleEntry(p.Name, dates)
		for date, shift := range raw[p.Name] {
			if shift == restName {
				entry.Set(date, model.Rest())
			} else if shift != "" {
				entry.Set(date, model.Work(shift))
			}
		}
		schedule[p.Name] = entry
	}
	return schedule
}

// respondJSON 返回JSON响应
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError 返回错误响应
func respondError(w http.ResponseWriter, err *errors.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.HTTPStatus)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   true,
		"code":    err.Code,
		"message": err.Message,
		"details": err.Details,
	})
}
