// Package handler 提供HTTP请求处理器
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/zhiban/zhiban/internal/metrics"
	"github.com/zhiban/zhiban/pkg/errors"
	"github.com/zhiban/zhiban/pkg/logger"
	"github.com/zhiban/zhiban/pkg/model"
	"github.com/zhiban/zhiban/pkg/stats"
)

// StatsRequest 统计请求
type StatsRequest struct {
	StartDate string       `json:"start_date"`
	EndDate   string       `json:"end_date"`
	Staff     []StaffInput `json:"staff"`
	Rules     *model.Rules `json:"rules"`
	// person -> date -> shift，休息日用休息字面值表示
	Schedule map[string]map[string]string `json:"schedule"`
}

// RestBalanceResponse 休息均衡响应
type RestBalanceResponse struct {
	Success bool                      `json:"success"`
	Data    *stats.RestBalanceMetrics `json:"data,omitempty"`
	Error   string                    `json:"error,omitempty"`
}

// CoverageResponse 覆盖率响应
type CoverageResponse struct {
	Success bool                   `json:"success"`
	Data    *stats.CoverageMetrics `json:"data,omitempty"`
	Error   string                 `json:"error,omitempty"`
}

// StatsHandler 统计分析处理器
type StatsHandler struct{}

// NewStatsHandler 创建统计分析处理器
func NewStatsHandler() *StatsHandler {
	return &StatsHandler{}
}

// RestBalance 休息均衡分析API
func (h *StatsHandler) RestBalance(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeStatsRequest(w, r)
	if !ok {
		return
	}

	logger.Info().
		Str("start_date", req.StartDate).
		Str("end_date", req.EndDate).
		Int("staff", len(req.Staff)).
		Msg("接收休息均衡分析请求")

	dates := model.DatesBetween(req.StartDate, req.EndDate)
	persons := buildPersons(req.Staff)
	schedule := buildSchedule(req.Schedule, persons, dates, req.Rules.RestName())

	analyzer := stats.NewRestBalanceAnalyzer(req.Rules)
	data := analyzer.Analyze(schedule, persons, dates)

	metrics.SetRestGini(data.RestGini)

	respondJSON(w, http.StatusOK, RestBalanceResponse{Success: true, Data: data})
}

// Coverage 覆盖率分析API
func (h *StatsHandler) Coverage(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeStatsRequest(w, r)
	if !ok {
		return
	}

	logger.Info().
		Str("start_date", req.StartDate).
		Str("end_date", req.EndDate).
		Int("staff", len(req.Staff)).
		Msg("接收覆盖率分析请求")

	dates := model.DatesBetween(req.StartDate, req.EndDate)
	persons := buildPersons(req.Staff)
	schedule := buildSchedule(req.Schedule, persons, dates, req.Rules.RestName())

	analyzer := stats.NewCoverageAnalyzer(req.Rules)
	data := analyzer.Analyze(schedule, persons, dates)

	metrics.SetCoverageRate(data.OverallCoverage)

	respondJSON(w, http.StatusOK, CoverageResponse{Success: true, Data: data})
}

// decodeStatsRequest 解析并校验统计请求
func decodeStatsRequest(w http.ResponseWriter, r *http.Request) (*StatsRequest, bool) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return nil, false
	}

	var req StatsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return nil, false
	}

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
	if ve.HasErrors() {
		respondError(w, ve.ToAppError())
		return nil, false
	}

	if req.Rules == nil {
		req.Rules = &model.Rules{MaxConsecutiveDays: 1}
	}
	return &req, true
}
