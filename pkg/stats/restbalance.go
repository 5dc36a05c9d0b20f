// Package stats 提供值班表统计分析功能
package stats

import (
	"math"
	"sort"

	"github.com/zhiban/zhiban/pkg/model"
)

// RestBalanceMetrics 休息均衡指标
type RestBalanceMetrics struct {
	// 休息当量公平性
	RestGini     float64 `json:"rest_gini"`     // 休息当量基尼系数 (0=完全公平, 1=完全不公平)
	RestVariance float64 `json:"rest_variance"` // 休息当量方差
	RestStdDev   float64 `json:"rest_std_dev"`  // 休息当量标准差
	AvgRestDays  float64 `json:"avg_rest_days"` // 人均休息当量
	MaxRestDays  float64 `json:"max_rest_days"` // 最大休息当量
	MinRestDays  float64 `json:"min_rest_days"` // 最小休息当量
	TargetRest   float64 `json:"target_rest"`   // 配置的休息天数目标
	WorkloadGini float64 `json:"workload_gini"` // 工作班次数基尼系数

	// 人员级别统计
	PersonStats []PersonStat `json:"person_stats"`

	// 综合评分
	OverallScore float64 `json:"overall_score"` // 综合均衡评分 (0-100)
}

// PersonStat 人员统计
type PersonStat struct {
	Person         string  `json:"person"`
	WorkShifts     int     `json:"work_shifts"`      // 工作班次数（含半日班）
	HalfDayShifts  int     `json:"half_day_shifts"`  // 半日班次数
	RestDays       int     `json:"rest_days"`        // 整休天数
	RestEquivalent float64 `json:"rest_equivalent"`  // 休息当量
	QuotaDeviation float64 `json:"quota_deviation"`  // 与配置目标的偏差
}

// RestBalanceAnalyzer 休息均衡分析器
type RestBalanceAnalyzer struct {
	rules *model.Rules
}

// NewRestBalanceAnalyzer 创建休息均衡分析器
func NewRestBalanceAnalyzer(rules *model.Rules) *RestBalanceAnalyzer {
	return &RestBalanceAnalyzer{rules: rules}
}

// Analyze 分析已完成值班表的休息均衡情况
func (a *RestBalanceAnalyzer) Analyze(schedule map[string]*model.ScheduleEntry, persons []*model.Person, dates []string) *RestBalanceMetrics {
	if len(persons) == 0 || len(dates) == 0 {
		return &RestBalanceMetrics{OverallScore: 100}
	}

	target := float64(a.rules.TotalRestDays)
	personStats := a.calculatePersonStats(schedule, persons, dates, target)

	restEquivalents := make([]float64, len(personStats))
	workCounts := make([]float64, len(personStats))
	for i, stat := range personStats {
		restEquivalents[i] = stat.RestEquivalent
		workCounts[i] = float64(stat.WorkShifts)
	}

	avg := mean(restEquivalents)
	varc := variance(restEquivalents, avg)
	stdDev := math.Sqrt(varc)
	maxRest, minRest := extremes(restEquivalents)

	restGini := gini(restEquivalents)
	workGini := gini(workCounts)

	return &RestBalanceMetrics{
		RestGini:     restGini,
		RestVariance: varc,
		RestStdDev:   stdDev,
		AvgRestDays:  avg,
		MaxRestDays:  maxRest,
		MinRestDays:  minRest,
		TargetRest:   target,
		WorkloadGini: workGini,
		PersonStats:  personStats,
		OverallScore: overallScore(restGini, workGini, stdDev, avg),
	}
}

// calculatePersonStats 统计每个人员的班次与休息数据
func (a *RestBalanceAnalyzer) calculatePersonStats(schedule map[string]*model.ScheduleEntry, persons []*model.Person, dates []string, target float64) []PersonStat {
	stats := make([]PersonStat, 0, len(persons))

	for _, p := range persons {
		stat := PersonStat{Person: p.Name}
		entry := schedule[p.Name]
		if entry == nil {
			stats = append(stats, stat)
			continue
		}

		for _, date := range dates {
			assignment := entry.Get(date)
			switch {
			case assignment.IsRest():
				stat.RestDays++
				stat.RestEquivalent += 1.0
			case assignment.IsWork():
				stat.WorkShifts++
				if a.rules.IsHalfDayShift(assignment.Shift) {
					stat.HalfDayShifts++
					stat.RestEquivalent += 0.5
				}
			}
		}

		stat.QuotaDeviation = stat.RestEquivalent - target
		stats = append(stats, stat)
	}

	// 按休息当量降序
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].RestEquivalent > stats[j].RestEquivalent
	})

	return stats
}

// mean 计算平均值
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// variance 计算方差
func variance(values []float64, avg float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sumSquares := 0.0
	for _, v := range values {
		diff := v - avg
		sumSquares += diff * diff
	}
	return sumSquares / float64(len(values))
}

// extremes 计算极值
func extremes(values []float64) (max, min float64) {
	if len(values) == 0 {
		return 0, 0
	}
	max, min = values[0], values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
		if v < min {
			min = v
		}
	}
	return
}

// gini 计算基尼系数
func gini(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	if sum == 0 {
		return 0
	}

	g := 0.0
	for i, v := range sorted {
		g += (2*float64(i+1) - float64(n) - 1) * v
	}
	g = g / (float64(n) * sum)

	return math.Max(0, math.Min(1, g))
}

// overallScore 计算综合均衡评分
func overallScore(restGini, workGini, stdDev, avg float64) float64 {
	const (
		restWeight   = 0.5
		workWeight   = 0.3
		stdDevWeight = 0.2
	)

	restScore := (1 - restGini) * 100
	workScore := (1 - workGini) * 100

	cvScore := 100.0
	if avg > 0 {
		cv := stdDev / avg
		cvScore = math.Max(0, 100-cv*200)
	}

	score := restWeight*restScore + workWeight*workScore + stdDevWeight*cvScore
	return math.Max(0, math.Min(100, score))
}
