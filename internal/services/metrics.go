package services

import (
	"sync"

	"github.com/pathfinity/pathfinity-backend/internal/logger"
)

// RequestOutcome is one finished generation, as recorded into the metrics.
type RequestOutcome struct {
	Career       string
	Grade        string
	Strategy     string
	CacheHit     bool
	LatencyMs    int64
	CostEstimate float64
}

// MetricsReport is a point-in-time copy of the counters.
type MetricsReport struct {
	Requests     int64            `json:"requests"`
	CacheHits    int64            `json:"cache_hits"`
	AvgLatencyMs float64          `json:"avg_latency_ms"`
	AvgCost      float64          `json:"avg_cost"`
	TotalCost    float64          `json:"total_cost"`
	ByCareer     map[string]int64 `json:"by_career"`
	ByGrade      map[string]int64 `json:"by_grade"`
	ByStrategy   map[string]int64 `json:"by_strategy"`
}

// MetricsService holds the process-lifetime orchestration counters. The
// server handles requests concurrently, so unlike the browser original the
// counters are mutex-guarded. Reset only by process restart.
type MetricsService interface {
	Record(outcome RequestOutcome)
	Report() MetricsReport
}

type metricsService struct {
	log *logger.Logger

	mu         sync.Mutex
	requests   int64
	cacheHits  int64
	totalMs    int64
	totalCost  float64
	byCareer   map[string]int64
	byGrade    map[string]int64
	byStrategy map[string]int64
}

func NewMetricsService(baseLog *logger.Logger) MetricsService {
	return &metricsService{
		log:        baseLog.With("service", "MetricsService"),
		byCareer:   make(map[string]int64),
		byGrade:    make(map[string]int64),
		byStrategy: make(map[string]int64),
	}
}

func (m *metricsService) Record(outcome RequestOutcome) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests++
	if outcome.CacheHit {
		m.cacheHits++
	}
	m.totalMs += outcome.LatencyMs
	m.totalCost += outcome.CostEstimate
	if outcome.Career != "" {
		m.byCareer[outcome.Career]++
	}
	if outcome.Grade != "" {
		m.byGrade[outcome.Grade]++
	}
	if outcome.Strategy != "" {
		m.byStrategy[outcome.Strategy]++
	}
}

func (m *metricsService) Report() MetricsReport {
	m.mu.Lock()
	defer m.mu.Unlock()

	report := MetricsReport{
		Requests:   m.requests,
		CacheHits:  m.cacheHits,
		TotalCost:  m.totalCost,
		ByCareer:   make(map[string]int64, len(m.byCareer)),
		ByGrade:    make(map[string]int64, len(m.byGrade)),
		ByStrategy: make(map[string]int64, len(m.byStrategy)),
	}
	if m.requests > 0 {
		report.AvgLatencyMs = float64(m.totalMs) / float64(m.requests)
		report.AvgCost = m.totalCost / float64(m.requests)
	}
	for k, v := range m.byCareer {
		report.ByCareer[k] = v
	}
	for k, v := range m.byGrade {
		report.ByGrade[k] = v
	}
	for k, v := range m.byStrategy {
		report.ByStrategy[k] = v
	}
	return report
}
