package service

import (
	"context"
	"math"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/platform-admin/internal/domain"
	"github.com/spec-kit/platform-admin/internal/repository"
)

// ChartDataset is one series in a chart widget payload.
type ChartDataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
}

// ChartData is the shape chart widgets hand to the client.
type ChartData struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
	Degraded bool           `json:"degraded,omitempty"`
}

// StatCard is a single stat widget value.
type StatCard struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Color string `json:"color,omitempty"`
}

// StatPlaceholder is shown when a stat query fails.
const StatPlaceholder = "N/A"

const signupWindowDays = 7
const revenueWindowMonths = 6
const trafficWindowDays = 7

// DashboardService computes the admin dashboard widgets. Every widget
// re-queries on render and degrades to a placeholder on query failure; a
// broken widget must never take the dashboard down with it.
type DashboardService struct {
	stats  repository.StatsRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewDashboardService constructs the service.
func NewDashboardService(stats repository.StatsRepository, logger *zap.Logger) *DashboardService {
	return &DashboardService{stats: stats, logger: logger, now: time.Now}
}

// UserSignupsWeekly charts registrations per day over the trailing week.
func (s *DashboardService) UserSignupsWeekly(ctx context.Context) ChartData {
	today := startOfDay(s.now().UTC())
	from := today.AddDate(0, 0, -(signupWindowDays - 1))
	to := today.AddDate(0, 0, 1)

	labels := make([]string, 0, signupWindowDays)
	for d := 0; d < signupWindowDays; d++ {
		labels = append(labels, from.AddDate(0, 0, d).Format("2006-01-02"))
	}

	chart := ChartData{
		Labels:   labels,
		Datasets: []ChartDataset{{Label: "Signups", Data: make([]float64, signupWindowDays)}},
	}

	counts, err := s.stats.SignupsPerDay(ctx, from, to)
	if err != nil {
		s.logger.Warn("signup widget query failed", zap.Error(err))
		chart.Degraded = true
		return chart
	}
	for i, label := range labels {
		chart.Datasets[0].Data[i] = float64(counts[label])
	}
	return chart
}

// JobStatusBreakdown charts job counts in the fixed status order.
func (s *DashboardService) JobStatusBreakdown(ctx context.Context) ChartData {
	labels := make([]string, 0, len(domain.JobStatusOrder))
	for _, status := range domain.JobStatusOrder {
		labels = append(labels, status.Label())
	}

	chart := ChartData{
		Labels:   labels,
		Datasets: []ChartDataset{{Label: "Jobs", Data: make([]float64, len(labels))}},
	}

	counts, err := s.stats.CountJobsByStatus(ctx)
	if err != nil {
		s.logger.Warn("job breakdown widget query failed", zap.Error(err))
		chart.Degraded = true
		return chart
	}
	for i, status := range domain.JobStatusOrder {
		chart.Datasets[0].Data[i] = float64(counts[status])
	}
	return chart
}

// MonthlyRevenue charts paid revenue in millions over the trailing six months.
func (s *DashboardService) MonthlyRevenue(ctx context.Context) ChartData {
	thisMonth := startOfMonth(s.now().UTC())
	from := thisMonth.AddDate(0, -(revenueWindowMonths - 1), 0)
	to := thisMonth.AddDate(0, 1, 0)

	labels := make([]string, 0, revenueWindowMonths)
	for m := 0; m < revenueWindowMonths; m++ {
		labels = append(labels, from.AddDate(0, m, 0).Format("2006-01"))
	}

	chart := ChartData{
		Labels:   labels,
		Datasets: []ChartDataset{{Label: "Revenue (millions)", Data: make([]float64, revenueWindowMonths)}},
	}

	sums, err := s.stats.RevenuePerMonth(ctx, from, to)
	if err != nil {
		s.logger.Warn("revenue widget query failed", zap.Error(err))
		chart.Degraded = true
		return chart
	}
	for i, label := range labels {
		chart.Datasets[0].Data[i] = toMillions(sums[label])
	}
	return chart
}

// APITraffic charts API calls per day over the trailing week.
func (s *DashboardService) APITraffic(ctx context.Context) ChartData {
	today := startOfDay(s.now().UTC())
	from := today.AddDate(0, 0, -(trafficWindowDays - 1))
	to := today.AddDate(0, 0, 1)

	labels := make([]string, 0, trafficWindowDays)
	for d := 0; d < trafficWindowDays; d++ {
		labels = append(labels, from.AddDate(0, 0, d).Format("2006-01-02"))
	}

	chart := ChartData{
		Labels:   labels,
		Datasets: []ChartDataset{{Label: "API calls", Data: make([]float64, trafficWindowDays)}},
	}

	counts, err := s.stats.APICallsPerDay(ctx, from, to)
	if err != nil {
		s.logger.Warn("traffic widget query failed", zap.Error(err))
		chart.Degraded = true
		return chart
	}
	for i, label := range labels {
		chart.Datasets[0].Data[i] = float64(counts[label])
	}
	return chart
}

// UserStateOverview returns one stat card per workflow state.
func (s *DashboardService) UserStateOverview(ctx context.Context) []StatCard {
	states := []domain.WorkflowState{
		domain.WorkflowStatePending,
		domain.WorkflowStateActive,
		domain.WorkflowStateSuspended,
		domain.WorkflowStateArchived,
	}

	counts, err := s.stats.CountUsersByState(ctx)
	if err != nil {
		s.logger.Warn("user overview widget query failed", zap.Error(err))
		cards := make([]StatCard, 0, len(states))
		for _, state := range states {
			cards = append(cards, StatCard{Title: state.Label(), Value: StatPlaceholder, Color: "gray"})
		}
		return cards
	}

	cards := make([]StatCard, 0, len(states))
	for _, state := range states {
		cards = append(cards, StatCard{
			Title: state.Label(),
			Value: strconv.FormatInt(counts[state], 10),
			Color: state.Color(),
		})
	}
	return cards
}

// DeviceOverview returns total/online/stale device cards.
func (s *DashboardService) DeviceOverview(ctx context.Context) []StatCard {
	counts, err := s.stats.CountDevicesByStatus(ctx)
	if err != nil {
		s.logger.Warn("device overview widget query failed", zap.Error(err))
		return []StatCard{
			{Title: "Devices", Value: StatPlaceholder, Color: "gray"},
			{Title: "Online", Value: StatPlaceholder, Color: "gray"},
			{Title: "Stale", Value: StatPlaceholder, Color: "gray"},
		}
	}

	var total int64
	for _, count := range counts {
		total += count
	}
	return []StatCard{
		{Title: "Devices", Value: strconv.FormatInt(total, 10), Color: "info"},
		{Title: "Online", Value: strconv.FormatInt(counts[domain.DeviceStatusOnline], 10), Color: "success"},
		{Title: "Stale", Value: strconv.FormatInt(counts[domain.DeviceStatusStale], 10), Color: "danger"},
	}
}

// APILatency returns the average latency card for the trailing week.
func (s *DashboardService) APILatency(ctx context.Context) StatCard {
	today := startOfDay(s.now().UTC())
	from := today.AddDate(0, 0, -(trafficWindowDays - 1))
	to := today.AddDate(0, 0, 1)

	avg, err := s.stats.AvgAPILatencyMS(ctx, from, to)
	if err != nil {
		s.logger.Warn("latency widget query failed", zap.Error(err))
		return StatCard{Title: "Avg latency", Value: StatPlaceholder, Color: "gray"}
	}
	return StatCard{Title: "Avg latency", Value: strconv.FormatFloat(avg, 'f', 1, 64) + " ms", Color: "info"}
}

func toMillions(amount int64) float64 {
	return math.Round(float64(amount)/1_000_000*100) / 100
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
