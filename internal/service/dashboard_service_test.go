package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/platform-admin/internal/domain"
)

type fakeStatsRepo struct {
	usersByState map[domain.WorkflowState]int64
	signups      map[string]int64
	jobsByStatus map[domain.JobStatus]int64
	revenue      map[string]int64
	devices      map[domain.DeviceStatus]int64
	apiCalls     map[string]int64
	avgLatency   float64
	err          error
}

func (f *fakeStatsRepo) CountUsersByState(context.Context) (map[domain.WorkflowState]int64, error) {
	return f.usersByState, f.err
}

func (f *fakeStatsRepo) SignupsPerDay(context.Context, time.Time, time.Time) (map[string]int64, error) {
	return f.signups, f.err
}

func (f *fakeStatsRepo) CountJobsByStatus(context.Context) (map[domain.JobStatus]int64, error) {
	return f.jobsByStatus, f.err
}

func (f *fakeStatsRepo) RevenuePerMonth(context.Context, time.Time, time.Time) (map[string]int64, error) {
	return f.revenue, f.err
}

func (f *fakeStatsRepo) CountDevicesByStatus(context.Context) (map[domain.DeviceStatus]int64, error) {
	return f.devices, f.err
}

func (f *fakeStatsRepo) APICallsPerDay(context.Context, time.Time, time.Time) (map[string]int64, error) {
	return f.apiCalls, f.err
}

func (f *fakeStatsRepo) AvgAPILatencyMS(context.Context, time.Time, time.Time) (float64, error) {
	return f.avgLatency, f.err
}

func newDashboard(stats *fakeStatsRepo, now time.Time) *DashboardService {
	svc := NewDashboardService(stats, zap.NewNop())
	svc.now = func() time.Time { return now }
	return svc
}

func TestJobStatusBreakdownFixedOrder(t *testing.T) {
	stats := &fakeStatsRepo{jobsByStatus: map[domain.JobStatus]int64{
		domain.JobStatusPending:   3,
		domain.JobStatusRunning:   2,
		domain.JobStatusCompleted: 5,
		domain.JobStatusFailed:    1,
	}}
	svc := newDashboard(stats, time.Now())

	chart := svc.JobStatusBreakdown(context.Background())
	assert.Equal(t, []string{"Pending", "Running", "Completed", "Failed", "Cancelled"}, chart.Labels)
	require.Len(t, chart.Datasets, 1)
	assert.Equal(t, []float64{3, 2, 5, 1, 0}, chart.Datasets[0].Data)
	assert.False(t, chart.Degraded)
}

func TestSignupsZeroFilledOnEmptyWindow(t *testing.T) {
	now := time.Date(2026, 8, 26, 13, 0, 0, 0, time.UTC)
	svc := newDashboard(&fakeStatsRepo{signups: map[string]int64{}}, now)

	chart := svc.UserSignupsWeekly(context.Background())
	require.Len(t, chart.Labels, 7)
	require.Len(t, chart.Datasets, 1)
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 0, 0}, chart.Datasets[0].Data)
	assert.Equal(t, "2026-08-20", chart.Labels[0])
	assert.Equal(t, "2026-08-26", chart.Labels[6])
}

func TestSignupsMappedToCorrectDay(t *testing.T) {
	now := time.Date(2026, 8, 26, 13, 0, 0, 0, time.UTC)
	svc := newDashboard(&fakeStatsRepo{signups: map[string]int64{
		"2026-08-24": 4,
		"2026-08-26": 1,
	}}, now)

	chart := svc.UserSignupsWeekly(context.Background())
	assert.Equal(t, []float64{0, 0, 0, 0, 4, 0, 1}, chart.Datasets[0].Data)
}

func TestMonthlyRevenueInMillions(t *testing.T) {
	now := time.Date(2026, 8, 26, 13, 0, 0, 0, time.UTC)
	svc := newDashboard(&fakeStatsRepo{revenue: map[string]int64{
		"2026-06": 1_000_000,
	}}, now)

	chart := svc.MonthlyRevenue(context.Background())
	require.Len(t, chart.Labels, 6)
	assert.Equal(t, "2026-03", chart.Labels[0])
	assert.Equal(t, "2026-08", chart.Labels[5])
	assert.Equal(t, []float64{0, 0, 0, 1.0, 0, 0}, chart.Datasets[0].Data)
}

func TestWidgetsDegradeOnQueryError(t *testing.T) {
	stats := &fakeStatsRepo{err: errors.New("connection refused")}
	svc := newDashboard(stats, time.Now())
	ctx := context.Background()

	breakdown := svc.JobStatusBreakdown(ctx)
	assert.True(t, breakdown.Degraded)
	assert.Equal(t, []float64{0, 0, 0, 0, 0}, breakdown.Datasets[0].Data)

	signups := svc.UserSignupsWeekly(ctx)
	assert.True(t, signups.Degraded)
	assert.Len(t, signups.Datasets[0].Data, 7)

	revenue := svc.MonthlyRevenue(ctx)
	assert.True(t, revenue.Degraded)
	assert.Len(t, revenue.Datasets[0].Data, 6)

	for _, card := range svc.UserStateOverview(ctx) {
		assert.Equal(t, StatPlaceholder, card.Value)
	}
	for _, card := range svc.DeviceOverview(ctx) {
		assert.Equal(t, StatPlaceholder, card.Value)
	}
	assert.Equal(t, StatPlaceholder, svc.APILatency(ctx).Value)
}

func TestUserStateOverviewCards(t *testing.T) {
	stats := &fakeStatsRepo{usersByState: map[domain.WorkflowState]int64{
		domain.WorkflowStatePending: 2,
		domain.WorkflowStateActive:  10,
	}}
	svc := newDashboard(stats, time.Now())

	cards := svc.UserStateOverview(context.Background())
	require.Len(t, cards, 4)
	assert.Equal(t, StatCard{Title: "Pending", Value: "2", Color: "warning"}, cards[0])
	assert.Equal(t, StatCard{Title: "Active", Value: "10", Color: "success"}, cards[1])
	assert.Equal(t, StatCard{Title: "Suspended", Value: "0", Color: "danger"}, cards[2])
	assert.Equal(t, StatCard{Title: "Archived", Value: "0", Color: "gray"}, cards[3])
}

func TestDeviceOverviewTotals(t *testing.T) {
	stats := &fakeStatsRepo{devices: map[domain.DeviceStatus]int64{
		domain.DeviceStatusOnline:  3,
		domain.DeviceStatusOffline: 4,
		domain.DeviceStatusStale:   1,
	}}
	svc := newDashboard(stats, time.Now())

	cards := svc.DeviceOverview(context.Background())
	require.Len(t, cards, 3)
	assert.Equal(t, "8", cards[0].Value)
	assert.Equal(t, "3", cards[1].Value)
	assert.Equal(t, "1", cards[2].Value)
}

func TestToMillionsRounding(t *testing.T) {
	assert.Equal(t, 1.0, toMillions(1_000_000))
	assert.Equal(t, 0.5, toMillions(500_000))
	assert.Equal(t, 1.23, toMillions(1_234_567))
	assert.Equal(t, 0.0, toMillions(0))
}
