package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnavshah/staff-scheduler-api/pkg/scheduler"
)

func TestRecordRun(t *testing.T) {
	rec := NewRecorder(prometheus.NewRegistry())

	res, err := scheduler.OptimizeSchedule([]int{2, 2}, []scheduler.StaffMember{
		{ID: "a", Role: "nurse", MaxHoursPerDay: 2, CostPerHour: 10},
	})
	require.NoError(t, err)

	rec.RecordRun(res, 3*time.Millisecond)
	rec.RecordFailure("empty_demand")

	assert.Equal(t, 1.0, testutil.ToFloat64(rec.runs.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.runs.WithLabelValues("empty_demand")))
	assert.Equal(t, 20.0, testutil.ToFloat64(rec.totalCost))
	assert.Equal(t, 2.0, testutil.ToFloat64(rec.understaffedHours))
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.maxUnderstaffing))
	assert.Equal(t, 0.5, testutil.ToFloat64(rec.coverage))
}

func TestNilRecorderIsSafe(t *testing.T) {
	var rec *Recorder
	assert.NotPanics(t, func() {
		rec.RecordRun(&scheduler.ScheduleResult{}, time.Second)
		rec.RecordFailure("invalid_staff_config")
	})
}

func TestHandlerExposesMetrics(t *testing.T) {
	rec := NewRecorder(nil)
	rec.RecordFailure("ok")

	w := httptest.NewRecorder()
	rec.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `scheduler_runs_total{outcome="ok"} 1`)
}
