package metrics

import (
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveAdmission("confirmed")
	m.ObserveAdmission("waiting_list")
	m.ObserveAdmission("waiting_list")
	m.ObserveRejection("capacity_exceeded")
	m.Promoted(uuid.New())
	m.Compacted(uuid.New())
	m.TxRetried()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Admissions.WithLabelValues("confirmed")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Admissions.WithLabelValues("waiting_list")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Rejections.WithLabelValues("capacity_exceeded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Promotions))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Compactions))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TxRetries))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveAdmission("confirmed")
		m.ObserveRejection("internal")
		m.Promoted(uuid.New())
		m.Compacted(uuid.New())
		m.TxRetried()
	})
}
