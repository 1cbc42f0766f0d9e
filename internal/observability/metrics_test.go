package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest("/admins", "POST", 201, time.Millisecond)
	m.RecordRequest("/admins", "POST", 201, time.Millisecond)
	m.RecordRequest("/send-email", "POST", 500, time.Millisecond)
	require.Equal(t, int64(3), m.RequestTotal())

	m.RecordError("/send-email", "POST", "TRANSPORT_FAILED")
	m.RecordError("/admins/abc/resend-invite", "POST", "TRANSPORT_FAILED")
	m.RecordError("/admins", "POST", "VALIDATION_FAILED")

	byCode := m.ErrorsByCode()
	require.Equal(t, int64(2), byCode["TRANSPORT_FAILED"], "same code across paths aggregates")
	require.Equal(t, int64(1), byCode["VALIDATION_FAILED"])
}

func TestMetricsNilReceiver(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/admins", "POST", 201, time.Millisecond)
	m.RecordError("/admins", "POST", "INTERNAL_ERROR")
	require.Zero(t, m.RequestTotal())
	require.Nil(t, m.ErrorsByCode())
}
