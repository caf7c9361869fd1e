package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chaoxe/miniapp/internal/domain/entity"
)

func TestRecorder_Bridge(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	r.ObserveMessage(entity.MessageKindTitle)
	r.ObserveMessage(entity.MessageKindTitle)
	r.ObserveMessage(entity.MessageKindNavigate)
	r.ObserveDropped(2)
	r.ObserveDropped(0)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.bridgeMessages.WithLabelValues("title")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.bridgeMessages.WithLabelValues("navigate")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.bridgeDropped))
}

func TestRecorder_Requests(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	r.ObserveRequest("GET", 200, 10*time.Millisecond)
	r.ObserveRequest("GET", 0, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.apiRequests.WithLabelValues("GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.apiRequests.WithLabelValues("GET", "error")))

	n, err := testutil.GatherAndCount(reg, "chaoxe_api_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestNewRecorder_NilRegistry(t *testing.T) {
	r := NewRecorder(nil)
	r.ObserveMessage(entity.MessageKindLoaded)
	assert.Equal(t, 1.0, testutil.ToFloat64(r.bridgeMessages.WithLabelValues("loaded")))
}
