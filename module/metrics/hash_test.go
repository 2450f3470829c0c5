package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onflow/flow-sha2/crypto/hash"
)

func TestHashCollector(t *testing.T) {
	registry := prometheus.NewRegistry()
	collector := NewHashCollector(registry)

	collector.BytesHashed(hash.SHA2_256, 64)
	collector.BytesHashed(hash.SHA2_256, 3)
	collector.BytesHashed(hash.SHA2_224, 5)
	collector.DigestComputed(hash.SHA2_256, time.Millisecond)
	collector.VectorChecked(true)
	collector.VectorChecked(true)
	collector.VectorChecked(false)

	assert.Equal(t, float64(67), testutil.ToFloat64(collector.bytesHashed.WithLabelValues("SHA2_256")))
	assert.Equal(t, float64(5), testutil.ToFloat64(collector.bytesHashed.WithLabelValues("SHA2_224")))
	assert.Equal(t, float64(1), testutil.ToFloat64(collector.digests.WithLabelValues("SHA2_256")))
	assert.Equal(t, float64(2), testutil.ToFloat64(collector.vectorsChecked.WithLabelValues(ResultPassed)))
	assert.Equal(t, float64(1), testutil.ToFloat64(collector.vectorsChecked.WithLabelValues(ResultFailed)))

	families, err := registry.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 4)
}

func TestHashCollectorDoubleRegistration(t *testing.T) {
	registry := prometheus.NewRegistry()
	NewHashCollector(registry)
	assert.Panics(t, func() { NewHashCollector(registry) })
}
