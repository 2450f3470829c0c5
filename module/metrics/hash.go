package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/onflow/flow-sha2/crypto/hash"
	"github.com/onflow/flow-sha2/module"
)

type HashCollector struct {
	bytesHashed    *prometheus.CounterVec
	digests        *prometheus.CounterVec
	digestDuration *prometheus.HistogramVec
	vectorsChecked *prometheus.CounterVec
}

var _ module.HashMetrics = (*HashCollector)(nil)

// NewHashCollector creates the hashing metrics and registers them with registerer.
func NewHashCollector(registerer prometheus.Registerer) *HashCollector {
	r := NewRegisterer(registerer)

	return &HashCollector{
		bytesHashed: r.RegisterNewCounterVec(prometheus.CounterOpts{
			Namespace: namespaceSHA2,
			Subsystem: subsystemHasher,
			Name:      "bytes_hashed_total",
			Help:      "the number of bytes written to hashers",
		}, []string{LabelAlgorithm}),

		digests: r.RegisterNewCounterVec(prometheus.CounterOpts{
			Namespace: namespaceSHA2,
			Subsystem: subsystemHasher,
			Name:      "digests_total",
			Help:      "the number of digests computed",
		}, []string{LabelAlgorithm}),

		digestDuration: r.RegisterNewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespaceSHA2,
			Subsystem: subsystemHasher,
			Name:      "digest_duration_seconds",
			Help:      "time spent hashing a full message, from the first write to the digest",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 12),
		}, []string{LabelAlgorithm}),

		vectorsChecked: r.RegisterNewCounterVec(prometheus.CounterOpts{
			Namespace: namespaceSHA2,
			Subsystem: subsystemVectors,
			Name:      "checked_total",
			Help:      "the number of known-answer vectors checked, by result",
		}, []string{LabelResult}),
	}
}

func (hc *HashCollector) BytesHashed(algo hash.HashingAlgorithm, n int) {
	hc.bytesHashed.WithLabelValues(algo.String()).Add(float64(n))
}

func (hc *HashCollector) DigestComputed(algo hash.HashingAlgorithm, duration time.Duration) {
	hc.digests.WithLabelValues(algo.String()).Inc()
	hc.digestDuration.WithLabelValues(algo.String()).Observe(duration.Seconds())
}

func (hc *HashCollector) VectorChecked(passed bool) {
	result := ResultFailed
	if passed {
		result = ResultPassed
	}
	hc.vectorsChecked.WithLabelValues(result).Inc()
}
