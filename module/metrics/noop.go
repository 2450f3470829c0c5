package metrics

import (
	"time"

	"github.com/onflow/flow-sha2/crypto/hash"
	"github.com/onflow/flow-sha2/module"
)

type NoopCollector struct{}

var _ module.HashMetrics = (*NoopCollector)(nil)

func NewNoopCollector() *NoopCollector {
	nc := &NoopCollector{}
	return nc
}

func (nc *NoopCollector) BytesHashed(hash.HashingAlgorithm, int)              {}
func (nc *NoopCollector) DigestComputed(hash.HashingAlgorithm, time.Duration) {}
func (nc *NoopCollector) VectorChecked(bool)                                  {}
