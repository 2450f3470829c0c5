package metrics

const (
	LabelAlgorithm = "algorithm"
	LabelResult    = "result"
)

const (
	ResultPassed = "passed"
	ResultFailed = "failed"
)
