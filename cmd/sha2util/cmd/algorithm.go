package cmd

import (
	"github.com/spf13/pflag"

	"github.com/onflow/flow-sha2/crypto/hash"
)

// algorithmValue is a pflag.Value accepting the names understood by
// hash.ParseHashingAlgorithm.
type algorithmValue struct {
	algo hash.HashingAlgorithm
}

var _ pflag.Value = (*algorithmValue)(nil)

func newAlgorithmValue(algo hash.HashingAlgorithm) *algorithmValue {
	return &algorithmValue{algo: algo}
}

func (a *algorithmValue) String() string {
	switch a.algo {
	case hash.SHA2_224:
		return "sha224"
	case hash.SHA2_256:
		return "sha256"
	}
	return a.algo.String()
}

func (a *algorithmValue) Set(name string) error {
	algo, err := hash.ParseHashingAlgorithm(name)
	if err != nil {
		return err
	}
	a.algo = algo
	return nil
}

func (a *algorithmValue) Type() string {
	return "algorithm"
}
