package main

import (
	"github.com/onflow/flow-sha2/cmd/sha2util/cmd"
)

func main() {
	cmd.Execute()
}
