// Command crsat builds CNF encodings of university course-scheduling
// instances, solves them, and verifies the encoder's correctness
// properties against a dataset.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
