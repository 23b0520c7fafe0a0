// ./main.go
package main

import (
	"context"
	"os"

	"github.com/xkilldash9x/jakarta-cli/cmd"
)

// main is the entry point for the jakarta-cli application when built from the
// repository root. The canonical binary lives in cmd/jakarta-cli.
func main() {
	if err := cmd.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}
