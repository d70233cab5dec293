package main

import (
	"fmt"
	"os"

	"github.com/redoswald/all-friends/cmd/all-friends/commands"
	"github.com/redoswald/all-friends/internal/config"
)

// main delegates to runMain so that deferred calls run before os.Exit.
func main() {
	os.Exit(runMain())
}

func runMain() int {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return config.ExitCodeError
	}
	return config.ExitCodeSuccess
}
