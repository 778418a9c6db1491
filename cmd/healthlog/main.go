// ABOUTME: Entry point for the healthlog CLI.
// ABOUTME: Invokes the root Cobra command and always releases the store.
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// execute runs the root command and closes the store and logger whether or
// not the command succeeded; PersistentPostRunE is skipped on failure.
func execute() error {
	err := rootCmd.Execute()
	return errors.Join(err, closeApp())
}
