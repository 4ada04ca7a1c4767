// Package main provides the kisan binary entry point.
package main

import (
	"fmt"
	"os"
	"runtime"

	"kisansaarthi/commands"
	"kisansaarthi/utils"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	err := commands.NewRootCommand().Execute()
	if utils.Logger != nil {
		_ = utils.Logger.Sync()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
