//go:build !android

package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
)

func init() {
	// glfw must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
