package main

import (
	"fmt"
	"os"
	"os/signal"

	rigup "github.com/arthur-debert/rigup/cmd/rigup"
	"github.com/arthur-debert/rigup/pkg/style"
)

func main() {
	// An interactive interrupt becomes a clean goodbye, caught once at
	// the outermost boundary
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		<-sigCh
		fmt.Println()
		fmt.Println(rigup.MsgBye)
		os.Exit(0)
	}()

	rootCmd := rigup.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, style.RenderError(err))
		os.Exit(1)
	}
}
