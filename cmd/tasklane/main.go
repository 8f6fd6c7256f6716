package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"tasklane/pkg/tasklane"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := tasklane.Main(ctx, os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}
