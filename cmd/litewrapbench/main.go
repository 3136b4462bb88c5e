package main

import (
	"context"
	"log"

	"github.com/litewrap/litewrap/internal/bench"
)

func main() {
	if err := bench.Run(context.Background()); err != nil {
		log.Fatal(err)
	}
}
