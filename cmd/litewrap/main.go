package main

import (
	"context"
	"log"

	"github.com/litewrap/litewrap/internal/shell"
)

func main() {
	if err := shell.Run(context.Background()); err != nil {
		log.Fatal(err)
	}
}
