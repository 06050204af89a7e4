package main

import (
	"context"
	"log"
	"os"

	"github.com/fastygo/studyplanner/cmd/planner/commands"
)

func main() {
	if err := commands.Execute(context.Background(), os.Args[1:]); err != nil {
		log.Printf("planner: %v", err)
		os.Exit(1)
	}
}
