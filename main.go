package main

import (
	"log"

	"github.com/peggy-bridge/orchestrator/cmd"
	debug "github.com/peggy-bridge/orchestrator/relayers/debug/module"
	mock "github.com/peggy-bridge/orchestrator/relayers/mock/module"
)

func main() {
	if err := cmd.Execute(
		debug.Module{},
		mock.Module{},
	); err != nil {
		log.Fatal(err)
	}
}
