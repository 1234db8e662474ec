package main

import (
	"log"

	"github.com/dichfoto/dichfoto/cmd"
	"github.com/dichfoto/dichfoto/config"
)

func main() {
	log.Printf("dichfoto %s (%s)", config.Version, config.CommitHash)
	cmd.Execute()
}
