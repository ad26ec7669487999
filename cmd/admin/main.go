// Command admin runs maintenance tasks against the back-office database.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"equitie-backend/internal/pkg/logger"

	"github.com/google/subcommands"
)

func main() {
	logger.Setup(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	for _, c := range commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
