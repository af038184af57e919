package main

import (
	"fmt"
	"os"
	"strings"

	"commentboard/app/config"
	"commentboard/app/logger"
	"commentboard/service"
)

// CliVersion is the version printed by the version command.
const CliVersion = "1.0.0"

var exit = os.Exit

func main() {
	RealMain()
}

// RealMain dispatches os.Args and exits with the command's status.
func RealMain() {
	if len(os.Args) < 2 {
		printHelp()
		exit(1)
		return
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help", "-h", "--help":
		printHelp()
		exit(0)
	case "version":
		fmt.Printf("commentboard version %s\n", CliVersion)
		exit(0)
	default:
		cfg, err := config.Load()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			exit(1)
			return
		}

		log := logger.New(cfg.Log.Level, cfg.Log.Format)
		logger.SetDefault(log)

		exit(service.HandleCommand(cfg, log, append([]string{cmd}, os.Args[2:]...)))
	}
}

func printHelp() {
	helpText := `Usage: commentboard <command> [options]
Commands:
  help                 Display this help message.
  version              Show version information.
  serve                Run the comments REST API.
  ui                   Run the browser UI for posts and comments.
  seed                 Insert sample posts and comments.
  clean                Delete the database.
  init                 Initialize a new empty database.
  backup               Create a backup of the database.
  restore <file>       Restore the database from a backup.
`
	fmt.Println(helpText)
}
