package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/bookalchemy/internal/cli"
	"github.com/mrlokans/bookalchemy/internal/config"
	"github.com/mrlokans/bookalchemy/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

type command interface {
	ParseFlags(args []string) error
	Run() error
}

func main() {
	// If no arguments or "serve" command, run the HTTP server
	if len(os.Args) < 2 || os.Args[1] == "serve" {
		cfg := config.NewConfig()
		entrypoint.Run(cfg, Version)
		return
	}

	name := os.Args[1]
	args := os.Args[2:]

	var cmd command
	switch name {
	case "list":
		cmd = cli.NewListCommand()
	case "add-author":
		cmd = cli.NewAddAuthorCommand()
	case "add-book":
		cmd = cli.NewAddBookCommand()
	case "delete-book":
		cmd = cli.NewDeleteBookCommand()
	case "delete-author":
		cmd = cli.NewDeleteAuthorCommand()
	case "version":
		fmt.Printf("bookalchemy %s (%s)\n", Version, Commit)
		return
	case "-h", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", name)
		printUsage()
		os.Exit(1)
	}

	if err := cmd.ParseFlags(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  serve          Start the HTTP server (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  list           List books and authors\n")
	fmt.Fprintf(os.Stderr, "  add-author     Add an author\n")
	fmt.Fprintf(os.Stderr, "  add-book       Add a book by an existing author\n")
	fmt.Fprintf(os.Stderr, "  delete-book    Delete a book (and its author if it was their last book)\n")
	fmt.Fprintf(os.Stderr, "  delete-author  Delete an author that has no books\n")
	fmt.Fprintf(os.Stderr, "  version        Print the version\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
