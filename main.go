// ABOUTME: Entry point for the VishNet operator console
// ABOUTME: Routes to the TUI or CLI commands based on arguments
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/harperreed/vishnet/cli"
	"github.com/harperreed/vishnet/client"
	"github.com/harperreed/vishnet/config"
	"github.com/harperreed/vishnet/state"
	"github.com/harperreed/vishnet/tui"
)

const version = "0.3.0"

func main() {
	// Global flags
	showVersion := flag.Bool("version", false, "Show version and exit")
	backendURL := flag.String("backend", "", "Backend base URL (default: stored config or built-in)")
	debug := flag.Bool("debug", false, "Enable debug logging")

	// Parse global flags but don't fail on unknown (for subcommands)
	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("vishnet version %s\n", version)
		os.Exit(0)
	}

	if *debug {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	base := cfg.BackendURL
	if *backendURL != "" {
		base = *backendURL
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	command := args[0]
	commandArgs := args[1:]
	backend := client.New(base)

	switch command {
	case "tui":
		// Keep client log lines out of the alt screen
		if !*debug {
			log.SetOutput(io.Discard)
		}
		session := state.NewSession(base)
		program := tea.NewProgram(tui.NewModel(session), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			log.Fatalf("TUI failed: %v", err)
		}

	case "personas":
		if err := cli.PersonasCommand(backend, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "call":
		if err := cli.CallCommand(backend, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "calls":
		if err := cli.CallsCommand(backend, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "detail":
		if err := cli.DetailCommand(backend, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "report":
		if err := cli.ReportCommand(backend, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`vishnet v%s - Vishing simulation operator console

USAGE:
  vishnet [global flags] <command> [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --backend <url>        Backend base URL (overrides config and VISHNET_BACKEND_URL)
  --debug                Enable debug logging

COMMANDS:
  vishnet tui            Start the interactive console

  vishnet personas       List available personas per mode

  vishnet call           Place a simulated call
    --ph <phone>           Target phone in E.164 form (required)
    --name <name>          Target name (required)
    --persona <persona>    Persona to use (required)
    --mode <mode>          normal or impersonation (default: normal)
    --voice-id <id>        Voice ID for normal-mode calls
    --yes                  Acknowledge target consent (required)

  vishnet calls          List placed calls, newest first
    --query <text>         Filter by name or phone substring

  vishnet detail <sid>   Show one call's record

  vishnet report <sid>   Show one call's report
    --plain                Print raw markdown without styling

EXAMPLES:
  # Interactive console
  vishnet tui

  # Place a call
  vishnet call --ph "+15551234567" --name "Jane Doe" --persona "Agent Smith" --yes

  # Find calls to Jane
  vishnet calls --query jane

`, version)
}
