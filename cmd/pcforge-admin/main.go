// Command pcforge-admin drives the catalog admin screens from a terminal,
// talking to a running pcforge server over its JSON API.
package main

import (
	"fmt"
	"os"
)

var commands = map[string]func([]string) error{
	"list":         runList,
	"create":       runCreate,
	"update":       runUpdate,
	"delete":       runDelete,
	"presets":      runPresets,
	"preset-check": runPresetCheck,
}

func usage() {
	fmt.Fprint(os.Stderr, `pcforge-admin - catalog administration client

Usage:
  pcforge-admin <command> [options]

Commands:
  list          List components of a category (gpus, power-supplies, ...)
  create        Create a component from key=value fields
  update        Update a component from key=value fields
  delete        Delete a component
  presets       List presets
  preset-check  Check a component selection for compatibility

Connection settings come from API_URL, ADMIN_EMAIL and ADMIN_PASSWORD
(or a .env file).
`)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	if cmd == "-h" || cmd == "--help" || cmd == "help" {
		usage()
		os.Exit(0)
	}
	fn, ok := commands[cmd]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", cmd)
		usage()
		os.Exit(1)
	}
	if err := fn(os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
