// Command fm-heuristic is the cobra-based front end for the partitioner,
// offering partition/batch/serve/version subcommands backed by configurable
// storage and database backends. For the literal file-path contract, see
// cmd/fmpart.
package main

import "github.com/Davinais/FM-Heuristic/cmd/cli/cmd"

func main() {
	cmd.Execute()
}
