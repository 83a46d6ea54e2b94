package completion_helper

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// DefaultFlagComplete suggests every flag of the current command, short
// names with a single dash and long names with two. Attached to leaf
// commands where the stock urfave/cli completion stops suggesting flags.
func DefaultFlagComplete(_ context.Context, cmd *cli.Command) {
	for _, flag := range cmd.Flags {
		for _, name := range flag.Names() {
			prefix := "--"
			if len(name) == 1 {
				prefix = "-"
			}
			fmt.Println(prefix + name)
		}
	}
}

// CommandAndFlagComplete suggests the subcommand names and aliases of a
// parent command, then its flags. Attached to group commands like issue
// or config whose next token is a subcommand.
func CommandAndFlagComplete(ctx context.Context, cmd *cli.Command) {
	for _, sub := range cmd.Commands {
		if sub.Hidden {
			continue
		}
		fmt.Println(sub.Name)
		for _, alias := range sub.Aliases {
			fmt.Println(alias)
		}
	}
	DefaultFlagComplete(ctx, cmd)
}
