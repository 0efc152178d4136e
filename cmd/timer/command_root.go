package main

import (
	"errors"

	"github.com/SanjoDeundiak/process-timer/pkg/lib/timer"
	"github.com/spf13/cobra"
)

var errUsage = errors.New("invalid number of arguments")

func NewRootCmd(t *timer.Timer) *cobra.Command {
	root := &cobra.Command{
		Use:   "timer <command>",
		Short: "Measure the wall-clock time a command takes to run",
		Long: "Runs <command> from PATH in a child process and reports the time between the\n" +
			"moment just before the child starts the command and the moment it terminated.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errUsage
			}
			return nil
		},
		// Every argument is positional, including ones that start with "-".
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := t.Run(args[0])
			return err
		},
	}

	return root
}
