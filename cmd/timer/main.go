package main

import (
	"fmt"
	"os"

	"github.com/SanjoDeundiak/process-timer/pkg/lib/timer"
)

func main() {
	t := timer.NewTimer()

	var code int
	var msg string
	if timer.IsLauncher() {
		code, msg = launch(t, os.Args[1:])
	} else {
		code, msg = diagnose(NewRootCmd(t).Execute())
	}

	if msg != "" {
		_, _ = fmt.Fprintln(os.Stderr, msg)
	}
	os.Exit(code)
}

func launch(t *timer.Timer, args []string) (int, string) {
	if len(args) != 1 {
		return exitUsage, usageMessage
	}
	return launcherExit(t.Launch(args[0]))
}
