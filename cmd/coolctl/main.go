package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/five82/coolctl/internal/app"
)

const usage = `Usage: coolctl [flags] [command]

Commands:
  (none)       start the terminal UI
  status       print ONLINE or OFFLINE once
  send <key>   send the preset bound to key
  logout       remove the stored credential

Flags:
`

func main() {
	os.Exit(run())
}

func run() int {
	flags := pflag.NewFlagSet("coolctl", pflag.ContinueOnError)
	configPath := flags.StringP("config", "c", "", "config file path (default ~/.config/coolctl/config.toml)")
	prefsPath := flags.String("prefs", "", "preferences file path (default ~/.config/coolctl/prefs.toml)")
	poll := flags.Duration("poll", 0, "status poll interval (default from config, 3s)")
	flags.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flags.PrintDefaults()
	}
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{ConfigPath: *configPath, PrefsPath: *prefsPath, PollEvery: *poll}

	var err error
	args := flags.Args()
	switch {
	case len(args) == 0:
		err = app.Run(ctx, opts)
	case args[0] == "status" && len(args) == 1:
		err = app.Status(ctx, opts, os.Stdout)
	case args[0] == "send" && len(args) == 2:
		err = app.Send(ctx, opts, args[1], os.Stdout)
	case args[0] == "logout" && len(args) == 1:
		err = app.Logout(opts, os.Stdout)
	default:
		flags.Usage()
		return 2
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "coolctl: %v\n", err)
		return 1
	}
	return 0
}
