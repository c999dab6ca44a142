package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/five82/coolctl/internal/auth"
	"github.com/five82/coolctl/internal/ui"
)

func cliPrompter(opts Options) auth.Prompter {
	if opts.Prompter != nil {
		return opts.Prompter
	}
	return auth.NewTerminalPrompter()
}

// Status fetches the device status once and prints ONLINE or OFFLINE.
func Status(ctx context.Context, opts Options, w io.Writer) error {
	svc, err := openServices(opts, cliPrompter(opts))
	if err != nil {
		return err
	}
	defer svc.Close()

	resp, err := svc.client.GetStatus(ctx)
	if err != nil {
		return fmt.Errorf("status: %s: %w", ui.DescribeError(err), err)
	}
	if resp.Online {
		fmt.Fprintln(w, "ONLINE")
	} else {
		fmt.Fprintln(w, "OFFLINE")
	}
	return nil
}

// Send dispatches the preset bound to key.
func Send(ctx context.Context, opts Options, key string, w io.Writer) error {
	svc, err := openServices(opts, cliPrompter(opts))
	if err != nil {
		return err
	}
	defer svc.Close()

	preset, ok := svc.cfg.Preset(key)
	if !ok {
		keys := make([]string, 0, len(svc.cfg.Presets))
		for _, p := range svc.cfg.Presets {
			keys = append(keys, p.Key)
		}
		return fmt.Errorf("no preset bound to %q (available: %s)", key, strings.Join(keys, ", "))
	}

	svc.log.Infow("sending command", "preset", preset.Label)
	if _, err := svc.client.SendCommand(ctx, preset.Intervals.Clone()); err != nil {
		svc.log.Warnw("command failed", "preset", preset.Label, "err", err)
		return fmt.Errorf("send %s: %s: %w", preset.Label, ui.DescribeError(err), err)
	}
	svc.log.Infow("command accepted", "preset", preset.Label)
	fmt.Fprintf(w, "%s sent\n", preset.Label)
	return nil
}

// Logout removes the stored credential so the next run asks again.
func Logout(opts Options, w io.Writer) error {
	svc, err := openServices(opts, nil)
	if err != nil {
		return err
	}
	defer svc.Close()

	if err := svc.creds.Clear(); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	svc.log.Infow("credential cleared")
	fmt.Fprintf(w, "credential removed from %s\n", svc.creds.Path())
	return nil
}
