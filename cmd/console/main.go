// Command console is the hotel admin console: it drives the dashboard, rooms,
// bookings and settings pages against the admin API from the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"hotel_admin/internal/adapters/hotelapi"
	"hotel_admin/internal/adapters/observability"
	"hotel_admin/internal/app"
	"hotel_admin/internal/domain"
	"hotel_admin/internal/shared"
)

const usage = `usage: console [-api URL] <command> [args]

commands:
  dashboard
  rooms list|add|update|delete
  bookings list|add|status|delete
  settings show|update

run "console <command> <sub> -h" for the flags of one action`

var errUsage = errors.New("invalid usage")

func main() {
	cfg := shared.Load()

	// notifications go to stderr so tables stay pipeable
	log.Logger = observability.NewLoggerTo(os.Stderr, cfg.AppEnv)

	fs := flag.NewFlagSet("console", flag.ExitOnError)
	base := fs.String("api", cfg.APIBaseURL, "admin API base URL")
	fs.Usage = func() { fmt.Fprintln(fs.Output(), usage) }
	_ = fs.Parse(os.Args[1:])

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := &console{
		api:    hotelapi.New(*base),
		notify: observability.NewNotifier(log.Logger),
		out:    os.Stdout,
	}
	if err := c.run(ctx, fs.Args()); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, usage)
			os.Exit(2)
		}
		os.Exit(1)
	}
}

type console struct {
	api    domain.AdminAPI
	notify app.Notifier
	out    io.Writer
}

// run dispatches one command. Page actions report their own failures through
// the notifier; the returned error only drives the exit code.
func (c *console) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, rest := args[0], args[1:]
	if cmd == "dashboard" {
		return c.dashboard(ctx)
	}
	if len(rest) == 0 {
		return errUsage
	}
	sub, rest := rest[0], rest[1:]

	switch cmd + " " + sub {
	case "rooms list":
		return c.roomsList(ctx)
	case "rooms add":
		return c.roomsAdd(ctx, rest)
	case "rooms update":
		return c.roomsUpdate(ctx, rest)
	case "rooms delete":
		return c.roomsDelete(ctx, rest)
	case "bookings list":
		return c.bookingsList(ctx)
	case "bookings add":
		return c.bookingsAdd(ctx, rest)
	case "bookings status":
		return c.bookingsStatus(ctx, rest)
	case "bookings delete":
		return c.bookingsDelete(ctx, rest)
	case "settings show":
		return c.settingsShow(ctx)
	case "settings update":
		return c.settingsUpdate(ctx, rest)
	}
	return errUsage
}

// flags builds the flag set of one action. Parse errors become errUsage.
func flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %s: %v", errUsage, fs.Name(), err)
	}
	return nil
}

// visited reports the flags given on the command line.
func visited(fs *flag.FlagSet) map[string]bool {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

func requireID(fs *flag.FlagSet, id string) error {
	if id == "" {
		return fmt.Errorf("%w: %s: -id is required", errUsage, fs.Name())
	}
	return nil
}
