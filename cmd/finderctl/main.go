package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GriffinCanCode/finder/backend/internal/client"
)

const usage = `Usage: finderctl [flags] <command> [args]

Commands:
  home                       print the home directory
  ls <dir>                   list a directory
  info <path>                describe an item
  search <dir> <query>       find names containing query
  glob <dir> <pattern>       find paths matching a ** glob
  preview <file>             print a file preview
  mkdir <parent> <name>      create a folder
  rm <path>                  delete an item
  rename <path> <new-name>   rename in place
  cp <source> <dest-dir>     copy into a directory
  mv <source> <dest-dir>     move into a directory
  health                     print the server health report

Flags:
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("finderctl", flag.ContinueOnError)
	flags.SetOutput(stderr)
	server := flags.String("server", envOr("FINDER_URL", client.DefaultBaseURL), "Server base URL")
	output := flags.String("o", "table", "Output format: table, json or yaml")
	timeout := flags.Duration("timeout", 30*time.Second, "Request timeout")
	flags.Usage = func() {
		fmt.Fprint(stderr, usage)
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return 2
	}
	if flags.NArg() == 0 {
		flags.Usage()
		return 2
	}

	printer, err := newPrinter(*output, stdout)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := client.NewClient(*server)
	c.SetTimeout(*timeout)

	cmd := &command{client: c, out: printer}
	if err := cmd.dispatch(ctx, flags.Arg(0), flags.Args()[1:]); err != nil {
		fmt.Fprintf(stderr, "finderctl: %v\n", err)
		if _, ok := err.(usageError); ok {
			return 2
		}
		return 1
	}
	return 0
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
