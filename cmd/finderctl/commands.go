package main

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/finder/backend/internal/client"
)

type usageError string

func (e usageError) Error() string { return string(e) }

type command struct {
	client *client.Client
	out    *printer
}

func (c *command) dispatch(ctx context.Context, name string, args []string) error {
	arity := map[string]int{
		"home": 0, "health": 0,
		"ls": 1, "info": 1, "preview": 1, "rm": 1,
		"search": 2, "glob": 2, "mkdir": 2, "rename": 2, "cp": 2, "mv": 2,
	}
	want, ok := arity[name]
	if !ok {
		return usageError(fmt.Sprintf("unknown command %q", name))
	}
	if len(args) != want {
		return usageError(fmt.Sprintf("%s takes %d argument(s), got %d", name, want, len(args)))
	}

	switch name {
	case "home":
		home, err := c.client.Home(ctx)
		if err != nil {
			return err
		}
		return c.out.path(home)

	case "health":
		report, err := c.client.Health(ctx)
		if err != nil {
			return err
		}
		return c.out.value(report)

	case "ls":
		listing, err := c.client.List(ctx, args[0])
		if err != nil {
			return err
		}
		return c.out.listing(listing)

	case "info":
		entry, err := c.client.Info(ctx, args[0])
		if err != nil {
			return err
		}
		return c.out.entry(entry)

	case "preview":
		preview, err := c.client.Preview(ctx, args[0])
		if err != nil {
			return err
		}
		return c.out.preview(preview)

	case "rm":
		if err := c.client.Delete(ctx, args[0]); err != nil {
			return err
		}
		return c.out.path(args[0])

	case "search":
		result, err := c.client.Search(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		return c.out.search(result)

	case "glob":
		result, err := c.client.Glob(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		return c.out.search(result)

	case "mkdir":
		return c.printPath(c.client.CreateFolder(ctx, args[0], args[1]))
	case "rename":
		return c.printPath(c.client.Rename(ctx, args[0], args[1]))
	case "cp":
		return c.printPath(c.client.Copy(ctx, args[0], args[1]))
	default: // mv
		return c.printPath(c.client.Move(ctx, args[0], args[1]))
	}
}

func (c *command) printPath(path string, err error) error {
	if err != nil {
		return err
	}
	return c.out.path(path)
}
