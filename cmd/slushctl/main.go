package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/scottypickering/slushpool/internal/config"
	"github.com/scottypickering/slushpool/pkg/httpclient"
	"github.com/scottypickering/slushpool/pkg/slushpool"
)

const usage = "usage: slushctl <stats|profile|rewards|workers>"

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "slushctl: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) != 1 {
		return errors.New(usage)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := slushpool.New(
		slushpool.WithHTTPClient(httpclient.NewRestyClient(cfg.HTTPTimeout)),
		slushpool.WithToken(cfg.Token),
	)
	return execute(ctx, client, args[0], out)
}

func execute(ctx context.Context, client *slushpool.Client, op string, out io.Writer) error {
	var (
		result any
		err    error
	)
	switch op {
	case "stats":
		result, err = client.Stats(ctx)
	case "profile":
		result, err = client.Profile(ctx)
	case "rewards":
		result, err = client.Rewards(ctx)
	case "workers":
		result, err = client.Workers(ctx)
	default:
		return fmt.Errorf("unknown operation %q; %s", op, usage)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
