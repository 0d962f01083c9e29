package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/Philanthropists/checked/internal/logging"
	"github.com/Philanthropists/checked/internal/services/configserv"
	"github.com/Philanthropists/checked/internal/services/userserv"
	"github.com/Philanthropists/checked/pkg/result"
)

var GitCommit string

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log := logging.New()
	defer func() { _ = log.Sync() }()

	ctx = log.GetContext(ctx)

	app := &cli.App{
		Name:    "checked",
		Usage:   "demonstrates the ok/err result convention",
		Version: version(),
		Commands: []*cli.Command{
			{
				Name:      "divide",
				Usage:     "divide two integers",
				ArgsUsage: "A B",
				Action:    cmdDivide,
			},
			{
				Name:  "register",
				Usage: "validate and register a user",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "username", Required: true},
					&cli.StringFlag{Name: "name"},
				},
				Action: cmdRegister,
			},
			{
				Name:      "config",
				Usage:     "validate a JSON config file",
				ArgsUsage: "FILE",
				Action:    cmdConfig,
			},
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatal("command failed", logging.Error(err))
	}
}

func version() string {
	if GitCommit != "" {
		return GitCommit
	}
	return "dev"
}

func divide(a, b int) result.Result[int] {
	if b == 0 {
		return result.Err[int]("division by zero")
	}
	return result.Ok(a / b)
}

func cmdDivide(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("divide takes exactly two integer arguments")
	}

	a, err := strconv.Atoi(c.Args().Get(0))
	if err != nil {
		return err
	}
	b, err := strconv.Atoi(c.Args().Get(1))
	if err != nil {
		return err
	}

	v, err := divide(a, b).Unwrap()
	if err != nil {
		return err
	}

	fmt.Println(v)
	return nil
}

func cmdRegister(c *cli.Context) error {
	log := logging.FromContext(c.Context)

	reg := &userserv.Registry{}
	res := reg.Register(c.Context, map[string]string{
		"email":    c.String("email"),
		"username": c.String("username"),
		"name":     c.String("name"),
	})

	u, err := res.Unwrap()
	if err != nil {
		return err
	}

	log.Info("user registered",
		logging.String("email", u.Email),
		logging.String("username", u.Username),
	)
	return nil
}

func cmdConfig(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("config takes exactly one file argument")
	}

	log := logging.FromContext(c.Context)

	cfg, err := configserv.Load(c.Args().First()).Unwrap()
	if err != nil {
		return err
	}

	log.Info("config accepted",
		logging.String("name", cfg.Name),
		logging.Any("debug", cfg.Debug),
		logging.Int("max_retries", cfg.MaxRetries),
		logging.Any("tags", cfg.Tags),
	)
	return nil
}
