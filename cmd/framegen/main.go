package main

import (
	"context"
	"flag"
	"fmt"
	"os"
)

const usage = `framegen - client for the Framegen image/video generation API

usage: framegen <command> [flags]

commands:
  signup          create an account        (-email, -password, -name)
  login           sign in                  (-email, -password | -provider <name>)
  logout          sign out
  whoami          show the current account
  plans           list subscription plans
  checkout        start a plan checkout    (-plan <name>)
  reset-password  request a reset email    (-email)
  tui             interactive account panel
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(2)
	}

	app, err := NewApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	ctx := context.Background()

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "signup":
		fs := flag.NewFlagSet("signup", flag.ExitOnError)
		email := fs.String("email", "", "account email")
		password := fs.String("password", "", "account password")
		name := fs.String("name", "", "display name")
		fs.Parse(args) //nolint:errcheck,gosec // ExitOnError

		requireFlags(fs, map[string]string{"email": *email, "password": *password, "name": *name})
		run(cmdSignup(ctx, app, *email, *password, *name))

	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		email := fs.String("email", "", "account email")
		password := fs.String("password", "", "account password")
		provider := fs.String("provider", "", "OAuth provider (google, github, x, meta, fake)")
		fs.Parse(args) //nolint:errcheck,gosec // ExitOnError

		if *provider == "" {
			requireFlags(fs, map[string]string{"email": *email, "password": *password})
		}
		run(cmdLogin(ctx, app, *email, *password, *provider))

	case "logout":
		run(cmdLogout(app))

	case "whoami":
		run(cmdWhoami(ctx, app))

	case "plans":
		run(cmdPlans(ctx, app))

	case "checkout":
		fs := flag.NewFlagSet("checkout", flag.ExitOnError)
		plan := fs.String("plan", "", "plan name")
		fs.Parse(args) //nolint:errcheck,gosec // ExitOnError

		requireFlags(fs, map[string]string{"plan": *plan})
		run(cmdCheckout(ctx, app, *plan))

	case "reset-password":
		fs := flag.NewFlagSet("reset-password", flag.ExitOnError)
		email := fs.String("email", "", "account email")
		fs.Parse(args) //nolint:errcheck,gosec // ExitOnError

		requireFlags(fs, map[string]string{"email": *email})
		run(cmdResetPassword(ctx, app, *email))

	case "tui":
		run(cmdTUI(ctx, app))

	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", command)
		fmt.Print(usage)
		os.Exit(2)
	}
}

func run(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func requireFlags(fs *flag.FlagSet, values map[string]string) {
	for name, value := range values {
		if value == "" {
			fmt.Fprintf(os.Stderr, "missing required flag: -%s\n\n", name)
			fs.Usage()
			os.Exit(2)
		}
	}
}
