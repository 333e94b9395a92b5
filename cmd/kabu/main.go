// Command kabu is the terminal client for the investment dashboard.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"syscall"

	"golang.org/x/crypto/ssh/terminal"

	"github.com/bobmcallan/kabu/internal/api"
	"github.com/bobmcallan/kabu/internal/common"
	"github.com/bobmcallan/kabu/internal/models"
	"github.com/bobmcallan/kabu/internal/session"
	"github.com/bobmcallan/kabu/internal/storage"
	"github.com/bobmcallan/kabu/internal/views"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: kabu <command> [flags]

Commands:
  login       Sign in and persist the session
  register    Create an account and sign in
  logout      Clear the persisted session
  profile     Show the signed-in user's profile
  portfolio   Show holdings with valuations
  dashboard   Show the market summary
  chat        Talk to the scripted assistant
  version     Print version information`)
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	config, err := common.LoadConfig(os.Getenv("KABU_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := common.NewLogger(config.Logging.Level)

	fileStore, err := storage.NewFileStore(logger, config.Session.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open session storage: %v\n", err)
		os.Exit(1)
	}

	client := api.NewClient(
		api.WithBaseURL(config.API.BaseURL),
		api.WithRateLimit(config.API.RateLimit),
		api.WithTimeout(config.API.GetTimeout()),
		api.WithLogger(logger),
	)

	store := session.NewStore(client, storage.NewSessionFile(fileStore), logger)
	client.SetTokenSource(store.AccessToken)

	ctx := context.Background()
	if err := run(ctx, os.Args[1], os.Args[2:], logger, client, store); err != nil {
		var apiErr *api.APIError
		var netErr *api.NetworkError
		switch {
		case errors.As(err, &apiErr):
			fmt.Fprintf(os.Stderr, "Request failed (%d): %s\n", apiErr.Status, apiErr.Detail)
		case errors.As(err, &netErr):
			fmt.Fprintf(os.Stderr, "Could not reach the backend: %v\n", netErr.Err)
		default:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, command string, args []string, logger *common.Logger, client *api.Client, store *session.Store) error {
	switch command {
	case "login":
		return runLogin(ctx, args, store)
	case "register":
		return runRegister(ctx, args, store)
	case "logout":
		store.Logout()
		fmt.Println("Logged out.")
		return nil
	case "profile":
		return runProfile(ctx, store)
	case "portfolio":
		if !store.Current().IsAuthenticated {
			return fmt.Errorf("not signed in; run 'kabu login' first")
		}
		return views.NewPortfolioView(client, logger).Render(ctx, os.Stdout)
	case "dashboard":
		return runDashboard(args)
	case "chat":
		return views.NewChatView(views.NewScriptedAssistant()).Run(ctx, os.Stdin, os.Stdout)
	case "version":
		fmt.Println(common.GetFullVersion())
		return nil
	default:
		usage()
		return nil
	}
}

func runLogin(ctx context.Context, args []string, store *session.Store) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password (prompted if omitted)")
	fs.Parse(args)

	creds := models.LoginCredentials{Email: *email, Password: *password}
	if creds.Password == "" {
		pw, err := promptPassword("Password: ")
		if err != nil {
			return err
		}
		creds.Password = pw
	}
	if err := creds.Validate(); err != nil {
		return err
	}

	if err := store.Login(ctx, creds); err != nil {
		return err
	}

	current := store.Current()
	fmt.Printf("Signed in as %s (risk tolerance: %s)\n", current.User.Email, current.User.RiskTolerance)
	return nil
}

func runRegister(ctx context.Context, args []string, store *session.Store) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password (prompted if omitted)")
	risk := fs.String("risk", "", "risk tolerance: low, medium or high")
	fs.Parse(args)

	creds := models.RegisterCredentials{Email: *email, Password: *password, RiskTolerance: *risk}
	if creds.Password == "" {
		pw, err := promptPassword("Password: ")
		if err != nil {
			return err
		}
		confirm, err := promptPassword("Confirm password: ")
		if err != nil {
			return err
		}
		creds.Password = pw
		creds.ConfirmPassword = confirm
	} else {
		creds.ConfirmPassword = creds.Password
	}
	if err := creds.Validate(); err != nil {
		return err
	}

	if err := store.Register(ctx, creds); err != nil {
		return err
	}

	current := store.Current()
	fmt.Printf("Account created; signed in as %s\n", current.User.Email)
	return nil
}

func runProfile(ctx context.Context, store *session.Store) error {
	current := store.Current()
	if !current.IsAuthenticated {
		return fmt.Errorf("not signed in; run 'kabu login' first")
	}

	// Best-effort refresh; stale data is shown if the backend is unreachable.
	store.FetchProfile(ctx)
	current = store.Current()

	fmt.Printf("Email:           %s\n", current.User.Email)
	fmt.Printf("Risk tolerance:  %s\n", current.User.RiskTolerance)
	fmt.Printf("Active:          %t\n", current.User.IsActive)
	fmt.Printf("Member since:    %s\n", current.User.CreatedAt)
	return nil
}

func runDashboard(args []string) error {
	fs := flag.NewFlagSet("dashboard", flag.ExitOnError)
	chartPath := fs.String("chart", "", "write the sector allocation chart PNG to this path")
	fs.Parse(args)

	if err := views.NewDashboardView().Render(os.Stdout); err != nil {
		return err
	}

	if *chartPath != "" {
		png, err := views.RenderAllocationChart(views.Summary().Sectors)
		if err != nil {
			return err
		}
		if err := os.WriteFile(*chartPath, png, 0644); err != nil {
			return fmt.Errorf("failed to write chart: %w", err)
		}
		fmt.Printf("\nAllocation chart written to %s\n", *chartPath)
	}
	return nil
}

func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	data, err := terminal.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(data), nil
}
