package main

import (
	"fmt"
	"net/url"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"codeberg.org/framegen/client/internal/api"
	"codeberg.org/framegen/client/internal/billing"
	"codeberg.org/framegen/client/internal/config"
	"codeberg.org/framegen/client/internal/logger"
	"codeberg.org/framegen/client/internal/session"
	"codeberg.org/framegen/client/internal/tokenstore"
	"codeberg.org/framegen/client/internal/tracking"
	"codeberg.org/framegen/client/internal/webstore"
)

// holds the wired client stack for one CLI invocation
type App struct {
	cfg      *config.Config
	jar      *webstore.CookieJar
	local    *webstore.LocalStore
	tokens   *tokenstore.Store
	client   *api.Client
	sessions *session.Manager
	billing  *billing.Service
	location *webstore.MemoryLocation
}

// wires the full client stack against the profile directory
func NewApp() (*App, error) {
	cfg, err := config.LoadClient()
	if err != nil {
		return nil, err
	}

	jar := webstore.NewCookieJar(filepath.Join(cfg.ProfileDir, "cookies.json"))

	local, err := webstore.OpenLocalStore(filepath.Join(cfg.ProfileDir, "local.db"))
	if err != nil {
		return nil, err
	}

	secure := strings.HasPrefix(cfg.APIEndpoint, "https://")
	tokens := tokenstore.New(jar, local, secure)
	client := api.NewClient(cfg.APIEndpoint, tokens, jar)

	// the loopback callback path stands in for the page URL
	callbackURL, err := url.Parse(fmt.Sprintf("http://127.0.0.1:%d/callback", cfg.CallbackPort))
	if err != nil {
		return nil, err
	}

	location := webstore.NewMemoryLocation(callbackURL)

	sessions := session.NewManager(session.Options{
		Backend:   client,
		Tokens:    tokens,
		Cookies:   jar,
		Stash:     tracking.NewStash(webstore.NewSessionStore()),
		Location:  location,
		Navigator: &browserNavigator{},
		Endpoint:  cfg.APIEndpoint,
		UserAgent: userAgent(),
		Changes:   jar.Changes(),
	})

	return &App{
		cfg:      cfg,
		jar:      jar,
		local:    local,
		tokens:   tokens,
		client:   client,
		sessions: sessions,
		billing:  billing.NewService(client),
		location: location,
	}, nil
}

// releases profile resources
func (a *App) Close() {
	if err := a.local.Close(); err != nil {
		logger.ErrorErr(err, "failed to close local store")
	}
}

func userAgent() string {
	return fmt.Sprintf("framegen-cli/1.0 (%s; %s)", runtime.GOOS, runtime.GOARCH)
}

// opens cross-origin URLs in the system browser; in-app navigation has
// nowhere to go in a CLI, so it is only logged
type browserNavigator struct{}

func (browserNavigator) OpenURL(target string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", target)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	default:
		cmd = exec.Command("xdg-open", target)
	}

	if err := cmd.Start(); err != nil {
		// the flow still works if the user pastes the URL themselves
		fmt.Printf("Open this URL in your browser:\n\n  %s\n\n", target)
		return nil
	}

	return nil
}

func (browserNavigator) GoTo(path string) {
	logger.Debug("navigation", "path", path)
}
