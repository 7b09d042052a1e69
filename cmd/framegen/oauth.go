package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"codeberg.org/framegen/client/internal/logger"
	"codeberg.org/framegen/client/internal/session"
	"github.com/gin-gonic/gin"
)

// how long the loopback listener waits for the browser to come back
const callbackTimeout = 5 * time.Minute

// served when the provider returns state in the URL fragment.
// fragments never reach a server, so the page re-submits them as a
// query string to the same path.
const fragmentForwarderPage = `<!DOCTYPE html>
<html>
<head><title>Framegen</title></head>
<body>
<p>Completing sign-in...</p>
<script>
if (window.location.hash.length > 1) {
	window.location.replace(window.location.pathname + "?" + window.location.hash.substring(1));
} else {
	document.body.textContent = "Nothing to complete. You can close this window.";
}
</script>
</body>
</html>`

const callbackDonePage = `<!DOCTYPE html>
<html>
<head><title>Framegen</title></head>
<body><p>Signed in. You can close this window and return to the terminal.</p></body>
</html>`

// runs the whole provider flow: starts the loopback listener, opens
// the browser, and feeds the return trip through the session manager's
// redirect handling.
func runOAuthFlow(ctx context.Context, app *App, provider string) error {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	returned := make(chan *url.URL, 1)

	handleCallback := func(c *gin.Context) {
		if c.Request.URL.RawQuery == "" {
			// fragment returns land here without a query; the page
			// re-submits them
			c.Header("Content-Type", "text/html; charset=utf-8")
			c.String(http.StatusOK, fragmentForwarderPage)
			return
		}

		full := *c.Request.URL
		full.Scheme = "http"
		full.Host = fmt.Sprintf("127.0.0.1:%d", app.cfg.CallbackPort)

		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, callbackDonePage)

		select {
		case returned <- &full:
		default:
		}
	}

	router.GET("/callback", handleCallback)
	router.GET("/callback/", handleCallback)

	server := &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", app.cfg.CallbackPort),
		Handler: router,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.ErrorErr(err, "failed to stop callback listener")
		}
	}()

	// captures the tracking payload and opens the browser at the
	// provider authorization URL
	if err := app.sessions.SignInWithOAuth(provider); err != nil {
		return fmt.Errorf("failed to start provider flow: %w", err)
	}

	fmt.Println("Waiting for the browser to come back...")

	select {
	case err := <-serveErr:
		return fmt.Errorf("callback listener failed: %w", err)

	case <-time.After(callbackTimeout):
		return fmt.Errorf("timed out waiting for the provider to return")

	case returnURL := <-returned:
		// the callback request URL becomes the visible URL, exactly
		// what the redirect handling expects to find
		app.location.Replace(returnURL)
		app.sessions.Initialize(ctx)
	}

	snap := app.sessions.Snapshot()

	if snap.State != session.StateAuthenticated {
		if snap.LastError != "" {
			return fmt.Errorf("%s", snap.LastError)
		}
		return fmt.Errorf("sign-in did not complete")
	}

	fmt.Printf("Signed in as %s\n", snap.User.Email)
	return nil
}
