package oauth

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()

	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestParseCallback_HashToken(t *testing.T) {
	u := mustParse(t, "https://framegen.app/auth/callback#access_token=xyz&token_type=bearer")

	cb := ParseCallback(u)

	assert.Equal(t, KindHashToken, cb.Kind)
	assert.Equal(t, "xyz", cb.Token)
}

func TestParseCallback_Code(t *testing.T) {
	u := mustParse(t, "https://framegen.app/auth/callback?code=abc123")

	cb := ParseCallback(u)

	assert.Equal(t, KindCode, cb.Kind)
	assert.Equal(t, "abc123", cb.Code)
}

func TestParseCallback_LegacyQueryToken(t *testing.T) {
	for _, raw := range []string{
		"https://framegen.app/?access_token=xyz",
		"https://framegen.app/?token=xyz",
	} {
		cb := ParseCallback(mustParse(t, raw))

		assert.Equal(t, KindQueryToken, cb.Kind)
		assert.Equal(t, "xyz", cb.Token)
	}
}

func TestParseCallback_Error(t *testing.T) {
	u := mustParse(t, "https://framegen.app/?error=access_denied&error_description=user+cancelled")

	cb := ParseCallback(u)

	assert.Equal(t, KindError, cb.Kind)
	assert.Equal(t, "access_denied", cb.ErrorCode)
	assert.Equal(t, "user cancelled", cb.ErrorDescription)
}

func TestParseCallback_ErrorInFragment(t *testing.T) {
	u := mustParse(t, "https://framegen.app/#error=server_error&error_description=oops")

	cb := ParseCallback(u)

	assert.Equal(t, KindError, cb.Kind)
	assert.Equal(t, "server_error", cb.ErrorCode)
}

func TestParseCallback_ErrorWinsOverCredential(t *testing.T) {
	// a failed flow must never persist anything, even if a token-shaped
	// parameter is also present
	u := mustParse(t, "https://framegen.app/?error=access_denied&code=abc123")

	cb := ParseCallback(u)

	assert.Equal(t, KindError, cb.Kind)
}

func TestParseCallback_CleanURL(t *testing.T) {
	u := mustParse(t, "https://framegen.app/generate")

	cb := ParseCallback(u)

	assert.Equal(t, KindNone, cb.Kind)
}

func TestCleanURL_StripsQueryAndFragment(t *testing.T) {
	u := mustParse(t, "https://framegen.app/auth/callback?code=abc#access_token=xyz")

	cleaned := CleanURL(u)

	assert.Empty(t, cleaned.RawQuery)
	assert.Empty(t, cleaned.Fragment)
	assert.Equal(t, "https://framegen.app/auth/callback", cleaned.String())

	// the input is untouched
	assert.Equal(t, "code=abc", u.RawQuery)
}

func TestRedirectTo_SingleTrailingSlash(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"https://framegen.app/auth/callback?code=x", "https://framegen.app/auth/callback/"},
		{"https://framegen.app/auth/callback/?code=x", "https://framegen.app/auth/callback/"},
		{"https://framegen.app/auth/callback//", "https://framegen.app/auth/callback/"},
		{"https://framegen.app", "https://framegen.app/"},
		{"http://127.0.0.1:8089/callback", "http://127.0.0.1:8089/callback/"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, RedirectTo(mustParse(t, tc.in)), "input %s", tc.in)
	}
}

func TestCanonicalProvider(t *testing.T) {
	assert.Equal(t, "twitter", CanonicalProvider("x"))
	assert.Equal(t, "facebook", CanonicalProvider("meta"))
	assert.Equal(t, "google", CanonicalProvider("google"))
	assert.Equal(t, "github", CanonicalProvider("github"))
}

func TestAuthorizeURL(t *testing.T) {
	got := AuthorizeURL("https://api.framegen.app", "google", "https://framegen.app/login/")

	assert.Equal(t,
		"https://api.framegen.app/api/v1/auth/oauth/google?redirect_uri=https%3A%2F%2Fframegen.app%2Flogin%2F",
		got,
	)
}
