package oauth

import (
	"net/url"
	"strings"
)

// shape of the return-trip URL after the identity provider redirects back
type CallbackKind int

const (
	// no callback artifacts present
	KindNone CallbackKind = iota

	// token delivered directly in the URL fragment
	KindHashToken

	// one-time authorization code in the query string
	KindCode

	// deprecated fallback: token in the query string
	KindQueryToken

	// provider or backend reported a failure
	KindError
)

// parsed callback artifacts from a return-trip URL
type Callback struct {
	Kind             CallbackKind
	Token            string
	Code             string
	ErrorCode        string
	ErrorDescription string
}

// inspects a URL for provider callback artifacts. the four shapes are
// mutually exclusive; errors win over credentials so a failed flow never
// persists anything.
func ParseCallback(u *url.URL) Callback {
	query := u.Query()
	fragment := parseFragment(u.Fragment)

	if code, description, ok := callbackError(query, fragment); ok {
		return Callback{Kind: KindError, ErrorCode: code, ErrorDescription: description}
	}

	if token := fragment.Get("access_token"); token != "" {
		return Callback{Kind: KindHashToken, Token: token}
	}

	if code := query.Get("code"); code != "" {
		return Callback{Kind: KindCode, Code: code}
	}

	if token := query.Get("access_token"); token != "" {
		return Callback{Kind: KindQueryToken, Token: token}
	}

	if token := query.Get("token"); token != "" {
		return Callback{Kind: KindQueryToken, Token: token}
	}

	return Callback{Kind: KindNone}
}

// extracts an error code and description from query or fragment values
func callbackError(query, fragment url.Values) (string, string, bool) {
	for _, values := range []url.Values{query, fragment} {
		if code := values.Get("error"); code != "" {
			return code, values.Get("error_description"), true
		}
	}

	return "", "", false
}

// fragments carry query-encoded values after implicit-flow returns
func parseFragment(fragment string) url.Values {
	values, err := url.ParseQuery(strings.TrimPrefix(fragment, "#"))
	if err != nil {
		return url.Values{}
	}

	return values
}

// returns the URL with all query and fragment state removed
func CleanURL(u *url.URL) *url.URL {
	cleaned := *u
	cleaned.RawQuery = ""
	cleaned.Fragment = ""
	cleaned.RawFragment = ""
	return &cleaned
}

// reconstructs the redirect URI of the outbound authorization request:
// origin plus path with exactly one trailing slash. this must match what
// the backend supplied to the identity provider byte for byte.
func RedirectTo(u *url.URL) string {
	origin := &url.URL{
		Scheme: u.Scheme,
		Host:   u.Host,
		Path:   strings.TrimRight(u.Path, "/") + "/",
	}

	return origin.String()
}
