package oauth

import "net/url"

// marketing names differ from what the identity provider expects; the
// backend's authorization endpoint wants the provider's own name
var providerAliases = map[string]string{
	"x":      "twitter",
	"meta":   "facebook",
	"gmail":  "google",
	"iphone": "apple",
}

// maps a provider alias to the identity provider's expected name.
// unknown names pass through unchanged.
func CanonicalProvider(name string) string {
	if canonical, ok := providerAliases[name]; ok {
		return canonical
	}

	return name
}

// builds the backend's provider-specific authorization URL. the whole
// page navigates here, so the redirect URI is carried as a query
// parameter for the backend to hand to the provider.
func AuthorizeURL(endpoint, provider, redirectURI string) string {
	query := url.Values{}
	query.Set("redirect_uri", redirectURI)

	return endpoint + "/api/v1/auth/oauth/" + CanonicalProvider(provider) + "?" + query.Encode()
}
