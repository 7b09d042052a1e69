package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		name    string
		status  int
		code    string
		message string
		want    Kind
	}{
		{"401 is always auth", 401, "", "anything", KindAuth},
		{"structured unauthorized code", 400, "unauthorized", "", KindAuth},
		{"structured token_expired code", 400, "token_expired", "", KindAuth},
		{"structured validation code", 400, "validation_error", "", KindValidation},
		{"expired in message", 400, "", "Your token has EXPIRED", KindAuth},
		{"signature in message", 500, "", "invalid signature", KindAuth},
		{"unauthorized in message", 403, "", "Unauthorized access", KindAuth},
		{"plain 4xx is validation", 422, "", "email already registered", KindValidation},
		{"plain 5xx is server", 500, "", "internal error", KindServer},
		{"structured code wins over message", 400, "bad_request", "weird but fine", KindValidation},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, classify(tc.status, tc.code, tc.message))
		})
	}
}

func TestMessageIndicatesStaleToken(t *testing.T) {
	assert.True(t, messageIndicatesStaleToken("Token Expired"))
	assert.True(t, messageIndicatesStaleToken("bad SIGNATURE"))
	assert.True(t, messageIndicatesStaleToken("request unauthorized"))
	assert.False(t, messageIndicatesStaleToken("email already registered"))
	assert.False(t, messageIndicatesStaleToken(""))
}

func TestIsAuthError(t *testing.T) {
	assert.True(t, IsAuthError(&Error{Kind: KindAuth}))
	assert.False(t, IsAuthError(&Error{Kind: KindValidation}))
	assert.False(t, IsAuthError(nil))
	assert.False(t, IsAuthError(assert.AnError))
}

func TestIsNetworkError(t *testing.T) {
	assert.True(t, IsNetworkError(networkError(assert.AnError)))
	assert.False(t, IsNetworkError(&Error{Kind: KindAuth}))
	assert.False(t, IsNetworkError(assert.AnError))
}
