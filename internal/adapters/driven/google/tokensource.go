package google

import "golang.org/x/oauth2"

// StaticTokenSource wraps a user-supplied access token as an
// oauth2.TokenSource for the Google API clients. Refresh is the user's
// responsibility; an expired token surfaces as an API error on the
// next call.
func StaticTokenSource(accessToken string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	})
}
