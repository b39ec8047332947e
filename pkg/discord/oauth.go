package discord

import (
	"context"
	"log"
	"sync"

	"golang.org/x/oauth2"
)

var Endpoint = oauth2.Endpoint{
	AuthURL:   "https://discord.com/oauth2/authorize",
	TokenURL:  "https://discord.com/api/oauth2/token",
	AuthStyle: oauth2.AuthStyleInParams,
}

var Scopes = []string{"identify", "email", "guilds", "guilds.members.read", "messages.read"}

func NewOAuthConfig(clientID, clientSecret, redirectURI string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Endpoint:     Endpoint,
		Scopes:       Scopes,
	}
}

// TokenUpdateFunc is called after the token source hands out a refreshed token
type TokenUpdateFunc func(token *oauth2.Token) error

type notifyTokenSource struct {
	mu       sync.Mutex
	src      oauth2.TokenSource
	current  *oauth2.Token
	callback TokenUpdateFunc
}

func (s *notifyTokenSource) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.src.Token()
	if err != nil {
		return nil, err
	}
	if s.callback != nil && s.current.AccessToken != t.AccessToken {
		s.current = t
		if err := s.callback(t); err != nil {
			log.Printf("[Discord] Failed to persist refreshed token: %v", err)
		}
	}
	return t, nil
}

// TokenSource returns a token source that refreshes the given token when it
// expires and reports new tokens through onRefresh.
func TokenSource(ctx context.Context, cfg *oauth2.Config, token *oauth2.Token, onRefresh TokenUpdateFunc) oauth2.TokenSource {
	return &notifyTokenSource{
		src:      cfg.TokenSource(ctx, token),
		current:  token,
		callback: onRefresh,
	}
}
