package usecase

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"time"

	authdomain "github.com/tinkertanker/discord-summariser/internal/auth/domain"
	authdto "github.com/tinkertanker/discord-summariser/internal/auth/dto"
	"github.com/tinkertanker/discord-summariser/internal/auth/repository"
	"github.com/tinkertanker/discord-summariser/pkg/cache"
	"github.com/tinkertanker/discord-summariser/pkg/config"
	"github.com/tinkertanker/discord-summariser/pkg/crypto"
	"github.com/tinkertanker/discord-summariser/pkg/discord"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

const stateTTL = 10 * time.Minute

// authUsecase implements AuthUsecase interface
type authUsecase struct {
	userRepo repository.UserRepository
	states   cache.StateStore
	oauth    *oauth2.Config
	profiles DiscordProfileFetcher
	cipher   *crypto.TokenCipher
	config   *config.Config
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(
	userRepo repository.UserRepository,
	states cache.StateStore,
	oauthCfg *oauth2.Config,
	profiles DiscordProfileFetcher,
	cipher *crypto.TokenCipher,
	cfg *config.Config,
) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		states:   states,
		oauth:    oauthCfg,
		profiles: profiles,
		cipher:   cipher,
		config:   cfg,
	}
}

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

func newState() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func (u *authUsecase) DiscordLoginURL(ctx context.Context) (*authdto.LoginURLResponse, error) {
	if u.oauth == nil || u.oauth.ClientID == "" {
		return nil, authdomain.ErrOAuthNotConfigured
	}

	state, err := newState()
	if err != nil {
		return nil, err
	}
	if err := u.states.Save(ctx, state, stateTTL); err != nil {
		return nil, fmt.Errorf("failed to store oauth state: %w", err)
	}

	return &authdto.LoginURLResponse{
		URL:   u.oauth.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "consent")),
		State: state,
	}, nil
}

func (u *authUsecase) HandleDiscordCallback(ctx context.Context, code, state string) (*authdto.TokenResponse, error) {
	if u.oauth == nil || u.oauth.ClientID == "" {
		return nil, authdomain.ErrOAuthNotConfigured
	}

	if err := u.states.Consume(ctx, state); err != nil {
		if errors.Is(err, cache.ErrStateNotFound) {
			return nil, authdomain.ErrInvalidState
		}
		return nil, err
	}

	token, err := u.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange discord code: %w", err)
	}

	profile, err := u.profiles.CurrentUser(ctx, token.AccessToken)
	if err != nil {
		return nil, err
	}

	access, refresh, err := u.sealToken(token)
	if err != nil {
		return nil, err
	}

	user := &authdomain.User{
		DiscordID:           profile.ID,
		Username:            profile.Username,
		Email:               profile.Email,
		AvatarURL:           profile.AvatarURL,
		DiscordToken:        access,
		DiscordRefreshToken: refresh,
		TokenExpiresAt:      expiryOf(token),
	}
	if err := u.userRepo.UpsertDiscordUser(user); err != nil {
		return nil, err
	}

	log.Printf("[Auth] Discord sign-in for %s (%s)", user.Username, user.ID)
	return u.generateTokens(user)
}

func (u *authUsecase) RefreshToken(refreshToken string) (*authdto.TokenResponse, error) {
	userID, err := u.parseUserID(refreshToken, tokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	// Check if token exists in repository
	storedToken, err := u.userRepo.FindRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	if storedToken == nil || storedToken.ExpiresAt.Before(time.Now()) {
		return nil, authdomain.ErrRefreshExpired
	}

	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, authdomain.ErrUserNotFound
	}

	// Rotate: the presented token is single use
	if err := u.userRepo.DeleteRefreshToken(refreshToken); err != nil {
		return nil, err
	}

	return u.generateTokens(user)
}

func (u *authUsecase) Logout(refreshToken string) error {
	return u.userRepo.DeleteRefreshToken(refreshToken)
}

func (u *authUsecase) ValidateToken(tokenString string) (*authdomain.User, error) {
	userID, err := u.parseUserID(tokenString, tokenTypeAccess)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, authdomain.ErrUserNotFound
	}

	return user, nil
}

func (u *authUsecase) DiscordAccessToken(ctx context.Context, userID string) (string, error) {
	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", authdomain.ErrUserNotFound
	}
	if user.DiscordToken == "" {
		return "", authdomain.ErrNoDiscordToken
	}

	access, err := u.cipher.Decrypt(user.DiscordToken)
	if err != nil {
		return "", fmt.Errorf("%w: %v", authdomain.ErrNoDiscordToken, err)
	}
	refresh, err := u.cipher.Decrypt(user.DiscordRefreshToken)
	if err != nil {
		return "", fmt.Errorf("%w: %v", authdomain.ErrNoDiscordToken, err)
	}

	current := &oauth2.Token{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
	}
	if user.TokenExpiresAt != nil {
		current.Expiry = *user.TokenExpiresAt
	}
	if current.Valid() {
		return access, nil
	}
	if u.oauth == nil || refresh == "" {
		return "", authdomain.ErrNoDiscordToken
	}

	src := discord.TokenSource(ctx, u.oauth, current, func(t *oauth2.Token) error {
		sealedAccess, sealedRefresh, err := u.sealToken(t)
		if err != nil {
			return err
		}
		log.Printf("[Auth] Refreshed Discord token for user %s", userID)
		return u.userRepo.UpdateDiscordTokens(userID, sealedAccess, sealedRefresh, expiryOf(t))
	})

	t, err := src.Token()
	if err != nil {
		log.Printf("[Auth] Discord token refresh failed for user %s: %v", userID, err)
		return "", fmt.Errorf("%w: %v", authdomain.ErrNoDiscordToken, err)
	}
	return t.AccessToken, nil
}

func (u *authUsecase) sealToken(t *oauth2.Token) (string, string, error) {
	access, err := u.cipher.Encrypt(t.AccessToken)
	if err != nil {
		return "", "", err
	}
	refresh := ""
	if t.RefreshToken != "" {
		if refresh, err = u.cipher.Encrypt(t.RefreshToken); err != nil {
			return "", "", err
		}
	}
	return access, refresh, nil
}

func expiryOf(t *oauth2.Token) *time.Time {
	if t.Expiry.IsZero() {
		return nil
	}
	exp := t.Expiry
	return &exp
}

// parseUserID verifies the JWT and its "typ" claim. Access and refresh
// tokens share a secret, so a refresh token must never pass as a session.
func (u *authUsecase) parseUserID(tokenString, wantType string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(u.config.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil || !token.Valid {
		return "", authdomain.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", authdomain.ErrInvalidToken
	}

	if typ, _ := claims["typ"].(string); typ != wantType {
		return "", authdomain.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", authdomain.ErrInvalidToken
	}
	return userID, nil
}

func (u *authUsecase) generateTokens(user *authdomain.User) (*authdto.TokenResponse, error) {
	accessToken, err := u.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := u.generateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	refreshTokenEntity := &authdomain.RefreshToken{
		Token:     refreshToken,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(u.config.JWTRefreshExpiry),
	}
	if err := u.userRepo.SaveRefreshToken(refreshTokenEntity); err != nil {
		return nil, err
	}

	return &authdto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

func (u *authUsecase) generateAccessToken(user *authdomain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    user.ID,
		"discord_id": user.DiscordID,
		"typ":        tokenTypeAccess,
		"exp":        time.Now().Add(u.config.JWTAccessExpiry).Unix(),
		"iat":        time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(u.config.JWTSecret))
}

func (u *authUsecase) generateRefreshToken(user *authdomain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"token_id": uuid.New().String(),
		"typ":      tokenTypeRefresh,
		"exp":      time.Now().Add(u.config.JWTRefreshExpiry).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(u.config.JWTSecret))
}
