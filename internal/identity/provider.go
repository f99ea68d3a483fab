package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
)

// RoleAdmin is the role value that unlocks admin-gated operations. Any
// other value, including absence, is a regular user.
const RoleAdmin = "admin"

// ErrNoSession is returned when a request carries no usable session token.
var ErrNoSession = errors.New("no valid session")

// Caller is the authenticated identity behind a request, as established by
// the external identity provider. Used for authorization decisions.
type Caller struct {
	ID   string
	Role string
}

// Display is a best-effort display identity for a user, used only for
// rendering. Never used for authorization.
type Display struct {
	Username     string `json:"username"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// Config holds the provider connection settings.
type Config struct {
	// BaseURL is the provider's server API root, e.g.
	// https://api.stack-auth.com/api/v1.
	BaseURL string
	// SecretServerKey authenticates this backend against the provider.
	SecretServerKey string
	// JWTSecret is the shared secret session tokens are signed with.
	JWTSecret string
}

// Provider talks to the external identity provider. It implements both the
// authorization gate (CurrentCaller) and the identity bridge
// (ResolveDisplay).
type Provider struct {
	baseURL   string
	secretKey string
	tokens    TokenManager
	client    *http.Client
	logger    *slog.Logger
}

func NewProvider(cfg Config, logger *slog.Logger) (*Provider, error) {
	tokens, err := NewTokenManager(cfg.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token manager: %w", err)
	}
	return &Provider{
		baseURL:   cfg.BaseURL,
		secretKey: cfg.SecretServerKey,
		tokens:    tokens,
		client:    &http.Client{Timeout: 5 * time.Second},
		logger:    logger,
	}, nil
}

// CurrentCaller resolves a session token into a Caller. An empty token
// yields ErrNoSession; any verification failure is also reported as an
// error so the boundary can answer "authentication required" uniformly.
func (p *Provider) CurrentCaller(ctx context.Context, token string) (*Caller, error) {
	if token == "" {
		return nil, ErrNoSession
	}
	claims, err := p.tokens.Validate(token)
	if err != nil {
		p.logger.WarnContext(ctx, "Session token rejected", slog.String("error", err.Error()))
		return nil, fmt.Errorf("session token rejected: %w", err)
	}
	return &Caller{ID: claims.UserID, Role: claims.Role}, nil
}

// userProfile is the provider's user representation, reduced to the fields
// the bridge cares about.
type userProfile struct {
	ID              string `json:"id"`
	DisplayName     string `json:"display_name"`
	ProfileImageURL string `json:"profile_image_url"`
	ClientMetadata  struct {
		Username string `json:"username"`
	} `json:"client_metadata"`
}

// ResolveDisplay turns an external user id into a display identity. The
// provider lookup is retried on transient failure; if it still fails, or
// the profile carries no username, a deterministic placeholder derived
// from the id is returned. This method never fails the caller.
func (p *Provider) ResolveDisplay(ctx context.Context, userID string) Display {
	profile, err := p.fetchProfile(ctx, userID)
	if err != nil {
		p.logger.WarnContext(ctx, "Identity provider lookup failed, using placeholder",
			slog.String("userID", userID), slog.String("error", err.Error()))
		return fallbackDisplay(userID)
	}

	username := profile.ClientMetadata.Username
	if username == "" {
		username = profile.DisplayName
	}
	if username == "" {
		return fallbackDisplay(userID)
	}
	return Display{Username: username, ProfileImage: profile.ProfileImageURL}
}

func (p *Provider) fetchProfile(ctx context.Context, userID string) (*userProfile, error) {
	var profile userProfile

	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet,
				fmt.Sprintf("%s/users/%s", p.baseURL, userID), nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			req.Header.Set("X-Stack-Secret-Server-Key", p.secretKey)

			resp, err := p.client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode == http.StatusNotFound {
				return retry.Unrecoverable(fmt.Errorf("user %s not found at provider", userID))
			}
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("provider returned status %d", resp.StatusCode)
			}
			return json.NewDecoder(resp.Body).Decode(&profile)
		},
		retry.Attempts(3),
		retry.Delay(100*time.Millisecond),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// fallbackDisplay derives the placeholder identity shown when the provider
// cannot be consulted.
func fallbackDisplay(userID string) Display {
	short := userID
	if len(short) > 8 {
		short = short[:8]
	}
	return Display{Username: "User " + short}
}
