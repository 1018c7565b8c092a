package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vdsgame/vds-api/internal/domain/player"
	idgen "github.com/vdsgame/vds-api/internal/platform/id"
	"github.com/vdsgame/vds-api/internal/platform/logging"
)

// IdentityProvider exchanges an OAuth authorization code for the external
// identity of the caller. The rest of the service treats it as a black box.
type IdentityProvider interface {
	AuthorizeURL(state string) string
	Exchange(ctx context.Context, code string) (player.Identity, string, error)
}

const defaultSessionTTL = 30 * 24 * time.Hour

type AuthService struct {
	playerRepo  player.Repository
	sessionRepo player.SessionRepository
	provider    IdentityProvider
	idGen       idgen.Generator
	sessionTTL  time.Duration
	logger      *logging.Logger
	now         func() time.Time
}

func NewAuthService(
	playerRepo player.Repository,
	sessionRepo player.SessionRepository,
	provider IdentityProvider,
	idGen idgen.Generator,
	sessionTTL time.Duration,
	logger *logging.Logger,
) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &AuthService{
		playerRepo:  playerRepo,
		sessionRepo: sessionRepo,
		provider:    provider,
		idGen:       idGen,
		sessionTTL:  sessionTTL,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *AuthService) SessionTTL() time.Duration {
	return s.sessionTTL
}

// Authenticate resolves an opaque session token into the owning player.
// Expiry is checked against session age on every call; a session one
// millisecond past the TTL is expired, not invalid. The caller's cookie
// content is never trusted beyond being a lookup key.
func (s *AuthService) Authenticate(ctx context.Context, token string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "AuthService.Authenticate")
	defer span.End()

	token = strings.TrimSpace(token)
	if token == "" {
		return player.Player{}, ErrSessionMissing
	}

	session, found, err := s.sessionRepo.Get(ctx, token)
	if err != nil {
		return player.Player{}, fmt.Errorf("get session: %w", err)
	}
	if !found {
		return player.Player{}, ErrSessionInvalid
	}

	if s.now().Sub(session.CreatedAt) > s.sessionTTL {
		return player.Player{}, ErrSessionExpired
	}

	p, found, err := s.playerRepo.GetByID(ctx, session.PlayerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get session player: %w", err)
	}
	if !found {
		return player.Player{}, ErrSessionInvalid
	}

	return p, nil
}

func (s *AuthService) LoginURL(state string) string {
	return s.provider.AuthorizeURL(state)
}

// NewLoginState mints the anti-forgery state carried through the OAuth
// round trip.
func (s *AuthService) NewLoginState() (string, error) {
	state, err := s.idGen.NewID()
	if err != nil {
		return "", fmt.Errorf("generate login state: %w", err)
	}

	return state, nil
}

// Login exchanges the OAuth code, upserts the player by external identity
// and mints a fresh server-side session. Players are keyed by
// (provider, subject id); a changed display name updates nothing here.
func (s *AuthService) Login(ctx context.Context, code string) (player.Player, player.Session, error) {
	ctx, span := startUsecaseSpan(ctx, "AuthService.Login")
	defer span.End()

	code = strings.TrimSpace(code)
	if code == "" {
		return player.Player{}, player.Session{}, fmt.Errorf("%w: authorization code is required", ErrInvalidInput)
	}

	identity, displayName, err := s.provider.Exchange(ctx, code)
	if err != nil {
		return player.Player{}, player.Session{}, fmt.Errorf("%w: exchange authorization code: %v", ErrDependencyUnavailable, err)
	}
	if err := identity.Validate(); err != nil {
		return player.Player{}, player.Session{}, fmt.Errorf("%w: %v", ErrDependencyUnavailable, err)
	}

	now := s.now().UTC()
	p, found, err := s.playerRepo.GetByIdentity(ctx, identity)
	if err != nil {
		return player.Player{}, player.Session{}, fmt.Errorf("get player by identity: %w", err)
	}
	if !found {
		p, _, err = s.playerRepo.Create(ctx, player.Player{
			Name:      displayName,
			Identity:  identity,
			CreatedAt: now,
		})
		if err != nil {
			return player.Player{}, player.Session{}, fmt.Errorf("create player: %w", err)
		}
	}

	token, err := s.idGen.NewID()
	if err != nil {
		return player.Player{}, player.Session{}, fmt.Errorf("generate session token: %w", err)
	}

	session := player.Session{
		Token:     token,
		PlayerID:  p.ID,
		CreatedAt: now,
	}
	if _, err := s.sessionRepo.Save(ctx, session); err != nil {
		return player.Player{}, player.Session{}, fmt.Errorf("save session: %w", err)
	}

	s.logger.InfoContext(ctx, "player logged in",
		"player_id", p.ID,
		"provider", identity.Provider,
		"new_player", !found,
	)

	return p, session, nil
}

// Logout revokes the server-side session. Unknown tokens are a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	ctx, span := startUsecaseSpan(ctx, "AuthService.Logout")
	defer span.End()

	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}

	if _, err := s.sessionRepo.Delete(ctx, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}
