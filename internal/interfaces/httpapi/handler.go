package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/vdsgame/vds-api/internal/domain/game"
	"github.com/vdsgame/vds-api/internal/platform/logging"
	"github.com/vdsgame/vds-api/internal/usecase"
)

// SessionCookie describes how the session token travels to the browser.
type SessionCookie struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

type Handler struct {
	gameService       *usecase.GameService
	riderService      *usecase.RiderService
	teamService       *usecase.TeamService
	scoringService    *usecase.ScoringService
	raceService       *usecase.RaceService
	authService       *usecase.AuthService
	revalidateService *usecase.RevalidateService
	sessionCookie     SessionCookie
	frontendBaseURL   string
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	gameService *usecase.GameService,
	riderService *usecase.RiderService,
	teamService *usecase.TeamService,
	scoringService *usecase.ScoringService,
	raceService *usecase.RaceService,
	authService *usecase.AuthService,
	revalidateService *usecase.RevalidateService,
	sessionCookie SessionCookie,
	frontendBaseURL string,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if sessionCookie.Name == "" {
		sessionCookie.Name = "vds_session"
	}
	if sessionCookie.MaxAge <= 0 {
		sessionCookie.MaxAge = 30 * 24 * time.Hour
	}

	return &Handler{
		gameService:       gameService,
		riderService:      riderService,
		teamService:       teamService,
		scoringService:    scoringService,
		raceService:       raceService,
		authService:       authService,
		revalidateService: revalidateService,
		sessionCookie:     sessionCookie,
		frontendBaseURL:   frontendBaseURL,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Health")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "vds-api",
	})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// seasonParams parses the `:year`/`:division` pair every season-scoped route
// carries. Handlers own parsing; the router binds raw strings only.
func seasonParams(r *http.Request) (int, game.Division, error) {
	year, err := strconv.Atoi(PathParam(r, "year"))
	if err != nil {
		return 0, "", fmt.Errorf("%w: year must be an integer", usecase.ErrInvalidInput)
	}

	division, err := game.ParseDivision(PathParam(r, "division"))
	if err != nil {
		return 0, "", fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}

	return year, division, nil
}
