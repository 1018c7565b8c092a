package httpapi

import (
	"net/http"

	"github.com/vdsgame/vds-api/internal/platform/logging"
)

func registerSystemRoutes(router *Router, handler *Handler) {
	router.HandleFunc(http.MethodGet, "/health", handler.Health)
}

func registerPublicRoutes(router *Router, handler *Handler) {
	router.HandleFunc(http.MethodGet, "/api/games", handler.ListGames)
	router.HandleFunc(http.MethodGet, "/api/riders/:year/:division", handler.ListRiders)
	router.HandleFunc(http.MethodGet, "/api/riders/:year/:division/scores", handler.RiderScores)
	router.HandleFunc(http.MethodGet, "/api/teams/:year/:division/rankings", handler.TeamRankings)
	router.HandleFunc(http.MethodPost, "/api/team/:year/:division/validate", handler.ValidateTeam)
	// The results template must precede the season listing: both span three
	// segments and the first registered match wins.
	router.HandleFunc(http.MethodGet, "/api/races/:raceId/results", handler.ListRaceResults)
	router.HandleFunc(http.MethodGet, "/api/races/:year/:division", handler.ListRaces)
	router.HandleFunc(http.MethodGet, "/auth/reddit", handler.RedditLogin)
	router.HandleFunc(http.MethodGet, "/auth/callback/reddit", handler.RedditCallback)
}

func registerPlayerRoutes(router *Router, handler *Handler, auth SessionAuthenticator, logger *logging.Logger) {
	cookieName := handler.sessionCookie.Name
	router.Handle(http.MethodGet, "/api/team/:year/:division", RequireSession(auth, cookieName, logger, http.HandlerFunc(handler.GetMyTeam)))
	router.Handle(http.MethodPost, "/api/team/:year/:division", RequireSession(auth, cookieName, logger, http.HandlerFunc(handler.SaveMyTeam)))
	router.Handle(http.MethodGet, "/auth/me", RequireSession(auth, cookieName, logger, http.HandlerFunc(handler.Me)))
	router.Handle(http.MethodPost, "/auth/logout", RequireSession(auth, cookieName, logger, http.HandlerFunc(handler.Logout)))
}

func registerInternalJobRoutes(router *Router, handler *Handler, internalJobToken string) {
	router.Handle(http.MethodPost, "/api/internal/jobs/revalidate", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRevalidateJob)))
}
