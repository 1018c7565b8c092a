package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/vdsgame/vds-api/internal/usecase"
)

const (
	stateCookieName   = "vds_oauth_state"
	stateCookieMaxAge = 10 * time.Minute
)

// RedditLogin kicks off the OAuth flow: mint a state value, park it in a
// short-lived cookie and send the browser to the provider.
func (h *Handler) RedditLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RedditLogin")
	defer span.End()

	state, err := h.authService.NewLoginState()
	if err != nil {
		h.logger.ErrorContext(ctx, "mint login state failed", "error", err)
		writeInternalError(ctx, w)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   int(stateCookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.sessionCookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.authService.LoginURL(state), http.StatusFound)
}

// RedditCallback finishes the OAuth flow. Every failure redirects back to
// the frontend with an error marker instead of rendering JSON; a browser is
// on the other end of this request.
func (h *Handler) RedditCallback(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RedditCallback")
	defer span.End()

	clearCookie(w, stateCookieName, h.sessionCookie.Secure)

	state := strings.TrimSpace(r.URL.Query().Get("state"))
	stateCookie, err := r.Cookie(stateCookieName)
	if err != nil || state == "" || stateCookie.Value != state {
		h.logger.WarnContext(ctx, "oauth state mismatch", "has_cookie", err == nil)
		h.redirectLoginFailed(w, r)
		return
	}

	code := strings.TrimSpace(r.URL.Query().Get("code"))
	if code == "" {
		h.logger.WarnContext(ctx, "oauth callback without code", "error_param", r.URL.Query().Get("error"))
		h.redirectLoginFailed(w, r)
		return
	}

	p, session, err := h.authService.Login(ctx, code)
	if err != nil {
		h.logger.ErrorContext(ctx, "oauth login failed", "error", err)
		h.redirectLoginFailed(w, r)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.sessionCookie.Name,
		Value:    session.Token,
		Path:     "/",
		MaxAge:   int(h.sessionCookie.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.sessionCookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	h.logger.InfoContext(ctx, "login completed", "player_id", p.ID)
	http.Redirect(w, r, h.frontendBaseURL+"/team-builder", http.StatusFound)
}

type meDTO struct {
	PlayerID      int64  `json:"player_id"`
	PlayerName    string `json:"player_name"`
	Authenticated bool   `json:"authenticated"`
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Me")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, meDTO{
		PlayerID:      principal.ID,
		PlayerName:    principal.Name,
		Authenticated: true,
	})
}

// Logout revokes the server-side session and clears the cookie. The route
// sits behind the session gate, so the cookie is present and valid here.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Logout")
	defer span.End()

	token := ""
	if cookie, err := r.Cookie(h.sessionCookie.Name); err == nil {
		token = cookie.Value
	}

	if err := h.authService.Logout(ctx, token); err != nil {
		h.logger.ErrorContext(ctx, "logout failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	clearCookie(w, h.sessionCookie.Name, h.sessionCookie.Secure)
	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) redirectLoginFailed(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.frontendBaseURL+"/?error=auth_failed", http.StatusFound)
}

func clearCookie(w http.ResponseWriter, name string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
