package httpapi

import (
	"context"
	"net/http"

	"github.com/vdsgame/vds-api/internal/domain/player"
)

type contextKey string

const (
	principalContextKey  contextKey = "auth_principal"
	pathParamsContextKey contextKey = "path_params"
)

func withPrincipal(ctx context.Context, p player.Player) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

func principalFromContext(ctx context.Context) (player.Player, bool) {
	p, ok := ctx.Value(principalContextKey).(player.Player)
	return p, ok
}

func withPathParams(ctx context.Context, params map[string]string) context.Context {
	return context.WithValue(ctx, pathParamsContextKey, params)
}

// PathParam returns the bound value of a `:name` route segment, or "" when
// the request did not travel through the router.
func PathParam(r *http.Request, name string) string {
	params, ok := r.Context().Value(pathParamsContextKey).(map[string]string)
	if !ok {
		return ""
	}

	return params[name]
}
