package httpapi

import (
	"net/http"
	"strings"
)

// Router matches request paths against registered templates. Templates are
// `/`-separated; a segment starting with `:` binds the raw path segment under
// that name, everything else must match literally (case-sensitive). The first
// registered match wins, so registration order is part of the routing table.
type Router struct {
	routes   []route
	notFound http.Handler
}

type route struct {
	method   string
	segments []string
	handler  http.Handler
}

func NewRouter() *Router {
	return &Router{}
}

func (r *Router) Handle(method, template string, handler http.Handler) {
	r.routes = append(r.routes, route{
		method:   method,
		segments: splitPath(template),
		handler:  handler,
	})
}

func (r *Router) HandleFunc(method, template string, handler http.HandlerFunc) {
	r.Handle(method, template, handler)
}

// NotFound sets the handler invoked when no route matches. The router itself
// stays agnostic about the miss response.
func (r *Router) NotFound(handler http.Handler) {
	r.notFound = handler
}

// Lookup resolves a request path. Query strings never participate in
// matching; callers pass the bare path.
func (r *Router) Lookup(method, path string) (http.Handler, map[string]string, bool) {
	segments := splitPath(path)

	for _, candidate := range r.routes {
		if candidate.method != method {
			continue
		}
		params, ok := matchSegments(candidate.segments, segments)
		if !ok {
			continue
		}
		return candidate.handler, params, true
	}

	return nil, nil, false
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	handler, params, ok := r.Lookup(req.Method, req.URL.Path)
	if !ok {
		if r.notFound != nil {
			r.notFound.ServeHTTP(w, req)
			return
		}
		writeJSON(req.Context(), w, http.StatusNotFound, errorBody{Error: "not found"})
		return
	}

	if len(params) > 0 {
		req = req.WithContext(withPathParams(req.Context(), params))
	}
	handler.ServeHTTP(w, req)
}

func matchSegments(template, segments []string) (map[string]string, bool) {
	if len(template) != len(segments) {
		return nil, false
	}

	var params map[string]string
	for i, part := range template {
		if strings.HasPrefix(part, ":") {
			if params == nil {
				params = make(map[string]string, 2)
			}
			params[part[1:]] = segments[i]
			continue
		}
		if part != segments[i] {
			return nil, false
		}
	}

	return params, true
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}

	return strings.Split(trimmed, "/")
}
