package xhttp

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"
)

type Router = router.Router

const (
	StatusOK                  = fasthttp.StatusOK
	StatusFound               = fasthttp.StatusFound
	StatusSeeOther            = fasthttp.StatusSeeOther
	StatusBadRequest          = fasthttp.StatusBadRequest
	StatusNotFound            = fasthttp.StatusNotFound
	StatusRequestTimeout      = fasthttp.StatusRequestTimeout
	StatusInternalServerError = fasthttp.StatusInternalServerError
)

// StatusText returns the standard reason phrase for a status code.
func StatusText(code int) string {
	return fasthttp.StatusMessage(code)
}

// NewRouter returns a new Router
func NewRouter() *Router {
	return router.New()
}

// CreateDefaultRouter returns a new router with the default handlers
// wired: NotFound and MethodNotAllowed both answer 404.
func CreateDefaultRouter() *Router {
	r := NewRouter()
	r.RedirectFixedPath = true
	r.RedirectTrailingSlash = true
	r.SaveMatchedRoutePath = true
	r.NotFound = NotFoundHandler
	r.MethodNotAllowed = NotFoundHandler
	r.HandleOPTIONS = false
	r.HandleMethodNotAllowed = true
	return r
}

// NotFoundHandler is the default 404 handler
func NotFoundHandler(ctx *RequestCtx) {
	ctx.Error(StatusText(StatusNotFound), StatusNotFound)
}
