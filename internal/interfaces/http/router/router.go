// Package router assembles the gin engine: global middleware, public
// endpoints and the tenant API.
package router

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar mounts one resource's routes under path
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup, path string) *gin.RouterGroup
}

// Router collects the resources of a versioned API group
type Router struct {
	engine     *gin.Engine
	apiVersion string
	middleware []gin.HandlerFunc
	resources  []resource
}

type resource struct {
	path      string
	registrar RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// WithMiddleware runs mw in front of every resource of the group
func WithMiddleware(mw ...gin.HandlerFunc) RouterOption {
	return func(r *Router) {
		r.middleware = append(r.middleware, mw...)
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a resource to be mounted at path by Setup
func (r *Router) Register(path string, registrar RouteRegistrar) *Router {
	r.resources = append(r.resources, resource{path: path, registrar: registrar})
	return r
}

// Setup mounts every registered resource under /api/<version>
func (r *Router) Setup() *gin.RouterGroup {
	api := r.engine.Group("/api/"+r.apiVersion, r.middleware...)
	for _, res := range r.resources {
		res.registrar.RegisterRoutes(api, res.path)
	}
	return api
}
