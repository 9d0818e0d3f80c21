// Package router assembles the gin engine: middleware chain, health probes
// and the versioned API groups.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Router mounts resources under /api/{version}
type Router struct {
	engine    *gin.Engine
	version   string
	resources []*Resource
}

// RouterOption configures a Router
type RouterOption func(*Router)

// WithAPIVersion overrides the default "v1" path segment
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) { r.version = version }
}

// NewRouter creates a Router for engine
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{engine: engine, version: "v1"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register queues res for mounting by Setup
func (r *Router) Register(res *Resource) *Router {
	r.resources = append(r.resources, res)
	return r
}

// Setup mounts every registered resource
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.version)
	for _, res := range r.resources {
		res.mount(api)
	}
}

type route struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

// Resource is the set of routes served under one path prefix, such as /sellers
type Resource struct {
	prefix     string
	routes     []route
	middleware []gin.HandlerFunc
}

// NewResource creates an empty resource rooted at prefix
func NewResource(prefix string) *Resource {
	return &Resource{prefix: prefix}
}

// Prefix returns the path prefix
func (res *Resource) Prefix() string { return res.prefix }

// Use adds middleware that runs only for this resource's routes
func (res *Resource) Use(middleware ...gin.HandlerFunc) *Resource {
	res.middleware = append(res.middleware, middleware...)
	return res
}

func (res *Resource) add(method, path string, handlers []gin.HandlerFunc) *Resource {
	res.routes = append(res.routes, route{method: method, path: path, handlers: handlers})
	return res
}

func (res *Resource) GET(path string, handlers ...gin.HandlerFunc) *Resource {
	return res.add(http.MethodGet, path, handlers)
}

func (res *Resource) POST(path string, handlers ...gin.HandlerFunc) *Resource {
	return res.add(http.MethodPost, path, handlers)
}

func (res *Resource) PATCH(path string, handlers ...gin.HandlerFunc) *Resource {
	return res.add(http.MethodPatch, path, handlers)
}

func (res *Resource) mount(parent *gin.RouterGroup) {
	g := parent.Group(res.prefix, res.middleware...)
	for _, rt := range res.routes {
		g.Handle(rt.method, rt.path, rt.handlers...)
	}
}
