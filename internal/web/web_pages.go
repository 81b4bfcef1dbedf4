// Package web provides the HTTP server and web interface for go-hellopage
package web

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// ContentTypeHTML is sent with every page
	ContentTypeHTML = "text/html; charset=utf-8"

	// AllowedMethods is the Allow header value for page routes
	AllowedMethods = "GET, HEAD, OPTIONS"
)

var ErrDuplicatePath = errors.New("duplicate page path")

// Page is one static route: a fixed path answered with a fixed HTML body.
type Page struct {
	Path  string
	Title string
	Body  string
}

// pages is the route table. It is never modified after init.
var pages = []Page{
	{Path: "/", Title: "Home", Body: "<h1>Hello, World!</h1>"},
	{Path: "/about", Title: "About", Body: "<h1>About Page</h1><p>This is a simple Flask application.</p>"},
}

// Pages returns a copy of the route table
func Pages() []Page {
	return append([]Page(nil), pages...)
}

// Handler answers GET with the page body
func (p Page) Handler() gin.HandlerFunc {
	body := []byte(p.Body)
	return func(c *gin.Context) {
		c.Data(http.StatusOK, ContentTypeHTML, body)
	}
}

// HeadHandler answers HEAD with the GET headers and no body
func (p Page) HeadHandler() gin.HandlerFunc {
	length := fmt.Sprint(len(p.Body))
	return func(c *gin.Context) {
		c.Header("Content-Type", ContentTypeHTML)
		c.Header("Content-Length", length)
		c.Status(http.StatusOK)
	}
}

// optionsHandler lists the methods a page answers
func optionsHandler(c *gin.Context) {
	c.Header("Allow", AllowedMethods)
	c.Status(http.StatusOK)
}

// validatePages rejects empty, relative and duplicate paths before anything is registered,
// gin would panic on the duplicate instead
func validatePages(table []Page) error {
	seen := make(map[string]bool, len(table))
	for _, p := range table {
		if !strings.HasPrefix(p.Path, "/") {
			return fmt.Errorf("page %q: path must start with '/'", p.Path)
		}
		if seen[p.Path] {
			return fmt.Errorf("%w: %s", ErrDuplicatePath, p.Path)
		}
		seen[p.Path] = true
	}
	return nil
}

// registerPages adds GET, HEAD and OPTIONS routes for every page
func registerPages(r gin.IRoutes, table []Page) error {
	if err := validatePages(table); err != nil {
		return err
	}
	for _, p := range table {
		r.GET(p.Path, p.Handler())
		r.HEAD(p.Path, p.HeadHandler())
		r.OPTIONS(p.Path, optionsHandler)
	}
	return nil
}
