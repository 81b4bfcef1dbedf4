// Package web provides the HTTP server and web interface for go-hellopage
package web

// empty stub file: everything lives in
/*

	### **Core Files:**
	1. **`webserver_core_routes.go`** - Server setup, middleware, route configuration, Start/Shutdown
	2. **`web_utils.go`** - Small accessors (port, uptime)

	### **Page Files:**
	3. **`web_pages.go`** - The page table and its GET/HEAD/OPTIONS handlers

*/
