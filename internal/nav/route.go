// ABOUTME: Route table with declarative per-destination access policies
// ABOUTME: Loaded from YAML; policies are static and never mutated at runtime

package nav

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Well-known route names the guard depends on.
const (
	RouteHome  = "home"
	RouteLogin = "login"
)

//go:embed routes.yaml
var defaultRoutes []byte

// AccessPolicy declares what a destination requires before it may render.
type AccessPolicy struct {
	RequiresAuth  bool `yaml:"requires_auth"`
	GuestOnly     bool `yaml:"guest_only"`
	RequiresAdmin bool `yaml:"requires_admin"`
}

// Route is one navigable destination.
type Route struct {
	Name   string       `yaml:"name"`
	Path   string       `yaml:"path"`
	Title  string       `yaml:"title"`
	Policy AccessPolicy `yaml:"policy"`
}

// Table holds all routes, addressable by name. Tables are immutable after
// load.
type Table struct {
	routes []Route
	byName map[string]*Route
}

// DefaultTable loads the embedded route definitions.
func DefaultTable() (*Table, error) {
	return parseTable(defaultRoutes)
}

// LoadTable reads route definitions from a YAML file.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading route table: %w", err)
	}
	return parseTable(data)
}

func parseTable(data []byte) (*Table, error) {
	var doc struct {
		Routes []Route `yaml:"routes"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing route table: %w", err)
	}

	t := &Table{routes: doc.Routes, byName: make(map[string]*Route, len(doc.Routes))}
	for i := range t.routes {
		r := &t.routes[i]
		if r.Name == "" {
			return nil, fmt.Errorf("route %d has no name", i)
		}
		if _, dup := t.byName[r.Name]; dup {
			return nil, fmt.Errorf("duplicate route name %q", r.Name)
		}
		t.byName[r.Name] = r
	}

	// The guard redirects to these; a table without them is unusable
	for _, required := range []string{RouteHome, RouteLogin} {
		if _, ok := t.byName[required]; !ok {
			return nil, fmt.Errorf("route table missing required route %q", required)
		}
	}
	return t, nil
}

// Lookup returns the route with the given name.
func (t *Table) Lookup(name string) (*Route, bool) {
	r, ok := t.byName[name]
	return r, ok
}

// Routes returns all routes in declaration order.
func (t *Table) Routes() []Route {
	return t.routes
}
