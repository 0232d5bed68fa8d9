package permissions

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var embedded []byte

// Permission lists the roles allowed on one route pattern. Skip marks a public route.
type Permission struct {
	Roles  []Role `json:"roles"`
	Path   string `json:"path"`
	Method string `json:"method"`
	Skip   bool   `json:"skip"`
}

// Allows reports whether role may call the route. An empty role list admits any valid role.
func (p Permission) Allows(role Role) bool {
	if !role.Valid() {
		return false
	}

	return len(p.Roles) == 0 || slices.Contains(p.Roles, role)
}

// PermissionData is the route table. Skip disables RBAC for every route.
type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	index map[string]Permission
}

// FindPermissions looks up a chi route pattern. Trailing slashes are ignored
// and unknown routes yield the zero Permission.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	return r.index[routeKey(path, method)]
}

// Parse decodes a route table and rejects duplicate or unknown roles.
func Parse(data []byte) (*PermissionData, error) {
	var table PermissionData
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to decode permissions: %w", err)
	}

	table.index = make(map[string]Permission, len(table.Endpoints))

	for _, endpoint := range table.Endpoints {
		key := routeKey(endpoint.Path, endpoint.Method)
		if _, dup := table.index[key]; dup {
			return nil, fmt.Errorf("duplicate permission for %s", key)
		}

		table.index[key] = endpoint
	}

	return &table, nil
}

var loadEmbedded = sync.OnceValue(func() *PermissionData {
	table, err := Parse(embedded)
	if err != nil {
		log.Fatal().Err(err).Msg("embedded permissions are invalid")
	}

	log.Info().Int("endpoints", len(table.Endpoints)).Msg("permissions loaded")

	return table
})

// Get returns the embedded route table.
func Get() *PermissionData {
	return loadEmbedded()
}

func routeKey(path, method string) string {
	if len(path) > 1 && !strings.HasSuffix(path, "/*") {
		path = strings.TrimSuffix(path, "/")
	}

	return strings.ToUpper(method) + " " + path
}
