// Package policyfile carga la tabla de permisos por rol desde YAML.
package policyfile

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jhoicas/inventario-consola/internal/domain/access"
)

//go:embed default_access.yaml
var defaultYAML []byte

// File representación en disco de la tabla de acceso.
type File struct {
	Version     int                 `yaml:"version"`
	DefaultRole string              `yaml:"default_role"`
	Roles       map[string][]string `yaml:"roles"`
	Nav         []NavEntry          `yaml:"nav"`
}

type NavEntry struct {
	Page  string `yaml:"page"`
	Title string `yaml:"title"`
}

// Loaded tabla y menú listos para construir la política.
type Loaded struct {
	Table *access.Table
	Nav   []access.NavEntry
}

// Parse valida y convierte el YAML. Sin sección nav se usa access.DefaultNavEntries.
func Parse(b []byte) (Loaded, error) {
	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return Loaded{}, fmt.Errorf("policyfile: %w", err)
	}
	if f.Version != 1 {
		return Loaded{}, errors.New("policyfile: versión no soportada")
	}
	if len(f.Roles) == 0 {
		return Loaded{}, errors.New("policyfile: faltan roles")
	}

	entries := make(map[access.Role][]access.Page, len(f.Roles))
	for role, pages := range f.Roles {
		if strings.TrimSpace(role) == "" {
			return Loaded{}, errors.New("policyfile: rol vacío")
		}
		ps := make([]access.Page, 0, len(pages))
		for _, p := range pages {
			if strings.TrimSpace(p) == "" {
				return Loaded{}, fmt.Errorf("policyfile: página vacía en rol %q", role)
			}
			ps = append(ps, access.Page(p))
		}
		entries[access.Role(role)] = ps
	}

	nav := access.DefaultNavEntries
	if len(f.Nav) > 0 {
		nav = make([]access.NavEntry, 0, len(f.Nav))
		for _, e := range f.Nav {
			if e.Page == "" {
				return Loaded{}, errors.New("policyfile: entrada de menú sin página")
			}
			title := e.Title
			if title == "" {
				title = e.Page
			}
			nav = append(nav, access.NavEntry{Page: access.Page(e.Page), Title: title})
		}
	}

	return Loaded{
		Table: access.NewTable(entries, access.Role(f.DefaultRole)),
		Nav:   nav,
	}, nil
}

// Default tabla embebida.
func Default() (Loaded, error) {
	return Parse(defaultYAML)
}

// Load lee path o, si está vacío, la tabla embebida. defaultRole no vacío
// reemplaza al default_role del archivo.
func Load(path, defaultRole string) (Loaded, error) {
	b := defaultYAML
	if path != "" {
		var err error
		b, err = os.ReadFile(path)
		if err != nil {
			return Loaded{}, fmt.Errorf("policyfile: %w", err)
		}
	}
	l, err := Parse(b)
	if err != nil {
		return Loaded{}, err
	}
	if defaultRole != "" && access.Role(defaultRole) != l.Table.DefaultRole() {
		entries := make(map[access.Role][]access.Page)
		for _, r := range l.Table.Roles() {
			entries[r] = l.Table.Allowed(r)
		}
		l.Table = access.NewTable(entries, access.Role(defaultRole))
	}
	return l, nil
}
