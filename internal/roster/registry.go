package roster

import (
	"fmt"
	"strings"
)

var defaultNames = []string{
	"Murder Hornets",
	"Sonora Sugar Skulls",
	"Gridiron Goblins",
	"Blitzburgh Bandits",
	"Tundra Wolves",
	"Bayou Bombers",
	"Desert Foxes",
	"Mile High Mules",
	"Lakeshore Leviathans",
	"Rust Belt Rhinos",
	"Palmetto Pirates",
	"Cascade Kodiaks",
}

var defaultAliases = map[string]string{
	"Thumbz":       "Murder Hornets",
	"Sugar Skulls": "Sonora Sugar Skulls",
}

// Default returns the league's built-in roster.
func Default() *Registry {
	r, err := New(defaultNames, defaultAliases)
	if err != nil {
		panic(fmt.Sprintf("built-in roster is invalid: %v", err))
	}
	return r
}

// New builds a Registry from the canonical names, in roster order, and an
// alias table of raw name -> canonical name.
func New(names []string, aliases map[string]string) (*Registry, error) {
	if len(names) == 0 {
		return nil, ErrEmptyRoster
	}

	r := &Registry{
		names:   make([]string, 0, len(names)),
		exact:   make(map[string]string, len(names)+len(aliases)),
		folded:  make(map[string]string, len(names)+len(aliases)),
		aliases: make(map[string]string, len(aliases)),
	}

	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			return nil, ErrEmptyName
		}
		if _, dup := r.folded[fold(name)]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
		r.names = append(r.names, name)
		r.exact[name] = name
		r.folded[fold(name)] = name
	}

	for rawAlias, rawTarget := range aliases {
		alias := strings.TrimSpace(rawAlias)
		target := strings.TrimSpace(rawTarget)
		if alias == "" {
			return nil, ErrEmptyName
		}
		canonical, ok := r.exact[target]
		if !ok {
			canonical, ok = r.folded[fold(target)]
		}
		if !ok {
			return nil, fmt.Errorf("%w: %q -> %q", ErrUnknownAliasTarget, alias, target)
		}
		if existing, taken := r.folded[fold(alias)]; taken && existing != canonical {
			return nil, fmt.Errorf("%w: %q", ErrAliasShadowsRoster, alias)
		}
		r.aliases[alias] = canonical
		r.exact[alias] = canonical
		r.folded[fold(alias)] = canonical
	}

	return r, nil
}

// Names returns the canonical participant names in roster order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len is the size of the roster.
func (r *Registry) Len() int {
	return len(r.names)
}

// Aliases returns a copy of the alias table.
func (r *Registry) Aliases() map[string]string {
	out := make(map[string]string, len(r.aliases))
	for k, v := range r.aliases {
		out[k] = v
	}
	return out
}

// Resolve maps a canonical name or alias to its canonical name. The lookup
// ignores surrounding whitespace and falls back to a case-insensitive match.
func (r *Registry) Resolve(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	if canonical, ok := r.exact[name]; ok {
		return canonical, true
	}
	canonical, ok := r.folded[fold(name)]
	return canonical, ok
}

// Canonicalize resolves name, returning it trimmed but otherwise verbatim
// when it is unknown.
func (r *Registry) Canonicalize(name string) string {
	if canonical, ok := r.Resolve(name); ok {
		return canonical
	}
	return strings.TrimSpace(name)
}

// IsCanonical reports whether name is spelled exactly like a roster entry.
func (r *Registry) IsCanonical(name string) bool {
	canonical, ok := r.exact[name]
	return ok && canonical == name
}

func fold(s string) string {
	return strings.ToLower(s)
}
