package roster

import "errors"

var (
	ErrEmptyRoster        = errors.New("roster has no participants")
	ErrEmptyName          = errors.New("participant name is empty")
	ErrDuplicateName      = errors.New("participant listed more than once")
	ErrUnknownAliasTarget = errors.New("alias points at a participant outside the roster")
	ErrAliasShadowsRoster = errors.New("alias collides with a canonical participant name")
)

// Registry is the closed set of canonical participant names together with
// the alias table that maps alternate spellings and poll handles onto them.
// A Registry is immutable once built and safe for concurrent use.
type Registry struct {
	names   []string
	exact   map[string]string
	folded  map[string]string
	aliases map[string]string
}

// File is the on-disk shape of a roster configuration.
type File struct {
	Participants []string          `koanf:"participants"`
	Aliases      map[string]string `koanf:"aliases"`
}
