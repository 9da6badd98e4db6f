package roster

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load reads a YAML roster file:
//
//	participants:
//	  - Murder Hornets
//	  - Sonora Sugar Skulls
//	aliases:
//	  Thumbz: Murder Hornets
func Load(path string) (*Registry, error) {
	// Participant names may contain dots, so keys are split on "::" instead.
	k := koanf.New("::")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to read roster file %s: %w", path, err)
	}

	var f File
	if err := k.UnmarshalWithConf("", &f, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to decode roster file %s: %w", path, err)
	}

	r, err := New(f.Participants, f.Aliases)
	if err != nil {
		return nil, fmt.Errorf("invalid roster file %s: %w", path, err)
	}
	log.Info("Loaded roster", "path", path, "participants", r.Len(), "aliases", len(f.Aliases))
	return r, nil
}

// LoadOrDefault loads the roster at path, or returns the built-in roster
// when path is empty.
func LoadOrDefault(path string) (*Registry, error) {
	if path == "" {
		log.Info("No roster file configured, using built-in roster")
		return Default(), nil
	}
	return Load(path)
}
