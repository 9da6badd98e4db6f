package poll

import "github.com/mauv0809/tribble-pickem/internal/league"

// Resolver maps a raw participant identifier onto a display name.
type Resolver interface {
	Canonicalize(name string) string
}

// Parser turns pasted poll text into games and picks.
type Parser struct {
	names Resolver
}

// Pick is one participant's vote. Game indexes Result.Games and Side is the
// half of that game the voted option occupies.
type Pick struct {
	Name string      `json:"name"`
	Pick string      `json:"pick"`
	Game int         `json:"game"`
	Side league.Side `json:"side"`
}

// Result is the outcome of parsing one poll.
type Result struct {
	Picks  []Pick        `json:"picks"`
	Games  []league.Game `json:"games"`
	Report Report        `json:"report"`
}

// Report describes how each line of the input was consumed.
type Report struct {
	Lines           int           `json:"lines"`
	BlankLines      int           `json:"blank_lines"`
	Options         int           `json:"options"`
	PickLines       int           `json:"pick_lines"`
	ExplicitChoices int           `json:"explicit_choices"`
	Skipped         []SkippedLine `json:"skipped,omitempty"`
}

// SkippedLine is an input line that contributed nothing to the result.
type SkippedLine struct {
	Line   int    `json:"line"`
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

const (
	ReasonNoOption    = "pick before any option"
	ReasonEmptyOption = "empty option"
)
