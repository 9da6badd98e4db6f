package poll

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/tribble-pickem/internal/league"
)

var quoteReplacer = strings.NewReplacer("“", `"`, "”", `"`, "„", `"`, "«", `"`, "»", `"`)

// NewParser creates a Parser that canonicalises participant identifiers
// through names.
func NewParser(names Resolver) *Parser {
	return &Parser{names: names}
}

// Parse reads a poll pasted line by line. Quoted lines are options: the first
// of a pair opens a new game as its home team, the second fills the away
// team. Other lines are participants voting for the latest option. A bare line
// naming one of the latest game's teams right after a participant line is that
// participant's explicit choice. Parse never fails; anything it cannot place
// is listed in the report.
func (p *Parser) Parse(text string) Result {
	res := Result{Picks: []Pick{}, Games: []league.Game{}}

	// The latest option seen, the game it belongs to and the side it fills.
	current, currentIdx, currentSide := "", -1, league.SideUnresolved
	// lastPick indexes the pick made since the latest option, or -1.
	lastPick := -1

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, raw := range lines {
		lineNo := i + 1
		line := strings.TrimSpace(raw)
		res.Report.Lines++

		if line == "" {
			res.Report.BlankLines++
			continue
		}

		if option, ok := quotedOption(line); ok {
			if option == "" {
				res.Report.Skipped = append(res.Report.Skipped, SkippedLine{Line: lineNo, Text: raw, Reason: ReasonEmptyOption})
				continue
			}
			res.Report.Options++
			n := len(res.Games)
			if n == 0 || res.Games[n-1].AwayTeam != "" {
				res.Games = append(res.Games, league.Game{HomeTeam: option})
				currentIdx, currentSide = n, league.SideHome
			} else {
				res.Games[n-1].AwayTeam = option
				currentIdx, currentSide = n-1, league.SideAway
			}
			current = option
			lastPick = -1
			continue
		}

		if current == "" {
			log.Debug("Dropping poll line with no option to pair with", "line", lineNo, "text", line)
			res.Report.Skipped = append(res.Report.Skipped, SkippedLine{Line: lineNo, Text: raw, Reason: ReasonNoOption})
			continue
		}

		if lastPick >= 0 {
			if side, ok := explicitChoice(res.Games[currentIdx], line); ok {
				game := res.Games[currentIdx]
				res.Picks[lastPick].Pick = game.Team(side)
				res.Picks[lastPick].Side = side
				res.Report.ExplicitChoices++
				continue
			}
		}

		res.Report.PickLines++
		res.Picks = append(res.Picks, Pick{
			Name: p.names.Canonicalize(line),
			Pick: current,
			Game: currentIdx,
			Side: currentSide,
		})
		lastPick = len(res.Picks) - 1
	}

	log.Debug("Parsed poll", "games", len(res.Games), "picks", len(res.Picks), "skipped", len(res.Report.Skipped))
	return res
}

// quotedOption reports whether line is wholly wrapped in one pair of double
// quotes and returns the text between them. Lines with any other quote are
// unbalanced and read as plain lines.
func quotedOption(line string) (string, bool) {
	line = quoteReplacer.Replace(line)
	if len(line) < 2 || line[0] != '"' || line[len(line)-1] != '"' {
		return "", false
	}
	inner := line[1 : len(line)-1]
	if strings.Contains(inner, `"`) {
		return "", false
	}
	return strings.TrimSpace(inner), true
}

// explicitChoice matches a bare line against the teams of a game.
func explicitChoice(game league.Game, line string) (league.Side, bool) {
	if game.HomeTeam != "" && strings.EqualFold(line, game.HomeTeam) {
		return league.SideHome, true
	}
	if game.AwayTeam != "" && strings.EqualFold(line, game.AwayTeam) {
		return league.SideAway, true
	}
	return league.SideUnresolved, false
}
