package notifier

import (
	"sync"

	"github.com/mauv0809/tribble-pickem/internal/scoring"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies
	SendPollSummaryFunc           func(summary PollSummary, dryRun bool) (string, error)
	SendStandingsFunc             func(report StandingsReport, dryRun bool) (string, error)
	FormatStandingsResponseFunc   func(title string, week int, standings []scoring.Standing) (any, error)
	FormatNoStandingsResponseFunc func(week int) (any, error)

	// Call records
	SendPollSummaryCalls []struct {
		Summary PollSummary
		DryRun  bool
	}
	SendStandingsCalls []struct {
		Report StandingsReport
		DryRun bool
	}
	FormatStandingsResponseCalls []struct {
		Title     string
		Week      int
		Standings []scoring.Standing
	}
	FormatNoStandingsResponseCalls []int
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendPollSummaryCalls = nil
	m.SendStandingsCalls = nil
	m.FormatStandingsResponseCalls = nil
	m.FormatNoStandingsResponseCalls = nil
}

func (m *Mock) SendPollSummary(summary PollSummary, dryRun bool) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendPollSummaryCalls = append(m.SendPollSummaryCalls, struct {
		Summary PollSummary
		DryRun  bool
	}{summary, dryRun})
	if m.SendPollSummaryFunc != nil {
		return m.SendPollSummaryFunc(summary, dryRun)
	}
	return "mock-ts", nil
}

func (m *Mock) SendStandings(report StandingsReport, dryRun bool) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendStandingsCalls = append(m.SendStandingsCalls, struct {
		Report StandingsReport
		DryRun bool
	}{report, dryRun})
	if m.SendStandingsFunc != nil {
		return m.SendStandingsFunc(report, dryRun)
	}
	return "mock-ts", nil
}

func (m *Mock) FormatStandingsResponse(title string, week int, standings []scoring.Standing) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FormatStandingsResponseCalls = append(m.FormatStandingsResponseCalls, struct {
		Title     string
		Week      int
		Standings []scoring.Standing
	}{title, week, standings})
	if m.FormatStandingsResponseFunc != nil {
		return m.FormatStandingsResponseFunc(title, week, standings)
	}
	return nil, nil
}

func (m *Mock) FormatNoStandingsResponse(week int) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FormatNoStandingsResponseCalls = append(m.FormatNoStandingsResponseCalls, week)
	if m.FormatNoStandingsResponseFunc != nil {
		return m.FormatNoStandingsResponseFunc(week)
	}
	return nil, nil
}
