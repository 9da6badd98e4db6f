package league

import "sync"

// MockStore is a mock implementation of the LeagueStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	SyncParticipantsFunc        func(names []string) error
	GetParticipantsFunc         func() ([]Participant, error)
	ReplaceWeekFunc             func(week int, games []Game, picks []Pick) error
	GetGamesFunc                func(week int) ([]Game, error)
	GetGameFunc                 func(gameID string) (*Game, error)
	SetWinnerFunc               func(gameID string, winner Side) error
	GetPicksFunc                func(week int) ([]Pick, error)
	ReplaceWeeklyScoresFunc     func(week int, scores []WeeklyScore) error
	GetWeeklyScoresFunc         func() ([]WeeklyScore, error)
	ReplaceCumulativeScoresFunc func(week int, scores []CumulativeScore) error
	GetCumulativeScoresFunc     func(week int) ([]CumulativeScore, error)
	LatestWeekFunc              func() (int, error)
	ClearWeekFunc               func(week int) error

	// Call records
	SyncParticipantsCalls [][]string
	ReplaceWeekCalls      []struct {
		Week  int
		Games []Game
		Picks []Pick
	}
	SetWinnerCalls []struct {
		GameID string
		Winner Side
	}
	ReplaceWeeklyScoresCalls []struct {
		Week   int
		Scores []WeeklyScore
	}
	ReplaceCumulativeScoresCalls []struct {
		Week   int
		Scores []CumulativeScore
	}
	ClearWeekCalls []int
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) SyncParticipants(names []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SyncParticipantsCalls = append(m.SyncParticipantsCalls, names)
	if m.SyncParticipantsFunc != nil {
		return m.SyncParticipantsFunc(names)
	}
	return nil
}

func (m *MockStore) GetParticipants() ([]Participant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetParticipantsFunc != nil {
		return m.GetParticipantsFunc()
	}
	return nil, nil
}

func (m *MockStore) ReplaceWeek(week int, games []Game, picks []Pick) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReplaceWeekCalls = append(m.ReplaceWeekCalls, struct {
		Week  int
		Games []Game
		Picks []Pick
	}{week, games, picks})
	if m.ReplaceWeekFunc != nil {
		return m.ReplaceWeekFunc(week, games, picks)
	}
	return nil
}

func (m *MockStore) GetGames(week int) ([]Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetGamesFunc != nil {
		return m.GetGamesFunc(week)
	}
	return nil, nil
}

func (m *MockStore) GetGame(gameID string) (*Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetGameFunc != nil {
		return m.GetGameFunc(gameID)
	}
	return nil, ErrGameNotFound
}

func (m *MockStore) SetWinner(gameID string, winner Side) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetWinnerCalls = append(m.SetWinnerCalls, struct {
		GameID string
		Winner Side
	}{gameID, winner})
	if m.SetWinnerFunc != nil {
		return m.SetWinnerFunc(gameID, winner)
	}
	return nil
}

func (m *MockStore) GetPicks(week int) ([]Pick, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetPicksFunc != nil {
		return m.GetPicksFunc(week)
	}
	return nil, nil
}

func (m *MockStore) ReplaceWeeklyScores(week int, scores []WeeklyScore) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReplaceWeeklyScoresCalls = append(m.ReplaceWeeklyScoresCalls, struct {
		Week   int
		Scores []WeeklyScore
	}{week, scores})
	if m.ReplaceWeeklyScoresFunc != nil {
		return m.ReplaceWeeklyScoresFunc(week, scores)
	}
	return nil
}

func (m *MockStore) GetWeeklyScores() ([]WeeklyScore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetWeeklyScoresFunc != nil {
		return m.GetWeeklyScoresFunc()
	}
	return nil, nil
}

func (m *MockStore) ReplaceCumulativeScores(week int, scores []CumulativeScore) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReplaceCumulativeScoresCalls = append(m.ReplaceCumulativeScoresCalls, struct {
		Week   int
		Scores []CumulativeScore
	}{week, scores})
	if m.ReplaceCumulativeScoresFunc != nil {
		return m.ReplaceCumulativeScoresFunc(week, scores)
	}
	return nil
}

func (m *MockStore) GetCumulativeScores(week int) ([]CumulativeScore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetCumulativeScoresFunc != nil {
		return m.GetCumulativeScoresFunc(week)
	}
	return nil, nil
}

func (m *MockStore) LatestWeek() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LatestWeekFunc != nil {
		return m.LatestWeekFunc()
	}
	return 0, nil
}

func (m *MockStore) ClearWeek(week int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearWeekCalls = append(m.ClearWeekCalls, week)
	if m.ClearWeekFunc != nil {
		return m.ClearWeekFunc(week)
	}
	return nil
}
