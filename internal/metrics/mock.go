package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                     sync.Mutex
	pollsImported          int
	picksParsed            int
	pollLinesSkipped       int
	resultsRecorded        int
	recalculations         int
	recalculationDurations []float64
	slackNotifSent         int
	slackNotifFailed       int
	startupTime            float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		recalculationDurations: make([]float64, 0),
	}
}

func (m *Mock) IncPollsImported() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pollsImported++
}

func (m *Mock) AddPicksParsed(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.picksParsed += n
}

func (m *Mock) AddPollLinesSkipped(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pollLinesSkipped += n
}

func (m *Mock) IncResultsRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resultsRecorded++
}

func (m *Mock) IncRecalculations() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recalculations++
}

func (m *Mock) ObserveRecalculationDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recalculationDurations = append(m.recalculationDurations, seconds)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// PollsImported returns the number of times IncPollsImported was called.
func (m *Mock) PollsImported() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pollsImported
}

// PicksParsed returns the sum passed to AddPicksParsed.
func (m *Mock) PicksParsed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.picksParsed
}

// PollLinesSkipped returns the sum passed to AddPollLinesSkipped.
func (m *Mock) PollLinesSkipped() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pollLinesSkipped
}

// ResultsRecorded returns the number of times IncResultsRecorded was called.
func (m *Mock) ResultsRecorded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resultsRecorded
}

// Recalculations returns the number of times IncRecalculations was called.
func (m *Mock) Recalculations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recalculations
}

// RecalculationDurations returns every observed recalculation duration.
func (m *Mock) RecalculationDurations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]float64, len(m.recalculationDurations))
	copy(out, m.recalculationDurations)
	return out
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
