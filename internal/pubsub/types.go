package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventPollImported    EventType = "poll-imported"
	EventResultRecorded  EventType = "result-recorded"
	EventRecalculateWeek EventType = "recalculate-week"
	EventScoresUpdated   EventType = "scores-updated"
)

// WeekEvent is the payload of events that concern a whole week.
type WeekEvent struct {
	Week   int    `msgpack:"week"`
	GameID string `msgpack:"game_id,omitempty"`
	Games  int    `msgpack:"games,omitempty"`
	Picks  int    `msgpack:"picks,omitempty"`
}

// Envelope is the JSON body Pub/Sub push subscriptions deliver.
type Envelope struct {
	Subscription string `json:"subscription"`
	Message      struct {
		ID   string `json:"messageId"`
		Data string `json:"data"`
	} `json:"message"`
}
