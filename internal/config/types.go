package config

// Config holds all configuration for the application.
type Config struct {
	DBName     string
	Port       string
	Slack      SlackConfig
	Turso      TursoConfig
	ProjectID  string
	RosterFile string
}
type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
}
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
