package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/mauv0809/tribble-pickem/internal/database"
	"github.com/mauv0809/tribble-pickem/internal/league"
	"github.com/mauv0809/tribble-pickem/internal/roster"
	"github.com/mauv0809/tribble-pickem/internal/scoring"
	"github.com/spf13/cobra"
)

var teams = []string{
	"Chiefs", "Eagles", "Bills", "Jets", "Lions", "Bears", "49ers", "Cowboys",
	"Ravens", "Steelers", "Packers", "Vikings", "Dolphins", "Patriots", "Rams", "Seahawks",
}

// Simplified config loading for the script
func loadConfig() (dbName, rosterFile string) {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}
	dbName, ok := os.LookupEnv("DB_NAME")
	if !ok {
		dbName = "pickem.db"
	}
	return dbName, os.Getenv("ROSTER_FILE")
}

var (
	weeks        int
	gamesPerWeek int
	seed         int64
)

var rootCmd = &cobra.Command{
	Use:   "pickem-seeder",
	Short: "Fill a local database with a randomly played season",
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Info("Starting database seeder...")
		dbName, rosterFile := loadConfig()

		// Seeding always targets a local database.
		db, teardown, err := database.InitDB(dbName, "", "")
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer teardown()

		registry, err := roster.LoadOrDefault(rosterFile)
		if err != nil {
			return fmt.Errorf("failed to load roster: %w", err)
		}
		if err := seedLeague(league.New(db), registry, weeks, gamesPerWeek, seed); err != nil {
			return err
		}
		log.Info("Successfully seeded the league.", "weeks", weeks, "db", dbName)
		return nil
	},
}

func init() {
	rootCmd.Flags().IntVar(&weeks, "weeks", 6, "Number of weeks to seed")
	rootCmd.Flags().IntVar(&gamesPerWeek, "games", 8, "Games per week")
	rootCmd.Flags().Int64Var(&seed, "seed", 1, "Random seed")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while seeding '%s'", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// seedLeague stores weeks of random games and picks with their weekly and
// cumulative scores.
func seedLeague(store league.LeagueStore, registry *roster.Registry, weeks, gamesPerWeek int, seed int64) error {
	if err := store.SyncParticipants(registry.Names()); err != nil {
		return fmt.Errorf("failed to sync participants: %w", err)
	}
	if gamesPerWeek*2 > len(teams) {
		gamesPerWeek = len(teams) / 2
	}
	rng := rand.New(rand.NewSource(seed))

	for week := 1; week <= weeks; week++ {
		games, picks := seedWeek(rng, week, gamesPerWeek, registry.Names())
		if err := store.ReplaceWeek(week, games, picks); err != nil {
			return fmt.Errorf("failed to store week %d: %w", week, err)
		}

		weekly := scoring.WeeklyScores(week, scoring.CalculateScores(games, picks))
		if err := store.ReplaceWeeklyScores(week, weekly); err != nil {
			return fmt.Errorf("failed to store weekly scores for week %d: %w", week, err)
		}
		all, err := store.GetWeeklyScores()
		if err != nil {
			return fmt.Errorf("failed to read weekly scores: %w", err)
		}
		cumulative := scoring.CumulativeScores(all, week, registry)
		if err := store.ReplaceCumulativeScores(week, cumulative); err != nil {
			return fmt.Errorf("failed to store cumulative scores for week %d: %w", week, err)
		}

		leader := scoring.Rank(cumulative)[0]
		log.Info("Seeded week", "week", week, "games", len(games), "picks", len(picks), "leader", leader.Participant, "score", leader.Score)
	}
	return nil
}

// seedWeek pairs shuffled teams into games with a random winner and has every
// participant pick a side in every game.
func seedWeek(rng *rand.Rand, week, n int, participants []string) ([]league.Game, []league.Pick) {
	order := rng.Perm(len(teams))
	games := make([]league.Game, n)
	for i := range games {
		winner := league.SideHome
		if rng.Intn(2) == 1 {
			winner = league.SideAway
		}
		games[i] = league.Game{
			ID:       uuid.NewString(),
			Week:     week,
			HomeTeam: teams[order[2*i]],
			AwayTeam: teams[order[2*i+1]],
			Winner:   winner,
		}
	}

	picks := make([]league.Pick, 0, n*len(participants))
	for _, g := range games {
		for _, name := range participants {
			side := league.SideHome
			if rng.Intn(2) == 1 {
				side = league.SideAway
			}
			picks = append(picks, league.Pick{
				ID:          uuid.NewString(),
				Participant: name,
				Week:        week,
				GameID:      g.ID,
				Choice:      g.Team(side),
				Side:        side,
			})
		}
	}
	return games, picks
}
