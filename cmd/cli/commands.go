package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var (
	week        int
	pollFile    string
	html        bool
	gameID      string
	winner      string
	clearResult bool
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(participantsCmd)
	rootCmd.AddCommand(gamesCmd)
	rootCmd.AddCommand(picksCmd)
	rootCmd.AddCommand(standingsCmd)
	rootCmd.AddCommand(weeklyCmd)
	rootCmd.AddCommand(importPollCmd)
	rootCmd.AddCommand(resultCmd)
	rootCmd.AddCommand(recalculateCmd)
	rootCmd.AddCommand(metricsCmd)

	for _, cmd := range []*cobra.Command{gamesCmd, picksCmd, standingsCmd, weeklyCmd, recalculateCmd} {
		cmd.Flags().IntVar(&week, "week", 0, "Week number (0 for the latest week)")
	}

	importPollCmd.Flags().IntVar(&week, "week", 0, "Week the poll belongs to")
	importPollCmd.Flags().StringVar(&pollFile, "file", "", "File holding the poll text, '-' for stdin")
	importPollCmd.Flags().BoolVar(&html, "html", false, "The file is an HTML page")
	importPollCmd.MarkFlagRequired("week")
	importPollCmd.MarkFlagRequired("file")

	resultCmd.Flags().StringVar(&gameID, "game", "", "ID of the game")
	resultCmd.Flags().StringVar(&winner, "winner", "", "home, away or the winning team's name")
	resultCmd.Flags().BoolVar(&clearResult, "clear", false, "Remove the recorded result instead")
	resultCmd.MarkFlagRequired("game")
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health", nil)
	},
}

var participantsCmd = &cobra.Command{
	Use:   "participants",
	Short: "List the league's participants",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/participants", nil)
	},
}

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List a week's games",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/games", weekQuery())
	},
}

var picksCmd = &cobra.Command{
	Use:   "picks",
	Short: "List a week's picks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/picks", weekQuery())
	},
}

var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "Show the season standings up to a week",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/standings", weekQuery())
	},
}

var weeklyCmd = &cobra.Command{
	Use:   "weekly",
	Short: "Show the scores of a single week",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/weekly", weekQuery())
	},
}

var importPollCmd = &cobra.Command{
	Use:   "import-poll",
	Short: "Import a week's poll from a file",
	RunE: func(cmd *cobra.Command, args []string) error {
		var in io.Reader = os.Stdin
		if pollFile != "-" {
			f, err := os.Open(pollFile)
			if err != nil {
				return fmt.Errorf("failed to open poll file: %w", err)
			}
			defer f.Close()
			in = f
		}
		contentType := "text/plain; charset=utf-8"
		if html || strings.HasSuffix(pollFile, ".html") || strings.HasSuffix(pollFile, ".htm") {
			contentType = "text/html; charset=utf-8"
		}
		return performPostRequest("/poll", weekQuery(), contentType, in)
	},
}

var resultCmd = &cobra.Command{
	Use:   "result",
	Short: "Record (or clear) the winner of a game",
	RunE: func(cmd *cobra.Command, args []string) error {
		params := url.Values{"game": {gameID}}
		if clearResult {
			return performPostRequest("/result/clear", params, "", nil)
		}
		if winner == "" {
			return fmt.Errorf("--winner is required unless --clear is set")
		}
		params.Set("winner", winner)
		return performPostRequest("/result", params, "", nil)
	},
}

var recalculateCmd = &cobra.Command{
	Use:   "recalculate",
	Short: "Rescore a week and post the standings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/recalculate", weekQuery(), "", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics", nil)
	},
}

func weekQuery() url.Values {
	params := url.Values{}
	if week > 0 {
		params.Set("week", strconv.Itoa(week))
	}
	return params
}

func buildURL(endpoint string, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	if dryRun {
		params.Set("dry_run", "true")
	}
	u := host + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

func performGetRequest(endpoint string, params url.Values) error {
	url := buildURL(endpoint, params)
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	return printResponse(resp)
}

func performPostRequest(endpoint string, params url.Values, contentType string, body io.Reader) error {
	url := buildURL(endpoint, params)
	fmt.Printf("Making request to %s\n", url)

	if contentType == "" {
		contentType = "text/plain; charset=utf-8"
	}
	resp, err := http.Post(url, contentType, body)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	if resp.StatusCode >= 400 {
		return fmt.Errorf("server responded with %s", resp.Status)
	}
	return nil
}
