package commands

import (
	"errors"
	"fmt"
	"strconv"

	"market/internal/cli/api"
	"market/internal/cli/repo"
	"market/internal/cli/repo/fs"
	"market/internal/config"
)

// ErrNotLoggedIn is returned by commands that need a stored token.
var ErrNotLoggedIn = errors.New("not logged in: run login first")

func sessionStore(cfg *config.Config) repo.SessionStore {
	return fs.AuthFSStore{TokenPath: cfg.TokenFile}
}

// requireToken loads the stored token or fails with ErrNotLoggedIn.
func requireToken(cfg *config.Config) (string, error) {
	tok, err := sessionStore(cfg).Load()
	if err != nil || tok == "" {
		return "", ErrNotLoggedIn
	}
	return tok, nil
}

func endpoint(cfg *config.Config, format string, a ...any) string {
	return api.Endpoint(cfg.ServerURL, fmt.Sprintf(format, a...))
}

// parseID parses a positive numeric argument.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrUsage
	}
	return id, nil
}

// optionalPage reads an optional trailing page argument.
func optionalPage(args []string) (int, error) {
	if len(args) == 0 {
		return 0, nil
	}
	p, err := strconv.Atoi(args[0])
	if err != nil || p < 0 {
		return 0, ErrUsage
	}
	return p, nil
}

// Shapes the CLI reads back from the server.
type userView struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Nickname    string `json:"nickname"`
	Address     string `json:"address"`
	SearchScope string `json:"searchScope"`
	Coordinate  struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"coordinate"`
}

type itemView struct {
	ID             int64  `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	MinPriceWanted int    `json:"minPriceWanted"`
	Status         string `json:"status"`
	StatusLabel    string `json:"statusLabel"`
	ImageURL       string `json:"imageUrl"`
	Username       string `json:"username"`
}

type negotiationView struct {
	ID             int64  `json:"id"`
	ItemID         int64  `json:"itemId"`
	SuggestedPrice int    `json:"suggestedPrice"`
	Status         string `json:"status"`
	Username       string `json:"username"`
	ItemTitle      string `json:"itemTitle"`
}

type reviewView struct {
	ID           int64   `json:"id"`
	ItemID       int64   `json:"itemId"`
	ReviewerID   int64   `json:"reviewerId"`
	Score        float64 `json:"score"`
	Content      string  `json:"content"`
	ReviewerType string  `json:"reviewerType"`
}
