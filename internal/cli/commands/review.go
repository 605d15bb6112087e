package commands

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"market/internal/cli/api"
	"market/internal/config"
)

type reviewCmd struct{}

func (reviewCmd) Name() string        { return "review" }
func (reviewCmd) Description() string { return "Review the other side of a sold item" }
func (reviewCmd) Usage() string       { return "review <itemId> <revieweeId> <score> <content...>" }

func (reviewCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 4 {
		return ErrUsage
	}
	itemID, err := parseID(args[0])
	if err != nil {
		return err
	}
	revieweeID, err := parseID(args[1])
	if err != nil {
		return err
	}
	score, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return ErrUsage
	}
	tok, err := requireToken(cfg)
	if err != nil {
		return err
	}
	req := map[string]any{"score": score, "content": strings.Join(args[3:], " ")}
	var rv reviewView
	if err := api.Call(ctx, http.MethodPost, endpoint(cfg, "/item/%d/%d/review", itemID, revieweeID), req, tok, &rv); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Review #%d saved as %s\n", rv.ID, rv.ReviewerType)
	return nil
}

type reviewsCmd struct{}

func (reviewsCmd) Name() string        { return "reviews" }
func (reviewsCmd) Description() string { return "List reviews about a user" }
func (reviewsCmd) Usage() string       { return "reviews <userId> [page]" }

func (reviewsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return ErrUsage
	}
	userID, err := parseID(args[0])
	if err != nil {
		return err
	}
	page, err := optionalPage(args[1:])
	if err != nil {
		return err
	}
	var p api.Page[reviewView]
	if err := api.Call(ctx, http.MethodGet, endpoint(cfg, "/users/%d/reviews?page=%d", userID, page), nil, "", &p); err != nil {
		return err
	}
	if len(p.Content) == 0 {
		fmt.Fprintln(Out, "No reviews")
		return nil
	}
	for _, rv := range p.Content {
		fmt.Fprintf(Out, "- %.1f  %s  (%s, item #%d)\n", rv.Score, rv.Content, rv.ReviewerType, rv.ItemID)
	}
	return nil
}

func init() {
	RegisterCmd(reviewCmd{})
	RegisterCmd(reviewsCmd{})
}
