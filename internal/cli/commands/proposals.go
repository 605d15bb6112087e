package commands

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"market/internal/cli/api"
	"market/internal/config"
)

type proposeCmd struct{}

func (proposeCmd) Name() string        { return "propose" }
func (proposeCmd) Description() string { return "Offer a price for an item" }
func (proposeCmd) Usage() string       { return "propose <itemId> <price>" }

func (proposeCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	itemID, err := parseID(args[0])
	if err != nil {
		return err
	}
	price, err := strconv.Atoi(args[1])
	if err != nil {
		return ErrUsage
	}
	tok, err := requireToken(cfg)
	if err != nil {
		return err
	}
	req := map[string]any{"status": "SUGGEST", "suggestedPrice": price}
	var n negotiationView
	if err := api.Call(ctx, http.MethodPost, endpoint(cfg, "/items/%d/proposals", itemID), req, tok, &n); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Proposal #%d sent: %d for item #%d\n", n.ID, n.SuggestedPrice, n.ItemID)
	return nil
}

type proposalsCmd struct{}

func (proposalsCmd) Name() string        { return "proposals" }
func (proposalsCmd) Description() string { return "List received or sent proposals" }
func (proposalsCmd) Usage() string       { return "proposals <received|sent> [page]" }

func (proposalsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return ErrUsage
	}
	box := args[0]
	if box != "received" && box != "sent" {
		return ErrUsage
	}
	page, err := optionalPage(args[1:])
	if err != nil {
		return err
	}
	tok, err := requireToken(cfg)
	if err != nil {
		return err
	}
	var p api.Page[negotiationView]
	if err := api.Call(ctx, http.MethodGet, endpoint(cfg, "/items/%s/proposals?page=%d", box, page), nil, tok, &p); err != nil {
		return err
	}
	if len(p.Content) == 0 {
		fmt.Fprintln(Out, "No proposals")
		return nil
	}
	for _, n := range p.Content {
		fmt.Fprintf(Out, "- #%d  item #%d %s  %d by %s  [%s]\n", n.ID, n.ItemID, n.ItemTitle, n.SuggestedPrice, n.Username, n.Status)
	}
	return nil
}

func init() {
	RegisterCmd(proposeCmd{})
	RegisterCmd(proposalsCmd{})
}
