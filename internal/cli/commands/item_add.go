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

type ItemCreateRequest struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	MinPriceWanted int    `json:"minPriceWanted"`
}

type itemAddCmd struct{}

func (itemAddCmd) Name() string        { return "item-add" }
func (itemAddCmd) Description() string { return "Put an item on sale" }
func (itemAddCmd) Usage() string       { return "item-add <title> <price> <description...>" }

func (itemAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 3 {
		return ErrUsage
	}
	price, err := strconv.Atoi(args[1])
	if err != nil {
		return ErrUsage
	}
	tok, err := requireToken(cfg)
	if err != nil {
		return err
	}
	req := ItemCreateRequest{Title: args[0], MinPriceWanted: price, Description: strings.Join(args[2:], " ")}
	var it itemView
	if err := api.Call(ctx, http.MethodPost, endpoint(cfg, "/items"), req, tok, &it); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Created:")
	fmt.Fprintf(Out, "  id:    %d\n", it.ID)
	fmt.Fprintf(Out, "  title: %s\n", it.Title)
	return nil
}

type itemStatusCmd struct{}

func (itemStatusCmd) Name() string        { return "item-status" }
func (itemStatusCmd) Description() string { return "Change sale status of your item" }
func (itemStatusCmd) Usage() string       { return "item-status <id> <SALE|RESERVATION|SOLD>" }

func (itemStatusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	tok, err := requireToken(cfg)
	if err != nil {
		return err
	}
	req := map[string]string{"status": strings.ToUpper(args[1])}
	var it itemView
	if err := api.Call(ctx, http.MethodPut, endpoint(cfg, "/items/status/%d", id), req, tok, &it); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Item #%d is now %s\n", it.ID, it.Status)
	return nil
}

func init() {
	RegisterCmd(itemAddCmd{})
	RegisterCmd(itemStatusCmd{})
}
