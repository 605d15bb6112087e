package commands

import (
	"context"
	"fmt"
	"net/http"

	"market/internal/cli/api"
	"market/internal/config"
)

type itemsCmd struct{}

func (itemsCmd) Name() string { return "items" }
func (itemsCmd) Description() string {
	return "List items (nearby with --near, needs login)"
}
func (itemsCmd) Usage() string { return "items [--near] [page]" }

func (itemsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	path, tok := "/items", ""
	if len(args) > 0 && args[0] == "--near" {
		var err error
		if tok, err = requireToken(cfg); err != nil {
			return err
		}
		path = "/itemsTest"
		args = args[1:]
	}
	if len(args) > 1 {
		return ErrUsage
	}
	page, err := optionalPage(args)
	if err != nil {
		return err
	}
	var p api.Page[itemView]
	if err := api.Call(ctx, http.MethodGet, endpoint(cfg, "%s?page=%d", path, page), nil, tok, &p); err != nil {
		return err
	}
	if len(p.Content) == 0 {
		fmt.Fprintln(Out, "No items")
		return nil
	}
	for _, it := range p.Content {
		fmt.Fprintf(Out, "- #%d  %s  %d  [%s]\n", it.ID, it.Title, it.MinPriceWanted, it.Status)
	}
	fmt.Fprintf(Out, "Page %d/%d, total %d\n", p.Page+1, p.TotalPages, p.TotalElements)
	return nil
}

type itemCmd struct{}

func (itemCmd) Name() string        { return "item" }
func (itemCmd) Description() string { return "Show one item" }
func (itemCmd) Usage() string       { return "item <id>" }

func (itemCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	var it itemView
	if err := api.Call(ctx, http.MethodGet, endpoint(cfg, "/items/%d", id), nil, "", &it); err != nil {
		return err
	}
	fmt.Fprintf(Out, "id:          %d\n", it.ID)
	fmt.Fprintf(Out, "title:       %s\n", it.Title)
	fmt.Fprintf(Out, "description: %s\n", it.Description)
	fmt.Fprintf(Out, "price:       %d\n", it.MinPriceWanted)
	fmt.Fprintf(Out, "status:      %s (%s)\n", it.Status, it.StatusLabel)
	fmt.Fprintf(Out, "seller:      %s\n", it.Username)
	if it.ImageURL != "" {
		fmt.Fprintf(Out, "image:       %s\n", it.ImageURL)
	}
	return nil
}

func init() {
	RegisterCmd(itemsCmd{})
	RegisterCmd(itemCmd{})
}
