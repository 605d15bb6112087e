package commands

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"market/internal/cli/api"
	"market/internal/config"
)

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Show the logged in user" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	tok, err := requireToken(cfg)
	if err != nil {
		return err
	}
	var u userView
	if err := api.Call(ctx, http.MethodGet, endpoint(cfg, "/users/me"), nil, tok, &u); err != nil {
		return err
	}
	fmt.Fprintf(Out, "id:        %d\n", u.ID)
	fmt.Fprintf(Out, "username:  %s\n", u.Username)
	fmt.Fprintf(Out, "address:   %s\n", u.Address)
	fmt.Fprintf(Out, "location:  %.6f, %.6f\n", u.Coordinate.Lat, u.Coordinate.Lng)
	fmt.Fprintf(Out, "scope:     %s\n", u.SearchScope)
	return nil
}

type scopeCmd struct{}

func (scopeCmd) Name() string        { return "scope" }
func (scopeCmd) Description() string { return "Set item search radius" }
func (scopeCmd) Usage() string       { return "scope <NARROW|NORMAL|WIDE>" }

func (scopeCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	tok, err := requireToken(cfg)
	if err != nil {
		return err
	}
	req := map[string]string{"searchScope": strings.ToUpper(args[0])}
	var u userView
	if err := api.Call(ctx, http.MethodPut, endpoint(cfg, "/search-scope"), req, tok, &u); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Search scope: %s\n", u.SearchScope)
	return nil
}

func init() {
	RegisterCmd(statusCmd{})
	RegisterCmd(scopeCmd{})
}
