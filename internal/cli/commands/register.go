package commands

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"market/internal/cli/api"
	"market/internal/config"
)

type coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type RegisterRequest struct {
	Username   string     `json:"username"`
	Password   string     `json:"password"`
	Address    string     `json:"address"`
	Coordinate coordinate `json:"coordinate"`
}

type registerCmd struct{}

func (registerCmd) Name() string        { return "register" }
func (registerCmd) Description() string { return "Create an account" }
func (registerCmd) Usage() string       { return "register <username> <password> <address> <lat> <lng>" }

func (registerCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 5 {
		return ErrUsage
	}
	lat, errLat := strconv.ParseFloat(args[3], 64)
	lng, errLng := strconv.ParseFloat(args[4], 64)
	if errLat != nil || errLng != nil {
		return ErrUsage
	}
	req := RegisterRequest{
		Username:   args[0],
		Password:   args[1],
		Address:    args[2],
		Coordinate: coordinate{Lat: lat, Lng: lng},
	}
	var u userView
	if err := api.Call(ctx, http.MethodPost, endpoint(cfg, "/join"), req, "", &u); err != nil {
		return err
	}
	if err := sessionStore(cfg).SaveLogin(u.Username); err != nil {
		return fmt.Errorf("saving login: %w", err)
	}
	fmt.Fprintf(Out, "Registered %s (id %d)\n", u.Username, u.ID)
	return nil
}

func init() { RegisterCmd(registerCmd{}) }
