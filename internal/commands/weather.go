package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"strings"

	"ltask/internal/config"
	"ltask/internal/exitcode"
	"ltask/internal/logging"
	"ltask/internal/service"
	"ltask/internal/weather"
)

func init() {
	Register(&WeatherCmd{})
}

// WeatherCmd implements the weather command.
type WeatherCmd struct {
	httpClient *http.Client
}

// SetHTTPClient sets the HTTP client used for lookups (for testing).
func (c *WeatherCmd) SetHTTPClient(hc *http.Client) {
	c.httpClient = hc
}

func (c *WeatherCmd) Name() string      { return "weather" }
func (c *WeatherCmd) Aliases() []string { return nil }
func (c *WeatherCmd) Synopsis() string  { return "Show the current weather for a city" }
func (c *WeatherCmd) Usage() string     { return "ltask weather <city...>" }
func (c *WeatherCmd) NeedsStore() bool  { return false }

func (c *WeatherCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *WeatherCmd) Run(ctx context.Context, cfg *config.Config, svc service.TaskService, args []string, out, errOut io.Writer) int {
	city := strings.TrimSpace(strings.Join(args, " "))
	if city == "" {
		fmt.Fprintln(errOut, "error: city required")
		return exitcode.UserError
	}

	key, err := weather.LoadAPIKey(cfg.Weather.APIKeyEnv)
	if err != nil {
		logging.Error(ctx, cfg.Logger, err)
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.ConfigError
	}

	client := weather.New(cfg.WeatherOptions(), key, c.httpClient, cfg.Logger)
	report, err := client.Fetch(ctx, city)
	if err != nil {
		logging.Error(ctx, cfg.Logger, err)
		switch {
		case errors.Is(err, weather.ErrCityNotFound):
			fmt.Fprintln(out, weather.NotFoundMessage)
			return exitcode.UserError
		case errors.Is(err, weather.ErrUnauthorized):
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.ConfigError
		}
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	fmt.Fprintln(out, report.String())
	return exitcode.Success
}
