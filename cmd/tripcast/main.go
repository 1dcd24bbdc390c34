package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	kongdotenv "github.com/titusjaka/kong-dotenv-go"

	"tripcast/internal/advisory"
	"tripcast/internal/api"
	"tripcast/internal/app"
	"tripcast/internal/geocode"
	"tripcast/internal/meteo"
)

var cli struct {
	GeocodeURL    string        `help:"Nominatim base URL." default:"https://nominatim.openstreetmap.org"`
	MeteoURL      string        `help:"Open-Meteo base URL." default:"https://api.open-meteo.com"`
	OpenAIKey     string        `env:"OPENAI_API_KEY" help:"API key for travel advisories. Advisories are disabled without it."`
	AdvisoryModel string        `help:"Chat model used for travel advisories." default:"gpt-4o-mini"`
	Debounce      time.Duration `help:"Suggestion debounce interval." default:"260ms"`

	Serve  serveCmd  `cmd:"" default:"withargs" help:"Run the HTTP server."`
	Lookup lookupCmd `cmd:"" help:"Interactive terminal lookup."`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("tripcast"),
		kong.Description("Travel weather lookup: place suggestions, 7-day outlook, AI advisory."),
		kong.Configuration(kongdotenv.ENVFileReader, ".env"),
		kong.UsageOnError(),
	)
	kctx.FatalIfErrorf(kctx.Run())
}

func buildApp() *app.App {
	a := &app.App{
		Geo:   geocode.NewClient(cli.GeocodeURL),
		Meteo: meteo.NewClient(cli.MeteoURL),
	}

	adv, err := advisory.NewAdvisor(cli.OpenAIKey, cli.AdvisoryModel)
	if err != nil {
		log.Printf("advisories disabled: %v", err)
	} else {
		a.Advisor = adv
	}
	return a
}

type serveCmd struct {
	Port string `help:"HTTP server port." default:"8080"`
}

func (c *serveCmd) Run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	server := api.NewServer(buildApp(), c.Port)
	log.Printf("starting server on :%s", c.Port)
	return server.Run(ctx)
}
