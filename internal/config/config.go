package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/goserg/chessleague/internal/rating"
)

type Server struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	Debug        bool   `toml:"debug_mode"`
	TgBotEnabled bool   `toml:"tg_bot_enabled"`
}

type TgBot struct {
	TelegramApiToken string `toml:"telegram_apitoken"`
}

type Rating struct {
	Glicko bool `toml:"glicko"`

	StartingRating     float64 `toml:"starting_rating"`
	StartingDeviation  float64 `toml:"starting_deviation"`
	DeviationFloor     float64 `toml:"deviation_floor"`
	ApproxDeviation    float64 `toml:"approx_deviation"`
	UncertaintyPeriods int     `toml:"uncertainty_periods"`

	KFactor float64 `toml:"k_factor"`
	Scale   float64 `toml:"elo_scale"`

	PenaltyRate    float64 `toml:"penalty_rate"`
	PenaltyGrowth  float64 `toml:"penalty_growth"`
	CutoffFraction float64 `toml:"penalty_cutoff_fraction"`
	MaxPenalty     float64 `toml:"max_penalty"`
	Bonus          float64 `toml:"bonus"`
}

type Paths struct {
	NamesFile string `toml:"names_file"`
	GamesFile string `toml:"games_file"`
	DBFile    string `toml:"db_file"`
	ChartFile string `toml:"chart_file"`
}

type Config struct {
	Server Server
	TgBot  TgBot
	Rating Rating
	Paths  Paths
}

func Default() Config {
	return Config{
		Server: Server{
			Host: "localhost",
			Port: 3000,
		},
		Rating: Rating{
			StartingRating:     1500,
			StartingDeviation:  350,
			DeviationFloor:     50,
			ApproxDeviation:    60,
			UncertaintyPeriods: 10,
			KFactor:            20,
			Scale:              400,
			CutoffFraction:     0.75,
			MaxPenalty:         20,
		},
		Paths: Paths{
			NamesFile: "names.txt",
			GamesFile: "games.txt",
			ChartFile: "ratingsplot.png",
		},
	}
}

func New() (Config, error) {
	cfg := Default()

	err := decodeFile("configs/server.toml", &cfg.Server)
	if err != nil {
		return Config{}, err
	}
	err = decodeFile("configs/rating.toml", &cfg.Rating)
	if err != nil {
		return Config{}, err
	}
	err = decodeFile("configs/paths.toml", &cfg.Paths)
	if err != nil {
		return Config{}, err
	}
	token := os.Getenv("TELEGRAM_APITOKEN")
	if token != "" {
		cfg.TgBot.TelegramApiToken = token
	}
	return cfg, nil
}

// decodeFile overlays a toml file onto dst; a missing file keeps the
// defaults.
func decodeFile(path string, dst any) error {
	_, err := toml.DecodeFile(path, dst)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Constants maps the rating section onto the engine's constants.
func (r Rating) Constants() rating.Constants {
	mode := rating.ModeClassic
	if r.Glicko {
		mode = rating.ModeGlicko
	}
	return rating.Constants{
		Mode:               mode,
		StartingRating:     r.StartingRating,
		StartingDeviation:  r.StartingDeviation,
		DeviationFloor:     r.DeviationFloor,
		ApproxDeviation:    r.ApproxDeviation,
		UncertaintyPeriods: r.UncertaintyPeriods,
		KFactor:            r.KFactor,
		Scale:              r.Scale,
		PenaltyRate:        r.PenaltyRate,
		PenaltyGrowth:      r.PenaltyGrowth,
		PenaltyCutoff:      r.CutoffFraction * r.StartingRating,
		MaxPenalty:         r.MaxPenalty,
		Bonus:              r.Bonus,
	}
}
