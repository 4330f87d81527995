package main

import (
	"flag"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/goserg/chessleague/internal/config"
	"github.com/goserg/chessleague/internal/logger"
	"github.com/goserg/chessleague/internal/migrate"
	"github.com/goserg/chessleague/internal/parse"
	"github.com/goserg/chessleague/internal/render"
	"github.com/goserg/chessleague/internal/service"
	"github.com/goserg/chessleague/internal/storage"
	"github.com/goserg/chessleague/internal/storage/file"
	"github.com/goserg/chessleague/internal/storage/sqlite"
	"github.com/goserg/chessleague/internal/tgbot"
	"github.com/goserg/chessleague/internal/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.New()
	if err != nil {
		return err
	}

	glicko := flag.Bool("g", cfg.Rating.Glicko, "use glicko system")
	plot := flag.Bool("p", false, "plot rating histories to the chart file")
	serve := flag.Bool("serve", false, "serve the web ui")
	doImport := flag.Bool("import", false, "import the names and games files into the database")
	namesPath := flag.String("names", cfg.Paths.NamesFile, "player names file")
	gamesPath := flag.String("games", cfg.Paths.GamesFile, "game results file")
	dbPath := flag.String("db", cfg.Paths.DBFile, "sqlite database, empty to read the text files directly")
	flag.Parse()
	cfg.Rating.Glicko = *glicko

	log := logger.New(cfg.Server.Debug)

	var playerStorage storage.PlayerStorage
	var gameStorage storage.GameStorage
	if *dbPath != "" {
		st, err := sqlite.New(*dbPath)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := migrate.Up(st.DB()); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		if *doImport {
			if err := importFiles(st, *namesPath, *gamesPath); err != nil {
				return err
			}
			log.Info("import finished")
		}
		playerStorage, gameStorage = st, st
	} else {
		st := file.New(*namesPath, *gamesPath)
		playerStorage, gameStorage = st, st
	}

	ratingService := service.New(cfg.Rating.Constants(), playerStorage, gameStorage, log)
	if err := ratingService.Rebuild(); err != nil {
		return err
	}

	tbl := render.Table{Glicko: ratingService.Glicko()}
	for i, date := range ratingService.PeriodDates() {
		players, err := ratingService.GetRatingsAt(i)
		if err != nil {
			return err
		}
		gameCount, err := ratingService.GamesIn(i)
		if err != nil {
			return err
		}
		tbl.Write(os.Stdout, i, date.Format("Monday, 02. January 2006"), gameCount, players)
	}
	render.Summary(os.Stdout, ratingService.Report())

	if *plot {
		if err := renderChart(ratingService, cfg.Paths.ChartFile); err != nil {
			return err
		}
		log.WithField("file", cfg.Paths.ChartFile).Info("chart written")
	}

	if !*serve {
		return nil
	}
	if cfg.Server.TgBotEnabled {
		bot, err := tgbot.New(ratingService, cfg.TgBot, log)
		if err != nil {
			return err
		}
		go bot.Run()
		defer bot.Stop()
	}
	server, err := web.New(ratingService, cfg.Server)
	if err != nil {
		return err
	}
	return server.Serve()
}

func importFiles(st *sqlite.Storage, namesPath, gamesPath string) error {
	players, err := parse.NamesFile(namesPath)
	if err != nil {
		return err
	}
	games, err := parse.GamesFile(gamesPath)
	if err != nil {
		return err
	}
	if err := st.ImportPlayers(players); err != nil {
		return err
	}
	return st.ImportGames(games)
}

func renderChart(rs *service.RatingService, path string) error {
	players := rs.GetRatings()
	histories := make(map[string][]float64, len(players))
	for _, p := range players {
		history, err := rs.History(p.ID)
		if err != nil {
			return err
		}
		histories[p.ID] = history
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return render.Chart(f, players, histories)
}
