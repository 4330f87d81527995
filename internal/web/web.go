package web

import (
	"io/fs"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html"

	embedded "github.com/goserg/chessleague"
	"github.com/goserg/chessleague/internal/config"
	"github.com/goserg/chessleague/internal/service"
	"github.com/goserg/chessleague/internal/web/webpath"
)

// Server is the read-only league UI: leaderboard, game log, player
// cards and the anomaly report.
type Server struct {
	ratingService *service.RatingService
	app           *fiber.App
	cfg           config.Server
}

func New(rs *service.RatingService, cfg config.Server) (*Server, error) {
	server := Server{
		ratingService: rs,
		cfg:           cfg,
	}

	fsFS, err := fs.Sub(embedded.Views, "views")
	if err != nil {
		return nil, err
	}
	engine := html.NewFileSystem(http.FS(fsFS), ".html")
	engine.Reload(cfg.Debug)
	engine.Debug(cfg.Debug)
	engine.AddFunc("FormatDate", formatDate)
	engine.AddFunc("FormatRating", formatRating)
	engine.AddFunc("FormatDelta", formatDelta)

	app := fiber.New(fiber.Config{
		Views: engine,
	})
	app.Get(webpath.Home, func(ctx *fiber.Ctx) error {
		return ctx.Redirect(webpath.Ratings)
	})
	app.Get(webpath.Ratings, server.handleRatings)
	app.Get(webpath.GamesList, server.handleGames)
	app.Get(webpath.GetPlayers, server.handlePlayerCard)
	app.Get(webpath.Anomalies, server.handleReport)
	server.app = app
	return &server, nil
}

func (s *Server) Serve() error {
	return s.app.Listen(s.cfg.Host + ":" + strconv.Itoa(s.cfg.Port))
}

func (s *Server) handleRatings(ctx *fiber.Ctx) error {
	d := newData("Ratings").
		With("Button", "ratings").
		With("Players", s.ratingService.GetRatings()).
		With("Glicko", s.ratingService.Glicko())
	return ctx.Render("index", d, "layouts/main")
}

func (s *Server) handleGames(ctx *fiber.Ctx) error {
	d := newData("Games").
		With("Button", "games").
		With("Games", s.ratingService.GetGames())
	return ctx.Render("games", d, "layouts/main")
}

func (s *Server) handlePlayerCard(ctx *fiber.Ctx) error {
	card, err := s.ratingService.PlayerCard(ctx.Params("id"))
	if err != nil {
		return err
	}
	d := newData(card.Player.Name).
		With("Button", "playerCard").
		With("Card", card).
		With("Glicko", s.ratingService.Glicko())
	return ctx.Render("playerCard", d, "layouts/main")
}

func (s *Server) handleReport(ctx *fiber.Ctx) error {
	d := newData("Report").
		With("Button", "report").
		With("Report", s.ratingService.Report())
	return ctx.Render("report", d, "layouts/main")
}
