package tgbot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/goserg/chessleague/internal/config"
	"github.com/goserg/chessleague/internal/service"
)

// Bot answers read-only leaderboard queries in a telegram chat.
type Bot struct {
	bot           *tgbotapi.BotAPI
	log           *logrus.Logger
	ratingService *service.RatingService

	// cancel func to stop the bot
	cancel func()
}

func New(rs *service.RatingService, cfg config.TgBot, log *logrus.Logger) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramApiToken)
	if err != nil {
		return nil, fmt.Errorf("telegram api token: %w", err)
	}
	_, err = bot.GetMe()
	if err != nil {
		return nil, err
	}
	return &Bot{
		bot:           bot,
		log:           log,
		ratingService: rs,
	}, nil
}

func (b *Bot) Run() {
	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return
		case update := <-updates:
			if update.Message == nil { // ignore any non-Message updates
				continue
			}
			if !update.Message.IsCommand() { // ignore any non-command Messages
				continue
			}
			msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
			switch update.Message.Command() {
			case "help", "start":
				msg.Text = `Available commands: "/top", "/info name" and "/help".`
			case "top":
				msg.Text = b.processTop()
			case "info":
				msg.Text = b.processInfo(update.Message.CommandArguments())
			default:
				continue
			}
			if _, err := b.bot.Send(msg); err != nil {
				b.log.WithError(err).Error("telegram send failed")
			}
		}
	}
}

func (b *Bot) Stop() {
	if b.cancel != nil {
		b.cancel()
	}
	b.bot.StopReceivingUpdates()
}

func (b *Bot) processTop() string {
	ratings := b.ratingService.GetRatings()
	var buffer strings.Builder
	for i := range ratings {
		if i > 9 {
			break
		}
		buffer.WriteString(strconv.Itoa(ratings[i].RatingRank))
		buffer.WriteString(". ")
		buffer.WriteString(ratings[i].Name)
		buffer.WriteString(" (")
		buffer.WriteString(strconv.Itoa(int(ratings[i].Rating)))
		buffer.WriteString(")\n")
	}
	if buffer.Len() == 0 {
		return "no ratings yet"
	}
	return buffer.String()
}

func (b *Bot) processInfo(args string) string {
	name := strings.TrimSpace(args)
	if name == "" {
		return `usage: "/info name"`
	}
	player, err := b.ratingService.GetByName(name)
	if err != nil {
		return fmt.Sprintf("player %q not found", name)
	}
	var buffer strings.Builder
	fmt.Fprintf(&buffer, "%s\nrating %.0f (%+.0f)\n", player.Name, player.Rating, player.RatingChange)
	if b.ratingService.Glicko() {
		fmt.Fprintf(&buffer, "rating deviation %.0f\n", player.Deviation)
	}
	fmt.Fprintf(&buffer, "games played %d on %d days\n", player.GamesPlayed, player.GameDays)
	return buffer.String()
}
