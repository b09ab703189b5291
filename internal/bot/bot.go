package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/example/drillbot/internal/drill"
	sr "github.com/example/drillbot/internal/spaced_repetition"
	"github.com/example/drillbot/pkg/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// sender is the part of the Telegram API the bot uses
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Drill runs the review sessions
type Drill interface {
	Queue(ctx context.Context, now time.Time) (*drill.Queue, error)
	Review(ctx context.Context, itemID int64, q sr.QualityResponse, now time.Time) (*drill.Result, error)
	Preview(item *models.Item, now time.Time) (map[sr.QualityResponse]sr.State, error)
	Config() sr.Config
}

// Items gives read access to stored items
type Items interface {
	GetByID(ctx context.Context, id int64) (*models.Item, error)
	Statistics(ctx context.Context, now time.Time) ([]models.DeckStatistics, error)
}

// Bot represents the Telegram bot application
type Bot struct {
	api   *tgbotapi.BotAPI
	out   sender
	drill Drill
	items Items
	cfg   Config
	log   *logrus.Entry
	now   func() time.Time

	mu      sync.Mutex
	session []int64 // item IDs still to be shown
}

// New creates a new bot instance
func New(token string, cfg Config, d Drill, items Items, logger *logrus.Logger) (*Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram token is not set")
	}
	if cfg.ChatID == 0 {
		return nil, fmt.Errorf("telegram chat ID is not set")
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("unable to create bot: %w", err)
	}
	b := newBot(api, cfg, d, items, logger)
	b.api = api
	b.log.Infof("Authorized on account %s", api.Self.UserName)
	return b, nil
}

func newBot(out sender, cfg Config, d Drill, items Items, logger *logrus.Logger) *Bot {
	return &Bot{
		out:   out,
		drill: d,
		items: items,
		cfg:   cfg,
		log:   logger.WithField("component", "bot"),
		now:   time.Now,
	}
}

// Start handles updates until ctx is cancelled
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			b.log.Info("Bot stopped")
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

// SendReminder implements the scheduler.Notifier interface
func (b *Bot) SendReminder(_ context.Context, due int) error {
	noun := "cards"
	if due == 1 {
		noun = "card"
	}
	msg := tgbotapi.NewMessage(b.cfg.ChatID, fmt.Sprintf("⏰ You have %d %s due for review.", due, noun))
	msg.ReplyMarkup = createKeyboard([][]MenuButton{{{Text: "🎯 Start review", CallbackData: callbackStartReview}}})
	return b.send(msg)
}

// handleUpdate handles incoming updates from Telegram
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	chat := update.FromChat()
	if chat == nil {
		return
	}
	if chat.ID != b.cfg.ChatID {
		b.log.WithField("chat", chat.ID).Warn("ignoring update from unknown chat")
		return
	}

	var err error
	switch {
	case update.Message != nil && update.Message.IsCommand():
		err = b.HandleCommand(ctx, update.Message)
	case update.CallbackQuery != nil:
		err = b.HandleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		err = b.send(tgbotapi.NewMessage(chat.ID, "I don't understand. Use /help to see the commands."))
	}
	if err != nil {
		b.log.WithError(err).Error("update failed")
		if sendErr := b.send(tgbotapi.NewMessage(chat.ID, "❌ Something went wrong. Please try again later.")); sendErr != nil {
			b.log.WithError(sendErr).Error("error reply failed")
		}
	}
}

func (b *Bot) send(c tgbotapi.Chattable) error {
	if _, err := b.out.Send(c); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}
