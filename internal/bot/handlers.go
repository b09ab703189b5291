package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/drillbot/internal/drill"
	"github.com/example/drillbot/pkg/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/samber/lo"
)

// HandleCommand handles bot commands
func (b *Bot) HandleCommand(ctx context.Context, message *tgbotapi.Message) error {
	chatID := message.Chat.ID
	switch message.Command() {
	case "start":
		msg := tgbotapi.NewMessage(chatID, "Welcome! 🎓 Cards come back just before you would forget them.\n\nUse /review to start a session.")
		msg.ReplyMarkup = createKeyboard(mainMenuButtons())
		return b.send(msg)
	case "help":
		return b.handleHelp(chatID)
	case "review":
		return b.startSession(ctx, chatID)
	case "stats":
		return b.handleStats(ctx, chatID)
	default:
		return b.send(tgbotapi.NewMessage(chatID, "Unknown command. Use /help to see the commands."))
	}
}

func (b *Bot) handleHelp(chatID int64) error {
	text := `Available commands:
/review - review the cards that are due
/stats - show deck statistics
/help - show this message

Grade each answer from 0 to 5:
0 - complete blackout
1 - wrong, but remembered on seeing the answer
2 - wrong, but the answer felt familiar
3 - correct with serious difficulty
4 - correct after some hesitation
5 - perfect`
	return b.send(tgbotapi.NewMessage(chatID, text))
}

// HandleCallback handles inline button presses
func (b *Bot) HandleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) error {
	if callback.Message == nil {
		return fmt.Errorf("invalid callback data: message is missing")
	}
	// Always answer the callback query to remove the loading state
	if _, err := b.out.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		b.log.WithError(err).Warn("failed to answer callback")
	}

	chatID := callback.Message.Chat.ID
	switch data := callback.Data; {
	case data == callbackStartReview:
		return b.startSession(ctx, chatID)
	case data == callbackShowStats:
		return b.handleStats(ctx, chatID)
	case strings.HasPrefix(data, callbackAnswer):
		id, err := parseAnswerCallback(data)
		if err != nil {
			return err
		}
		return b.showAnswer(ctx, callback.Message, id)
	case strings.HasPrefix(data, callbackGrade):
		id, q, err := parseGradeCallback(data)
		if err != nil {
			return err
		}
		res, err := b.drill.Review(ctx, id, q, b.now())
		if err != nil {
			return err
		}
		b.dropFromSession(id)
		text := fmt.Sprintf("Graded %d. Next review: %s.", q, formatInterval(res.Item.LastInterval))
		if res.Leech {
			text += "\n⚠️ This card keeps slipping. Consider rewording it."
		}
		if err := b.send(tgbotapi.NewMessage(chatID, text)); err != nil {
			return err
		}
		return b.showNext(ctx, chatID)
	default:
		return b.send(tgbotapi.NewMessage(chatID, "⚠️ Unknown action"))
	}
}

func (b *Bot) startSession(ctx context.Context, chatID int64) error {
	queue, err := b.drill.Queue(ctx, b.now())
	if err != nil {
		return err
	}
	entries := queue.Items(b.cfg.SessionSize)
	b.mu.Lock()
	b.session = lo.Map(entries, func(e drill.Entry, _ int) int64 { return e.Item.ID })
	b.mu.Unlock()

	if len(entries) == 0 {
		return b.send(tgbotapi.NewMessage(chatID, "🎉 Nothing is due. Come back later!"))
	}
	text := fmt.Sprintf("Starting a session with %d cards.", len(entries))
	if skipped := len(queue.Skipped); skipped > 0 {
		text += fmt.Sprintf(" %d leeches were skipped.", skipped)
	}
	if err := b.send(tgbotapi.NewMessage(chatID, text)); err != nil {
		return err
	}
	return b.showNext(ctx, chatID)
}

func (b *Bot) showNext(ctx context.Context, chatID int64) error {
	b.mu.Lock()
	var (
		id int64
		ok bool
	)
	if len(b.session) > 0 {
		id, ok = b.session[0], true
	}
	b.mu.Unlock()

	if !ok {
		msg := tgbotapi.NewMessage(chatID, "✅ Session complete!")
		msg.ReplyMarkup = createKeyboard(mainMenuButtons())
		return b.send(msg)
	}
	item, err := b.items.GetByID(ctx, id)
	if err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(chatID, questionText(item, b.drill.Config().IsLeech(item.State())))
	msg.ReplyMarkup = createKeyboard(answerButtons(item.ID))
	return b.send(msg)
}

func (b *Bot) showAnswer(ctx context.Context, message *tgbotapi.Message, id int64) error {
	item, err := b.items.GetByID(ctx, id)
	if err != nil {
		return err
	}
	preview, err := b.drill.Preview(item, b.now())
	if err != nil {
		return err
	}
	text := questionText(item, false) + "\n\n💡 " + item.Answer
	edit := tgbotapi.NewEditMessageTextAndMarkup(message.Chat.ID, message.MessageID, text,
		createKeyboard(gradeButtons(item.ID, preview)))
	return b.send(edit)
}

func (b *Bot) dropFromSession(id int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.session = lo.Without(b.session, id)
}

func (b *Bot) handleStats(ctx context.Context, chatID int64) error {
	stats, err := b.items.Statistics(ctx, b.now())
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		return b.send(tgbotapi.NewMessage(chatID, "No cards yet. Import a deck first."))
	}

	var text strings.Builder
	text.WriteString("📊 Statistics\n")
	for _, s := range stats {
		fmt.Fprintf(&text, "\n%s: %d cards, %d due, %d unseen, %d reviews", s.Deck, s.Items, s.Due, s.Unseen, s.TotalRepeats)
	}
	return b.send(tgbotapi.NewMessage(chatID, text.String()))
}

func questionText(item *models.Item, leech bool) string {
	text := fmt.Sprintf("📚 %s\n\n❓ %s", item.Deck, item.Question)
	if leech {
		text = "⚠️ Leech\n" + text
	}
	return text
}
