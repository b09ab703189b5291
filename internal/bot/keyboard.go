package bot

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	sr "github.com/example/drillbot/internal/spaced_repetition"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Callback data prefixes
const (
	callbackStartReview = "start_review"
	callbackShowStats   = "show_stats"
	callbackAnswer      = "answer_"
	callbackGrade       = "grade_"
)

// MenuButton represents a button in the menu
type MenuButton struct {
	Text         string
	CallbackData string
}

// createKeyboard creates a keyboard from menu buttons
func createKeyboard(buttons [][]MenuButton) tgbotapi.InlineKeyboardMarkup {
	var keyboard [][]tgbotapi.InlineKeyboardButton
	for _, row := range buttons {
		var keyboardRow []tgbotapi.InlineKeyboardButton
		for _, button := range row {
			keyboardRow = append(keyboardRow, tgbotapi.NewInlineKeyboardButtonData(button.Text, button.CallbackData))
		}
		keyboard = append(keyboard, keyboardRow)
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboard...)
}

func mainMenuButtons() [][]MenuButton {
	return [][]MenuButton{{
		{Text: "🎯 Review", CallbackData: callbackStartReview},
		{Text: "📊 Statistics", CallbackData: callbackShowStats},
	}}
}

func answerButtons(itemID int64) [][]MenuButton {
	return [][]MenuButton{{{Text: "👀 Show answer", CallbackData: callbackAnswer + strconv.FormatInt(itemID, 10)}}}
}

// gradeButtons lays out grades 0-2 and 3-5 on two rows, each labelled with
// the interval it would produce.
func gradeButtons(itemID int64, preview map[sr.QualityResponse]sr.State) [][]MenuButton {
	rows := make([][]MenuButton, 2)
	for q := sr.QualityBlackout; q <= sr.QualityPerfect; q++ {
		label := strconv.Itoa(int(q))
		if s, ok := preview[q]; ok {
			label += " · " + formatInterval(s.LastInterval)
		}
		row := 0
		if q >= sr.QualityCorrectDifficult {
			row = 1
		}
		rows[row] = append(rows[row], MenuButton{
			Text:         label,
			CallbackData: fmt.Sprintf("%s%d_%d", callbackGrade, itemID, q),
		})
	}
	return rows
}

// formatInterval renders an interval the way due dates are rounded.
func formatInterval(days float64) string {
	d := int(math.Round(days))
	switch {
	case days <= 0 || d == 0:
		return "now"
	case d == 1:
		return "1 day"
	default:
		return fmt.Sprintf("%d days", d)
	}
}

func parseAnswerCallback(data string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(data, callbackAnswer), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid item ID in callback data %q: %w", data, err)
	}
	return id, nil
}

func parseGradeCallback(data string) (int64, sr.QualityResponse, error) {
	parts := strings.Split(strings.TrimPrefix(data, callbackGrade), "_")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed grade callback %q", data)
	}
	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid item ID in callback data %q: %w", data, err)
	}
	v, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid grade in callback data %q: %w", data, err)
	}
	q, err := sr.ParseQuality(v)
	if err != nil {
		return 0, 0, err
	}
	return id, q, nil
}
