package sink

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vicpaltor/job-monitor-whatsapp/internal/model"
)

// TelegramSink delivers postings and summaries as Telegram chat messages.
type TelegramSink struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramSink initializes the bot API with token and targets chatID.
func NewTelegramSink(token string, chatID int64) (*TelegramSink, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return &TelegramSink{bot: bot, chatID: chatID}, nil
}

// Name implements Sink.
func (t *TelegramSink) Name() string { return "telegram" }

// DeliverPosting sends one HTML-formatted message per posting.
func (t *TelegramSink) DeliverPosting(_ context.Context, p model.StoredPosting) error {
	return t.send(formatPosting(p))
}

// DeliverSummary sends the daily rollup as a single message.
func (t *TelegramSink) DeliverSummary(_ context.Context, s model.Summary) error {
	return t.send(formatSummary(s))
}

func formatPosting(p model.StoredPosting) string {
	return fmt.Sprintf(
		"🔥 <b>%s</b>\n"+
			"🏢 %s\n"+
			"💰 %s\n"+
			"🌐 %s\n"+
			"🔗 <a href=\"%s\">View posting</a>",
		escapeHTML(p.Title),
		escapeHTML(p.Company),
		escapeHTML(p.Salary),
		escapeHTML(strings.ToUpper(p.Portal)),
		escapeHTML(p.URL),
	)
}

func formatSummary(s model.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 <b>Daily summary — %s</b>\n", s.Day.Format("02/01/2006"))

	if s.Count == 0 {
		b.WriteString("No new postings today")
	} else {
		fmt.Fprintf(&b, "%d new posting(s):\n", s.Count)
		for i, p := range s.Postings {
			fmt.Fprintf(&b, "%d. %s — %s (%s)\n", i+1, escapeHTML(p.Title), escapeHTML(p.Company), escapeHTML(p.Portal))
		}
	}
	return b.String()
}

func (t *TelegramSink) send(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "HTML"
	_, err := t.bot.Send(msg)
	return err
}

// escapeHTML escapes text for Telegram's HTML parse mode, including the
// quote so escaped values are safe inside attributes like href.
func escapeHTML(s string) string {
	replacer := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return replacer.Replace(s)
}
