package bot

import (
	"context"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/LapkoMarian/cartridges-bot/internal/dialog"
	"github.com/LapkoMarian/cartridges-bot/internal/storage"
	"github.com/LapkoMarian/cartridges-bot/internal/tracker"
)

// Bot — маршрутизатор команд оператора: перетворює повідомлення і кнопки
// на виклики трекера, весь текст і розмітка живуть тут.
type Bot struct {
	api       *tgbotapi.BotAPI
	log       *slog.Logger
	store     storage.Store
	states    *dialog.Manager
	tracker   *tracker.Tracker
	adminChat int64
}

func New(api *tgbotapi.BotAPI, log *slog.Logger, store storage.Store,
	states *dialog.Manager, trk *tracker.Tracker, adminChatID int64) *Bot {

	return &Bot{
		api: api, log: log, store: store,
		states: states, tracker: trk, adminChat: adminChatID,
	}
}

// Run крутить цикл long polling до скасування контексту. Події обробляються
// послідовно, по одній — цим і гарантується серіалізація записів у сховище.
func (b *Bot) Run(ctx context.Context, timeoutSec int) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeoutSec
	updates := b.api.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case upd := <-updates:
			if upd.Message != nil {
				b.onMessage(ctx, upd)
			} else if upd.CallbackQuery != nil {
				b.onCallback(ctx, upd)
			}
		}
	}
}

func (b *Bot) onMessage(ctx context.Context, upd tgbotapi.Update) {
	msg := upd.Message
	if msg.From == nil || msg.From.ID != b.adminChat {
		b.send(tgbotapi.NewMessage(msg.Chat.ID, "⛔ У вас немає доступу."))
		return
	}
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}
	b.handleStateMessage(ctx, msg)
}

func (b *Bot) onCallback(ctx context.Context, upd tgbotapi.Update) {
	cb := upd.CallbackQuery
	if cb.From == nil || cb.From.ID != b.adminChat {
		_ = b.answerCallback(cb, "⛔ У вас немає доступу.", true)
		return
	}
	b.handleCallback(ctx, cb)
}

/*** HELPERS ***/

func (b *Bot) send(msg tgbotapi.Chattable) {
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send failed", "err", err)
	}
}

func (b *Bot) answerCallback(cb *tgbotapi.CallbackQuery, text string, alert bool) error {
	resp := tgbotapi.NewCallback(cb.ID, text)
	resp.ShowAlert = alert
	_, err := b.api.Request(resp)
	return err
}

func (b *Bot) editTextAndClear(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(
		chatID, messageID, text,
		tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}},
	)
	b.send(edit)
}

func (b *Bot) editTextWithHome(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, homeKeyboard())
	b.send(edit)
}

func (b *Bot) showMainMenu(chatID int64, messageID *int) {
	text := "🧾 Облік картриджів\nВибери дію:"
	if messageID != nil {
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, *messageID, text, mainMenuKeyboard()))
		return
	}
	m := tgbotapi.NewMessage(chatID, text)
	m.ReplyMarkup = mainMenuKeyboard()
	b.send(m)
}
