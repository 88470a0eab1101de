package bot

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/LapkoMarian/cartridges-bot/internal/domain/cartridges"
	"github.com/LapkoMarian/cartridges-bot/internal/storage"
)

const itemLineHint = "Введіть дані картриджа одним рядком: відділ, дата\n" +
	"Наприклад: Бухгалтерія, 20.10.2025\n" +
	"Дату можна лишити порожньою — підставиться сьогоднішня."

// showAddBatchPick — перший крок додавання: наявні партії плюс "створити нову".
func (b *Bot) showAddBatchPick(ctx context.Context, chatID int64, msgID int) {
	bs, err := b.store.ListBatches(ctx)
	if err != nil {
		b.log.Error("list batches failed", "err", err)
		b.editTextWithHome(chatID, msgID, "Помилка завантаження партій.")
		return
	}
	b.tracker.StartAdd(chatID)
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, msgID,
		"➕ Оберіть партію для нового картриджа:",
		batchPickKeyboard(bs, "add:pick", true))
	b.send(edit)
}

func (b *Bot) handleAddPick(ctx context.Context, chatID int64, msgID int, batchID int64) {
	if err := b.tracker.ChooseBatch(ctx, chatID, batchID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			b.editTextWithHome(chatID, msgID, "Партії вже не існує.")
			return
		}
		b.log.Error("choose batch failed", "err", err)
		b.editTextWithHome(chatID, msgID, "Помилка вибору партії.")
		return
	}
	b.editTextAndClear(chatID, msgID,
		fmt.Sprintf("Партія #%d.\n%s", batchID, itemLineHint))
}

func (b *Bot) handleAddNewBatch(ctx context.Context, chatID int64, msgID int) {
	id, err := b.tracker.ChooseNewBatch(ctx, chatID)
	if err != nil {
		b.log.Error("create batch failed", "err", err)
		b.editTextWithHome(chatID, msgID, "Не вдалося створити партію.")
		return
	}
	b.editTextAndClear(chatID, msgID,
		fmt.Sprintf("🆕 Відкрито партію #%d, попередню закрито.\n%s", id, itemLineHint))
}

// handleItemLine — фінальний крок: текст оператора стає новим картриджем.
func (b *Bot) handleItemLine(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	it, err := b.tracker.SubmitLine(ctx, chatID, msg.Text)
	switch {
	case errors.Is(err, cartridges.ErrBadItemLine):
		// Сесія на місці, партія не втрачена — просто ще одна спроба.
		b.send(tgbotapi.NewMessage(chatID,
			"❗ Не розібрав. Потрібно два поля через кому: відділ, дата. Спробуйте ще раз."))
		return
	case errors.Is(err, storage.ErrNotFound):
		m := tgbotapi.NewMessage(chatID, "Партії вже не існує, сценарій перервано.")
		m.ReplyMarkup = homeKeyboard()
		b.send(m)
		return
	case err != nil:
		b.log.Error("submit item failed", "err", err)
		m := tgbotapi.NewMessage(chatID, "Не вдалося додати картридж.")
		m.ReplyMarkup = homeKeyboard()
		b.send(m)
		return
	}

	m := tgbotapi.NewMessage(chatID,
		fmt.Sprintf("✅ Картридж додано.\n%s", renderItem(it)))
	m.ReplyMarkup = homeKeyboard()
	b.send(m)
}
