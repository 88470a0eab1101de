package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/LapkoMarian/cartridges-bot/internal/domain/cartridges"
	"github.com/LapkoMarian/cartridges-bot/internal/storage"
)

func (b *Bot) showStatusBatchPick(ctx context.Context, chatID int64, msgID int) {
	bs, err := b.store.ListBatches(ctx)
	if err != nil {
		b.log.Error("list batches failed", "err", err)
		b.editTextWithHome(chatID, msgID, "Помилка завантаження партій.")
		return
	}
	if len(bs) == 0 {
		b.editTextWithHome(chatID, msgID, "Партій ще немає.")
		return
	}
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, msgID,
		"🔄 Оберіть партію для зміни статусу:",
		batchPickKeyboard(bs, "status:batch", false))
	b.send(edit)
}

func (b *Bot) showStatusItemPick(ctx context.Context, chatID int64, msgID int, batchID int64) {
	items, err := b.store.ListItems(ctx, batchID)
	if err != nil {
		b.log.Error("list items failed", "err", err)
		b.editTextWithHome(chatID, msgID, "Помилка завантаження картриджів.")
		return
	}
	if len(items) == 0 {
		b.editTextWithHome(chatID, msgID, fmt.Sprintf("У партії #%d немає картриджів.", batchID))
		return
	}
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, msgID,
		fmt.Sprintf("📦 Партія #%d\nОберіть картридж:", batchID),
		itemPickKeyboard(items, "status:item"))
	b.send(edit)
}

func (b *Bot) showStatusPick(ctx context.Context, chatID int64, msgID int, itemID int64) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, msgID,
		fmt.Sprintf("🔧 Оберіть новий статус для #%d:", itemID),
		statusKeyboard(itemID))
	b.send(edit)
}

// handleSetStatus розбирає "status:set:<id>:<code>" і застосовує перехід.
func (b *Bot) handleSetStatus(ctx context.Context, chatID int64, msgID int, data string) {
	parts := strings.Split(data, ":")
	if len(parts) != 4 {
		return
	}
	itemID, _ := strconv.ParseInt(parts[2], 10, 64)
	st := cartridges.Status(parts[3])

	it, err := b.tracker.SetStatus(ctx, itemID, st)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			b.editTextWithHome(chatID, msgID, "Картриджа вже не існує.")
			return
		}
		b.log.Error("set status failed", "err", err)
		b.editTextWithHome(chatID, msgID, "Не вдалося змінити статус.")
		return
	}

	text := fmt.Sprintf(
		"✅ Картридж #%d | %s\n🔁 Новий статус: %s\n📅 Дата: %s\n───────────────",
		it.ID, it.Department, it.Status.Title(), it.StatusDate(st),
	)
	b.editTextWithHome(chatID, msgID, text)
}
