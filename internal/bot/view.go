package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/LapkoMarian/cartridges-bot/internal/domain/cartridges"
	"github.com/LapkoMarian/cartridges-bot/internal/storage"
)

func (b *Bot) showBatchList(ctx context.Context, chatID int64, msgID int) {
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
		"📦 Партії:", batchPickKeyboard(bs, "view:batch", false))
	b.send(edit)
}

func (b *Bot) showBatchCard(ctx context.Context, chatID int64, msgID int, batchID int64) {
	batch, err := b.store.GetBatch(ctx, batchID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			b.editTextWithHome(chatID, msgID, "Партії вже не існує.")
			return
		}
		b.log.Error("get batch failed", "err", err)
		b.editTextWithHome(chatID, msgID, "Помилка завантаження партії.")
		return
	}
	items, err := b.store.ListItems(ctx, batchID)
	if err != nil {
		b.log.Error("list items failed", "err", err)
		b.editTextWithHome(chatID, msgID, "Помилка завантаження картриджів.")
		return
	}

	text := fmt.Sprintf("📦 Партія #%d від %s\nСтан: %s\nКартриджів: %d",
		batch.ID, batch.CreatedAt, batch.Status.Title(), len(items))

	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, it := range items {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("#%d | %s (%s)", it.ID, it.Department, it.Status.Title()),
				fmt.Sprintf("view:item:%d", it.ID),
			),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🗑 Видалити партію", fmt.Sprintf("batch:del:%d", batchID)),
	))
	rows = append(rows, homeRow())

	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, msgID, text,
		tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows})
	b.send(edit)
}

func (b *Bot) showItemCard(ctx context.Context, chatID int64, msgID int, itemID int64) {
	it, err := b.store.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			b.editTextWithHome(chatID, msgID, "Картриджа вже не існує.")
			return
		}
		b.log.Error("get item failed", "err", err)
		b.editTextWithHome(chatID, msgID, "Помилка завантаження картриджа.")
		return
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Видалити", fmt.Sprintf("item:del:%d", it.ID)),
			tgbotapi.NewInlineKeyboardButtonData("🔧 Змінити статус", fmt.Sprintf("status:item:%d", it.ID)),
		),
		homeRow(),
	)
	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, msgID, renderItem(it), kb))
}

func (b *Bot) handleNewBatch(ctx context.Context, chatID int64, msgID int) {
	id, err := b.tracker.NewBatch(ctx)
	if err != nil {
		b.log.Error("create batch failed", "err", err)
		b.editTextWithHome(chatID, msgID, "Не вдалося створити партію.")
		return
	}
	b.editTextWithHome(chatID, msgID,
		fmt.Sprintf("🆕 Відкрито партію #%d. Попередня активна партія закрита.", id))
}

func (b *Bot) confirmDeleteItem(chatID int64, msgID int, itemID int64) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, msgID,
		fmt.Sprintf("Видалити картридж #%d назавжди?", itemID),
		confirmKeyboard(fmt.Sprintf("item:del:yes:%d", itemID)))
	b.send(edit)
}

func (b *Bot) handleDeleteItem(ctx context.Context, chatID int64, msgID int, itemID int64) {
	if err := b.tracker.DeleteItem(ctx, itemID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			b.editTextWithHome(chatID, msgID, "Картриджа вже не існує.")
			return
		}
		b.log.Error("delete item failed", "err", err)
		b.editTextWithHome(chatID, msgID, "Не вдалося видалити картридж.")
		return
	}
	b.editTextWithHome(chatID, msgID, fmt.Sprintf("🗑 Картридж #%d видалено.", itemID))
}

func (b *Bot) confirmDeleteBatch(chatID int64, msgID int, batchID int64) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, msgID,
		fmt.Sprintf("Видалити партію #%d разом з усіма її картриджами?", batchID),
		confirmKeyboard(fmt.Sprintf("batch:del:yes:%d", batchID)))
	b.send(edit)
}

func (b *Bot) handleDeleteBatch(ctx context.Context, chatID int64, msgID int, batchID int64) {
	if err := b.tracker.DeleteBatch(ctx, batchID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			b.editTextWithHome(chatID, msgID, "Партії вже не існує.")
			return
		}
		b.log.Error("delete batch failed", "err", err)
		b.editTextWithHome(chatID, msgID, "Не вдалося видалити партію.")
		return
	}
	b.editTextWithHome(chatID, msgID,
		fmt.Sprintf("🗑 Партію #%d та всі її картриджі видалено.", batchID))
}

// renderItem — текстова картка картриджа; показуємо лише проставлені дати.
func renderItem(it *cartridges.Item) string {
	lines := []string{
		fmt.Sprintf("🖨 Картридж #%d | %s", it.ID, it.Department),
		fmt.Sprintf("Статус: %s", it.Status.Title()),
		fmt.Sprintf("Партія: #%d", it.BatchID),
	}
	if it.DateWithdrawn != "" {
		lines = append(lines, fmt.Sprintf("📅 Вилучено: %s", it.DateWithdrawn))
	}
	if it.DateSent != "" {
		lines = append(lines, fmt.Sprintf("📅 Відправлено: %s", it.DateSent))
	}
	if it.DateReturned != "" {
		lines = append(lines, fmt.Sprintf("📅 Прибуло: %s", it.DateReturned))
	}
	if it.DateIssued != "" {
		lines = append(lines, fmt.Sprintf("📅 Видано: %s", it.DateIssued))
	}
	return strings.Join(lines, "\n")
}
