package bot

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/LapkoMarian/cartridges-bot/internal/mirror"
)

// handleExport відправляє в чат той самий файл, який публікується у дзеркало.
func (b *Bot) handleExport(ctx context.Context, chatID int64, msgID int) {
	items, err := b.store.ListAllItems(ctx)
	if err != nil {
		b.log.Error("list items failed", "err", err)
		b.editTextWithHome(chatID, msgID, "Помилка завантаження даних.")
		return
	}
	data, err := mirror.BuildWorkbook(items)
	if err != nil {
		b.log.Error("build workbook failed", "err", err)
		b.editTextWithHome(chatID, msgID, "Не вдалося сформувати файл.")
		return
	}

	fileName := fmt.Sprintf("cartridges_%s.xlsx", time.Now().Format("20060102_150405"))
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  fileName,
		Bytes: data,
	})
	doc.Caption = fmt.Sprintf("📤 Вивантаження обліку: %d картриджів.", len(items))
	b.send(doc)

	b.editTextWithHome(chatID, msgID, "Файл сформовано і надіслано.")
}
