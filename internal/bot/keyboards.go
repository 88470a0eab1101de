package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/LapkoMarian/cartridges-bot/internal/domain/batches"
	"github.com/LapkoMarian/cartridges-bot/internal/domain/cartridges"
)

func mainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Додати картридж", "add"),
			tgbotapi.NewInlineKeyboardButtonData("🔄 Змінити статус", "status"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📦 Перегляд партій", "view"),
			tgbotapi.NewInlineKeyboardButtonData("📤 Експорт у Excel", "export"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🆕 Нова партія", "batch:new"),
		),
	)
}

func homeRow() []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🏠 Головне меню", "nav:home"),
	)
}

func homeKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(homeRow())
}

// batchPickKeyboard — партії новішими вперед; withNew додає гілку "нова партія".
func batchPickKeyboard(bs []batches.Batch, prefix string, withNew bool) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{}
	for i := len(bs) - 1; i >= 0; i-- {
		b := bs[i]
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("Партія #%d від %s (%s)", b.ID, b.CreatedAt, b.Status.Title()),
				fmt.Sprintf("%s:%d", prefix, b.ID),
			),
		))
	}
	if withNew {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🆕 Створити нову партію", "add:new"),
		))
	}
	rows = append(rows, homeRow())
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func itemPickKeyboard(items []cartridges.Item, prefix string) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, it := range items {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("#%d | %s (%s)", it.ID, it.Department, it.Status.Title()),
				fmt.Sprintf("%s:%d", prefix, it.ID),
			),
		))
	}
	rows = append(rows, homeRow())
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func statusKeyboard(itemID int64) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{}
	for _, st := range cartridges.AllStatuses {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				st.Title(),
				fmt.Sprintf("status:set:%d:%s", itemID, st),
			),
		))
	}
	rows = append(rows, homeRow())
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func confirmKeyboard(yesData string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Так, видалити", yesData),
			tgbotapi.NewInlineKeyboardButtonData("🏠 Головне меню", "nav:home"),
		),
	)
}
