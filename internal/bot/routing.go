package bot

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/LapkoMarian/cartridges-bot/internal/dialog"
)

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	switch msg.Command() {
	case "start":
		b.tracker.Home(chatID)
		b.showMainMenu(chatID, nil)
	case "help":
		b.send(tgbotapi.NewMessage(chatID,
			"Команди:\n/start — головне меню\n/help — допомога"))
	default:
		b.send(tgbotapi.NewMessage(chatID, "Не знаю такої команди. Наберіть /help"))
	}
}

func (b *Bot) handleStateMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	st := b.states.Get(chatID)

	switch st.State {
	case dialog.StateAddEnterItem:
		b.handleItemLine(ctx, msg)
	default:
		b.send(tgbotapi.NewMessage(chatID, "Скористайтеся меню — /start"))
	}
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	data := cb.Data
	chatID := cb.Message.Chat.ID
	msgID := cb.Message.MessageID

	switch {
	case data == "nav:home":
		b.tracker.Home(chatID)
		b.showMainMenu(chatID, &msgID)
		_ = b.answerCallback(cb, "", false)

	case data == "add":
		b.showAddBatchPick(ctx, chatID, msgID)
		_ = b.answerCallback(cb, "", false)
	case data == "add:new":
		b.handleAddNewBatch(ctx, chatID, msgID)
		_ = b.answerCallback(cb, "", false)
	case strings.HasPrefix(data, "add:pick:"):
		b.handleAddPick(ctx, chatID, msgID, lastID(data))
		_ = b.answerCallback(cb, "", false)

	case data == "batch:new":
		b.handleNewBatch(ctx, chatID, msgID)
		_ = b.answerCallback(cb, "Партію створено", false)

	case data == "status":
		b.showStatusBatchPick(ctx, chatID, msgID)
		_ = b.answerCallback(cb, "", false)
	case strings.HasPrefix(data, "status:batch:"):
		b.showStatusItemPick(ctx, chatID, msgID, lastID(data))
		_ = b.answerCallback(cb, "", false)
	case strings.HasPrefix(data, "status:item:"):
		b.showStatusPick(ctx, chatID, msgID, lastID(data))
		_ = b.answerCallback(cb, "", false)
	case strings.HasPrefix(data, "status:set:"):
		b.handleSetStatus(ctx, chatID, msgID, data)
		_ = b.answerCallback(cb, "", false)

	case data == "view":
		b.showBatchList(ctx, chatID, msgID)
		_ = b.answerCallback(cb, "", false)
	case strings.HasPrefix(data, "view:batch:"):
		b.showBatchCard(ctx, chatID, msgID, lastID(data))
		_ = b.answerCallback(cb, "", false)
	case strings.HasPrefix(data, "view:item:"):
		b.showItemCard(ctx, chatID, msgID, lastID(data))
		_ = b.answerCallback(cb, "", false)

	case strings.HasPrefix(data, "item:del:yes:"):
		b.handleDeleteItem(ctx, chatID, msgID, lastID(data))
		_ = b.answerCallback(cb, "Видалено", false)
	case strings.HasPrefix(data, "item:del:"):
		b.confirmDeleteItem(chatID, msgID, lastID(data))
		_ = b.answerCallback(cb, "", false)
	case strings.HasPrefix(data, "batch:del:yes:"):
		b.handleDeleteBatch(ctx, chatID, msgID, lastID(data))
		_ = b.answerCallback(cb, "Видалено", false)
	case strings.HasPrefix(data, "batch:del:"):
		b.confirmDeleteBatch(chatID, msgID, lastID(data))
		_ = b.answerCallback(cb, "", false)

	case data == "export":
		b.handleExport(ctx, chatID, msgID)
		_ = b.answerCallback(cb, "", false)

	default:
		_ = b.answerCallback(cb, "", false)
	}
}

// lastID дістає числовий хвіст callback data виду "prefix:...:id".
func lastID(data string) int64 {
	parts := strings.Split(data, ":")
	id, _ := strconv.ParseInt(parts[len(parts)-1], 10, 64)
	return id
}
