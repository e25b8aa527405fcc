// Package notify pushes Telegram messages after bookkeeping changes.
// Every send here is a background side effect: failures are logged and
// never reach the user or roll back the mutation that triggered them.
package notify

import (
	"fmt"
	"log"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"sirekap-dgn/internal/finance"
	"sirekap-dgn/internal/format"
	"sirekap-dgn/internal/models"
)

// TransactionAction names the mutation that fired the notification
type TransactionAction string

const (
	ActionAdd    TransactionAction = "add"
	ActionUpdate TransactionAction = "update"
	ActionDelete TransactionAction = "delete"
)

// TransactionChanged formats and sends the notification for one mutation,
// with the running totals computed over the post-mutation list. Call it
// from a goroutine; it never returns anything the caller should act on.
func TransactionChanged(settings models.DashboardSettings, t models.Transaction, allTransactions []models.Transaction, action TransactionAction) {
	if !settings.EnableTelegramNotifications || settings.TelegramBotToken == "" || settings.TelegramChatID == "" {
		return
	}

	summary := finance.CalculateSummary(allTransactions)
	text := formatTransactionMessage(t, summary, action)

	if err := Send(settings.TelegramBotToken, settings.TelegramChatID, text); err != nil {
		log.Println("Failed to send Telegram message:", err)
	}
}

// Send posts one markdown message to the configured chat. The chat id can
// be numeric or a @channel name, same as the Bot API accepts.
func Send(token, chatID, text string) error {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return err
	}

	var msg tgbotapi.MessageConfig
	if id, convErr := strconv.ParseInt(chatID, 10, 64); convErr == nil {
		msg = tgbotapi.NewMessage(id, text)
	} else {
		msg = tgbotapi.NewMessageToChannel(chatID, text)
	}
	msg.ParseMode = tgbotapi.ModeMarkdown

	_, err = bot.Send(msg)
	return err
}

func formatTransactionMessage(t models.Transaction, summary finance.Summary, action TransactionAction) string {
	title := "✅ Transaksi Baru Ditambahkan!"
	switch action {
	case ActionUpdate:
		title = "🔄 Transaksi Diperbarui!"
	case ActionDelete:
		title = "❌ Transaksi Dihapus!"
	}

	kind := "Pengeluaran"
	sign := "-"
	if t.Type == models.TransactionIncome {
		kind = "Pemasukan"
		sign = "+"
	}

	method := "Transfer"
	if t.Mode == models.ModeCash {
		method = "Tunai"
	}

	return fmt.Sprintf(`*%s*

*Deskripsi:* %s
*Jenis:* %s
*Jumlah:* `+"`%s%s`"+`
*Metode:* %s
*Tanggal:* %s

---

*📊 Ringkasan Saat Ini:*
*Pemasukan:* `+"`%s`"+`
*Pengeluaran:* `+"`%s`"+`
*Saldo Akhir:* `+"`%s`",
		title,
		t.Description,
		kind,
		sign, format.IDR(t.Amount),
		method,
		format.DateShort(t.Date),
		format.IDR(summary.Total.Income),
		format.IDR(summary.Total.Expense),
		format.IDR(summary.Total.Balance),
	)
}
