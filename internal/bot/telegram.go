package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"btc-yardstick/internal/domain"

	tele "gopkg.in/telebot.v3"
)

// DocumentSource reads persisted series documents.
type DocumentSource interface {
	Read(ctx context.Context, assetID string) ([]byte, error)
}

// Notifier pushes run summaries to a configured chat. A nil Notifier is
// valid and does nothing, so callers never have to guard on configuration.
type Notifier struct {
	bot    *tele.Bot
	chatID int64
}

// StartTelegramBot starts the inspector bot and returns a Notifier for run
// summaries. Returns nil when TELEGRAM_BOT_TOKEN is unset or startup fails;
// the bot is strictly optional.
func StartTelegramBot(catalog domain.Catalog, docs DocumentSource, chatID int64) *Notifier {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		log.Println("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return nil
	}
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		log.Printf("failed to create Telegram bot, notifications disabled: %v", err)
		return nil
	}

	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})

	b.Handle("/assets", func(c tele.Context) error {
		var sb strings.Builder
		sb.WriteString("Tracked assets:\n")
		for _, e := range catalog {
			fmt.Fprintf(&sb, "%s — %s (%s:%s)\n", e.ID, e.Name, e.Source, e.Code)
		}
		return c.Send(sb.String())
	})

	b.Handle("/power", func(c tele.Context) error {
		args := c.Args()
		if len(args) == 0 {
			return c.Send(fmt.Sprintf("Usage: /power gold_usd\nTracked: %s", strings.Join(catalogIDs(catalog), ", ")))
		}
		id := strings.ToLower(args[0])
		entry, ok := catalog.ByID(id)
		if !ok {
			return c.Send(fmt.Sprintf("Unknown asset: %s\nTracked: %s", id, strings.Join(catalogIDs(catalog), ", ")))
		}
		msg, err := latestPowerMessage(docs, entry)
		if err != nil {
			return c.Send(fmt.Sprintf("No data for %s yet: %v", id, err))
		}
		return c.Send(msg)
	})

	log.Println("Telegram bot started")
	go b.Start()

	return &Notifier{bot: b, chatID: chatID}
}

// NotifySummary sends a run summary to the configured chat. Failures are
// logged and never propagate.
func (n *Notifier) NotifySummary(summary *domain.RunSummary) {
	if n == nil || n.chatID == 0 || summary == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Refresh run %s\n", summary.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(&sb, "Written: %d documents in %s\n", len(summary.Written), summary.Duration.Round(time.Second))
	if len(summary.Errors) > 0 {
		sb.WriteString("Errors:\n")
		for id, msg := range summary.Errors {
			fmt.Fprintf(&sb, "  %s: %s\n", id, msg)
		}
	}

	if _, err := n.bot.Send(tele.ChatID(n.chatID), sb.String()); err != nil {
		log.Printf("failed to send run summary: %v", err)
	}
}

func catalogIDs(catalog domain.Catalog) []string {
	ids := make([]string, 0, len(catalog))
	for _, e := range catalog {
		ids = append(ids, e.ID)
	}
	return ids
}

func latestPowerMessage(docs DocumentSource, entry domain.CatalogEntry) (string, error) {
	raw, err := docs.Read(context.Background(), entry.ID)
	if err != nil {
		return "", err
	}

	if entry.ID == domain.BaseAssetID {
		var doc domain.BaseDocument
		if err := json.Unmarshal(raw, &doc); err != nil {
			return "", err
		}
		if len(doc.Data) == 0 {
			return "", fmt.Errorf("document is empty")
		}
		last := doc.Data[len(doc.Data)-1]
		return fmt.Sprintf("%s as of %s\nBTC price: $%.2f\nBTC per USD: %.10f",
			entry.Name, last.Date, last.BTCPriceUSD, last.BTCPerUSD), nil
	}

	var doc domain.SeriesDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return "", err
	}
	if len(doc.Data) == 0 {
		return "", fmt.Errorf("document is empty")
	}
	last := doc.Data[len(doc.Data)-1]
	return fmt.Sprintf("%s as of %s\n1 BTC buys %.4f units\nAsset price: $%.2f\nBTC price: $%.2f",
		entry.Name, last.Date, last.AssetPerBTC, last.AssetPrice, last.BTCPrice), nil
}
