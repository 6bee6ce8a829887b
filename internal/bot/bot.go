package bot

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/example/studytrack/internal/engine"
	"github.com/example/studytrack/pkg/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot is the Telegram presentation layer over the aggregation engine. It
// formats the engine's derived views; it never computes anything itself.
type Bot struct {
	api    *tgbotapi.BotAPI
	token  string
	engine *engine.Engine
	config *Config

	mu         sync.Mutex
	lastListed []models.TopicWithStatus // topics shown by the last /due, for positional commands
}

// New creates a new bot instance over the given engine.
func New(eng *engine.Engine) (*Bot, error) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is not set")
	}
	return &Bot{
		token:  token,
		engine: eng,
		config: DefaultConfig(),
	}, nil
}

// Start connects to Telegram and handles updates until the context is
// cancelled.
func (b *Bot) Start(ctx context.Context) error {
	api, err := tgbotapi.NewBotAPI(b.token)
	if err != nil {
		return fmt.Errorf("unable to create bot: %v", err)
	}
	b.api = api
	log.Printf("Authorized on account %s", api.Self.UserName)

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	for {
		select {
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			if err := b.HandleCommand(ctx, update.Message); err != nil {
				log.Printf("Error handling /%s: %v", update.Message.Command(), err)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Stop halts update polling.
func (b *Bot) Stop(ctx context.Context) error {
	if b.api != nil {
		b.api.StopReceivingUpdates()
	}
	return nil
}

// SendReminders notifies the user that topics are due for revision. It
// implements the scheduler's Notifier interface. For personal chats the chat
// id equals the user id.
func (b *Bot) SendReminders(userID int64, count int) error {
	if b.api == nil {
		return fmt.Errorf("bot is not connected")
	}
	text := fmt.Sprintf("📚 You have %d topic(s) due for revision. Use /due to see them.", count)
	msg := tgbotapi.NewMessage(userID, text)
	_, err := b.api.Send(msg)
	if err != nil {
		log.Printf("Error sending reminder to user %d: %v", userID, err)
	}
	return err
}

// reply sends plain text to the chat.
func (b *Bot) reply(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := b.api.Send(msg)
	return err
}
