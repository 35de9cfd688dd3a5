package notify

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"frontierlab/internal/frontier"
)

// Telegram delivers a finished run to a chat: the rendered frontier chart as
// a photo with a short caption. Delivery is one-way; there is no inbound
// command surface.
type Telegram struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegram(token string, chatID int64) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Telegram{api: api, chatID: chatID}, nil
}

// SendChart posts the chart PNG with a caption summarizing the run.
func (t *Telegram) SendChart(d *frontier.Dataset, img []byte) error {
	name := strings.Join(d.Tickers, "_") + "_frontier.png"
	photo := tgbotapi.NewPhoto(t.chatID, tgbotapi.FileBytes{Name: name, Bytes: img})
	photo.Caption = Caption(d)
	_, err := t.api.Send(photo)
	return err
}

// Caption builds the one-line run summary used for delivery.
func Caption(d *frontier.Dataset) string {
	if len(d.FrontierIndices) == 0 {
		return "Efficient frontier: " + strings.Join(d.Tickers, ", ") + " • no frontier points"
	}
	low := d.FrontierIndices[0]
	return fmt.Sprintf("Efficient frontier: %s • %d portfolios, %d on frontier • min vol %.2f%% at %.2f%% return",
		strings.Join(d.Tickers, ", "), len(d.Weights), len(d.FrontierIndices),
		d.Portfolio.Volatility[low]*100, d.Portfolio.Returns[low]*100)
}
