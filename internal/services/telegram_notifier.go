package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTelegramAPIBase = "https://api.telegram.org"

type TelegramNotifier struct {
	botToken string
	apiBase  string
	client   *http.Client
}

func NewTelegramNotifier(botToken string) *TelegramNotifier {
	return &TelegramNotifier{
		botToken: strings.TrimSpace(botToken),
		apiBase:  defaultTelegramAPIBase,
		client: &http.Client{
			Timeout: 8 * time.Second,
		},
	}
}

func (notifier *TelegramNotifier) WithAPIBase(base string) *TelegramNotifier {
	notifier.apiBase = strings.TrimRight(strings.TrimSpace(base), "/")
	return notifier
}

func (notifier *TelegramNotifier) Enabled() bool {
	return notifier != nil && notifier.botToken != ""
}

func (notifier *TelegramNotifier) Notify(ctx context.Context, chatID string, message string) error {
	if !notifier.Enabled() {
		return fmt.Errorf("telegram notifier is not configured")
	}

	values := url.Values{}
	values.Set("chat_id", chatID)
	values.Set("text", message)

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", notifier.apiBase, notifier.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := notifier.client.Do(req)
	if err != nil {
		// url.Error carries the endpoint, which embeds the bot token.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("telegram status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
