package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"groupies/internal/config"
)

// TelegramNotifier 调用 Bot API sendMessage
type TelegramNotifier struct {
	apiBase string
	token   string
	chatID  string
	client  *http.Client
}

// NewTelegramNotifier token 或 chat id 为空时返回 nil，表示不启用
func NewTelegramNotifier(cfg *config.TelegramConfig) *TelegramNotifier {
	if cfg.BotToken == "" || cfg.ChatID == "" {
		return nil
	}
	timeout := cfg.Timeout * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &TelegramNotifier{
		apiBase: strings.TrimRight(cfg.APIBase, "/"),
		token:   cfg.BotToken,
		chatID:  cfg.ChatID,
		client:  &http.Client{Timeout: timeout},
	}
}

func (t *TelegramNotifier) Name() string { return "telegram" }

// Notify 表单提交 chat_id 和 text
func (t *TelegramNotifier) Notify(ctx context.Context, message string) error {
	form := url.Values{}
	form.Set("chat_id", t.chatID)
	form.Set("text", message)

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", t.apiBase, t.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("构造 telegram 请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		// 错误信息里的 URL 带 token，不直接透出
		return fmt.Errorf("telegram sendMessage 请求失败: %w", redactToken(err, t.token))
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("telegram sendMessage 返回 %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type redactedError struct {
	msg   string
	cause error
}

func (e *redactedError) Error() string { return e.msg }
func (e *redactedError) Unwrap() error { return e.cause }

func redactToken(err error, token string) error {
	return &redactedError{msg: strings.ReplaceAll(err.Error(), token, "***"), cause: err}
}
