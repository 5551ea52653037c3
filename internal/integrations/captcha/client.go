package captcha

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент проверки captcha-токенов публичных операций записи.
// При enabled=false проверка пропускается: окружения без captcha
// (локальная разработка, тесты) работают без внешнего сервиса.
type Client struct {
	verifyURL  string
	secret     string
	enabled    bool
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента проверки captcha
func NewClient(verifyURL, secret string, enabled bool, timeout time.Duration, log Logger) *Client {
	return &Client{
		verifyURL: verifyURL,
		secret:    secret,
		enabled:   enabled,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

type verifyResponse struct {
	Success bool `json:"success"`
}

// Verify проверяет captcha-токен. Пустой токен при включённой проверке
// сразу считается непройденным.
func (c *Client) Verify(ctx context.Context, token string) error {
	if !c.enabled {
		return nil
	}

	if token == "" {
		return ErrCaptchaFailed
	}

	form := url.Values{}
	form.Set("secret", c.secret)
	form.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status code %d", ErrInternal, resp.StatusCode)
	}

	var result verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInternal, err)
	}

	if !result.Success {
		return ErrCaptchaFailed
	}

	return nil
}
