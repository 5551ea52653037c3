package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент сервиса почтовых уведомлений.
// Все отправки выполняются в фоне после коммита бронирования:
// сбой письма логируется и никогда не ломает бронирование.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса рассылки
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SendBookingConfirmation отправляет клиенту подтверждение записи
func (c *Client) SendBookingConfirmation(ctx context.Context, email *BookingEmail) error {
	return c.send(ctx, "/internal/emails/booking-confirmation", email)
}

// SendOwnerNotification уведомляет владельца салона о новой записи
func (c *Client) SendOwnerNotification(ctx context.Context, email *BookingEmail) error {
	return c.send(ctx, "/internal/emails/owner-notification", email)
}

// SendRescheduleNotice отправляет клиенту подтверждение переноса записи
func (c *Client) SendRescheduleNotice(ctx context.Context, email *BookingEmail) error {
	return c.send(ctx, "/internal/emails/reschedule-notice", email)
}

// SendCancellationNotice отправляет клиенту подтверждение отмены записи
func (c *Client) SendCancellationNotice(ctx context.Context, email *BookingEmail) error {
	return c.send(ctx, "/internal/emails/cancellation-notice", email)
}

func (c *Client) send(ctx context.Context, path string, email *BookingEmail) error {
	body, err := json.Marshal(email)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal payload: %v", ErrInternal, err)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	return nil
}
