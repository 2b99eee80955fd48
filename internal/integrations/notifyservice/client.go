package notifyservice

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

// ConfirmationMessage данные для письма-подтверждения бронирования
type ConfirmationMessage struct {
	BookingRef      string  `json:"booking_ref"`
	PatientName     string  `json:"patient_name"`
	PatientEmail    string  `json:"patient_email"`
	PatientPhone    string  `json:"patient_phone"`
	ServiceName     string  `json:"service_name"`
	CenterName      string  `json:"center_name"`
	AppointmentDate string  `json:"appointment_date"`
	TimeSlot        string  `json:"time_slot"`
	TotalAmount     float64 `json:"total_amount"`
}

// Client клиент для работы с NotifyService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента NotifyService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SendConfirmation отправляет подтверждение бронирования
// Доставка best-effort: вызывающий код запускает отправку в отдельной горутине
// и никогда не откатывает бронирование из-за ошибки уведомления
func (c *Client) SendConfirmation(ctx context.Context, msg *ConfirmationMessage) error {
	url := fmt.Sprintf("%s/internal/notifications/booking-confirmation", c.baseURL)

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal message: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
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
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	c.log.Info("SendConfirmation: notification sent for booking_ref=%s", msg.BookingRef)
	return nil
}
