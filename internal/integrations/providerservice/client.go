package providerservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Client клиент для работы с ProviderService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента ProviderService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetService получает услугу мастера (базовая цена, наценка за выезд)
func (c *Client) GetService(ctx context.Context, providerID, serviceID int64) (*ServiceInfo, error) {
	url := fmt.Sprintf("%s/internal/providers/%d/services/%d", c.baseURL, providerID, serviceID)

	body, err := c.doGet(ctx, url)
	if err != nil {
		return nil, err
	}

	var svc ServiceInfo
	if err := json.Unmarshal(body, &svc); err != nil {
		return nil, fmt.Errorf("%w: failed to decode service response: %v", ErrInvalidResponse, err)
	}

	return &svc, nil
}

// GetWorkingHours получает график мастера на конкретную дату
func (c *Client) GetWorkingHours(ctx context.Context, providerID int64, date time.Time) (*domain.WorkingHours, error) {
	url := fmt.Sprintf("%s/internal/providers/%d/working-hours?date=%s",
		c.baseURL, providerID, date.Format(domain.DateFormat))

	body, err := c.doGet(ctx, url)
	if err != nil {
		return nil, err
	}

	var resp WorkingHoursResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode working hours response: %v", ErrInvalidResponse, err)
	}

	hours := &domain.WorkingHours{
		IsAvailable: resp.IsAvailable,
	}
	if resp.IsAvailable {
		start, err := types.NewTimeStringFromString(resp.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid start_time %q: %v", ErrInvalidResponse, resp.StartTime, err)
		}
		end, err := types.NewTimeStringFromString(resp.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid end_time %q: %v", ErrInvalidResponse, resp.EndTime, err)
		}
		hours.StartTime = start
		hours.EndTime = end
	}

	return hours, nil
}

// GetWorkingHoursWithGracefulDegradation получает график мастера с graceful degradation.
// При недоступности ProviderService возвращает ErrAvailabilityUnknown, что позволяет
// вызывающей стороне использовать консервативные значения по умолчанию вместо отказа
func (c *Client) GetWorkingHoursWithGracefulDegradation(ctx context.Context, providerID int64, date time.Time) (*domain.WorkingHours, error) {
	hours, err := c.GetWorkingHours(ctx, providerID, date)
	if err != nil {
		// Бизнес-ошибку (мастер не найден) пробрасываем дальше
		if errors.Is(err, ErrProviderNotFound) {
			return nil, err
		}

		// Для всех остальных ошибок (недоступность сервиса, timeout, ошибки парсинга)
		// применяем graceful degradation
		c.log.Error("ProviderService unavailable, applying graceful degradation for provider_id=%d date=%s: %v",
			providerID, date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: provider_id=%d, error=%v", ErrAvailabilityUnknown, providerID, err)
	}

	return hours, nil
}

func (c *Client) doGet(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid request parameters", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, c.notFoundError(resp)
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %v", ErrInvalidResponse, err)
	}

	return body, nil
}

// notFoundError различает "мастер не найден" и "услуга не найдена" по телу ответа
func (c *Client) notFoundError(resp *http.Response) error {
	var errResp ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil {
		if errResp.Code == http.StatusNotFound && errResp.Message == "service not found" {
			return ErrServiceNotFound
		}
	}
	return ErrProviderNotFound
}
