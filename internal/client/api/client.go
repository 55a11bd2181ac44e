package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/iudanet/roomkeeper/pkg/api"
)

// registryTimeout ограничивает каждый вызов удаленного Registry.
// По истечении реконсилятор деградирует в cache-only режим,
// вызывающий код не блокируется.
const registryTimeout = 10 * time.Second

// Client представляет HTTP клиент для взаимодействия с Room Registry
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient создает новый API клиент
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: registryTimeout,
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовок Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// ListRooms возвращает комнаты, видимые владельцу токена
func (c *Client) ListRooms(ctx context.Context, accessToken string) ([]api.RoomRecord, error) {
	var resp api.ListRoomsResponse
	err := c.doRequest(ctx, http.MethodGet, "/api/v1/rooms", accessToken, nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("list rooms request failed: %w", err)
	}
	return resp.Rooms, nil
}

// CreateRoom создает комнату в Registry
func (c *Client) CreateRoom(ctx context.Context, accessToken string, req api.CreateRoomRequest) (*api.RoomRecord, error) {
	var resp api.RoomRecord
	err := c.doRequest(ctx, http.MethodPost, "/api/v1/rooms", accessToken, req, &resp)
	if err != nil {
		return nil, fmt.Errorf("create room request failed: %w", err)
	}
	return &resp, nil
}

// UpdateRoom обновляет комнату в Registry
func (c *Client) UpdateRoom(ctx context.Context, accessToken, roomID string, req api.UpdateRoomRequest) (*api.RoomRecord, error) {
	var resp api.RoomRecord
	path := "/api/v1/rooms/" + url.PathEscape(roomID)
	err := c.doRequest(ctx, http.MethodPut, path, accessToken, req, &resp)
	if err != nil {
		return nil, fmt.Errorf("update room request failed: %w", err)
	}
	return &resp, nil
}

// DeleteRoom удаляет комнату из Registry. Это единственное авторитетное
// удаление: локальный кеш узнает о нем при следующей реконсиляции.
func (c *Client) DeleteRoom(ctx context.Context, accessToken, roomID string) error {
	path := "/api/v1/rooms/" + url.PathEscape(roomID)
	if err := c.doRequest(ctx, http.MethodDelete, path, accessToken, nil, nil); err != nil {
		return fmt.Errorf("delete room request failed: %w", err)
	}
	return nil
}

// CreateShare создает share-конфигурацию и получает capability токен
func (c *Client) CreateShare(ctx context.Context, accessToken string, req api.CreateShareRequest) (*api.CreateShareResponse, error) {
	var resp api.CreateShareResponse
	err := c.doRequest(ctx, http.MethodPost, "/api/v1/share-configs", accessToken, req, &resp)
	if err != nil {
		return nil, fmt.Errorf("create share request failed: %w", err)
	}
	return &resp, nil
}

// GetShare возвращает share-конфигурацию. Публичный endpoint: verify
// должен работать и для анонимных посетителей.
func (c *Client) GetShare(ctx context.Context, shareID string) (*api.ShareConfig, error) {
	var resp api.ShareConfig
	path := "/api/v1/share-configs/" + url.PathEscape(shareID)
	err := c.doRequest(ctx, http.MethodGet, path, "", nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("get share request failed: %w", err)
	}
	return &resp, nil
}

// UpdateShare изменяет share-конфигурацию (permission, isActive, description)
func (c *Client) UpdateShare(ctx context.Context, accessToken, shareID string, req api.UpdateShareRequest) (*api.ShareConfig, error) {
	var resp api.ShareConfig
	path := "/api/v1/share-configs/" + url.PathEscape(shareID)
	err := c.doRequest(ctx, http.MethodPatch, path, accessToken, req, &resp)
	if err != nil {
		return nil, fmt.Errorf("update share request failed: %w", err)
	}
	return &resp, nil
}

// DeleteShare навсегда удаляет share-конфигурацию.
// Все токены, ссылающиеся на нее, после этого невалидны навсегда.
func (c *Client) DeleteShare(ctx context.Context, accessToken, shareID string) error {
	path := "/api/v1/share-configs/" + url.PathEscape(shareID)
	if err := c.doRequest(ctx, http.MethodDelete, path, accessToken, nil, nil); err != nil {
		return fmt.Errorf("delete share request failed: %w", err)
	}
	return nil
}

// ListShares возвращает share-конфигурации комнаты (только владельцу)
func (c *Client) ListShares(ctx context.Context, accessToken, roomID string) ([]api.ShareConfig, error) {
	var resp api.ListSharesResponse
	path := "/api/v1/share-configs?room_id=" + url.QueryEscape(roomID)
	err := c.doRequest(ctx, http.MethodGet, path, accessToken, nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("list shares request failed: %w", err)
	}
	return resp.Shares, nil
}

// VerifyCapability проверяет capability токен на сервере
func (c *Client) VerifyCapability(ctx context.Context, token string) (*api.VerifyCapabilityResponse, error) {
	var resp api.VerifyCapabilityResponse
	path := "/api/v1/capability/verify?token=" + url.QueryEscape(token)
	err := c.doRequest(ctx, http.MethodGet, path, "", nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("verify capability request failed: %w", err)
	}
	return &resp, nil
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path, accessToken string, body, result interface{}) error {
	requestURL := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
			return fmt.Errorf("server error (%d): %s", resp.StatusCode, errResp.Error)
		}
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	// Декодируем успешный ответ
	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
