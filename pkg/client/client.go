package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/naveenspark/parley/pkg/domain"
)

// CreateRoomRequest is the payload for creating a private room.
type CreateRoomRequest struct {
	Name string `json:"name" validate:"required,max=50"`
	Code string `json:"code,omitempty" validate:"omitempty,alphanum,max=12"`
}

// JoinRoomRequest is the payload for joining a room by code.
type JoinRoomRequest struct {
	Code string `json:"code" validate:"required,alphanum,max=12"`
}

// UpdateRoomRequest is the payload for changing room settings.
type UpdateRoomRequest struct {
	Name string `json:"name" validate:"required,max=50"`
}

// SendMessageRequest is the payload for posting a room message.
// AnonymousUsername is only set for the global room.
type SendMessageRequest struct {
	Content           string `json:"content"`
	AnonymousUsername string `json:"anonymous_username,omitempty"`
}

// UpdateProfileRequest is the payload for changing the chat display name.
type UpdateProfileRequest struct {
	ChatDisplayName string `json:"chat_display_name" validate:"required,max=32"`
}

// Client is the Parley API client.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a new API client.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GetMe returns the authenticated caller.
func (c *Client) GetMe(ctx context.Context) (*domain.Caller, error) {
	var me domain.Caller
	if err := c.get(ctx, "/api/me", &me); err != nil {
		return nil, fmt.Errorf("client.GetMe: %w", err)
	}
	return &me, nil
}

// --- Rooms ---

// ListRooms returns the rooms visible to the caller.
func (c *Client) ListRooms(ctx context.Context) ([]domain.Room, error) {
	var rooms []domain.Room
	if err := c.get(ctx, "/api/rooms", &rooms); err != nil {
		return nil, fmt.Errorf("client.ListRooms: %w", err)
	}
	return rooms, nil
}

// CreateRoom creates a private room, optionally with a custom join code.
func (c *Client) CreateRoom(ctx context.Context, req CreateRoomRequest) (*domain.Room, error) {
	var room domain.Room
	if err := c.post(ctx, "/api/rooms", req, &room); err != nil {
		return nil, fmt.Errorf("client.CreateRoom: %w", err)
	}
	return &room, nil
}

// JoinRoom joins a room by its code.
func (c *Client) JoinRoom(ctx context.Context, code string) (*domain.Room, error) {
	var room domain.Room
	if err := c.post(ctx, "/api/rooms/join", JoinRoomRequest{Code: code}, &room); err != nil {
		return nil, fmt.Errorf("client.JoinRoom: %w", err)
	}
	return &room, nil
}

// UpdateRoom changes room settings.
func (c *Client) UpdateRoom(ctx context.Context, id string, req UpdateRoomRequest) (*domain.Room, error) {
	var room domain.Room
	if err := c.doRequest(ctx, http.MethodPatch, "/api/rooms/"+url.PathEscape(id), req, &room); err != nil {
		return nil, fmt.Errorf("client.UpdateRoom: %w", err)
	}
	return &room, nil
}

// LeaveRoom removes the caller from a room.
func (c *Client) LeaveRoom(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, http.MethodPost, "/api/rooms/"+url.PathEscape(id)+"/leave", nil, nil); err != nil {
		return fmt.Errorf("client.LeaveRoom: %w", err)
	}
	return nil
}

// DeleteRoom deletes a room the caller owns.
func (c *Client) DeleteRoom(ctx context.Context, id string) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/api/rooms/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("client.DeleteRoom: %w", err)
	}
	return nil
}

// --- Messages ---

// GetRoomMessages returns the most recent messages of a room, oldest first.
func (c *Client) GetRoomMessages(ctx context.Context, roomID string, limit int) ([]domain.Message, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	path := "/api/rooms/" + url.PathEscape(roomID) + "/messages"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var msgs []domain.Message
	if err := c.get(ctx, path, &msgs); err != nil {
		return nil, fmt.Errorf("client.GetRoomMessages: %w", err)
	}
	return msgs, nil
}

// SendRoomMessage posts a message to a room. anonUsername is sent only when non-empty.
func (c *Client) SendRoomMessage(ctx context.Context, roomID, content, anonUsername string) (*domain.Message, error) {
	req := SendMessageRequest{Content: content, AnonymousUsername: anonUsername}
	var msg domain.Message
	if err := c.post(ctx, "/api/rooms/"+url.PathEscape(roomID)+"/messages", req, &msg); err != nil {
		return nil, fmt.Errorf("client.SendRoomMessage: %w", err)
	}
	return &msg, nil
}

// --- Profile ---

// GetChatProfile returns the caller's chat profile.
func (c *Client) GetChatProfile(ctx context.Context) (*domain.ChatProfile, error) {
	var p domain.ChatProfile
	if err := c.get(ctx, "/api/me/chat-profile", &p); err != nil {
		return nil, fmt.Errorf("client.GetChatProfile: %w", err)
	}
	return &p, nil
}

// UpdateChatProfile sets the caller's chat display name.
func (c *Client) UpdateChatProfile(ctx context.Context, displayName string) (*domain.ChatProfile, error) {
	var p domain.ChatProfile
	req := UpdateProfileRequest{ChatDisplayName: displayName}
	if err := c.doRequest(ctx, http.MethodPut, "/api/me/chat-profile", req, &p); err != nil {
		return nil, fmt.Errorf("client.UpdateChatProfile: %w", err)
	}
	return &p, nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req.Header)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		return readHTTPError(resp)
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) authorize(h http.Header) {
	if c.token != "" {
		h.Set("Authorization", "Bearer "+c.token)
	}
}

// readHTTPError converts a non-2xx response into an *HTTPError, preferring the API's {"error": ...} body.
func readHTTPError(resp *http.Response) error {
	respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
	if readErr != nil {
		return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
	}
	var apiErr struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
		return &HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Error}
	}
	return &HTTPError{StatusCode: resp.StatusCode, Message: string(respBody)}
}
