// Package gateway is the typed client the bot uses to reach the storage
// service. It translates HTTP statuses back into the model sentinel errors
// so callers can branch with errors.Is. Every request is attempted once;
// there is no retry layer here, the dialogue machine decides user-visible
// fallback text.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jansonXAXAXA/Saved-Messages-Pro/internal/model"
)

// Client talks to the storage service's REST API.
type Client struct {
	rc *resty.Client
}

// New builds a client for the service at baseURL, e.g. "http://127.0.0.1:8080".
func New(baseURL string) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second).
		// Status mapping happens in statusErr; resty must not retry.
		SetRetryCount(0)
	return &Client{rc: rc}
}

// apiError is the service's standard error body.
type apiError struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
}

// statusErr maps a non-2xx response to a sentinel error.
func statusErr(op string, resp *resty.Response) error {
	var body apiError
	_ = json.Unmarshal(resp.Body(), &body)
	detail := body.Message
	if detail == "" {
		detail = resp.Status()
	}
	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return fmt.Errorf("%s: %s: %w", op, detail, model.ErrNotFound)
	case resp.StatusCode() == http.StatusConflict:
		return fmt.Errorf("%s: %s: %w", op, detail, model.ErrConflict)
	case resp.StatusCode() == http.StatusUnprocessableEntity:
		return fmt.Errorf("%s: %s: %w", op, detail, model.ErrValidation)
	case resp.StatusCode() >= http.StatusInternalServerError:
		return fmt.Errorf("%s: %s: %w", op, detail, model.ErrUnavailable)
	default:
		return fmt.Errorf("%s: unexpected status %d: %s", op, resp.StatusCode(), detail)
	}
}

// do runs one request and decodes a 2xx body into out when non-nil.
// Transport faults surface as model.ErrUnavailable.
func (c *Client) do(op string, req *resty.Request, method, url string, out interface{}) error {
	if out != nil {
		req.SetResult(out)
	}
	resp, err := req.Execute(method, url)
	if err != nil {
		return fmt.Errorf("%s: %v: %w", op, err, model.ErrUnavailable)
	}
	if !resp.IsSuccess() {
		return statusErr(op, resp)
	}
	return nil
}

// EnsureUser registers the user, treating an already-registered conflict as
// success.
func (c *Client) EnsureUser(ctx context.Context, telegramID int64, username string) error {
	body := map[string]interface{}{"telegramId": telegramID}
	if username != "" {
		body["username"] = username
	}
	req := c.rc.R().SetContext(ctx).SetBody(body)
	err := c.do("create user", req, http.MethodPost, "/api/users", nil)
	if errors.Is(err, model.ErrConflict) {
		return nil
	}
	return err
}

// GetUser fetches the user record by platform id.
func (c *Client) GetUser(ctx context.Context, telegramID int64) (*model.User, error) {
	var u model.User
	req := c.rc.R().SetContext(ctx)
	url := fmt.Sprintf("/api/users/%d", telegramID)
	if err := c.do("get user", req, http.MethodGet, url, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

type boardsPage struct {
	Boards []model.Board `json:"boards"`
	Count  int           `json:"count"`
}

func (c *Client) ListBoards(ctx context.Context, telegramID int64) ([]model.Board, error) {
	var page boardsPage
	req := c.rc.R().SetContext(ctx)
	url := fmt.Sprintf("/api/users/%d/boards", telegramID)
	if err := c.do("list boards", req, http.MethodGet, url, &page); err != nil {
		return nil, err
	}
	return page.Boards, nil
}

func (c *Client) CreateBoard(ctx context.Context, telegramID int64, name, icon string) (*model.Board, error) {
	var b model.Board
	body := map[string]interface{}{"name": name}
	if icon != "" {
		body["icon"] = icon
	}
	req := c.rc.R().SetContext(ctx).SetBody(body)
	url := fmt.Sprintf("/api/users/%d/boards", telegramID)
	if err := c.do("create board", req, http.MethodPost, url, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *Client) GetBoard(ctx context.Context, boardID int64) (*model.Board, error) {
	var b model.Board
	req := c.rc.R().SetContext(ctx)
	url := fmt.Sprintf("/api/boards/%d", boardID)
	if err := c.do("get board", req, http.MethodGet, url, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *Client) DeleteBoard(ctx context.Context, boardID int64) error {
	req := c.rc.R().SetContext(ctx)
	url := fmt.Sprintf("/api/boards/%d", boardID)
	return c.do("delete board", req, http.MethodDelete, url, nil)
}

func (c *Client) CreateItem(ctx context.Context, telegramID int64, itemType model.ItemType, title, content string) (*model.Item, error) {
	var it model.Item
	body := map[string]interface{}{"itemType": itemType, "title": title, "content": content}
	req := c.rc.R().SetContext(ctx).SetBody(body)
	url := fmt.Sprintf("/api/users/%d/items", telegramID)
	if err := c.do("create item", req, http.MethodPost, url, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

type itemsPage struct {
	Items []model.Item `json:"items"`
	Count int          `json:"count"`
}

func (c *Client) ListBoardItems(ctx context.Context, boardID int64) ([]model.Item, error) {
	var page itemsPage
	req := c.rc.R().SetContext(ctx)
	url := fmt.Sprintf("/api/boards/%d/items", boardID)
	if err := c.do("list items", req, http.MethodGet, url, &page); err != nil {
		return nil, err
	}
	return page.Items, nil
}

func (c *Client) GetItem(ctx context.Context, itemID int64) (*model.Item, error) {
	var it model.Item
	req := c.rc.R().SetContext(ctx)
	url := fmt.Sprintf("/api/items/%d", itemID)
	if err := c.do("get item", req, http.MethodGet, url, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

// MoveItem reassigns an item to boardID; nil moves it to unsorted.
func (c *Client) MoveItem(ctx context.Context, itemID int64, boardID *int64) error {
	req := c.rc.R().SetContext(ctx).SetBody(map[string]interface{}{"boardId": boardID})
	url := fmt.Sprintf("/api/items/%d/board", itemID)
	return c.do("move item", req, http.MethodPut, url, nil)
}

func (c *Client) SearchItems(ctx context.Context, telegramID int64, query string) ([]model.Item, error) {
	var page itemsPage
	req := c.rc.R().SetContext(ctx).SetQueryParam("q", query)
	url := fmt.Sprintf("/api/users/%d/search", telegramID)
	if err := c.do("search items", req, http.MethodGet, url, &page); err != nil {
		return nil, err
	}
	return page.Items, nil
}

func (c *Client) DeleteItem(ctx context.Context, itemID int64) error {
	req := c.rc.R().SetContext(ctx)
	url := fmt.Sprintf("/api/items/%d", itemID)
	return c.do("delete item", req, http.MethodDelete, url, nil)
}

// ResolveDownload fetches a delivery handle for the item's content.
func (c *Client) ResolveDownload(ctx context.Context, itemID int64) (*model.Download, error) {
	var dl model.Download
	req := c.rc.R().SetContext(ctx)
	url := fmt.Sprintf("/api/items/%d/download", itemID)
	if err := c.do("resolve download", req, http.MethodGet, url, &dl); err != nil {
		return nil, err
	}
	return &dl, nil
}
