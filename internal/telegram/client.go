package telegram

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

const defaultBaseURL = "https://api.telegram.org"

// Client is a thin Bot API client covering the methods the bot needs.
type Client struct {
	rc      *resty.Client
	baseURL string
	token   string
}

// NewClient builds a client for the given bot token.
func NewClient(token string) *Client {
	return NewClientWithBase(defaultBaseURL, token)
}

// NewClientWithBase allows overriding the API host (tests, local bot API server).
func NewClientWithBase(baseURL, token string) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(65 * time.Second) // must exceed the long-poll timeout
	return &Client{rc: rc, baseURL: baseURL, token: token}
}

// apiEnvelope is the standard Bot API response wrapper.
type apiEnvelope struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result,omitempty"`
	Description string          `json:"description,omitempty"`
}

// call invokes one Bot API method, decoding the result into out when non-nil.
// Transport faults and server faults surface as model.ErrUnavailable.
func (c *Client) call(ctx context.Context, method string, params interface{}, out interface{}) error {
	resp, err := c.rc.R().
		SetContext(ctx).
		SetBody(params).
		Post(fmt.Sprintf("/bot%s/%s", c.token, method))
	if err != nil {
		return fmt.Errorf("%s: %v: %w", method, err, model.ErrUnavailable)
	}
	if resp.StatusCode() >= http.StatusInternalServerError {
		return fmt.Errorf("%s: status %d: %w", method, resp.StatusCode(), model.ErrUnavailable)
	}
	var env apiEnvelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return fmt.Errorf("%s: decode response: %w", method, err)
	}
	if !env.OK {
		return fmt.Errorf("%s: %s", method, env.Description)
	}
	if out != nil {
		if err := json.Unmarshal(env.Result, out); err != nil {
			return fmt.Errorf("%s: decode result: %w", method, err)
		}
	}
	return nil
}

// GetUpdates long-polls for new updates after offset.
func (c *Client) GetUpdates(ctx context.Context, offset int64, timeoutSec int) ([]Update, error) {
	params := map[string]interface{}{"offset": offset, "timeout": timeoutSec}
	var updates []Update
	if err := c.call(ctx, "getUpdates", params, &updates); err != nil {
		return nil, err
	}
	return updates, nil
}

// DeleteWebhook disables any configured webhook so long polling can run.
func (c *Client) DeleteWebhook(ctx context.Context, dropPending bool) error {
	return c.call(ctx, "deleteWebhook", map[string]interface{}{"drop_pending_updates": dropPending}, nil)
}

// SendMessage sends text with an optional reply markup
// (inline keyboard, reply keyboard, or keyboard removal).
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string, replyMarkup interface{}) error {
	params := map[string]interface{}{"chat_id": chatID, "text": text}
	if replyMarkup != nil {
		params["reply_markup"] = replyMarkup
	}
	return c.call(ctx, "sendMessage", params, nil)
}

// EditMessageText rewrites a previously sent message in place.
func (c *Client) EditMessageText(ctx context.Context, chatID int64, messageID int, text string, markup *InlineKeyboardMarkup) error {
	params := map[string]interface{}{"chat_id": chatID, "message_id": messageID, "text": text}
	if markup != nil {
		params["reply_markup"] = markup
	}
	return c.call(ctx, "editMessageText", params, nil)
}

// AnswerCallbackQuery acknowledges a button press, optionally with a notice.
func (c *Client) AnswerCallbackQuery(ctx context.Context, callbackID, text string, showAlert bool) error {
	params := map[string]interface{}{"callback_query_id": callbackID}
	if text != "" {
		params["text"] = text
		params["show_alert"] = showAlert
	}
	return c.call(ctx, "answerCallbackQuery", params, nil)
}

// mediaMethods maps an item type to the Bot API method and payload field.
var mediaMethods = map[model.ItemType][2]string{
	model.ItemPhoto:     {"sendPhoto", "photo"},
	model.ItemVideo:     {"sendVideo", "video"},
	model.ItemVoice:     {"sendVoice", "voice"},
	model.ItemDocument:  {"sendDocument", "document"},
	model.ItemVideoNote: {"sendVideoNote", "video_note"},
}

// SendMedia delivers a stored media item by file id or URL.
func (c *Client) SendMedia(ctx context.Context, chatID int64, itemType model.ItemType, ref string) error {
	mm, ok := mediaMethods[itemType]
	if !ok {
		return fmt.Errorf("item type %q is not a media type", itemType)
	}
	return c.call(ctx, mm[0], map[string]interface{}{"chat_id": chatID, mm[1]: ref}, nil)
}

// SendLocation delivers a stored coordinate pair.
func (c *Client) SendLocation(ctx context.Context, chatID int64, lat, lon float64) error {
	return c.call(ctx, "sendLocation", map[string]interface{}{"chat_id": chatID, "latitude": lat, "longitude": lon}, nil)
}

// GetChat looks up chat metadata. chatID accepts a numeric id or an
// @username reference.
func (c *Client) GetChat(ctx context.Context, chatID string) (*Chat, error) {
	var chat Chat
	if err := c.call(ctx, "getChat", map[string]interface{}{"chat_id": chatID}, &chat); err != nil {
		return nil, err
	}
	return &chat, nil
}

// ChatID implements services.ChatResolver: it turns a public username into a
// Telegram id. The Bot API rejects unknown usernames with a bad-request
// error, which surfaces here as model.ErrNotFound.
func (c *Client) ChatID(ctx context.Context, username string) (int64, error) {
	chat, err := c.GetChat(ctx, "@"+username)
	if err != nil {
		if errors.Is(err, model.ErrUnavailable) {
			return 0, err
		}
		return 0, fmt.Errorf("username %q: %w", username, model.ErrNotFound)
	}
	return chat.ID, nil
}

// GetFile resolves a file id into a download path.
func (c *Client) GetFile(ctx context.Context, fileID string) (*File, error) {
	var f File
	if err := c.call(ctx, "getFile", map[string]interface{}{"file_id": fileID}, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// FileURL implements services.FileResolver: it turns a file id into a
// time-limited download URL.
func (c *Client) FileURL(ctx context.Context, fileID string) (string, error) {
	f, err := c.GetFile(ctx, fileID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/file/bot%s/%s", c.baseURL, c.token, f.FilePath), nil
}
