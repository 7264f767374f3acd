package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// DefaultEndpoint — путь API контактной формы.
const DefaultEndpoint = "/api/contact"

// Config — точки настройки отправки.
type Config struct {
	BaseURL         string            // "" — относительный путь (браузер)
	Endpoint        string            // по умолчанию /api/contact
	MaxPayloadBytes int               // 0 — без ограничения
	AllowedFields   []string          // пусто — все поля формы
	Headers         map[string]string // дополнительные заголовки (например, X-CSRF-Token)
}

// URL — полный адрес запроса.
func (c Config) URL() string {
	endpoint := c.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if c.BaseURL == "" {
		return endpoint
	}
	return strings.TrimRight(c.BaseURL, "/") + "/" + strings.TrimLeft(endpoint, "/")
}

// Doer — минимальный HTTP-клиент (*http.Client и подмены в тестах).
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// RejectedError — транспорт отработал, сервер ответил ошибкой.
type RejectedError struct {
	Status  int
	Message string // из поля "error" ответа, может быть пустым
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("contact api %d", e.Status)
	}
	return fmt.Sprintf("contact api %d: %s", e.Status, e.Message)
}

// TransportError — запрос не удалось выполнить или разобрать ответ.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("contact transport %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Reply — разобранный успешный ответ.
type Reply struct {
	Status  int    `json:"-"`
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
}

type errorBody struct {
	Error string `json:"error"`
}

// Client выполняет один POST на endpoint формы.
type Client struct {
	cfg  Config
	http Doer
}

// NewClient. Таймаут не задаётся: поведение при зависании определяет транспорт.
func NewClient(cfg Config, doer Doer) *Client {
	if doer == nil {
		doer = http.DefaultClient
	}
	return &Client{cfg: cfg, http: doer}
}

// Encode сериализует payload с учётом AllowedFields и MaxPayloadBytes.
func (c *Client) Encode(p FormPayload) ([]byte, error) {
	body, err := json.Marshal(p.Filter(c.cfg.AllowedFields))
	if err != nil {
		return nil, &TransportError{Op: "encode", Err: err}
	}
	if c.cfg.MaxPayloadBytes > 0 && len(body) > c.cfg.MaxPayloadBytes {
		return nil, &TransportError{
			Op:  "encode",
			Err: fmt.Errorf("payload %d bytes exceeds limit %d", len(body), c.cfg.MaxPayloadBytes),
		}
	}
	return body, nil
}

// Send отправляет payload. Тело ответа разбирается как JSON до проверки статуса:
// не-JSON ответ — это TransportError при любом статусе.
func (c *Client) Send(ctx context.Context, p FormPayload) (*Reply, error) {
	body, err := c.Encode(p)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL(), bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Op: "request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range c.cfg.Headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "do", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: "read", Err: err}
	}
	if !json.Valid(raw) {
		return nil, &TransportError{Op: "decode", Err: fmt.Errorf("status %d: response is not JSON", resp.StatusCode)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		// "error" может отсутствовать или быть не строкой: тогда сообщение пустое
		_ = json.Unmarshal(raw, &eb)
		return nil, &RejectedError{Status: resp.StatusCode, Message: eb.Error}
	}

	reply := &Reply{Status: resp.StatusCode}
	// Успешный ответ не обязан быть объектом
	_ = json.Unmarshal(raw, reply)
	return reply, nil
}
