// Package submit перехватывает отправку контактной формы, шлёт поля формы
// JSON-запросом на /api/contact и показывает пользователю результат.
//
// Жизненный цикл одной отправки: Idle → Sending → Idle. На время запроса
// кнопка отключена и подписана "Sending...", после любого исхода (успех,
// ошибка сервера, сбой транспорта) кнопка включается и подпись
// восстанавливается. Ошибки наружу не возвращаются: каждый исход
// заканчивается уведомлением пользователя.
package submit

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Controller — обработчик отправки одной формы.
type Controller struct {
	cfg      Config
	el       Elements
	notifier Notifier
	client   *Client
	log      zerolog.Logger
	msgs     Messages
	doer     Doer

	mu            sync.Mutex
	attached      bool
	state         State
	originalLabel string
}

// Option настраивает Controller.
type Option func(*Controller)

// WithHTTPClient подменяет HTTP-клиент (по умолчанию http.DefaultClient).
func WithHTTPClient(d Doer) Option {
	return func(c *Controller) { c.doer = d }
}

// WithLogger задаёт журнал разработчика (консоль браузера, stderr CLI).
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithMessages переопределяет тексты уведомлений; пустые поля берутся из DefaultMessages.
func WithMessages(m Messages) Option {
	return func(c *Controller) { c.msgs = m }
}

// New создаёт контроллер. Ссылки на форму, кнопку и подпись передаются явно.
func New(cfg Config, el Elements, n Notifier, opts ...Option) *Controller {
	c := &Controller{
		cfg:      cfg,
		el:       el,
		notifier: n,
		log:      zerolog.Nop(),
		msgs:     DefaultMessages,
	}
	for _, o := range opts {
		o(c)
	}
	c.msgs = c.msgs.withDefaults()
	if c.notifier == nil {
		c.notifier = NotifierFunc(func(context.Context, Notification) {})
	}
	c.client = NewClient(cfg, c.doer)
	return c
}

// Attach регистрирует обработчик submit на форме. Повторный вызов ничего не
// добавляет. Если форма реализует SubmitGuard и обработчик на ней уже есть
// (другой контроллер), второй не регистрируется. Если формы, кнопки или
// подписи нет, возвращает false.
func (c *Controller) Attach() bool {
	if !c.el.present() {
		c.log.Debug().Msg("contact form not present, submit handler not attached")
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.attached {
		return true
	}
	if g, ok := c.el.Form.(SubmitGuard); ok && !g.ClaimSubmit() {
		c.log.Debug().Msg("contact form already has a submit handler")
		return true
	}
	c.originalLabel = c.el.Label.Text()
	c.el.Form.OnSubmit(c.Submit)
	c.attached = true
	return true
}

// State — текущее состояние.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit — обработчик события submit. Блокируется до завершения запроса и
// закрытия уведомления.
func (c *Controller) Submit(ctx context.Context, ev Event) {
	if ev != nil {
		ev.PreventDefault()
	}
	if !c.el.present() {
		return
	}
	// Повторную отправку останавливает только отключённая кнопка
	if c.el.Trigger.Disabled() {
		return
	}

	c.begin()
	defer c.finish()

	c.deliver(ctx)
}

// deliver — отправка и уведомление. Паника на любом шаге (транспорт,
// уведомление, Reset формы) заканчивается уведомлением о сбое связи.
func (c *Controller) deliver(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error().Interface("panic", r).Msg("fetch failed with an error")
			c.notifyQuiet(ctx, Notification{Kind: Failed, Message: c.msgs.Connectivity})
		}
	}()

	payload := NewPayload(c.el.Form.Fields())
	c.log.Info().Str("url", c.cfg.URL()).Msg("submitting contact form")
	c.log.Debug().Interface("data", payload).Msg("contact form payload")

	reply, err := c.send(ctx, payload)
	c.report(ctx, reply, err)
}

// notifyQuiet — последнее уведомление; повторная паника только пишется в журнал
func (c *Controller) notifyQuiet(ctx context.Context, n Notification) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error().Interface("panic", r).Msg("notification failed")
		}
	}()
	c.notifier.Notify(ctx, n)
}

func (c *Controller) begin() {
	c.mu.Lock()
	c.state = Sending
	// без Attach исходная подпись берётся в момент отправки
	if !c.attached {
		c.originalLabel = c.el.Label.Text()
	}
	c.mu.Unlock()

	c.el.Trigger.SetDisabled(true)
	c.el.Label.SetText(c.msgs.InProgress)
}

func (c *Controller) finish() {
	c.mu.Lock()
	label := c.originalLabel
	c.state = Idle
	c.mu.Unlock()

	c.el.Trigger.SetDisabled(false)
	c.el.Label.SetText(label)
}

// send превращает панику транспорта в TransportError
func (c *Controller) send(ctx context.Context, p FormPayload) (reply *Reply, err error) {
	defer func() {
		if r := recover(); r != nil {
			reply = nil
			err = &TransportError{Op: "panic", Err: fmt.Errorf("%v", r)}
		}
	}()
	return c.client.Send(ctx, p)
}

func (c *Controller) report(ctx context.Context, reply *Reply, err error) {
	var rejected *RejectedError
	switch {
	case err == nil:
		c.log.Info().Int("status", reply.Status).Str("id", reply.ID).Msg("contact form accepted")
		c.notifier.Notify(ctx, Notification{Kind: Succeeded, Message: c.msgs.Success})
		c.el.Form.Reset()
	case errors.As(err, &rejected):
		c.log.Error().Int("status", rejected.Status).Str("error", rejected.Message).Msg("contact form rejected")
		c.notifier.Notify(ctx, Notification{Kind: Rejected, Message: c.msgs.rejected(rejected.Message)})
	default:
		c.log.Error().Err(err).Msg("fetch failed with an error")
		c.notifier.Notify(ctx, Notification{Kind: Failed, Message: c.msgs.Connectivity})
	}
}
