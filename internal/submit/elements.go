package submit

import "context"

// State — состояние контроллера: Idle или Sending.
type State int

const (
	Idle State = iota
	Sending
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Sending:
		return "sending"
	default:
		return "unknown"
	}
}

// Event — событие submit, пришедшее от формы.
type Event interface {
	// PreventDefault отменяет штатную навигацию браузера.
	PreventDefault()
}

// Handler — обработчик submit, который контроллер регистрирует на форме.
type Handler func(ctx context.Context, ev Event)

// Form — внешняя форма (DOM, терминал, память).
type Form interface {
	// Fields — текущие значения полей в порядке документа.
	Fields() []Field
	// Reset возвращает поля к пустым/исходным значениям.
	Reset()
	// OnSubmit регистрирует обработчик отправки.
	OnSubmit(h Handler)
}

// SubmitGuard — форма, которая помнит, что обработчик отправки на ней уже
// зарегистрирован. ClaimSubmit возвращает true только при первом вызове.
type SubmitGuard interface {
	ClaimSubmit() bool
}

// Trigger — кнопка, инициирующая отправку.
type Trigger interface {
	SetDisabled(disabled bool)
	Disabled() bool
}

// Label — текстовый элемент внутри кнопки.
type Label interface {
	Text() string
	SetText(text string)
}

// Outcome — итог отправки, который видит пользователь.
type Outcome int

const (
	Succeeded Outcome = iota
	Rejected
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Succeeded:
		return "success"
	case Rejected:
		return "rejected"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Notification — блокирующее сообщение пользователю.
type Notification struct {
	Kind    Outcome
	Message string
}

// Notifier показывает уведомление и возвращается, когда пользователь его закрыл.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// NotifierFunc — адаптер функции к Notifier.
type NotifierFunc func(ctx context.Context, n Notification)

func (f NotifierFunc) Notify(ctx context.Context, n Notification) { f(ctx, n) }

// Elements — явные ссылки на форму, кнопку и её подпись.
type Elements struct {
	Form    Form
	Trigger Trigger
	Label   Label
}

func (e Elements) present() bool {
	return e.Form != nil && e.Trigger != nil && e.Label != nil
}
