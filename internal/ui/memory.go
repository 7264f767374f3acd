// Package ui — элементы формы в памяти: форма, кнопка с подписью, журнал
// уведомлений. Ведут себя как их браузерные аналоги: отключённая кнопка не
// даёт отправить форму, Reset возвращает исходные значения полей.
package ui

import (
	"context"
	"sync"

	"contactApp/internal/submit"
)

// Span — подпись внутри кнопки.
type Span struct {
	mu   sync.Mutex
	text string
}

func NewSpan(text string) *Span { return &Span{text: text} }

func (s *Span) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

func (s *Span) SetText(text string) {
	s.mu.Lock()
	s.text = text
	s.mu.Unlock()
}

// Button — кнопка type=submit.
type Button struct {
	mu       sync.Mutex
	disabled bool
	Label    *Span
}

func NewButton(label string) *Button { return &Button{Label: NewSpan(label)} }

func (b *Button) SetDisabled(disabled bool) {
	b.mu.Lock()
	b.disabled = disabled
	b.mu.Unlock()
}

func (b *Button) Disabled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.disabled
}

// SubmitEvent запоминает вызов PreventDefault.
type SubmitEvent struct {
	mu        sync.Mutex
	prevented bool
}

func (e *SubmitEvent) PreventDefault() {
	e.mu.Lock()
	e.prevented = true
	e.mu.Unlock()
}

func (e *SubmitEvent) DefaultPrevented() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.prevented
}

type input struct {
	name     string
	value    string
	defValue string
}

// Form — набор полей в порядке документа. Имена могут повторяться.
type Form struct {
	ID     string
	Button *Button

	mu        sync.Mutex
	inputs    []*input
	listeners []submit.Handler
	claimed   bool
}

// NewForm создаёт форму с кнопкой отправки.
func NewForm(id, buttonLabel string) *Form {
	return &Form{ID: id, Button: NewButton(buttonLabel)}
}

// AddField добавляет поле; def — значение, к которому возвращает Reset.
func (f *Form) AddField(name, def string) *Form {
	f.mu.Lock()
	f.inputs = append(f.inputs, &input{name: name, value: def, defValue: def})
	f.mu.Unlock()
	return f
}

// SetValue меняет значение первого поля с таким именем (как ввод пользователя).
// Поле создаётся, если его нет.
func (f *Form) SetValue(name, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, in := range f.inputs {
		if in.name == name {
			in.value = value
			return
		}
	}
	f.inputs = append(f.inputs, &input{name: name, value: value})
}

// Value — значение первого поля с таким именем.
func (f *Form) Value(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, in := range f.inputs {
		if in.name == name {
			return in.value
		}
	}
	return ""
}

func (f *Form) Fields() []submit.Field {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]submit.Field, 0, len(f.inputs))
	for _, in := range f.inputs {
		out = append(out, submit.Field{Name: in.name, Value: in.value})
	}
	return out
}

func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, in := range f.inputs {
		in.value = in.defValue
	}
}

// ClaimSubmit — true только для первого контроллера на этой форме.
func (f *Form) ClaimSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.claimed {
		return false
	}
	f.claimed = true
	return true
}

func (f *Form) OnSubmit(h submit.Handler) {
	f.mu.Lock()
	f.listeners = append(f.listeners, h)
	f.mu.Unlock()
}

// Listeners — число зарегистрированных обработчиков.
func (f *Form) Listeners() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.listeners)
}

// Submit имитирует нажатие кнопки пользователем. Если кнопка отключена,
// событие не возникает и возвращается nil.
func (f *Form) Submit(ctx context.Context) *SubmitEvent {
	if f.Button != nil && f.Button.Disabled() {
		return nil
	}
	f.mu.Lock()
	listeners := make([]submit.Handler, len(f.listeners))
	copy(listeners, f.listeners)
	f.mu.Unlock()

	ev := &SubmitEvent{}
	for _, h := range listeners {
		h(ctx, ev)
	}
	return ev
}

// Elements — явные ссылки для submit.New.
func (f *Form) Elements() submit.Elements {
	el := submit.Elements{Form: f}
	if f.Button != nil {
		el.Trigger = f.Button
		if f.Button.Label != nil {
			el.Label = f.Button.Label
		}
	}
	return el
}

// Alerts — уведомитель, записывающий сообщения.
type Alerts struct {
	mu    sync.Mutex
	items []submit.Notification
	// OnNotify вызывается внутри Notify (проверки состояния в момент показа).
	OnNotify func(n submit.Notification)
}

func (a *Alerts) Notify(_ context.Context, n submit.Notification) {
	a.mu.Lock()
	a.items = append(a.items, n)
	hook := a.OnNotify
	a.mu.Unlock()
	if hook != nil {
		hook(n)
	}
}

// All — показанные уведомления по порядку.
func (a *Alerts) All() []submit.Notification {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]submit.Notification, len(a.items))
	copy(out, a.items)
	return out
}

// Last — последнее уведомление.
func (a *Alerts) Last() (submit.Notification, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.items) == 0 {
		return submit.Notification{}, false
	}
	return a.items[len(a.items)-1], true
}
