//go:build js && wasm

// Package jsdom привязывает submit.Controller к DOM страницы через syscall/js.
package jsdom

import (
	"context"
	"strings"

	"syscall/js"

	"github.com/rs/zerolog"

	"contactApp/internal/submit"
)

// form — элемент <form>. Значения собираются через FormData, как при штатной отправке.
type form struct {
	el js.Value
	// обработчики живут столько же, сколько страница
	funcs []js.Func
}

func (f *form) Fields() []submit.Field {
	fd := js.Global().Get("FormData").New(f.el)
	it := fd.Call("entries")
	var out []submit.Field
	for {
		next := it.Call("next")
		if next.Get("done").Bool() {
			break
		}
		pair := next.Get("value")
		value := pair.Index(1)
		v := ""
		if value.Type() == js.TypeString {
			v = value.String()
		} else if name := value.Get("name"); name.Type() == js.TypeString {
			// File: как у Object.fromEntries после JSON.stringify — только имя
			v = name.String()
		}
		out = append(out, submit.Field{Name: pair.Index(0).String(), Value: v})
	}
	return out
}

func (f *form) Reset() { f.el.Call("reset") }

// ClaimSubmit — метка data-contact-submit на самом элементе <form>.
func (f *form) ClaimSubmit() bool {
	ds := f.el.Get("dataset")
	if ds.Get("contactSubmit").Truthy() {
		return false
	}
	ds.Set("contactSubmit", "bound")
	return true
}

func (f *form) OnSubmit(h submit.Handler) {
	fn := js.FuncOf(func(this js.Value, args []js.Value) any {
		ev := jsEvent{v: args[0]}
		// preventDefault обязан прозвучать синхронно, до возврата в event loop
		ev.PreventDefault()
		// fetch из Go блокирует горутину, поэтому обработчик уходит в свою
		go h(context.Background(), ev)
		return nil
	})
	f.funcs = append(f.funcs, fn)
	f.el.Call("addEventListener", "submit", fn)
}

type jsEvent struct{ v js.Value }

func (e jsEvent) PreventDefault() { e.v.Call("preventDefault") }

type button struct{ el js.Value }

func (b button) SetDisabled(disabled bool) { b.el.Set("disabled", disabled) }
func (b button) Disabled() bool            { return b.el.Get("disabled").Truthy() }

type span struct{ el js.Value }

func (s span) Text() string        { return s.el.Get("textContent").String() }
func (s span) SetText(text string) { s.el.Set("textContent", text) }

// alert — блокирующее уведомление браузера.
type alert struct{}

func (alert) Notify(_ context.Context, n submit.Notification) {
	js.Global().Call("alert", n.Message)
}

// console — журнал разработчика: error и выше в console.error, остальное в console.log.
type console struct{}

func (console) Write(p []byte) (int, error) {
	js.Global().Get("console").Call("log", strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

func (console) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	method := "log"
	if level >= zerolog.ErrorLevel {
		method = "error"
	}
	js.Global().Get("console").Call(method, strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

// Logger — zerolog поверх консоли браузера.
func Logger() zerolog.Logger {
	return zerolog.New(console{}).With().Timestamp().Logger()
}

// Elements находит форму по id, её кнопку type=submit и <span> внутри кнопки.
// Отсутствующие элементы остаются nil: Attach тогда ничего не делает.
func Elements(formID string) submit.Elements {
	doc := js.Global().Get("document")
	el := doc.Call("getElementById", formID)
	if !el.Truthy() {
		return submit.Elements{}
	}
	out := submit.Elements{Form: &form{el: el}}

	btn := el.Call("querySelector", `button[type="submit"]`)
	if !btn.Truthy() {
		return out
	}
	out.Trigger = button{el: btn}

	if label := btn.Call("querySelector", "span"); label.Truthy() {
		out.Label = span{el: label}
	}
	return out
}

// CSRFToken читает <meta name="csrf-token">, если сервер его отдал.
func CSRFToken() string {
	meta := js.Global().Get("document").Call("querySelector", `meta[name="csrf-token"]`)
	if !meta.Truthy() {
		return ""
	}
	return meta.Call("getAttribute", "content").String()
}

// Origin — location.origin страницы (net/http в wasm нужен абсолютный URL).
func Origin() string {
	return js.Global().Get("location").Get("origin").String()
}

// Bind собирает контроллер для формы formID и вешает обработчик.
func Bind(formID string, cfg submit.Config, opts ...submit.Option) (*submit.Controller, bool) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = Origin()
	}
	if token := CSRFToken(); token != "" {
		if cfg.Headers == nil {
			cfg.Headers = map[string]string{}
		}
		cfg.Headers["X-CSRF-Token"] = token
	}
	opts = append([]submit.Option{submit.WithLogger(Logger())}, opts...)
	ctrl := submit.New(cfg, Elements(formID), alert{}, opts...)
	return ctrl, ctrl.Attach()
}
