// Package term — контактная форма в терминале: поля заполняются через
// PromptDriver, подпись кнопки выводится строкой статуса, уведомления
// печатаются драйвером.
package term

import (
	"context"
	"fmt"
	"io"
	"sync"

	"contactApp/internal/submit"
	"contactApp/internal/ui"
)

// FieldSpec — описание поля формы.
type FieldSpec struct {
	Name      string
	Prompt    string
	Default   string
	Required  bool
	Multiline bool
}

// DefaultFields — поля страницы контактов.
var DefaultFields = []FieldSpec{
	{Name: "name", Prompt: "Name", Required: true},
	{Name: "email", Prompt: "Email", Required: true},
	{Name: "company", Prompt: "Company"},
	{Name: "message", Prompt: "Message", Required: true, Multiline: true},
}

// StatusLine — подпись кнопки; каждое изменение печатается отдельной строкой.
type StatusLine struct {
	mu   sync.Mutex
	out  io.Writer
	text string
}

func NewStatusLine(out io.Writer, text string) *StatusLine {
	return &StatusLine{out: out, text: text}
}

func (s *StatusLine) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

func (s *StatusLine) SetText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if text == s.text {
		return
	}
	s.text = text
	_, _ = fmt.Fprintf(s.out, "[%s]\n", text)
}

// Form — терминальная форма поверх ui.Form.
type Form struct {
	*ui.Form
	driver PromptDriver
	specs  []FieldSpec
	status *StatusLine
}

// NewForm создаёт форму с полями specs (пусто — DefaultFields).
func NewForm(driver PromptDriver, out io.Writer, buttonLabel string, specs []FieldSpec) *Form {
	if len(specs) == 0 {
		specs = DefaultFields
	}
	f := &Form{
		Form:   ui.NewForm("contactForm", buttonLabel),
		driver: driver,
		specs:  specs,
		status: NewStatusLine(out, buttonLabel),
	}
	for _, s := range specs {
		f.AddField(s.Name, s.Default)
	}
	return f
}

// Elements — кнопка формы и строка статуса в роли подписи.
func (f *Form) Elements() submit.Elements {
	return submit.Elements{Form: f.Form, Trigger: f.Button, Label: f.status}
}

// Notify печатает уведомление через драйвер.
func (f *Form) Notify(ctx context.Context, n submit.Notification) {
	_ = f.driver.Info(ctx, n.Message)
}

// Fill спрашивает значения полей, для которых preset не задан.
func (f *Form) Fill(ctx context.Context, preset map[string]string) error {
	for _, s := range f.specs {
		if v, ok := preset[s.Name]; ok {
			f.SetValue(s.Name, v)
			continue
		}
		var (
			v   string
			err error
		)
		if s.Multiline {
			v, err = f.driver.TextArea(ctx, TextAreaConfig{Message: s.Prompt, Default: s.Default, Required: s.Required})
		} else {
			v, err = f.driver.Input(ctx, InputConfig{Message: s.Prompt, Default: s.Default, Required: s.Required})
		}
		if err != nil {
			return fmt.Errorf("field %q: %w", s.Name, err)
		}
		f.SetValue(s.Name, v)
	}
	return nil
}
