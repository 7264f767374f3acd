package view

//view.go
import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"contactApp/internal/core"

	"github.com/gorilla/csrf"
)

//go:embed templates
var files embed.FS

const layoutFile = "templates/layouts/base.gohtml"

// Templates — layout + страница, разобранные один раз при старте.
type Templates struct {
	appName   string
	templates map[string]*template.Template
}

// PageData — данные для всех шаблонов.
type PageData struct {
	AppName   string
	Title     string
	CSRFToken string // пусто, если CSRF выключен
	Nonce     string
	Data      any
}

// New разбирает встроенные шаблоны.
func New(appName string) (*Templates, error) {
	pages := map[string]string{
		"home":     "templates/pages/home.gohtml",
		"notfound": "templates/pages/404.gohtml",
	}

	layoutTpl, err := template.New("layout").ParseFS(files, layoutFile)
	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга layout: %w", err)
	}

	t := &Templates{appName: appName, templates: make(map[string]*template.Template)}
	for name, pagePath := range pages {
		tpl := template.Must(layoutTpl.Clone())
		if _, err := tpl.ParseFS(files, pagePath); err != nil {
			return nil, fmt.Errorf("ошибка парсинга шаблона %q: %w", name, err)
		}
		if tpl.Lookup("base") == nil {
			return nil, fmt.Errorf("в шаблонах отсутствует define \"base\" для страницы %s", name)
		}
		t.templates[name] = tpl
	}
	return t, nil
}

// Render пишет страницу с заданным статусом. Шаблон выполняется в буфер,
// чтобы ошибка не оставила клиенту половину HTML.
func (t *Templates) Render(w http.ResponseWriter, r *http.Request, status int, name, title string, data any) error {
	tpl, ok := t.templates[name]
	if !ok {
		core.LogError("Шаблон не найден", map[string]interface{}{"template": name})
		return fmt.Errorf("шаблон не найден: %s", name)
	}

	var buf bytes.Buffer
	err := tpl.ExecuteTemplate(&buf, "base", PageData{
		AppName:   t.appName,
		Title:     title,
		CSRFToken: csrf.Token(r),
		Nonce:     core.Nonce(r),
		Data:      data,
	})
	if err != nil {
		core.LogError("Template rendering failed", map[string]interface{}{
			"template": name,
			"error":    err.Error(),
		})
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = buf.WriteTo(w)
	return err
}
