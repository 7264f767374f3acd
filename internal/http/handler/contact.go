package handler

// contact.go
import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"contactApp/internal/core"
	"contactApp/internal/storage"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

const maxContactBody = 1 << 20 // 1MB (OWASP A05).

// ContactForm — поля заявки после очистки.
type ContactForm struct {
	Name    string `validate:"required,min=2,max=100"`
	Email   string `validate:"required,email,max=255"`
	Company string `validate:"max=255"`
	Message string `validate:"required,max=2000"`
}

// ContactReply — тело ответа 201.
type ContactReply struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
}

var (
	validate  = validator.New()
	sanitizer = bluemonday.UGCPolicy()

	requiredFields = []string{"name", "email", "message"}
)

// Contact обрабатывает POST /api/contact.
type Contact struct {
	store   storage.Store
	metrics *Metrics
	newRef  func() string
}

func NewContact(store storage.Store, metrics *Metrics) *Contact {
	return &Contact{store: store, metrics: metrics, newRef: uuid.NewString}
}

func (h *Contact) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxContactBody)

	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil || raw == nil {
		h.reject(w, r, core.BadRequest("Missing required fields.", err))
		return
	}
	for _, k := range requiredFields {
		if _, ok := raw[k]; !ok {
			h.reject(w, r, core.BadRequest("Missing required fields.", nil))
			return
		}
	}

	f := ContactForm{
		Name:    clean(raw["name"]),
		Email:   clean(raw["email"]),
		Company: clean(raw["company"]),
		Message: clean(raw["message"]),
	}
	if msg, fields := validateForm(f); fields != nil {
		core.LogError("Validation failed", map[string]interface{}{"errors": fields})
		h.reject(w, r, core.Validation(msg, fields))
		return
	}

	sub := &storage.Submission{
		Ref:     h.newRef(),
		Name:    f.Name,
		Email:   f.Email,
		Message: f.Message,
	}
	if f.Company != "" {
		sub.Company = &f.Company
	}

	if err := h.store.Insert(r.Context(), sub); err != nil {
		h.metrics.Observe(OutcomeError)
		core.Fail(w, r, core.Internal("An internal server error occurred.", err))
		return
	}

	h.metrics.Observe(OutcomeStored)
	core.LogInfo("Заявка сохранена", map[string]interface{}{"id": sub.ID, "ref": sub.Ref})
	core.JSON(w, http.StatusCreated, ContactReply{
		Success: true,
		Message: "Message sent successfully!",
		ID:      sub.Ref,
	})
}

func (h *Contact) reject(w http.ResponseWriter, r *http.Request, err error) {
	h.metrics.Observe(OutcomeInvalid)
	core.Fail(w, r, err)
}

// clean приводит значение JSON к строке, обрезает пробелы и вычищает HTML
func clean(v any) string {
	var s string
	switch t := v.(type) {
	case nil:
	case string:
		s = t
	default:
		s = fmt.Sprint(t)
	}
	return sanitizer.Sanitize(strings.TrimSpace(s))
}

// validateForm возвращает первое сообщение и все ошибки по полям; nil — форма валидна.
func validateForm(f ContactForm) (string, map[string]string) {
	err := validate.Struct(f)
	if err == nil {
		return "", nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return "Invalid form", map[string]string{"form": "Invalid form"}
	}

	var first string
	errs := map[string]string{}
	for _, e := range verrs {
		var key, msg string
		switch e.Field() {
		case "Name":
			key = "name"
			switch e.Tag() {
			case "required":
				msg = "Name is required"
			case "min":
				msg = "Name must be at least 2 characters"
			default:
				msg = "Name is too long (max 100)"
			}
		case "Email":
			key = "email"
			switch e.Tag() {
			case "required":
				msg = "Email is required"
			case "email":
				msg = "Invalid email"
			default:
				msg = "Email is too long (max 255)"
			}
		case "Company":
			key, msg = "company", "Company is too long (max 255)"
		case "Message":
			key = "message"
			switch e.Tag() {
			case "required":
				msg = "Message is required"
			default:
				msg = "Message is too long (max 2000)"
			}
		}
		errs[key] = msg
		if first == "" {
			first = msg
		}
	}
	return first, errs
}
