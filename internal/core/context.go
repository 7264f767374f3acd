package core

// context.go

// CtxKey — тип ключей для context.Context (чтобы избежать коллизий строк)
type CtxKey string

const (
	// CtxUser — ключ для хранения JWT-claims в контексте
	CtxUser CtxKey = "user"
)
