//go:build js && wasm

package main

// Сборка: GOOS=js GOARCH=wasm go build -o web/assets/app.wasm ./cmd/wasm

import (
	"contactApp/internal/submit"
	"contactApp/internal/ui/jsdom"
)

func main() {
	// Аналог DOMContentLoaded: wasm_exec.js запускает модуль после загрузки страницы
	if _, ok := jsdom.Bind("contactForm", submit.Config{Endpoint: submit.DefaultEndpoint}); !ok {
		log := jsdom.Logger()
		log.Info().Msg("contactForm not found, nothing to attach")
		return
	}
	// Обработчики js.Func живут, пока жив main
	select {}
}
