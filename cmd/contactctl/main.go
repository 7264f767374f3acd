// contactctl — отправка контактной формы из терминала через тот же
// контроллер, что и в браузере.
//
//	contactctl -url http://localhost:8080 -f fields.yaml -field name=Alice
//	contactctl -i
//
// Код выхода: 0 — заявка принята, 1 — отказ сервера или сбой связи,
// 2 — ошибка флагов или файла полей, 130 — ввод прерван.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"contactApp/internal/submit"
	"contactApp/internal/ui/term"

	"github.com/rs/zerolog"
)

type fieldFlags []string

func (f *fieldFlags) String() string     { return strings.Join(*f, ",") }
func (f *fieldFlags) Set(v string) error { *f = append(*f, v); return nil }

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("contactctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		baseURL     = fs.String("url", "http://localhost:8080", "base URL of the contact service")
		endpoint    = fs.String("endpoint", submit.DefaultEndpoint, "API path")
		file        = fs.String("f", "", "YAML file with field: value pairs")
		interactive = fs.Bool("i", false, "prompt for fields that have no value")
		verbose     = fs.Bool("v", false, "debug logging")
		fields      fieldFlags
	)
	fs.Var(&fields, "field", "name=value, repeatable; overrides -f")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: true}).Level(level).With().Timestamp().Logger()

	var fromFile []submit.Field
	if *file != "" {
		fh, err := os.Open(*file)
		if err != nil {
			log.Error().Err(err).Msg("open fields file")
			return 2
		}
		fromFile, err = term.ParseValues(fh)
		_ = fh.Close()
		if err != nil {
			log.Error().Err(err).Str("file", *file).Msg("read fields file")
			return 2
		}
	}
	fromFlags, err := term.ParseAssignments(fields)
	if err != nil {
		log.Error().Err(err).Msg("parse -field")
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	specs := term.SpecsFor(fromFile, fromFlags)
	preset := term.MergeValues(fromFile, fromFlags)
	if !*interactive {
		for _, s := range specs {
			if _, ok := preset[s.Name]; !ok {
				preset[s.Name] = ""
			}
		}
	}

	form := term.NewForm(term.NewSurveyDriver(stdout), stdout, "Send Message", specs)
	if err := form.Fill(ctx, preset); err != nil {
		log.Error().Err(err).Msg("fill form")
		return 130
	}

	outcome := submit.Failed
	notify := submit.NotifierFunc(func(ctx context.Context, n submit.Notification) {
		outcome = n.Kind
		form.Notify(ctx, n)
	})

	ctrl := submit.New(
		submit.Config{BaseURL: *baseURL, Endpoint: *endpoint},
		form.Elements(),
		notify,
		submit.WithLogger(log),
	)
	if !ctrl.Attach() {
		log.Error().Msg("form elements missing")
		return 1
	}

	if form.Submit(ctx) == nil {
		fmt.Fprintln(stderr, "submit button is disabled")
		return 1
	}
	if outcome != submit.Succeeded {
		return 1
	}
	return 0
}
