package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"regexp"
	"strconv"
	"strings"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"business-eval/api/internal/app"
	"business-eval/api/internal/config"
	"business-eval/api/internal/handle"
	"business-eval/api/internal/httpserver"
	"business-eval/api/internal/logger"
	"business-eval/api/internal/telegram"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	log, err := logger.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		logrus.Fatalf("logger: %v", err)
	}
	if strings.TrimSpace(cfg.Telegram.BotToken) == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN is empty")
	}

	ev, err := app.NewEvaluator(cfg, log)
	if err != nil {
		log.Fatalf("evaluator: %v", err)
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		log.Fatalf("telegram: %v", err)
	}
	bot.Debug = false

	r := &telegram.Router{Bot: bot, Eval: ev, Log: log.WithField("component", "telegram")}

	h := handle.New(ev, cfg.ServiceName, log)
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", h.Health)
	mux.HandleFunc("/api/health", h.Health)

	addr := "0.0.0.0:" + cfg.Port

	if webhookURL := strings.TrimSpace(cfg.Telegram.WebhookURL); webhookURL != "" {
		if err := startWebhookMode(ctx, addr, mux, bot, r, webhookURL, log); err != nil {
			log.Fatalf("webhook mode: %v", err)
		}
		return
	}
	startPollingMode(ctx, addr, mux, bot, r, log)
}

// ---------------- Modes -----------------

func startWebhookMode(ctx context.Context, addr string, mux *http.ServeMux, bot *tgbotapi.BotAPI, r *telegram.Router, baseURL string, log logrus.FieldLogger) error {
	// secret path derived from the token
	path := "/webhook/" + shortHash(bot.Token)
	public := strings.TrimRight(baseURL, "/") + path

	wh, err := tgbotapi.NewWebhook(public)
	if err != nil {
		return err
	}
	wh.DropPendingUpdates = true
	if _, err := bot.Request(wh); err != nil {
		return err
	}

	mux.HandleFunc(path, func(w http.ResponseWriter, req *http.Request) {
		upd, err := bot.HandleUpdate(req)
		if err != nil {
			log.Warnf("webhook update: %v", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		// answer Telegram right away; evaluation may take the full budget
		go r.HandleUpdate(ctx, *upd)
	})

	log.Infof("webhook listening on %s%s", addr, path)
	return httpserver.Run(ctx, addr, mux, log)
}

func startPollingMode(ctx context.Context, addr string, mux *http.ServeMux, bot *tgbotapi.BotAPI, r *telegram.Router, log logrus.FieldLogger) {
	go func() {
		if err := httpserver.Run(ctx, addr, mux, log); err != nil {
			log.Errorf("health server: %v", err)
		}
	}()

	runPolling(ctx, bot, log, concurrently(ctx, r.HandleUpdate))
}

// concurrently runs each update on its own goroutine.
func concurrently(ctx context.Context, h func(context.Context, tgbotapi.Update)) func(tgbotapi.Update) {
	return func(upd tgbotapi.Update) {
		go h(ctx, upd)
	}
}

// ---------------- Polling loop -----------------

var reRetryAfter = regexp.MustCompile(`(?i)retry after\s+(\d+)`)

func retryDelayFromError(err error) time.Duration {
	if err == nil {
		return 0
	}
	s := strings.ToLower(err.Error())
	if strings.Contains(s, "too many requests") { // HTTP 429 from Telegram
		if m := reRetryAfter.FindStringSubmatch(s); len(m) == 2 {
			if n, _ := strconv.Atoi(m[1]); n > 0 {
				return time.Duration(n) * time.Second
			}
		}
		return 3 * time.Second
	}
	var ne net.Error
	if errors.As(err, &ne) {
		if ne.Timeout() {
			return 2 * time.Second
		}
	}
	return 1 * time.Second
}

func clampDelay(d, lo, hi time.Duration) time.Duration {
	if d < lo {
		return lo
	}
	if d > hi {
		return hi
	}
	return d
}

// Updater is the polling half of *tgbotapi.BotAPI.
type Updater interface {
	GetUpdates(config tgbotapi.UpdateConfig) ([]tgbotapi.Update, error)
}

func runPolling(ctx context.Context, bot Updater, log logrus.FieldLogger, handle func(tgbotapi.Update)) {
	offset := 0
	baseDelay := 1 * time.Second
	maxDelay := 15 * time.Second

	for {
		select {
		case <-ctx.Done():
			log.Info("polling: context cancelled")
			return
		default:
		}

		u := tgbotapi.NewUpdate(offset)
		u.Timeout = 30 // long polling timeout (sec)

		updates, err := bot.GetUpdates(u)
		if err != nil {
			d := clampDelay(retryDelayFromError(err), baseDelay, maxDelay)
			log.Warnf("polling error: %v; retry in %v", err, d)
			if !sleep(ctx, d) {
				return
			}
			continue
		}

		for _, upd := range updates {
			if upd.UpdateID >= offset {
				offset = upd.UpdateID + 1
			}
			handle(upd)
		}

		if len(updates) == 0 && !sleep(ctx, 200*time.Millisecond) {
			return
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// ---------------- Helpers -----------------

func shortHash(s string) string {
	// FNV-1a; stable per token, not a secret by itself
	h := uint64(1469598103934665603)
	const prime = 1099511628211
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime
	}
	const hexdigits = "0123456789abcdef"
	out := make([]byte, 16)
	for i := 15; i >= 0; i-- {
		out[i] = hexdigits[h&0xF]
		h >>= 4
	}
	return string(out)
}
