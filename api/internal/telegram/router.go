package telegram

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"business-eval/api/internal/analysis"
	"business-eval/api/internal/evaluate"
)

const maxMessageLen = 3900

// Sender is the part of *tgbotapi.BotAPI the router talks to.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Evaluator interface {
	Evaluate(ctx context.Context, idea analysis.BusinessIdea) (analysis.Result, evaluate.Source)
}

type Router struct {
	Bot  Sender
	Eval Evaluator
	Log  logrus.FieldLogger

	busy busyChats
}

func (r *Router) HandleCommand(ctx context.Context, msg *tgbotapi.Message) {
	cid := msg.Chat.ID
	switch msg.Command() {
	case "start", "help":
		r.sendWithKeyboard(cid, startText, makeTemplateKeyboard())
	case "template":
		r.send(cid, TemplateText)
	case "health":
		r.send(cid, "✅ OK")
	default:
		r.send(cid, "Unknown command. Try /start")
	}
}

func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.CallbackQuery != nil {
		r.handleCallback(*upd.CallbackQuery)
		return
	}
	if upd.Message == nil || upd.Message.Chat == nil {
		return
	}
	if upd.Message.IsCommand() {
		r.HandleCommand(ctx, upd.Message)
		return
	}
	if upd.Message.Text != "" {
		r.handleIdea(ctx, upd.Message.Chat.ID, upd.Message.Text)
	}
}

func (r *Router) handleIdea(ctx context.Context, chatID int64, text string) {
	idea, err := ParseIdea(text)
	if err != nil {
		var mf *MissingFieldsError
		if errors.As(err, &mf) {
			r.send(chatID, fmt.Sprintf("%v.\nSend /template to get the full form.", mf))
			return
		}
		r.send(chatID, "Could not read the idea: "+err.Error())
		return
	}

	if !r.busy.acquire(chatID) {
		r.send(chatID, "Still evaluating your previous idea, please wait.")
		return
	}
	defer r.busy.release(chatID)

	r.send(chatID, "Evaluating "+displayName(idea.BusinessName)+"…")
	res, src := r.Eval.Evaluate(ctx, idea)
	r.logger().WithFields(logrus.Fields{
		"chat_id":  chatID,
		"business": idea.BusinessName,
		"source":   string(src),
		"score":    res.ViabilityScore,
	}).Info("idea evaluated")
	r.SendResult(chatID, FormatResult(idea.BusinessName, res))
}

func (r *Router) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := r.Bot.Send(msg); err != nil {
		r.logger().WithField("chat_id", chatID).Warnf("telegram send: %v", err)
	}
}

func (r *Router) sendWithKeyboard(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	if _, err := r.Bot.Send(msg); err != nil {
		r.logger().WithField("chat_id", chatID).Warnf("telegram send: %v", err)
	}
}

func (r *Router) SendResult(chatID int64, text string) {
	if runes := []rune(text); len(runes) > maxMessageLen {
		text = string(runes[:maxMessageLen]) + "…"
	}
	r.send(chatID, text)
}

func (r *Router) logger() logrus.FieldLogger {
	if r.Log == nil {
		return logrus.StandardLogger()
	}
	return r.Log
}
