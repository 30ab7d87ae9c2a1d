package evaluate

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"business-eval/api/internal/analysis"
	"business-eval/api/internal/enrich"
)

const DefaultBudget = 15 * time.Second

type Source string

const (
	SourceAI    Source = "ai"
	SourceRules Source = "rules"
)

// Analyzer is one enrichment attempt.
type Analyzer interface {
	Analyze(ctx context.Context, idea analysis.BusinessIdea) (analysis.Result, error)
}

// Evaluator races an enrichment attempt against a wall-clock budget and
// answers with the rule-based score whenever the attempt does not deliver.
type Evaluator struct {
	analyzer Analyzer
	budget   time.Duration
	log      logrus.FieldLogger
}

// New builds an Evaluator. A nil analyzer means every request is scored by rules.
func New(a Analyzer, budget time.Duration, log logrus.FieldLogger) *Evaluator {
	if budget <= 0 {
		budget = DefaultBudget
	}
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	return &Evaluator{analyzer: a, budget: budget, log: log}
}

type attempt struct {
	res analysis.Result
	err error
}

func (e *Evaluator) Evaluate(ctx context.Context, idea analysis.BusinessIdea) (analysis.Result, Source) {
	if e.analyzer == nil {
		return analysis.Score(idea), SourceRules
	}

	attemptCtx, cancel := context.WithCancel(ctx)
	// buffered so a late attempt can finish without a reader
	done := make(chan attempt, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- attempt{err: fmt.Errorf("enrichment panic: %v", p)}
			}
		}()
		res, err := e.analyzer.Analyze(attemptCtx, idea)
		done <- attempt{res: res, err: err}
	}()

	timer := time.NewTimer(e.budget)
	defer timer.Stop()

	select {
	case a := <-done:
		cancel()
		if a.err != nil {
			e.log.WithFields(logrus.Fields{
				"business": idea.BusinessName,
				"failure":  enrich.FailureClass(a.err),
			}).Warnf("enrichment failed, using rule-based analysis: %v", a.err)
			return analysis.Score(idea), SourceRules
		}
		return a.res.Normalize(), SourceAI
	case <-timer.C:
		cancel()
		e.log.WithFields(logrus.Fields{
			"business": idea.BusinessName,
			"budget":   e.budget.String(),
		}).Warn("enrichment exceeded budget, using rule-based analysis")
		return analysis.Score(idea), SourceRules
	case <-ctx.Done():
		cancel()
		e.log.WithField("business", idea.BusinessName).Warnf("request context ended during enrichment: %v", ctx.Err())
		return analysis.Score(idea), SourceRules
	}
}
