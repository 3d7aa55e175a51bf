package cycle

import (
	"context"
	"log/slog"
	"time"

	"discoprowl/internal/config"
	"discoprowl/internal/filter"
	"discoprowl/internal/indexer"
	"discoprowl/internal/logging"
	"discoprowl/internal/notifications"
	"discoprowl/internal/services"
)

// Formatter builds the notification for a term and its selected hits.
type Formatter interface {
	Format(ctx context.Context, query string, selected []indexer.Hit) notifications.Payload
}

// Notifier delivers a payload to every configured transport.
type Notifier interface {
	Dispatch(ctx context.Context, payload notifications.Payload) []notifications.Delivery
}

// TermReport summarizes the processing of one search term.
type TermReport struct {
	Query      string
	Hits       int
	Matched    int
	Selected   []indexer.Hit
	Rejected   map[filter.Reason]int
	SearchErr  error
	Deliveries []notifications.Delivery
}

// Failures counts transports that did not accept the notification.
func (t TermReport) Failures() int {
	n := 0
	for _, d := range t.Deliveries {
		if !d.OK() {
			n++
		}
	}
	return n
}

// Report summarizes a full cycle.
type Report struct {
	CycleID  string
	Started  time.Time
	Duration time.Duration
	Terms    []TermReport
}

// Deliveries returns the total and failed delivery counts across all terms.
func (r Report) Deliveries() (total, failed int) {
	for _, term := range r.Terms {
		total += len(term.Deliveries)
		failed += term.Failures()
	}
	return total, failed
}

// Runner executes polling cycles.
type Runner struct {
	searcher      indexer.Searcher
	formatter     Formatter
	notifier      Notifier
	terms         []string
	rules         filter.Rules
	searchTimeout time.Duration
	logger        *slog.Logger
	now           func() time.Time
}

// NewRunner wires a Runner from configuration and its collaborators.
func NewRunner(cfg *config.Config, searcher indexer.Searcher, formatter Formatter, notifier Notifier, logger *slog.Logger) *Runner {
	return &Runner{
		searcher:      searcher,
		formatter:     formatter,
		notifier:      notifier,
		terms:         append([]string(nil), cfg.Search.Terms...),
		rules:         filter.RulesFromConfig(cfg),
		searchTimeout: cfg.IndexerTimeout(),
		logger:        logging.NewComponentLogger(logger, "cycle"),
		now:           time.Now,
	}
}

// Terms returns the search terms processed each cycle.
func (r *Runner) Terms() []string {
	return append([]string(nil), r.terms...)
}

// RunCycle processes every term in order. It stops early only when ctx is
// cancelled between terms.
func (r *Runner) RunCycle(ctx context.Context) Report {
	report := Report{Started: r.now()}
	if id, ok := services.CycleIDFromContext(ctx); ok {
		report.CycleID = id
	}
	logger := logging.WithContext(ctx, r.logger)
	logger.Info("cycle started", logging.Int("terms", len(r.terms)))

	for _, term := range r.terms {
		if ctx.Err() != nil {
			logger.Info("cycle interrupted", logging.String("reason", ctx.Err().Error()))
			break
		}
		report.Terms = append(report.Terms, r.RunTerm(ctx, term))
	}

	report.Duration = r.now().Sub(report.Started)
	total, failed := report.Deliveries()
	logger.Info("cycle complete",
		logging.String(logging.FieldEventType, "cycle_complete"),
		logging.Int("deliveries", total),
		logging.Int("failures", failed),
		logging.Duration("duration", report.Duration),
	)
	return report
}

// RunTerm searches, filters, selects, formats, and dispatches one term. A
// search failure yields zero hits and the no-results notification is still
// sent.
func (r *Runner) RunTerm(ctx context.Context, term string) TermReport {
	ctx = services.WithQuery(ctx, term)
	logger := logging.WithContext(ctx, r.logger)
	report := TermReport{Query: term, Rejected: map[filter.Reason]int{}}

	hits, err := r.search(ctx, term)
	if err != nil {
		report.SearchErr = err
		logging.WarnWithContext(logger, "search failed", "search_failed",
			logging.Error(err),
			logging.String("error_class", services.EventType(err)),
			logging.String(logging.FieldErrorHint, "check indexer.url, indexer.api_key, and indexer reachability"),
			logging.String(logging.FieldImpact, "term reported as having no results this cycle"),
		)
	}
	report.Hits = len(hits)

	matcher := filter.NewMatcher(term)
	passed := make([]indexer.Hit, 0, len(hits))
	for _, hit := range hits {
		verdict := filter.Evaluate(hit, matcher, r.rules)
		if verdict.Passed {
			passed = append(passed, hit)
			continue
		}
		report.Rejected[verdict.Reason]++
		logger.Debug("hit rejected",
			logging.String("file_name", hit.FileName),
			logging.String(logging.FieldIndexer, hit.Indexer),
			logging.String("reason", string(verdict.Reason)),
			logging.String("detail", verdict.Detail),
		)
	}
	report.Matched = len(passed)
	report.Selected = filter.Select(passed, r.rules.MaxResults)

	logger.Info("search complete",
		logging.Int("hits", report.Hits),
		logging.Int("matched", report.Matched),
		logging.Int("selected", len(report.Selected)),
	)

	payload := r.formatter.Format(ctx, term, report.Selected)
	report.Deliveries = r.notifier.Dispatch(ctx, payload)
	return report
}

func (r *Runner) search(ctx context.Context, term string) ([]indexer.Hit, error) {
	if r.searcher == nil {
		return nil, services.Wrap(services.ErrConfiguration, "cycle", "search", "no indexer configured", nil)
	}
	searchCtx := ctx
	if r.searchTimeout > 0 {
		var cancel context.CancelFunc
		searchCtx, cancel = context.WithTimeout(ctx, r.searchTimeout)
		defer cancel()
	}
	return r.searcher.Search(searchCtx, term)
}
