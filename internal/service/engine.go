package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"retail-insight/internal/config"
	"retail-insight/internal/model"

	"github.com/google/uuid"
)

// Generator is the opaque text-generation capability invoked when no
// keyword intent matches. Implemented by OpenAIClient; injected at
// construction and reused across queries.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// QueryLogger persists answered-query records. Logging is
// fire-and-forget; a nil logger disables it.
type QueryLogger interface {
	LogQuery(ctx context.Context, rec model.QueryLog) error
}

// InsightEngine answers natural-language questions about a dataset by
// classifying the query, computing the matching canned aggregation and
// formatting the result, with a generative fallback for everything
// else. Answer never returns an error for a well-formed (query,
// dataset) pair: data-shape problems become explanatory answer text.
type InsightEngine struct {
	generator       Generator
	logger          QueryLogger
	topN            int
	sampleRows      int
	fallbackTimeout time.Duration
	strictPartial   bool

	now func() time.Time // injectable clock for date-scoped intents
}

// NewInsightEngine creates an engine with the given capabilities. Both
// generator and logger may be nil.
func NewInsightEngine(generator Generator, logger QueryLogger, cfg config.EngineConfig) *InsightEngine {
	topN := cfg.TopN
	if topN <= 0 {
		topN = 5
	}
	sampleRows := cfg.SampleRows
	if sampleRows <= 0 {
		sampleRows = 5
	}
	timeout := time.Duration(cfg.FallbackTimeout) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &InsightEngine{
		generator:       generator,
		logger:          logger,
		topN:            topN,
		sampleRows:      sampleRows,
		fallbackTimeout: timeout,
		strictPartial:   cfg.StrictPartial,
		now:             time.Now,
	}
}

// Answer processes one question against one dataset and returns the
// computed answer with a chart hint. The chart hint comes from a
// separate keyword pass over the raw query, independent of the intent
// used to compute the answer.
func (e *InsightEngine) Answer(ctx context.Context, rawQuery string, ds *model.Dataset) *model.QueryResponse {
	start := time.Now()

	query := strings.ToLower(strings.TrimSpace(rawQuery))
	cls := Classify(query)

	// Date-scoped question against a dataset without a Date column:
	// answer with the missing-column message, bypassing everything
	// else including the generator.
	var answer string
	if HasDateKeyword(query) && !ds.HasColumn(model.ColDate) {
		answer = MissingColumnAnswer(model.ColDate)
	} else {
		answer = e.dispatch(ctx, cls, rawQuery, ds)
	}

	resp := &model.QueryResponse{
		QueryID:   uuid.NewString(),
		Answer:    answer,
		Intent:    cls.Intent,
		ChartHint: ChartHintFor(rawQuery),
		Took:      time.Since(start).Milliseconds(),
	}

	if e.logger != nil {
		rec := model.QueryLog{
			QueryID:        resp.QueryID,
			DatasetID:      ds.ID,
			Query:          rawQuery,
			Intent:         resp.Intent,
			ChartHint:      resp.ChartHint,
			ResponseTimeMs: resp.Took,
		}
		go func() {
			if err := e.logger.LogQuery(context.Background(), rec); err != nil {
				log.Printf("Warning: failed to log query %s: %v", rec.QueryID, err)
			}
		}()
	}

	return resp
}

// dispatch maps every intent in the closed set to its aggregation.
// The switch is total: adding an intent without a case here fails the
// exhaustiveness test in engine_test.go.
func (e *InsightEngine) dispatch(ctx context.Context, cls Classification, rawQuery string, ds *model.Dataset) string {
	switch cls.Intent {
	case model.IntentTotalRevenue:
		total, err := TotalRevenue(ds)
		if err != nil {
			return e.describeError(err, "")
		}
		return TotalRevenueAnswer(total)

	case model.IntentRevenueByRegion:
		return e.groupedAnswer(ds, model.ColRegion, model.ColTotalRevenue, HeadingRevenueByRegion)

	case model.IntentRevenueByCategory:
		return e.groupedAnswer(ds, model.ColCategory, model.ColTotalRevenue, HeadingRevenueByCategory)

	case model.IntentSalesByRegion:
		return e.groupedAnswer(ds, model.ColRegion, model.ColUnitsSold, HeadingSalesByRegion)

	case model.IntentTopSellingProducts:
		entries, err := TopN(ds, model.ColProduct, model.ColUnitsSold, e.topN)
		if err != nil {
			return e.describeError(err, "")
		}
		if len(entries) == 0 {
			return NoDataAnswer
		}
		return GroupedAnswer(HeadingTopSellingProducts, entries)

	case model.IntentSalesByProduct:
		return e.groupedAnswer(ds, model.ColProduct, model.ColUnitsSold, HeadingSalesByProduct)

	case model.IntentSalesByCategory:
		return e.groupedAnswer(ds, model.ColCategory, model.ColUnitsSold, HeadingSalesByCategory)

	case model.IntentDateLastMonth:
		// Month component of (now - 30 days), matched against the
		// month component only regardless of year.
		month := e.now().AddDate(0, 0, -30).Month()
		filtered, err := FilterByMonth(ds, month)
		if err != nil {
			return e.describeError(err, "")
		}
		if filtered.RowCount() == 0 {
			return NoDataLastMonthAnswer
		}
		product, err := TopProductByUnits(filtered)
		if err != nil {
			return e.describeError(err, NoDataLastMonthAnswer)
		}
		return LastMonthTopProductAnswer(product)

	case model.IntentDateThisYear:
		filtered, err := FilterByYear(ds, e.now().Year())
		if err != nil {
			return e.describeError(err, "")
		}
		product, err := TopProductByUnits(filtered)
		if err != nil {
			return e.describeError(err, NoDataThisYearAnswer)
		}
		return ThisYearTopProductAnswer(product)

	case model.IntentDateQ1:
		filtered, err := FilterByQuarter(ds, time.January, time.March)
		if err != nil {
			return e.describeError(err, "")
		}
		product, err := TopProductByUnits(filtered)
		if err != nil {
			return e.describeError(err, NoDataQ1Answer)
		}
		return Q1TopProductAnswer(product)

	case model.IntentFallback:
		if cls.Partial && e.strictPartial {
			return ClarifyAnswer
		}
		return e.fallback(ctx, rawQuery, ds)
	}

	// Unreachable for the closed intent set.
	return NoDataAnswer
}

func (e *InsightEngine) groupedAnswer(ds *model.Dataset, groupCol, valueCol, heading string) string {
	entries, err := GroupSum(ds, groupCol, valueCol)
	if err != nil {
		return e.describeError(err, "")
	}
	if len(entries) == 0 {
		return NoDataAnswer
	}
	return GroupedAnswer(heading, entries)
}

// describeError converts aggregation errors into user-facing answer
// text. emptyAnswer overrides the generic no-data wording when set.
func (e *InsightEngine) describeError(err error, emptyAnswer string) string {
	var missing *MissingColumnError
	if errors.As(err, &missing) {
		return MissingColumnAnswer(missing.Column)
	}
	var empty *EmptyResultError
	if errors.As(err, &empty) {
		if emptyAnswer != "" {
			return emptyAnswer
		}
		return NoDataAnswer
	}
	log.Printf("Warning: unexpected aggregation error: %v", err)
	return NoDataAnswer
}

// fallback builds a prompt from the raw query plus a small sample of
// the table and asks the generator. Failure or timeout degrades to a
// fixed apology, never an error.
func (e *InsightEngine) fallback(ctx context.Context, rawQuery string, ds *model.Dataset) string {
	if e.generator == nil {
		return FallbackApologyAnswer
	}

	prompt := fmt.Sprintf(
		"Analyze the following data and answer this query: %s\n\nData:\n%s",
		rawQuery, SampleBlock(ds, e.sampleRows),
	)

	genCtx, cancel := context.WithTimeout(ctx, e.fallbackTimeout)
	defer cancel()

	text, err := e.generator.Generate(genCtx, prompt)
	if err != nil {
		log.Printf("Warning: fallback generation failed: %v", err)
		return FallbackApologyAnswer
	}
	if strings.TrimSpace(text) == "" {
		return FallbackApologyAnswer
	}
	return text
}
