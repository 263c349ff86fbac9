package reports

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Engine wraps the builders with logging and parallel batch builds.
type Engine struct {
	in     Inputs
	logger *zap.Logger
}

// NewEngine returns an engine over a fixed snapshot. A nil logger is
// replaced by a no-op one.
func NewEngine(in Inputs, logger *zap.Logger) *Engine {
	mustInputs(in)
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{in: in, logger: logger}
}

// Build computes one statement and logs its anomalies.
func (e *Engine) Build(kind Kind, req Request) (Result, error) {
	res, err := Build(kind, e.in, req)
	if err != nil {
		return nil, err
	}
	e.logResult(res)
	return res, nil
}

// BuildAll computes the given statements concurrently, one goroutine each.
// Results come back in the order of kinds. Builders share the read-only
// snapshot, so the outcome equals building them one by one.
func (e *Engine) BuildAll(ctx context.Context, kinds []Kind, req Request) ([]Result, error) {
	for _, k := range kinds {
		if _, err := ParseKind(string(k)); err != nil {
			return nil, err
		}
	}

	results := make([]Result, len(kinds))
	g, ctx := errgroup.WithContext(ctx)
	for i, k := range kinds {
		i, k := i, k
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := Build(k, e.in, req)
			if err != nil {
				return fmt.Errorf("building %s: %w", k, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, res := range results {
		e.logResult(res)
	}
	return results, nil
}

func (e *Engine) logResult(res Result) {
	an := res.Issues()
	fields := []zap.Field{
		zap.String("report", string(res.ReportKind())),
		zap.Bool("no_data", res.Empty()),
	}
	if an.Empty() {
		e.logger.Debug("report built", fields...)
		return
	}
	e.logger.Warn("report built with anomalies", append(fields,
		zap.Int("missing_account_refs", an.MissingAccountRefs),
		zap.Strings("unbalanced_entries", an.UnbalancedEntries),
		zap.Strings("undated_entries", an.UndatedEntries),
	)...)
}
