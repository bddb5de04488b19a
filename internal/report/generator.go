package report

import (
	"context"
	"fmt"
	"io"
	"time"

	"db-migcheck/internal/catalog"
	"db-migcheck/internal/validation"

	"github.com/gosuri/uiprogress"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Generator fetches both catalogs and builds a Result.
type Generator struct {
	Source *catalog.Side
	Target *catalog.Side
	Logger *zap.Logger

	// Parallel fetches the two sides at the same time.
	Parallel bool
	// Progress, when set, receives a bar per side while inventories load.
	Progress io.Writer
	// Format only feeds the output file name.
	Format string
	Now    func() time.Time
}

// sideData is what one side contributes to a run.
type sideData struct {
	raw       validation.RawInventory
	rowCounts []validation.Row
	details   validation.DatabaseDetail
	dtCounts  []validation.Row
	dtDetails []validation.Row
}

func (g *Generator) log() *zap.Logger {
	if g.Logger == nil {
		return zap.NewNop()
	}
	return g.Logger
}

// Run performs one full pass. Any fetch failure aborts the run.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}

	var progress *uiprogress.Progress
	if g.Progress != nil {
		progress = uiprogress.New()
		progress.SetOut(g.Progress)
		progress.Start()
	}

	var src, tgt sideData
	eg, egCtx := errgroup.WithContext(ctx)
	if !g.Parallel {
		eg.SetLimit(1)
	}
	eg.Go(func() error {
		var err error
		src, err = g.fetch(egCtx, g.Source, progress)
		return err
	})
	eg.Go(func() error {
		var err error
		tgt, err = g.fetch(egCtx, g.Target, progress)
		return err
	})
	err := eg.Wait()
	if progress != nil {
		progress.Stop()
	}
	if err != nil {
		return nil, err
	}
	g.log().Info("catalogs fetched", zap.Duration("took", time.Since(start)))

	res, err := build(src, tgt)
	if err != nil {
		return nil, err
	}
	res.GeneratedAt = now()
	res.OutputFileName = FileName(g.Source.Dialect.Name(), g.Target.Dialect.Name(), g.Format, res.GeneratedAt)

	g.log().Info("validation done",
		zap.Float64("schema_percent", res.Validation.Schema.ValidationPercent),
		zap.Int("missing_schemas", len(res.MissingSchemas)),
		zap.Duration("took", time.Since(start)))
	return res, nil
}

func (g *Generator) fetch(ctx context.Context, side *catalog.Side, progress *uiprogress.Progress) (sideData, error) {
	var (
		d   sideData
		err error
	)

	var bar *uiprogress.Bar
	onProgress := func(done, total int) {
		if progress == nil {
			return
		}
		if bar == nil {
			bar = progress.AddBar(total).AppendCompleted().PrependElapsed()
			label := fmt.Sprintf("%-6s %s", side.Role, side.Dialect.Name())
			bar.PrependFunc(func(b *uiprogress.Bar) string { return label })
		}
		if err := advance(bar, done); err != nil {
			g.log().Debug("progress update failed", zap.String("side", string(side.Role)), zap.Error(err))
		}
	}

	if d.raw, err = side.FetchInventory(ctx, onProgress); err != nil {
		return d, err
	}
	if d.rowCounts, err = side.FetchRowCounts(ctx); err != nil {
		return d, err
	}
	if d.details, err = side.FetchDetails(ctx); err != nil {
		return d, err
	}
	if d.dtCounts, d.dtDetails, err = side.FetchDatatypes(ctx); err != nil {
		return d, err
	}
	return d, nil
}

// advance moves bar to done, clamped to the bar's range.
func advance(bar *uiprogress.Bar, done int) error {
	if done > bar.Total {
		done = bar.Total
	}
	if done < 0 {
		done = 0
	}
	return bar.Set(done)
}

// build runs the validation stages over fetched data.
func build(src, tgt sideData) (*Result, error) {
	source, err := validation.Normalize(src.raw)
	if err != nil {
		return nil, err
	}
	target, err := validation.Normalize(tgt.raw, source.Names()...)
	if err != nil {
		return nil, err
	}

	rc, err := validation.CompareRowCounts(src.rowCounts, tgt.rowCounts)
	if err != nil {
		return nil, err
	}
	dt, err := validation.CompareDatatypes(src.dtCounts, tgt.dtCounts, src.dtDetails, tgt.dtDetails)
	if err != nil {
		return nil, err
	}

	v := validation.Score(source, target)
	return &Result{
		RowCounts:      rc,
		Validation:     v,
		Comparison:     validation.Reconcile(source, target),
		Details:        validation.DatabaseSummary{Source: src.details, Target: tgt.details},
		Datatypes:      dt,
		MissingSchemas: v.MissingSchemas(),
	}, nil
}
