package query

import (
	"context"

	"github.com/OFFIS-RIT/peoplegraph/pkg/common"
	"github.com/OFFIS-RIT/peoplegraph/pkg/errors"
	"github.com/OFFIS-RIT/peoplegraph/pkg/graph"
	"github.com/OFFIS-RIT/peoplegraph/pkg/logger"
	"github.com/OFFIS-RIT/peoplegraph/pkg/normalize"

	"golang.org/x/sync/errgroup"
)

// Build creates the relationship graph and the name normalizer from the
// dataset rows. The two are independent and built concurrently; both are
// read-only afterwards. A dataset without any person is an ErrData.
func Build(ctx context.Context, rows []common.Row) (*graph.Graph, *normalize.Normalizer, error) {
	var (
		g *graph.Graph
		n *normalize.Normalizer
	)

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		g = graph.New(rows)
		return nil
	})
	eg.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		n = normalize.New(rows)
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}

	if g.Len() == 0 {
		return nil, nil, errors.DataErrorf("dataset contains no people")
	}

	stats := g.Stats()
	logger.Info("Graph built",
		"people", stats.People,
		"edges", stats.Edges,
		"labels", stats.Labels,
		"companies", n.Table(common.CategoryCompany).Len(),
		"universities", n.Table(common.CategoryUniversity).Len(),
		"languages", n.Table(common.CategoryLanguage).Len(),
	)

	return g, n, nil
}
