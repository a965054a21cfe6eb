package gen

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourbasic/graph"
	"golang.org/x/sync/errgroup"

	"github.com/syssam/laragen/schema"
)

// Generator translates a set of entity descriptions into units, dispatching
// table entities to the migration translator and class entities to the model
// translator.
type Generator struct {
	cfg       *Config
	migration *MigrationTranslator
	model     *ModelTranslator
}

// Result holds the units of one Generate call, in deterministic order:
// migrations in dependency order, then models in input order.
type Result struct {
	Units []*Unit
	// Diagnostics collects the non-fatal problems of all units.
	Diagnostics []error
}

// New creates a Generator configured by opts.
func New(opts ...Option) (*Generator, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	return NewWithConfig(cfg), nil
}

// NewWithConfig creates a Generator sharing cfg.
func NewWithConfig(cfg *Config) *Generator {
	return &Generator{
		cfg:       cfg,
		migration: NewMigrationTranslator(cfg),
		model:     NewModelTranslator(cfg),
	}
}

// Config returns the generator configuration.
func (g *Generator) Config() *Config { return g.cfg }

// job is one translation task.
type job struct {
	entity *schema.Entity
	at     time.Time
	tr     Translator
}

// Generate translates entities in parallel. Invalid entities are skipped
// with a *SchemaError diagnostic; per-item problems of the others end up in
// Result.Diagnostics too. All diagnostics are logged. The returned error is
// only set when ctx is done.
func (g *Generator) Generate(ctx context.Context, entities []*schema.Entity) (*Result, error) {
	var (
		tables, classes []*schema.Entity
		res             = &Result{}
	)
	for _, e := range entities {
		if err := e.Validate(); err != nil {
			name := ""
			if e != nil {
				name = e.Name
			}
			serr := NewSchemaError(name, "skipped", err)
			g.cfg.Logger.Warn(serr.Error())
			res.Diagnostics = append(res.Diagnostics, serr)
			continue
		}
		switch e.Kind {
		case schema.KindTable:
			if g.cfg.Targets.Has(Migrations) {
				tables = append(tables, e)
			}
		case schema.KindClass:
			if g.cfg.Targets.Has(Models) {
				classes = append(classes, e)
			}
		}
	}

	var jobs []job
	now := g.cfg.Clock()
	for i, e := range g.orderTables(tables) {
		// One second apart, so Laravel runs them in dependency order.
		jobs = append(jobs, job{entity: e, at: now.Add(time.Duration(i) * time.Second), tr: g.migration})
	}
	for _, e := range classes {
		jobs = append(jobs, job{entity: e, tr: g.model})
	}

	units := make([]*Unit, len(jobs))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.cfg.Workers)
	for i, j := range jobs {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			u, err := g.translate(j)
			if err != nil {
				return err
			}
			units[i] = u
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	res.Units = units
	for _, u := range units {
		for _, d := range u.Diagnostics {
			g.cfg.Logger.WithFields(logrus.Fields{
				"entity": u.Entity,
				"kind":   u.Kind.String(),
			}).Warn(d.Error())
			res.Diagnostics = append(res.Diagnostics, d)
		}
		g.cfg.Logger.WithField("file", u.Name).Debug("translated")
	}
	return res, nil
}

func (g *Generator) translate(j job) (*Unit, error) {
	if m, ok := j.tr.(*MigrationTranslator); ok {
		return m.TranslateAt(j.entity, j.at)
	}
	return j.tr.Translate(j.entity)
}

// orderTables sorts tables so that every table comes after the tables its
// foreign keys reference. References to tables outside the set and
// self-references are ignored. On a cycle the input order is kept.
func (g *Generator) orderTables(tables []*schema.Entity) []*schema.Entity {
	index := make(map[string]int, len(tables))
	for i, t := range tables {
		index[t.Name] = i
	}
	deps := graph.New(len(tables))
	for i, t := range tables {
		for _, ref := range t.References() {
			j, ok := index[ref]
			if !ok || j == i {
				continue
			}
			deps.Add(j, i)
		}
	}
	// Sorted neighbors keep the order deterministic.
	order, ok := graph.TopSort(graph.Sort(deps))
	if !ok {
		g.cfg.Logger.Warn("circular foreign keys between tables; keeping input order for migrations")
		return tables
	}
	sorted := make([]*schema.Entity, len(order))
	for i, v := range order {
		sorted[i] = tables[v]
	}
	return sorted
}
