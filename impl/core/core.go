package core

import (
	"TechAssist/entity"
	"TechAssist/internal/config"
	"TechAssist/internal/lib/sl"
	"context"
	"log/slog"
	"time"
)

type Catalog interface {
	GroundingProducts(ctx context.Context, limit int) ([]entity.Product, error)
	ByIDs(ctx context.Context, ids []int) ([]entity.Product, error)
	SearchByKeyword(ctx context.Context, keyword string) ([]entity.Candidate, error)
	AbovePrice(ctx context.Context, min int64, category string) ([]entity.Candidate, error)
	BelowPrice(ctx context.Context, max int64, category string) ([]entity.Candidate, error)
	InRange(ctx context.Context, min, max int64, category string) ([]entity.Candidate, error)
	Cheapest(ctx context.Context, category string) ([]entity.Candidate, error)
	MostExpensive(ctx context.Context, category string) ([]entity.Candidate, error)
	TopByCategory(ctx context.Context, category string, limit int) ([]entity.Candidate, error)
	Categories(ctx context.Context) ([]string, error)
	CategorySummaries(ctx context.Context) ([]entity.CategorySummary, error)
}

type Repository interface {
	SaveChatMessage(ctx context.Context, msg entity.ChatMessage) error
	ChatHistory(ctx context.Context, sessionID string, limit int) ([]entity.ChatMessage, error)
}

type Model interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

type QueryAnalyzer interface {
	Analyze(text string, categories []string) entity.Query
}

type StageObserver interface {
	PipelineStage(stage string)
}

type Core struct {
	catalog  Catalog
	repo     Repository
	model    Model
	analyzer QueryAnalyzer
	observer StageObserver
	conf     *config.Config
	pause    time.Duration
	log      *slog.Logger
}

func New(conf *config.Config, log *slog.Logger) *Core {
	return &Core{
		conf:  conf,
		pause: time.Duration(conf.Composer.PauseMs) * time.Millisecond,
		log:   log.With(sl.Module("core")),
	}
}

func (c *Core) SetCatalog(catalog Catalog) {
	c.catalog = catalog
}

func (c *Core) SetRepository(repo Repository) {
	c.repo = repo
}

func (c *Core) SetModel(model Model) {
	c.model = model
}

func (c *Core) SetAnalyzer(analyzer QueryAnalyzer) {
	c.analyzer = analyzer
}

func (c *Core) SetStageObserver(observer StageObserver) {
	c.observer = observer
}

func (c *Core) stage(name string) {
	if c.observer != nil {
		c.observer.PipelineStage(name)
	}
}

// resolution caches per-request catalog lookups so the category list is
// fetched once however many stages need it.
type resolution struct {
	categories []string
	summaries  []entity.CategorySummary
}

func (c *Core) resolve(ctx context.Context) *resolution {
	res := &resolution{}
	categories, err := c.catalog.Categories(ctx)
	if err != nil {
		c.log.Warn("category list unavailable", sl.Err(err))
	}
	res.categories = categories
	return res
}

func (c *Core) summaries(ctx context.Context, res *resolution) []entity.CategorySummary {
	if res.summaries != nil {
		return res.summaries
	}
	summaries, err := c.catalog.CategorySummaries(ctx)
	if err != nil {
		c.log.Warn("category summaries unavailable", sl.Err(err))
		return nil
	}
	res.summaries = summaries
	return summaries
}
