package app

import (
	"context"
	"time"

	"internmatch/internal/config"
	"internmatch/internal/database"
	dbpostgres "internmatch/internal/database/postgres"
	"internmatch/internal/infrastructure/cache"
	"internmatch/internal/recommend"
	"internmatch/internal/repository"
	"internmatch/internal/usecase"
	"internmatch/internal/ws"

	"go.uber.org/zap"
)

// Container owns every long-lived dependency and wires the layers
// together: storage, caches, the scoring engine and the usecases.
type Container struct {
	Config config.Config
	Logger *zap.Logger
	DB     database.DB
	Redis  *cache.Redis
	Hub    *ws.Hub

	Postings repository.PostingRepository
	Refs     repository.ReferenceRepository
	Skills   *repository.SkillDirectory

	Model       *recommend.TextModel
	Trainer     *recommend.Trainer
	ResultCache *recommend.ResultCache
	Engine      *recommend.Engine

	RecommendationUC usecase.RecommendationUsecase
	PostingListUC    usecase.PostingListUsecase
	ReferenceUC      usecase.ReferenceUsecase
	TrainingUC       usecase.TrainingUsecase
}

func NewContainer(cfg config.Config, logger *zap.Logger) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	redisCache := cache.NewRedis(cfg.Redis, logger)
	hub := ws.NewHub(logger)

	postings := repository.NewPostgresPostingRepository(db)
	refs := repository.NewPostgresReferenceRepository(db)
	skills := repository.NewSkillDirectory(refs)
	if err := skills.Refresh(ctx); err != nil {
		logger.Warn("skill vocabulary preload failed", zap.Error(err))
	}

	ruleCfg, err := recommend.LoadRuleConfig(cfg.Engine.RulesPath)
	if err != nil {
		logger.Warn("rule config load failed, using defaults", zap.Error(err))
		ruleCfg = recommend.DefaultRuleConfig()
	}

	model := recommend.NewTextModel(logger)
	store := recommend.NewArtifactStore(cfg.Engine.ModelPath, logger)
	trainer := recommend.NewTrainer(model, store, logger)
	if ok, err := trainer.LoadPersisted(); err != nil {
		logger.Warn("model artifact load failed", zap.Error(err))
	} else if ok {
		logger.Info("model restored from artifact")
	}

	resultCache := recommend.NewResultCache(cfg.Engine.ResultCacheTTL, cfg.Engine.ResultCacheSize, nil)

	filter := recommend.NewCandidateFilter(recommend.FilterConfig{
		PoolCap:           cfg.Engine.CandidatePoolCap,
		EarlyStopCount:    cfg.Engine.EarlyStopCount,
		EarlyStopMinScore: cfg.Engine.MinScore,
	})
	scorer := recommend.NewHybridScorer(recommend.NewRuleScorer(ruleCfg), model, logger)
	engine := recommend.NewEngine(postings, skills, filter, scorer, model, resultCache,
		recommend.EngineConfig{Workers: cfg.Engine.Workers}, logger)

	notify := func(st recommend.ModelStatus) {
		ws.NotifyModelTrained(hub, st.RunID, st.TrainingSize, st.Metrics.VocabularySize)
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Redis:  redisCache,
		Hub:    hub,

		Postings: postings,
		Refs:     refs,
		Skills:   skills,

		Model:       model,
		Trainer:     trainer,
		ResultCache: resultCache,
		Engine:      engine,

		RecommendationUC: usecase.NewRecommendationUsecase(engine, logger),
		PostingListUC:    usecase.NewPostingListUsecase(postings, skills, redisCache, logger),
		ReferenceUC:      usecase.NewReferenceUsecase(refs, redisCache, logger),
		TrainingUC:       usecase.NewTrainingUsecase(postings, trainer, resultCache, redisCache, notify, logger),
	}
	return c, nil
}

// EnsureModel trains the text model when no usable artifact was
// restored at startup.
func (c *Container) EnsureModel(ctx context.Context) error {
	if c.Model.Ready() {
		return nil
	}

	corpus, err := c.Postings.ListAll(ctx)
	if err != nil {
		return err
	}
	if len(corpus) == 0 {
		c.Logger.Warn("no postings available, model stays untrained")
		return nil
	}

	_, err = c.Trainer.Train(ctx, corpus, false)
	return err
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
