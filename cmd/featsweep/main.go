// Command featsweep 对一张已清洗的数值表做单特征排序及 (特征子集, k) 网格评估，
// 并把报告以 JSON 输出到 stdout。
//
//	$ featsweep run -data cars.csv -config pipeline.yaml
//	$ featsweep rank -data cars.csv -target price -k 5
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"github.com/rs/zerolog"

	"github.com/rushteam/featsweep/config"
	_ "github.com/rushteam/featsweep/config/builders"
	"github.com/rushteam/featsweep/core"
	"github.com/rushteam/featsweep/model"
	"github.com/rushteam/featsweep/pipeline"
	"github.com/rushteam/featsweep/rank"
	"github.com/rushteam/featsweep/store"
	"github.com/rushteam/featsweep/sweep"
)

const (
	cacheTTL    = 24 * time.Hour
	redisPrefix = "featsweep:"
)

// 公共参数
var (
	dataFile   string
	configFile string
	target     string
	redisAddr  string
	redisDB    int
	workers    int
	seed       int64
	verbose    bool
	neighbours int
	minCount   int
	maxCount   int

	// explicit 记录命令行上显式给出的参数，只有这些参数会覆盖配置
	explicit = map[string]bool{}
)

func commonFlags(fs *flag.FlagSet) {
	fs.StringVar(&dataFile, "data", "", "numeric CSV file with a header row")
	fs.StringVar(&target, "target", "", "target column (overrides eval.target)")
	fs.StringVar(&redisAddr, "redis", "", "redis address for the trial cache; empty uses an in-process cache")
	fs.IntVar(&redisDB, "redis-db", 0, "redis database")
	fs.IntVar(&workers, "workers", 0, "concurrent trials (overrides eval.concurrency); <0 = GOMAXPROCS")
	fs.Int64Var(&seed, "seed", core.DefaultSeed, "split seed (overrides eval.seed)")
	fs.IntVar(&minCount, "min", core.DefaultMinFeatures, "smallest top-c feature subset (overrides eval.min_features)")
	fs.IntVar(&maxCount, "max", core.DefaultMaxFeatures, "largest top-c feature subset (overrides eval.max_features)")
	fs.BoolVar(&verbose, "v", false, "debug logging")
}

func runCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       runPipeline,
		UsageLine: "run -data <csv> [-config <yaml>] [options]",
		Short:     "rank features and sweep (subset, k) trials",
		Long: `
rank features and sweep (subset, k) trials

	$ featsweep run -data cars.csv -config pipeline.yaml
	$ featsweep run -data cars.csv -target price -min 1 -max 3

Without -config the pipeline is rank.single followed by sweep.subsets;
its largest subset is capped to the number of candidate features unless -max is given.
`,
		Flag: *flag.NewFlagSet("run", flag.ExitOnError),
	}
	commonFlags(&cmd.Flag)
	cmd.Flag.StringVar(&configFile, "config", "", "pipeline config file (.yaml or .json)")
	return cmd
}

func rankCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       runRank,
		UsageLine: "rank -data <csv> -target <column> [-k n] [options]",
		Short:     "rank single features by RMSE",
		Flag:      *flag.NewFlagSet("rank", flag.ExitOnError),
	}
	commonFlags(&cmd.Flag)
	cmd.Flag.IntVar(&neighbours, "k", core.DefaultNeighbors, "neighbours used to score each feature")
	return cmd
}

func newLogger() *zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	l := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).
		With().Timestamp().Logger()
	return &l
}

// markExplicit 在 flag 解析之后调用。
func markExplicit(fs *flag.FlagSet) {
	explicit = map[string]bool{}
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
}

func applyOverrides(cfg *core.EvalConfig) {
	if explicit["target"] {
		cfg.Target = target
	}
	if explicit["seed"] {
		cfg.Seed = seed
	}
	if explicit["workers"] {
		cfg.Concurrency = workers
	}
	if explicit["min"] {
		cfg.MinFeatures = minCount
	}
	if explicit["max"] {
		cfg.MaxFeatures = maxCount
	}
}

// fitFeatureRange 把默认流程的子集上限收紧到候选特征数；显式给出的 -max 不动。
func fitFeatureRange(ectx *core.EvalContext) {
	if explicit["max"] {
		return
	}
	features, err := ectx.Table.Features(ectx.Config.Target)
	if err != nil {
		return
	}
	if n := len(features); ectx.Config.MaxFeatures > n {
		ectx.Log().Debug().Int("max_features", n).Msg("max features capped to candidate count")
		ectx.Config.MaxFeatures = n
	}
}

func newEvalContext(ctx context.Context, cfg core.EvalConfig, log *zerolog.Logger) (*core.EvalContext, error) {
	if dataFile == "" {
		return nil, fmt.Errorf("-data is required")
	}
	tbl, err := readTableFile(dataFile)
	if err != nil {
		return nil, err
	}
	var cache core.Store = store.NewMemoryStore()
	if redisAddr != "" {
		rs, err := store.NewRedisStore(ctx, redisAddr, redisDB, redisPrefix)
		if err != nil {
			return nil, err
		}
		cache = rs
	}
	log.Info().
		Str("data", dataFile).
		Int("rows", tbl.Len()).
		Str("target", cfg.Target).
		Int64("seed", cfg.Seed).
		Str("cache", cache.Name()).
		Msg("loaded table")
	return &core.EvalContext{
		Table:     tbl,
		Config:    cfg,
		Regressor: model.NewKNNRegressor(),
		Cache:     cachedStore{Store: cache},
		Logger:    log,
	}, nil
}

// cachedStore 固定缓存条目的 TTL。
type cachedStore struct{ core.Store }

func (s cachedStore) Set(ctx context.Context, key string, value []byte, _ time.Duration) error {
	return s.Store.Set(ctx, key, value, cacheTTL)
}

func defaultPipeline() *pipeline.Pipeline {
	return &pipeline.Pipeline{
		Name:  "default",
		Nodes: []pipeline.Node{&rank.SingleNode{}, &sweep.SubsetNode{}},
	}
}

func loadPipeline() (*pipeline.Pipeline, core.EvalConfig, error) {
	if configFile == "" {
		cfg := core.DefaultEvalConfig()
		applyOverrides(&cfg)
		return defaultPipeline(), cfg, nil
	}
	cfg, err := pipeline.LoadFile(configFile)
	if err != nil {
		return nil, core.EvalConfig{}, err
	}
	applyOverrides(&cfg.Pipeline.Eval)
	if err := config.ValidatePipelineConfig(cfg); err != nil {
		return nil, core.EvalConfig{}, err
	}
	p, err := cfg.BuildPipeline(config.DefaultFactory())
	if err != nil {
		return nil, core.EvalConfig{}, err
	}
	return p, cfg.Pipeline.Eval, nil
}

// setupRun 加载 pipeline 与数据；没有 -config 时使用默认流程。
func setupRun(ctx context.Context, log *zerolog.Logger) (*pipeline.Pipeline, *core.EvalContext, error) {
	p, cfg, err := loadPipeline()
	if err != nil {
		return nil, nil, err
	}
	ectx, err := newEvalContext(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	if configFile == "" {
		fitFeatureRange(ectx)
	}
	return p, ectx, nil
}

func runPipeline(cmd *commander.Command, args []string) error {
	markExplicit(&cmd.Flag)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log := newLogger()
	p, ectx, err := setupRun(ctx, log)
	if err != nil {
		return err
	}
	defer ectx.Cache.Close()

	start := time.Now()
	report, err := p.Run(ctx, ectx, nil)
	if err != nil {
		return err
	}
	log.Info().
		Int("labels", report.Results.Len()).
		Int("failed", len(report.Results.Failed())).
		Dur("elapsed", time.Since(start)).
		Msg("pipeline done")
	return writeJSON(report)
}

func runRank(cmd *commander.Command, args []string) error {
	markExplicit(&cmd.Flag)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := core.DefaultEvalConfig()
	applyOverrides(&cfg)
	ectx, err := newEvalContext(ctx, cfg, newLogger())
	if err != nil {
		return err
	}
	defer ectx.Cache.Close()
	if err := ectx.Validate(); err != nil {
		return err
	}

	ranking, err := rank.SingleFeature(ctx, ectx, neighbours)
	if err != nil {
		return err
	}
	return writeJSON(ranking)
}

func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	app := &commander.Command{
		UsageLine:   "featsweep <command> [options]",
		Short:       "KNN feature selection and hyperparameter sweeps",
		Subcommands: []*commander.Command{runCmd(), rankCmd()},
		Flag:        *flag.NewFlagSet("featsweep", flag.ExitOnError),
	}
	if err := app.Dispatch(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "**err**: %v\n", err)
		os.Exit(1)
	}
}
