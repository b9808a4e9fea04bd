// Command reel runs the event-clustering engine from the command line:
// clustering asset dumps, generating suggestions, and exercising the engine
// against a synthetic timeline.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	service "github.com/lumeo/reel/internal/app"
	"github.com/lumeo/reel/internal/config"
	"github.com/lumeo/reel/internal/domain/cluster"
	"github.com/lumeo/reel/internal/domain/model"
	"github.com/lumeo/reel/internal/testassets"
	"github.com/lumeo/reel/pkg/logger"
	"github.com/lumeo/reel/pkg/metrics"
)

// Metrics server timeout constants.
const (
	readHeaderTimeout = 5 * time.Second
)

// assetInput is the JSON shape accepted by the cluster and suggest commands.
type assetInput struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Lat       *float64  `json:"lat,omitempty"`
	Lon       *float64  `json:"lon,omitempty"`
	Type      string    `json:"type,omitempty"`
	FaceIDs   []string  `json:"face_ids,omitempty"`
}

// clusterOutput is the JSON shape emitted by the cluster command.
type clusterOutput struct {
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Size       int       `json:"size"`
	IsBurst    bool      `json:"is_burst"`
	KeyAssetID string    `json:"key_asset_id"`
	AssetIDs   []string  `json:"asset_ids"`
}

func main() {
	// Optional .env for local runs; ignore absence.
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel))
		_ = logger.SetLevelString("info")
	}

	root := newRootCmd(ctx, cfg)
	if err := root.ExecuteContext(ctx); err != nil {
		logger.Get().Error(ctx, "command failed", logger.Error(err))
		os.Exit(1)
	}
}

func newRootCmd(ctx context.Context, cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "reel",
		Short:         "Photo timeline event-clustering engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var input string

	clusterCmd := &cobra.Command{
		Use:   "cluster",
		Short: "Cluster an asset dump into timeline events",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCluster(cmd.Context(), cfg, input)
		},
	}
	clusterCmd.Flags().StringVarP(&input, "input", "i", "-", "asset JSON file, or - for stdin")

	suggestCmd := &cobra.Command{
		Use:   "suggest",
		Short: "Produce event suggestions for an asset dump",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSuggest(cmd.Context(), cfg, input)
		},
	}
	suggestCmd.Flags().StringVarP(&input, "input", "i", "-", "asset JSON file, or - for stdin")

	var days int
	var seed int64
	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the engine against a synthetic timeline",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd.Context(), cfg, days, seed)
		},
	}
	demoCmd.Flags().IntVar(&days, "days", 30, "number of days to simulate")
	demoCmd.Flags().Int64Var(&seed, "seed", 42, "generator seed")

	root.AddCommand(clusterCmd, suggestCmd, demoCmd)

	if cfg.MetricsAddr != "" {
		startMetricsServer(ctx, cfg.MetricsAddr)
	}

	return root
}

// startMetricsServer exposes the custom registry on /metrics.
func startMetricsServer(ctx context.Context, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		logger.Get().Info(ctx, "metrics endpoint listening", logger.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Get().Error(ctx, "metrics server failed", logger.Error(err))
		}
	}()
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()
}

func newService(ctx context.Context, cfg *config.Config) (*service.Service, error) {
	clusterCfg, err := clusterConfigFrom(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return service.New(
		service.WithLogger(logger.Get()),
		service.WithClusterConfig(clusterCfg),
		service.WithScoreWeights(cfg.TimeWeight, cfg.LocationWeight, cfg.PeopleWeight, cfg.DensityWeight),
		service.WithMinConfidence(cfg.MinConfidence),
		service.WithCacheTTL(time.Duration(cfg.CacheTTLMinutes)*time.Minute),
	)
}

// clusterConfigFrom maps process config onto clustering thresholds: the
// context preset supplies the base values, and thresholds the operator
// changed away from their defaults override it. Spatial 0 disables gating.
func clusterConfigFrom(ctx context.Context, cfg *config.Config) (cluster.Config, error) {
	preset, err := cluster.PresetConfig(cluster.ContextKind(cfg.Context))
	if err != nil {
		return cluster.Config{}, err
	}

	def := config.New(ctx)

	temporal := preset.TemporalThreshold
	if cfg.TemporalThresholdMinutes != def.TemporalThresholdMinutes {
		temporal = time.Duration(cfg.TemporalThresholdMinutes) * time.Minute
	}

	spatial := preset.SpatialThresholdMeters
	switch {
	case cfg.SpatialThresholdMeters == 0:
		spatial = math.Inf(1)
	case cfg.SpatialThresholdMeters != def.SpatialThresholdMeters:
		spatial = cfg.SpatialThresholdMeters
	}

	burst := preset.BurstThreshold
	if cfg.BurstThresholdSeconds != def.BurstThresholdSeconds {
		burst = time.Duration(cfg.BurstThresholdSeconds) * time.Second
	}

	minSize, maxSize := preset.MinBurstSize, preset.MaxBurstSize
	if cfg.MinBurstSize != def.MinBurstSize {
		minSize = cfg.MinBurstSize
	}
	if cfg.MaxBurstSize != def.MaxBurstSize {
		maxSize = cfg.MaxBurstSize
	}

	return cluster.NewConfig(temporal, spatial, burst, minSize, maxSize)
}

func runCluster(ctx context.Context, cfg *config.Config, input string) error {
	assets, err := readAssets(input)
	if err != nil {
		return err
	}

	svc, err := newService(ctx, cfg)
	if err != nil {
		return err
	}

	clusters := svc.ClusterAssets(ctx, assets)

	out := make([]clusterOutput, len(clusters))
	for i, c := range clusters {
		ids := make([]string, len(c.Assets))
		for j, a := range c.Assets {
			ids[j] = a.ID
		}
		out[i] = clusterOutput{
			Start:      c.Start(),
			End:        c.End(),
			Size:       c.Size(),
			IsBurst:    c.IsBurst,
			KeyAssetID: c.KeyAssetID,
			AssetIDs:   ids,
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func runSuggest(ctx context.Context, cfg *config.Config, input string) error {
	assets, err := readAssets(input)
	if err != nil {
		return err
	}

	svc, err := newService(ctx, cfg)
	if err != nil {
		return err
	}

	suggestions := svc.AnalyzeAndSuggestEvents(ctx, assets, nil)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(suggestions)
}

func runDemo(ctx context.Context, cfg *config.Config, days int, seed int64) error {
	log := logger.Get().Named("demo")

	genCfg := testassets.DefaultConfig()
	genCfg.NumDays = days
	genCfg.Seed = seed
	genCfg.WithFaces = true

	assets, stats := testassets.Generate(genCfg)
	log.Info(ctx, "generated timeline",
		logger.Int("assets", stats.Assets),
		logger.Int("burst_days", stats.BurstDays),
		logger.Int("outing_days", stats.OutingDays),
		logger.Int("party_days", stats.PartyDays),
	)

	svc, err := newService(ctx, cfg)
	if err != nil {
		return err
	}

	started := time.Now()
	clusters := svc.ClusterAssets(ctx, assets)
	elapsed := time.Since(started)

	clusterCfg, err := clusterConfigFrom(ctx, cfg)
	if err != nil {
		return err
	}
	if err := testassets.VerifyAll(assets, clusters, clusterCfg); err != nil {
		return fmt.Errorf("invariant violation: %w", err)
	}

	bursts := 0
	for _, c := range clusters {
		if c.IsBurst {
			bursts++
		}
	}
	log.Info(ctx, "clustering complete",
		logger.Int("clusters", len(clusters)),
		logger.Int("bursts", bursts),
		logger.Duration("elapsed", elapsed),
	)

	suggestions := svc.AnalyzeAndSuggestEvents(ctx, assets, nil)
	log.Info(ctx, "suggestions ready", logger.Int("count", len(suggestions)))
	for i, sg := range suggestions {
		if i >= 10 {
			break
		}
		log.Info(ctx, "suggestion",
			logger.String("title", sg.Title),
			logger.String("type", string(sg.Type)),
			logger.Float64("confidence", sg.Confidence),
			logger.Int("assets", len(sg.PhotoIDs)),
		)
	}

	return nil
}

func readAssets(path string) ([]model.MediaAsset, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read assets: %w", err)
	}

	var inputs []assetInput
	if err := json.Unmarshal(data, &inputs); err != nil {
		return nil, fmt.Errorf("parse assets: %w", err)
	}

	assets := make([]model.MediaAsset, 0, len(inputs))
	for _, in := range inputs {
		if in.ID == "" || in.CreatedAt.IsZero() {
			return nil, fmt.Errorf("asset missing id or created_at")
		}
		a := model.MediaAsset{
			ID:        in.ID,
			CreatedAt: in.CreatedAt,
			Type:      assetType(in.Type),
			FaceIDs:   in.FaceIDs,
		}
		if in.Lat != nil && in.Lon != nil {
			a.Location = &model.Coordinate{Lat: *in.Lat, Lon: *in.Lon}
		}
		assets = append(assets, a)
	}
	return assets, nil
}

func assetType(s string) model.AssetType {
	switch model.AssetType(s) {
	case model.AssetTypeVideo, model.AssetTypeAudio, model.AssetTypeDocument:
		return model.AssetType(s)
	default:
		return model.AssetTypePhoto
	}
}
