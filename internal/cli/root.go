package cmd

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rohmanhakim/docs-crawler/internal/build"
	"github.com/rohmanhakim/docs-crawler/internal/config"
	"github.com/rohmanhakim/docs-crawler/internal/dedup"
	"github.com/rohmanhakim/docs-crawler/internal/downloader"
	"github.com/rohmanhakim/docs-crawler/internal/engine"
	"github.com/rohmanhakim/docs-crawler/internal/extractor"
	"github.com/rohmanhakim/docs-crawler/internal/frontier"
	"github.com/rohmanhakim/docs-crawler/internal/logging"
	"github.com/rohmanhakim/docs-crawler/internal/politeness"
	"github.com/rohmanhakim/docs-crawler/internal/stats"
	"github.com/rohmanhakim/docs-crawler/internal/stopwords"
	"github.com/rohmanhakim/docs-crawler/pkg/hashutil"
	"github.com/rohmanhakim/docs-crawler/pkg/retry"
	"github.com/rohmanhakim/docs-crawler/pkg/timeutil"
	"github.com/spf13/cobra"
)

var (
	cfgFile       string
	seedURLs      []string
	threads       int
	timeDelay     time.Duration
	saveFile      string
	restart       bool
	saveFrequency int
	statsFile     string
	filteredLog   string
	engineLogPath string
	userAgent     string
	fetchTimeout  time.Duration
	hashAlgo      string
)

// parseSeedURLs converts a string slice of URLs to []url.URL.
func parseSeedURLs(urlStrings []string) ([]url.URL, error) {
	urls := make([]url.URL, 0, len(urlStrings))
	for _, s := range urlStrings {
		u, err := url.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("error parsing seed URL %s: %w", s, err)
		}
		urls = append(urls, *u)
	}
	return urls, nil
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "docs-crawler",
	Short: "A polite, domain-restricted documentation crawler.",
	Long: `docs-crawler discovers pages reachable from a set of seed URLs,
fetches each page at most once, extracts outbound links, filters them by a
fixed acceptance policy, and accumulates corpus statistics. Its
exploration state is durable, so an interrupted run resumes without
re-fetching.`,
	RunE: runCrawl,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "YAML config file path")
	rootCmd.PersistentFlags().StringArrayVar(&seedURLs, "seed-url", []string{}, "one or more starting URLs (can be repeated)")
	rootCmd.PersistentFlags().IntVar(&threads, "threads", 0, "number of concurrent crawl workers")
	rootCmd.PersistentFlags().DurationVar(&timeDelay, "time-delay", 0, "minimum delay between requests to the same host")
	rootCmd.PersistentFlags().StringVar(&saveFile, "save-file", "", "path to the durable frontier store")
	rootCmd.PersistentFlags().BoolVar(&restart, "restart", false, "discard any existing frontier store and start over from the seed URLs")
	rootCmd.PersistentFlags().IntVar(&saveFrequency, "save-frequency", 0, "number of pages recorded in stats between stats checkpoints")
	rootCmd.PersistentFlags().StringVar(&statsFile, "stats-file", "", "path to the JSON stats snapshot")
	rootCmd.PersistentFlags().StringVar(&filteredLog, "filtered-log-file", "", "path to the rejected-URL log")
	rootCmd.PersistentFlags().StringVar(&engineLogPath, "engine-log-file", "", "path to the structured engine event log")
	rootCmd.PersistentFlags().StringVar(&userAgent, "user-agent", "", "User-Agent header sent with every request")
	rootCmd.PersistentFlags().DurationVar(&fetchTimeout, "fetch-timeout", 0, "per-request HTTP timeout")
	rootCmd.PersistentFlags().StringVar(&hashAlgo, "hash-algo", "", "content hash algorithm: sha256 or blake3")
}

// buildConfig loads a YAML config file when --config-file is given,
// otherwise starts from defaults seeded by --seed-url, then layers any
// explicitly-set CLI flags on top.
func buildConfig() (config.Config, error) {
	var builder *config.Config

	if cfgFile != "" {
		fileCfg, err := config.WithConfigFile(cfgFile)
		if err != nil {
			return config.Config{}, fmt.Errorf("error initializing config from file: %w", err)
		}
		builder = &fileCfg
	} else {
		if len(seedURLs) == 0 {
			return config.Config{}, fmt.Errorf("%w: --seed-url or --config-file is required", config.ErrInvalidConfig)
		}
		parsed, err := parseSeedURLs(seedURLs)
		if err != nil {
			return config.Config{}, err
		}
		defaults := config.WithDefault(parsed)
		builder = &defaults
	}

	if threads > 0 {
		builder = builder.WithThreads(threads)
	}
	if timeDelay > 0 {
		builder = builder.WithTimeDelay(timeDelay)
	}
	if saveFile != "" {
		builder = builder.WithSaveFile(saveFile)
	}
	if restart {
		builder = builder.WithRestart(true)
	}
	if saveFrequency > 0 {
		builder = builder.WithSaveFrequency(saveFrequency)
	}
	if statsFile != "" {
		builder = builder.WithStatsFile(statsFile)
	}
	if filteredLog != "" {
		builder = builder.WithFilteredLogFile(filteredLog)
	}
	if engineLogPath != "" {
		builder = builder.WithEngineLogFile(engineLogPath)
	}
	if userAgent != "" {
		builder = builder.WithUserAgent(userAgent)
	}
	if fetchTimeout > 0 {
		builder = builder.WithFetchTimeout(fetchTimeout)
	}
	if hashAlgo != "" {
		builder = builder.WithHashAlgo(hashutil.HashAlgo(hashAlgo))
	}

	return builder.Build()
}

func runCrawl(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	agent := cfg.UserAgent()
	if agent == "" {
		agent = "docs-crawler/" + build.FullVersion()
	}

	engineSink, closeEngineLog, err := openEngineLog(cfg.EngineLogFile())
	if err != nil {
		return err
	}
	defer closeEngineLog()

	rejectSink, closeRejectLog, err := openRejectLog(cfg.FilteredLogFile())
	if err != nil {
		return err
	}
	defer closeRejectLog()

	seeds := make([]string, 0, len(cfg.SeedURLs()))
	for _, u := range cfg.SeedURLs() {
		seeds = append(seeds, u.String())
	}

	store, err := frontier.Open(cfg.SaveFile(), cfg.Restart(), cfg.HashAlgo(), seeds)
	if err != nil {
		return err
	}
	defer store.Close()

	agg := stats.NewAggregator()
	if !cfg.Restart() && cfg.StatsFile() != "" {
		if loadErr := agg.Load(cfg.StatsFile()); loadErr != nil {
			return loadErr
		}
	}

	words, err := loadStopwords(cfg.StopwordsFile())
	if err != nil {
		return err
	}

	retryParam := retry.NewRetryParam(
		cfg.TimeDelay(),
		cfg.Jitter(),
		cfg.RandomSeed(),
		cfg.MaxAttempts(),
		timeutil.NewBackoffParam(cfg.BackoffInitialDuration(), cfg.BackoffMultiplier(), cfg.BackoffMaxDuration()),
	)

	dl := downloader.NewHTTPDownloader(cfg.FetchTimeout(), agent, retryParam)
	ext := extractor.NewGoqueryExtractor()
	gate := politeness.NewGate(cfg.TimeDelay())
	dd := dedup.NewDetector(3)

	eng := engine.New(store, dl, ext, gate, dd, agg, words, engineSink, rejectSink, cfg.Threads(), cfg.SaveFrequency(), cfg.StatsFile())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eng.Run(ctx)
	return nil
}

func openEngineLog(path string) (logging.EngineLog, func(), error) {
	if path == "" {
		return logging.NewZerologEngineLog(os.Stdout), func() {}, nil
	}
	w, err := logging.OpenFileSink(path)
	if err != nil {
		return nil, nil, err
	}
	return logging.NewZerologEngineLog(w), func() { _ = w.Close() }, nil
}

func openRejectLog(path string) (logging.RejectLog, func(), error) {
	if path == "" {
		return logging.NewPlainRejectLog(os.Stdout), func() {}, nil
	}
	w, err := logging.OpenFileSink(path)
	if err != nil {
		return nil, nil, err
	}
	return logging.NewPlainRejectLog(w), func() { _ = w.Close() }, nil
}

func loadStopwords(override string) (map[string]struct{}, error) {
	if override == "" {
		return stopwords.Default(), nil
	}
	return stopwords.Load(override)
}

// NewRootCmdForTest returns the package's root command so tests can drive
// subcommands end-to-end via SetArgs/SetOut/Execute.
func NewRootCmdForTest() *cobra.Command {
	return rootCmd
}

// ParseSeedURLs exposes parseSeedURLs to tests in package cmd_test.
func ParseSeedURLs(urlStrings []string) ([]url.URL, error) {
	return parseSeedURLs(urlStrings)
}

// BuildConfig exposes buildConfig to tests in package cmd_test.
func BuildConfig() (config.Config, error) {
	return buildConfig()
}

// SetSeedURLForTest sets the --seed-url flag's backing variable directly.
func SetSeedURLForTest(urls []string) {
	seedURLs = urls
}

// SetThreadsForTest sets the --threads flag's backing variable directly.
func SetThreadsForTest(n int) {
	threads = n
}

// SetUserAgentForTest sets the --user-agent flag's backing variable directly.
func SetUserAgentForTest(agent string) {
	userAgent = agent
}

// SetConfigFileForTest sets the --config-file flag's backing variable directly.
func SetConfigFileForTest(path string) {
	cfgFile = path
}

// ResetFlags clears every package-level flag variable. Used between tests
// so cobra's shared flag state doesn't leak across test cases.
func ResetFlags() {
	cfgFile = ""
	seedURLs = []string{}
	threads = 0
	timeDelay = 0
	saveFile = ""
	restart = false
	saveFrequency = 0
	statsFile = ""
	filteredLog = ""
	engineLogPath = ""
	userAgent = ""
	fetchTimeout = 0
	hashAlgo = ""
}
