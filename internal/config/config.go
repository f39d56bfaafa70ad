package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/rohmanhakim/docs-crawler/pkg/hashutil"
	"gopkg.in/yaml.v3"
)

// Config holds every tunable of a crawl run. Fields are unexported; callers
// build a Config through WithDefault/WithConfigFile and the chainable
// With* methods, then call Build to validate and freeze it.
type Config struct {
	//===============
	// Crawl scope
	//===============
	// Pages the frontier is seeded with whenever its store is empty: a first
	// run, or any run with restart=true.
	seedURLs []url.URL

	//===============
	// Politeness
	//===============
	// Number of crawl worker goroutines processing URLs concurrently.
	threads int
	// Minimum time between two requests to the same host.
	timeDelay time.Duration

	//===============
	// Retry / fetch
	//===============
	jitter                 time.Duration
	randomSeed             int64
	maxAttempts            int
	backoffInitialDuration time.Duration
	backoffMultiplier      float64
	backoffMaxDuration     time.Duration
	fetchTimeout           time.Duration
	userAgent              string

	//===============
	// Persistence
	//===============
	// Path to the bbolt frontier database.
	saveFile string
	// restart=true discards the existing frontier database and starts over
	// from seedURLs. restart=false resumes from saveFile if present.
	restart bool
	// Number of pages recorded in stats between stats checkpoint writes.
	saveFrequency int
	// Path to the JSON stats snapshot.
	statsFile string
	// Path to the plain-line rejected-URL log.
	filteredLogFile string
	// Path to the structured engine event log.
	engineLogFile string

	//===============
	// Hashing
	//===============
	hashAlgo hashutil.HashAlgo

	//===============
	// Tokenizer / stats
	//===============
	// Optional override of the embedded default stopwords list.
	stopwordsFile string
}

type configDTO struct {
	SeedURLs               []string `yaml:"seed_urls"`
	Threads                int      `yaml:"threads,omitempty"`
	TimeDelay              string   `yaml:"time_delay,omitempty"`
	Jitter                 string   `yaml:"jitter,omitempty"`
	RandomSeed             int64    `yaml:"random_seed,omitempty"`
	MaxAttempts            int      `yaml:"max_attempts,omitempty"`
	BackoffInitialDuration string   `yaml:"backoff_initial_duration,omitempty"`
	BackoffMultiplier      float64  `yaml:"backoff_multiplier,omitempty"`
	BackoffMaxDuration     string   `yaml:"backoff_max_duration,omitempty"`
	FetchTimeout           string   `yaml:"fetch_timeout,omitempty"`
	UserAgent              string   `yaml:"user_agent,omitempty"`
	SaveFile               string   `yaml:"save_file,omitempty"`
	Restart                bool     `yaml:"restart,omitempty"`
	SaveFrequency          int      `yaml:"save_frequency,omitempty"`
	StatsFile              string   `yaml:"stats_file,omitempty"`
	FilteredLogFile        string   `yaml:"filtered_log_file,omitempty"`
	EngineLogFile          string   `yaml:"engine_log_file,omitempty"`
	HashAlgo               string   `yaml:"hash_algo,omitempty"`
	StopwordsFile          string   `yaml:"stopwords_file,omitempty"`
}

func newConfigFromDTO(dto configDTO) (Config, error) {
	if len(dto.SeedURLs) == 0 {
		return Config{}, fmt.Errorf("%w: seed_urls cannot be empty", ErrInvalidConfig)
	}

	seeds := make([]url.URL, 0, len(dto.SeedURLs))
	for _, raw := range dto.SeedURLs {
		u, err := url.Parse(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%w: invalid seed url %q: %s", ErrInvalidConfig, raw, err.Error())
		}
		seeds = append(seeds, *u)
	}

	cfg, err := WithDefault(seeds).Build()
	if err != nil {
		return Config{}, err
	}

	if dto.Threads != 0 {
		cfg.threads = dto.Threads
	}
	if d, err := parseDuration(dto.TimeDelay); err != nil {
		return Config{}, err
	} else if d != 0 {
		cfg.timeDelay = d
	}
	if d, err := parseDuration(dto.Jitter); err != nil {
		return Config{}, err
	} else if d != 0 {
		cfg.jitter = d
	}
	if dto.RandomSeed != 0 {
		cfg.randomSeed = dto.RandomSeed
	}
	if dto.MaxAttempts != 0 {
		cfg.maxAttempts = dto.MaxAttempts
	}
	if d, err := parseDuration(dto.BackoffInitialDuration); err != nil {
		return Config{}, err
	} else if d != 0 {
		cfg.backoffInitialDuration = d
	}
	if dto.BackoffMultiplier != 0 {
		cfg.backoffMultiplier = dto.BackoffMultiplier
	}
	if d, err := parseDuration(dto.BackoffMaxDuration); err != nil {
		return Config{}, err
	} else if d != 0 {
		cfg.backoffMaxDuration = d
	}
	if d, err := parseDuration(dto.FetchTimeout); err != nil {
		return Config{}, err
	} else if d != 0 {
		cfg.fetchTimeout = d
	}
	if dto.UserAgent != "" {
		cfg.userAgent = dto.UserAgent
	}
	if dto.SaveFile != "" {
		cfg.saveFile = dto.SaveFile
	}
	cfg.restart = dto.Restart
	if dto.SaveFrequency != 0 {
		cfg.saveFrequency = dto.SaveFrequency
	}
	if dto.StatsFile != "" {
		cfg.statsFile = dto.StatsFile
	}
	if dto.FilteredLogFile != "" {
		cfg.filteredLogFile = dto.FilteredLogFile
	}
	if dto.EngineLogFile != "" {
		cfg.engineLogFile = dto.EngineLogFile
	}
	if dto.HashAlgo != "" {
		algo := hashutil.HashAlgo(dto.HashAlgo)
		if algo != hashutil.HashAlgoSHA256 && algo != hashutil.HashAlgoBLAKE3 {
			return Config{}, fmt.Errorf("%w: unknown hash_algo %q", ErrInvalidConfig, dto.HashAlgo)
		}
		cfg.hashAlgo = algo
	}
	if dto.StopwordsFile != "" {
		cfg.stopwordsFile = dto.StopwordsFile
	}

	return cfg, nil
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
	}
	return d, nil
}

// WithConfigFile loads a Config from a YAML file at path.
func WithConfigFile(path string) (Config, error) {
	_, err := os.Stat(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrFileDoesNotExist, err.Error())
	}
	configContent, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrReadConfigFail, err.Error())
	}

	cfgDTO := configDTO{}
	if err := yaml.Unmarshal(configContent, &cfgDTO); err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
	}

	return newConfigFromDTO(cfgDTO)
}

// WithDefault creates a new Config with the provided seed URLs and default
// values for everything else. seedUrls is mandatory: Build will reject an
// empty slice.
func WithDefault(seedUrls []url.URL) *Config {
	defaultConfig := Config{
		seedURLs:               seedUrls,
		threads:                10,
		timeDelay:              time.Second,
		jitter:                 500 * time.Millisecond,
		randomSeed:             time.Now().UnixNano(),
		maxAttempts:            5,
		backoffInitialDuration: 500 * time.Millisecond,
		backoffMultiplier:      2.0,
		backoffMaxDuration:     30 * time.Second,
		fetchTimeout:           10 * time.Second,
		userAgent:              "docs-crawler/1.0",
		saveFile:               "frontier.db",
		restart:                false,
		saveFrequency:          100,
		statsFile:              "stats.json",
		filteredLogFile:        "filtered.log",
		engineLogFile:          "engine.log",
		hashAlgo:               hashutil.HashAlgoSHA256,
		stopwordsFile:          "",
	}
	return &defaultConfig
}

func (c *Config) WithSeedUrls(urls []url.URL) *Config {
	c.seedURLs = urls
	return c
}

func (c *Config) WithThreads(threads int) *Config {
	c.threads = threads
	return c
}

func (c *Config) WithTimeDelay(delay time.Duration) *Config {
	c.timeDelay = delay
	return c
}

func (c *Config) WithJitter(jitter time.Duration) *Config {
	c.jitter = jitter
	return c
}

func (c *Config) WithRandomSeed(seed int64) *Config {
	c.randomSeed = seed
	return c
}

func (c *Config) WithMaxAttempts(attempts int) *Config {
	c.maxAttempts = attempts
	return c
}

func (c *Config) WithBackoffInitialDuration(duration time.Duration) *Config {
	c.backoffInitialDuration = duration
	return c
}

func (c *Config) WithBackoffMultiplier(multiplier float64) *Config {
	c.backoffMultiplier = multiplier
	return c
}

func (c *Config) WithBackoffMaxDuration(duration time.Duration) *Config {
	c.backoffMaxDuration = duration
	return c
}

func (c *Config) WithFetchTimeout(timeout time.Duration) *Config {
	c.fetchTimeout = timeout
	return c
}

func (c *Config) WithUserAgent(agent string) *Config {
	c.userAgent = agent
	return c
}

func (c *Config) WithSaveFile(path string) *Config {
	c.saveFile = path
	return c
}

func (c *Config) WithRestart(restart bool) *Config {
	c.restart = restart
	return c
}

func (c *Config) WithSaveFrequency(n int) *Config {
	c.saveFrequency = n
	return c
}

func (c *Config) WithStatsFile(path string) *Config {
	c.statsFile = path
	return c
}

func (c *Config) WithFilteredLogFile(path string) *Config {
	c.filteredLogFile = path
	return c
}

func (c *Config) WithEngineLogFile(path string) *Config {
	c.engineLogFile = path
	return c
}

func (c *Config) WithHashAlgo(algo hashutil.HashAlgo) *Config {
	c.hashAlgo = algo
	return c
}

func (c *Config) WithStopwordsFile(path string) *Config {
	c.stopwordsFile = path
	return c
}

// Build validates the accumulated fields and returns an immutable Config.
func (c *Config) Build() (Config, error) {
	if len(c.seedURLs) == 0 {
		return Config{}, fmt.Errorf("%w: seedUrls cannot be empty", ErrInvalidConfig)
	}
	if c.threads < 1 {
		return Config{}, fmt.Errorf("%w: threads must be >= 1", ErrInvalidConfig)
	}

	return *c, nil
}

func (c Config) SeedURLs() []url.URL {
	urls := make([]url.URL, len(c.seedURLs))
	copy(urls, c.seedURLs)
	return urls
}

func (c Config) Threads() int {
	return c.threads
}

func (c Config) TimeDelay() time.Duration {
	return c.timeDelay
}

func (c Config) Jitter() time.Duration {
	return c.jitter
}

func (c Config) RandomSeed() int64 {
	return c.randomSeed
}

func (c Config) MaxAttempts() int {
	return c.maxAttempts
}

func (c Config) BackoffInitialDuration() time.Duration {
	return c.backoffInitialDuration
}

func (c Config) BackoffMultiplier() float64 {
	return c.backoffMultiplier
}

func (c Config) BackoffMaxDuration() time.Duration {
	return c.backoffMaxDuration
}

func (c Config) FetchTimeout() time.Duration {
	return c.fetchTimeout
}

func (c Config) UserAgent() string {
	return c.userAgent
}

func (c Config) SaveFile() string {
	return c.saveFile
}

func (c Config) Restart() bool {
	return c.restart
}

func (c Config) SaveFrequency() int {
	return c.saveFrequency
}

func (c Config) StatsFile() string {
	return c.statsFile
}

func (c Config) FilteredLogFile() string {
	return c.filteredLogFile
}

func (c Config) EngineLogFile() string {
	return c.engineLogFile
}

func (c Config) HashAlgo() hashutil.HashAlgo {
	return c.hashAlgo
}

func (c Config) StopwordsFile() string {
	return c.stopwordsFile
}
