package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/aevon-lab/obrc/internal/aggregation"
	coreagg "github.com/aevon-lab/obrc/internal/core/aggregation"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "OBRC_"

// Config is the configuration shared by the CLI, the HTTP service and the generator.
type Config struct {
	Engine    EngineConfig    `koanf:"engine"`
	Input     InputConfig     `koanf:"input"`
	Output    OutputConfig    `koanf:"output"`
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Generator GeneratorConfig `koanf:"generator"`
	Log       LogConfig       `koanf:"log"`
}

type EngineConfig struct {
	Workers         int    `koanf:"workers"` // 0 = GOMAXPROCS
	ChunksPerWorker int    `koanf:"chunks_per_worker"`
	Table           string `koanf:"table"`        // swiss | map
	KeyMode         string `koanf:"key_mode"`     // borrowed | owned
	ParsePolicy     string `koanf:"parse_policy"` // skip | strict
	SizeHint        int    `koanf:"size_hint"`
}

type InputConfig struct {
	Path string `koanf:"path"`
	Mmap bool   `koanf:"mmap"`
}

type OutputConfig struct {
	Path   string `koanf:"path"`   // empty = stdout
	Expect string `koanf:"expect"` // optional expected output to compare against
}

type ServerConfig struct {
	Port          int    `koanf:"port"`
	Host          string `koanf:"host"`
	MaxBodySizeMB int    `koanf:"max_body_size_mb"`
	Mode          string `koanf:"mode"` // debug | release
}

type DatabaseConfig struct {
	Enabled      bool   `koanf:"enabled"`
	DSN          string `koanf:"dsn"`
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
	AutoMigrate  bool   `koanf:"auto_migrate"`
}

// LogValue keeps the DSN password out of logs.
func (c DatabaseConfig) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("enabled", c.Enabled),
		slog.String("dsn", redactDSN(c.DSN)),
		slog.Int("max_open_conns", c.MaxOpenConns),
		slog.Int("max_idle_conns", c.MaxIdleConns),
		slog.Bool("auto_migrate", c.AutoMigrate),
	)
}

// redactDSN masks the password in both URL ("postgres://u:p@h/db") and
// keyword ("user=u password=p") connection strings.
func redactDSN(dsn string) string {
	if strings.Contains(dsn, "://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return redactedPassword
		}
		return u.Redacted()
	}
	fields := strings.Fields(dsn)
	for i, f := range fields {
		if strings.HasPrefix(f, "password=") {
			fields[i] = "password=" + redactedPassword
		}
	}
	return strings.Join(fields, " ")
}

const redactedPassword = "xxxxx"

type GeneratorConfig struct {
	Size         int     `koanf:"size"`
	Seed         uint64  `koanf:"seed"`
	StationsFile string  `koanf:"stations_file"` // empty = embedded list
	StdDev       float64 `koanf:"std_dev"`
}

type LogConfig struct {
	Level string `koanf:"level"` // debug | info | warn | error
}

// LogValue renders every section, with the database section redacted.
func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Any("engine", c.Engine),
		slog.Any("input", c.Input),
		slog.Any("output", c.Output),
		slog.Any("server", c.Server),
		slog.Any("database", c.Database),
		slog.Any("generator", c.Generator),
		slog.Any("log", c.Log),
	)
}

// Parameter converts the engine section into engine parameters.
func (c EngineConfig) Parameter() (aggregation.EngineParameter, error) {
	keyMode, err := coreagg.ParseKeyMode(c.KeyMode)
	if err != nil {
		return aggregation.EngineParameter{}, fmt.Errorf("engine.key_mode: %w", err)
	}
	policy, err := aggregation.ParseParsePolicy(c.ParsePolicy)
	if err != nil {
		return aggregation.EngineParameter{}, fmt.Errorf("engine.parse_policy: %w", err)
	}
	return aggregation.EngineParameter{
		Workers:         c.Workers,
		ChunksPerWorker: c.ChunksPerWorker,
		Table:           coreagg.TableKind(c.Table),
		KeyMode:         keyMode,
		ParsePolicy:     policy,
		SizeHint:        c.SizeHint,
	}, nil
}

// SlogLevel returns the configured log level.
func (c LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func (c *Config) Validate() error {
	if c.Engine.Workers < 0 {
		return fmt.Errorf("engine.workers must be >= 0")
	}
	if c.Engine.ChunksPerWorker <= 0 {
		return fmt.Errorf("engine.chunks_per_worker must be > 0")
	}
	if !coreagg.ValidTable(coreagg.TableKind(c.Engine.Table)) {
		return fmt.Errorf("unsupported engine.table %q (must be swiss or map)", c.Engine.Table)
	}
	if c.Engine.SizeHint < 0 {
		return fmt.Errorf("engine.size_hint must be >= 0")
	}
	if _, err := c.Engine.Parameter(); err != nil {
		return err
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d (must be 1-65535)", c.Server.Port)
	}
	if strings.TrimSpace(c.Server.Host) == "" {
		return fmt.Errorf("server.host is required")
	}
	if c.Server.MaxBodySizeMB <= 0 {
		return fmt.Errorf("server.max_body_size_mb must be > 0")
	}
	if c.Server.Mode != "debug" && c.Server.Mode != "release" {
		return fmt.Errorf("invalid server.mode %q (must be debug or release)", c.Server.Mode)
	}

	if c.Database.Enabled {
		if strings.TrimSpace(c.Database.DSN) == "" {
			return fmt.Errorf("database.dsn is required when database.enabled is true")
		}
		if c.Database.MaxOpenConns <= 0 {
			return fmt.Errorf("database.max_open_conns must be > 0")
		}
		if c.Database.MaxIdleConns <= 0 {
			return fmt.Errorf("database.max_idle_conns must be > 0")
		}
	}

	if c.Generator.Size < 0 {
		return fmt.Errorf("generator.size must be >= 0")
	}
	if c.Generator.StdDev < 0 {
		return fmt.Errorf("generator.std_dev must be >= 0")
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return fmt.Errorf("invalid log.level %q", c.Log.Level)
	}

	return nil
}

// Load parses config from defaults, an optional YAML file and OBRC_ environment
// variables (OBRC_ENGINE__WORKERS=8 overrides engine.workers), then validates it.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"engine.workers":           0,
		"engine.chunks_per_worker": 1,
		"engine.table":             "swiss",
		"engine.key_mode":          "borrowed",
		"engine.parse_policy":      "skip",
		"engine.size_hint":         1024,
		"input.path":               "measurements.txt",
		"input.mmap":               true,
		"output.path":              "",
		"output.expect":            "",
		"server.port":              8080,
		"server.host":              "0.0.0.0",
		"server.max_body_size_mb":  64,
		"server.mode":              "release",
		"database.enabled":         false,
		"database.dsn":             "",
		"database.max_open_conns":  10,
		"database.max_idle_conns":  10,
		"database.auto_migrate":    true,
		"generator.size":           1_000_000,
		"generator.seed":           1,
		"generator.stations_file":  "",
		"generator.std_dev":        10.0,
		"log.level":                "info",
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
