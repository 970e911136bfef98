package cmd

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
	"modtest.dev/pkg/modtest/internal/domain"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "modtest"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	factsFlagName              = "facts"
	outputFlagName             = "output"
	excludeFlagName            = "exclude"
	verboseFlagName            = "verbose"
	includeTestModulesFlagName = "include-test-modules"
	workersFlagName            = "parallel"
	timeoutFlagName            = "timeout"
	shardFlagName              = "shard"

	includeTestModulesKey = "resolve.include_test_modules"
	workersConfigKey      = "run.workers"
	timeoutConfigKey      = "run.timeout"
	excludeConfigKey      = "paths.exclude"

	defaultFactsFile   = "facts.yaml"
	defaultReportsDir  = ".modtest-reports"
	defaultTestTimeout = domain.DefaultTestTimeout

	envPrefix = "MODTEST"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".modtest.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(factsFlagName, defaultFactsFile)
	viper.SetDefault(outputFlagName, defaultReportsDir)
	viper.SetDefault(includeTestModulesKey, false)
	viper.SetDefault(workersConfigKey, runtime.NumCPU())
	viper.SetDefault(timeoutConfigKey, defaultTestTimeout.String())
	viper.SetDefault(excludeConfigKey, []string{})

	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	readConfigFile(viper.GetViper())
}

// readConfigFile loads the config file if present. A missing file is normal;
// any other error is logged and the defaults stay in effect.
func readConfigFile(v *viper.Viper) {
	if err := v.ReadInConfig(); err != nil {
		if configMissing(err) {
			return
		}

		slog.Warn("Failed to read config file, using defaults", "file", v.ConfigFileUsed(), "error", err)
	}
}

func configMissing(err error) bool {
	var notFound viper.ConfigFileNotFoundError

	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Numeric slog levels are accepted too (-4 is debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configTimeout reads run.timeout, accepting a duration string or a number of seconds.
func configTimeout() time.Duration {
	raw := strings.TrimSpace(viper.GetString(timeoutConfigKey))
	if raw == "" {
		return defaultTestTimeout
	}

	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}

	if seconds, err := strconv.Atoi(raw); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}

	slog.Warn("Ignoring invalid test timeout", "value", raw, "default", defaultTestTimeout)

	return defaultTestTimeout
}

// configureLogger configures the global slog logger.
//
// By default it logs at Info; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
