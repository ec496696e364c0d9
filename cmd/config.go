package cmd

import (
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"dupes.dev/pkg/dupes/internal/adapter"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "dupes"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	algorithmFlagName = "algorithm"
	threadsFlagName   = "threads"
	workersFlagName   = "workers"
	verboseFlagName   = "verbose"
	logFileFlagName   = "log-file"
	noTUIFlagName     = "no-tui"

	algorithmConfigKey = "scan.algorithm"
	threadsConfigKey   = "scan.threads"
	workersConfigKey   = "remove.workers"
	noTUIConfigKey     = "ui.no_tui"

	defaultWorkers = 1
	defaultNoTUI   = false

	envPrefix = "DUPES"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".dupes.log"
	defaultLogLevel      = "info"
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

func init() {
	viper.SetConfigType("yaml")
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	setConfigDefaults(viper.GetViper())

	if err := readConfigFile(viper.GetViper()); err != nil {
		slog.Warn("Ignoring unreadable config file", "file", configFileName, "error", err)
	}
}

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault(configVersionKey, currentConfigVersion)
	v.SetDefault(algorithmConfigKey, adapter.DefaultAlgorithm)
	v.SetDefault(threadsConfigKey, runtime.NumCPU())
	v.SetDefault(workersConfigKey, defaultWorkers)
	v.SetDefault(noTUIConfigKey, defaultNoTUI)

	v.SetDefault(logFilenameKey, defaultLogFilename)
	v.SetDefault(logLevelKey, defaultLogLevel)
	v.SetDefault(logVerboseKey, defaultLogVerbose)
	v.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	v.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	v.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	v.SetDefault(logCompressKey, defaultLogCompress)
}

// readConfigFile loads the config file into v. A missing file is not an
// error; a file that exists but cannot be read or parsed is.
func readConfigFile(v *viper.Viper) error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return err
}

var logLevels = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// parseLogLevel accepts a level name or a numeric slog level (-4 is debug).
func parseLogLevel(value string, fallback slog.Level) slog.Level {
	value = strings.ToLower(strings.TrimSpace(value))

	if level, ok := logLevels[value]; ok {
		return level
	}

	if n, err := strconv.Atoi(value); err == nil {
		return slog.Level(n)
	}

	return fallback
}

// newLogWriter returns a rotating writer for logPath, falling back to the
// configured and then the default file name.
func newLogWriter(logPath string) *lumberjack.Logger {
	for _, candidate := range []string{logPath, viper.GetString(logFilenameKey), defaultLogFilename} {
		if strings.TrimSpace(candidate) != "" {
			logPath = candidate
			break
		}
	}

	return &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}
}

// configureLogger points the default slog logger at the rotating log file.
// verbose forces debug output regardless of log.level.
func configureLogger(logPath string, verbose bool) {
	level := slog.LevelDebug
	if !verbose {
		level = parseLogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(newLogWriter(logPath), &slog.HandlerOptions{
		AddSource: true,
		Level:     level,
	})))
}
