package config

import (
	"apiversions/logger"
	"apiversions/versioning"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type DefaultPaths struct {
	ConfigDir     string
	LogPathApp    string
	LogPathAccess string
	DBPath        string
	LogLevel      string
}

type Configuration struct {
	Database struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"database"`
	Server struct {
		Port          string `mapstructure:"port"`
		LogPath       string `mapstructure:"log_path"`
		AccessLogPath string `mapstructure:"access_log_path"`
		Compress      bool   `mapstructure:"compress"`
	} `mapstructure:"server"`
	Logging struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"logging"`
	Versioning struct {
		VersionFormat string `mapstructure:"version_format"`
		PrefixFormat  string `mapstructure:"prefix_format"`
		DefaultMajor  int    `mapstructure:"default_major"`
		DefaultMinor  int    `mapstructure:"default_minor"`
		EnableLatest  bool   `mapstructure:"enable_latest"`
		VersionIndex  string `mapstructure:"version_index"`
	} `mapstructure:"versioning"`
}

var AppConfig Configuration

func expandTilde(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

func GetDefaultConfigPaths() DefaultPaths {
	var paths DefaultPaths
	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not get user config dir: %v. Using current directory.\n", err)
		userConfigDir = "."
	}

	paths.ConfigDir = filepath.Join(userConfigDir, "apiversions")
	logDir := filepath.Join(paths.ConfigDir, "logs")

	paths.LogPathApp = filepath.Join(logDir, "app.log")
	paths.LogPathAccess = filepath.Join(logDir, "access.log")
	paths.DBPath = filepath.Join(paths.ConfigDir, "items.db")
	paths.LogLevel = "INFO"
	return paths
}

// Init loads configuration from the config file, APIVERSIONS_* environment
// variables and defaults, applies the flag overrides and re-initializes the
// global loggers.
func Init(cfgFile string, flagAppLogPath, flagAccessLogPath, flagLogLevel string) error {
	v := viper.New()

	defaults := GetDefaultConfigPaths()
	v.SetDefault("database.path", defaults.DBPath)
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.log_path", defaults.LogPathApp)
	v.SetDefault("server.access_log_path", defaults.LogPathAccess)
	v.SetDefault("server.compress", false)
	v.SetDefault("logging.level", defaults.LogLevel)
	v.SetDefault("versioning.version_format", versioning.DefaultVersionFormat)
	v.SetDefault("versioning.prefix_format", versioning.DefaultPrefixFormat)
	v.SetDefault("versioning.default_major", 1)
	v.SetDefault("versioning.default_minor", 0)
	v.SetDefault("versioning.enable_latest", false)
	v.SetDefault("versioning.version_index", "")

	if cfgFile != "" {
		expandedCfgFile, err := expandTilde(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Could not expand tilde in config file path '%s': %v. Trying original path.\n", cfgFile, err)
			expandedCfgFile = cfgFile
		}
		v.SetConfigFile(expandedCfgFile)
		v.SetConfigType("yaml")
	} else {
		v.AddConfigPath(defaults.ConfigDir)
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("APIVERSIONS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configUsedMsg := "Using default/environment configuration."
	readErr := v.ReadInConfig()
	if readErr == nil {
		configUsedMsg = fmt.Sprintf("Using config file: %s", v.ConfigFileUsed())
	} else if _, ok := readErr.(viper.ConfigFileNotFoundError); ok {
		if cfgFile != "" {
			fmt.Fprintf(os.Stderr, "Warning: Config file specified by flag (%s) not found: %v\n", cfgFile, readErr)
		}
	} else if cfgFile != "" {
		return fmt.Errorf("reading config file %s: %w", cfgFile, readErr)
	} else {
		fmt.Fprintf(os.Stderr, "Error reading config file %s: %v\n", v.ConfigFileUsed(), readErr)
	}

	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if flagAppLogPath != "" {
		cfg.Server.LogPath = flagAppLogPath
	}
	if flagAccessLogPath != "" {
		cfg.Server.AccessLogPath = flagAccessLogPath
	}
	if flagLogLevel != "" {
		cfg.Logging.Level = strings.ToUpper(flagLogLevel)
	}

	for _, p := range []*string{&cfg.Database.Path, &cfg.Server.LogPath, &cfg.Server.AccessLogPath} {
		expanded, err := expandTilde(*p)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Could not expand tilde in '%s': %v.\n", *p, err)
			continue
		}
		*p = expanded
	}
	AppConfig = cfg

	if err := logger.InitGlobalLoggers(AppConfig.Server.LogPath, AppConfig.Server.AccessLogPath, AppConfig.Logging.Level); err != nil {
		return fmt.Errorf("failed to initialize global loggers with final config: %w", err)
	}

	logger.Info("%s", configUsedMsg)
	if flagAppLogPath != "" || flagAccessLogPath != "" || flagLogLevel != "" {
		logger.Info("Log path/level flags may have overridden config file/defaults.")
	}
	if AppConfig.Versioning.EnableLatest {
		logger.Info("Versioning: /latest mount ENABLED.")
	}
	logger.Debug("Final AppConfig Initialized: %+v", AppConfig)
	return nil
}

// VersioningOptions translates the versioning section into options for
// versioning.New and versioning.NewRouter.
func VersioningOptions() []versioning.Option {
	vc := AppConfig.Versioning
	opts := []versioning.Option{
		versioning.WithDefaultVersion(vc.DefaultMajor, vc.DefaultMinor),
		versioning.WithLatest(vc.EnableLatest),
	}
	if vc.VersionFormat != "" {
		opts = append(opts, versioning.WithVersionFormat(vc.VersionFormat))
	}
	if vc.PrefixFormat != "" {
		opts = append(opts, versioning.WithPrefixFormat(vc.PrefixFormat))
	}
	if vc.VersionIndex != "" {
		opts = append(opts, versioning.WithVersionIndex(vc.VersionIndex))
	}
	return opts
}
