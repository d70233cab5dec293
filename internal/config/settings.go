package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Settings holds the runtime configuration read from the environment.
// Every variable is prefixed with EnvPrefix (e.g. ALLFRIENDS_PORT).
type Settings struct {
	Port           string `env:"PORT" envDefault:"18080"`
	SourceMode     string `env:"SOURCE_MODE" envDefault:"local"`
	LocalPath      string `env:"LOCAL_PATH"`
	WebURL         string `env:"WEB_URL"`
	WebUser        string `env:"WEB_USER"`
	WebPass        string `env:"WEB_PASS"`
	Language       string `env:"LANGUAGE" envDefault:"en"`
	RefreshMinutes int    `env:"REFRESH_MINUTES" envDefault:"60"`

	ReminderEnabled   bool   `env:"REMINDER_ENABLED" envDefault:"false"`
	ReminderValue     int    `env:"REMINDER_VALUE" envDefault:"1"`
	ReminderUnit      string `env:"REMINDER_UNIT" envDefault:"d"`
	ReminderDirection string `env:"REMINDER_DIRECTION" envDefault:"before"`
}

// LoadSettings loads an optional env file and parses the process environment.
// A missing env file is not an error.
func LoadSettings(envFile string) (Settings, error) {
	if envFile == "" {
		envFile = DefaultEnvFile
	}

	if err := godotenv.Load(envFile); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Settings{}, fmt.Errorf("%s: %w", ErrEnvLoad, err)
		}
		slog.Debug(MsgEnvMissing,
			LogKeyComponent, CompConfig,
			LogKeyFile, envFile,
		)
	}

	return ParseSettings(nil)
}

// ParseSettings parses settings from the given environment map.
// A nil map means the process environment.
func ParseSettings(environ map[string]string) (Settings, error) {
	var s Settings
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}

	if err := env.Parse(&s, opts); err != nil {
		return Settings{}, fmt.Errorf("%s: %w", ErrEnvParse, err)
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks the semantic constraints not expressible in struct tags.
func (s Settings) Validate() error {
	if err := ValidatePort(s.Port); err != nil {
		return err
	}

	switch s.SourceMode {
	case SourceModeLocal, SourceModeWeb, SourceModeCardDAV:
	default:
		return fmt.Errorf("%s: %q", ErrModeUnsupport, s.SourceMode)
	}

	if s.RefreshMinutes < 0 {
		return errors.New(ErrRefreshInterval)
	}

	switch s.ReminderUnit {
	case UnitDays, UnitHours, UnitMinutes:
	default:
		return fmt.Errorf("%s: %q", ErrReminderUnit, s.ReminderUnit)
	}

	switch s.ReminderDirection {
	case DirBefore, DirAfter:
	default:
		return fmt.Errorf("%s: %q", ErrReminderDir, s.ReminderDirection)
	}

	return nil
}

// ValidatePort ensures the port is a number within the TCP range.
func ValidatePort(port string) error {
	if port == "" {
		return errors.New(ErrPortRequired)
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrPortNumber, err)
	}
	if n < MinPort || n > MaxPort {
		return errors.New(ErrPortRange)
	}
	return nil
}
