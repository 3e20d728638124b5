package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/iliyamo/festival-program/internal/festival"
	"github.com/iliyamo/festival-program/internal/validation"
)

const festivalEnvPrefix = "FESTIVAL_"

// LoadFestival layers the built-in edition defaults, the YAML file at path
// (skipped when it does not exist) and FESTIVAL_* environment variables,
// in that order of increasing priority.
//
//	FESTIVAL_NAME            -> name
//	FESTIVAL_CALENDAR_START  -> calendar.start
//	FESTIVAL_CALENDAR_END    -> calendar.end
func LoadFestival(path string) (festival.Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(festival.Default(), "koanf"), nil); err != nil {
		return festival.Config{}, fmt.Errorf("load festival defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return festival.Config{}, fmt.Errorf("load festival file %s: %w", path, err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return festival.Config{}, fmt.Errorf("stat festival file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(festivalEnvPrefix, ".", festivalEnvKey), nil); err != nil {
		return festival.Config{}, fmt.Errorf("load festival env: %w", err)
	}

	var cfg festival.Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return festival.Config{}, fmt.Errorf("unmarshal festival config: %w", err)
	}
	if err := validation.Struct(cfg); err != nil {
		return festival.Config{}, fmt.Errorf("invalid festival config: %w", err)
	}
	if err := cfg.Calendar.Validate(); err != nil {
		return festival.Config{}, fmt.Errorf("invalid festival config: %w", err)
	}
	return cfg, nil
}

// festivalEnvKey maps FESTIVAL_CALENDAR_START to calendar.start.  The
// config path variable is not a festival setting and is dropped.
func festivalEnvKey(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, festivalEnvPrefix))
	if key == "config_path" {
		return ""
	}
	return strings.ReplaceAll(key, "_", ".")
}
