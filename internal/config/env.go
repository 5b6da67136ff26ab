package config

import (
	"fmt"
	"sort"
	"strconv"
)

// EnvPrefix is the prefix for all gutterview environment variables.
const EnvPrefix = "GUTTERVIEW_"

type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
)

type envMapping struct {
	field string
	typ   envFieldType
}

// envMappings maps variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"FONT_SIZE":      {field: "editor.font_size", typ: envTypeInt},
	"THEME":          {field: "editor.theme", typ: envTypeString},
	"TAB_WIDTH":      {field: "editor.tab_width", typ: envTypeInt},
	"GUTTER_MARGIN":  {field: "gutter.margin", typ: envTypeInt},
	"GUTTER_MODE":    {field: "gutter.mode", typ: envTypeString},
	"GUTTER_RECHECK": {field: "gutter.recheck_on_full_update", typ: envTypeBool},
	"LOG_LEVEL":      {field: "logging.level", typ: envTypeString},
}

// EnvVars returns the recognised environment variable names, sorted.
func EnvVars() []string {
	names := make([]string, 0, len(envMappings))
	for suffix := range envMappings {
		names = append(names, EnvPrefix+suffix)
	}
	sort.Strings(names)
	return names
}

// ApplyEnv applies environment overrides to cfg. lookup is usually
// os.LookupEnv. Empty values are ignored.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	for _, name := range EnvVars() {
		value, ok := lookup(name)
		if !ok || value == "" {
			continue
		}
		if err := applyEnvValue(cfg, envMappings[name[len(EnvPrefix):]], name, value); err != nil {
			return err
		}
	}
	return nil
}

func applyEnvValue(cfg *Config, m envMapping, name, value string) error {
	switch m.typ {
	case envTypeString:
		*stringField(cfg, m.field) = value
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s=%q (expected true/false/1/0)", ErrInvalidEnv, name, value)
		}
		*boolField(cfg, m.field) = b
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s=%q (expected an integer)", ErrInvalidEnv, name, value)
		}
		*intField(cfg, m.field) = i
	}
	return nil
}

func stringField(cfg *Config, field string) *string {
	switch field {
	case "editor.theme":
		return &cfg.Editor.Theme
	case "gutter.mode":
		return &cfg.Gutter.Mode
	case "logging.level":
		return &cfg.Logging.Level
	}
	panic("config: unknown string field " + field)
}

func intField(cfg *Config, field string) *int {
	switch field {
	case "editor.font_size":
		return &cfg.Editor.FontSize
	case "editor.tab_width":
		return &cfg.Editor.TabWidth
	case "gutter.margin":
		return &cfg.Gutter.Margin
	}
	panic("config: unknown int field " + field)
}

func boolField(cfg *Config, field string) *bool {
	switch field {
	case "gutter.recheck_on_full_update":
		return &cfg.Gutter.RecheckOnFullUpdate
	}
	panic("config: unknown bool field " + field)
}
