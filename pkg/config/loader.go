package config

import (
	"os"
	"strings"

	"github.com/arthur-debert/docforge/pkg/errors"
	"github.com/arthur-debert/docforge/pkg/logging"
	"github.com/arthur-debert/docforge/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix starts every configuration environment variable. Nesting uses a
// double underscore: DOCFORGE_PDF__PANDOC sets pdf.pandoc.
const EnvPrefix = "DOCFORGE_"

// LoadOptions selects the configuration layers.
type LoadOptions struct {
	// ProjectDir is searched for docforge.toml / .docforge.toml; "" skips it.
	ProjectDir string
	// UserConfigPath overrides the XDG user config location.
	UserConfigPath string
	// SkipEnv ignores environment variables.
	SkipEnv bool
}

// Load builds the configuration from all layers.
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")

	// 1. Embedded defaults
	base, err := parseTOML(&rawBytesProvider{bytes: defaultConfig})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User config
	userPath := opts.UserConfigPath
	if userPath == "" {
		userPath = paths.New().UserConfigPath()
	}
	if err := mergeFile(base, userPath); err != nil {
		return nil, err
	}

	// 3. Project config
	if opts.ProjectDir != "" {
		if projectPath := paths.FindProjectConfig(opts.ProjectDir); projectPath != "" {
			if err := mergeFile(base, projectPath); err != nil {
				return nil, err
			}
			logger.Debug().Str("path", projectPath).Msg("Loaded project config")
		}
	}

	// 4. Environment
	if !opts.SkipEnv {
		tempK := koanf.New(".")
		if err := tempK.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
		}
		// env values replace lists rather than accumulate
		overrideMaps(base, tempK.Raw())
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(base, "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load merged config")
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	return &cfg, nil
}

// Default returns the embedded defaults alone.
func Default() *Config {
	cfg, err := Load(LoadOptions{UserConfigPath: os.DevNull, SkipEnv: true})
	if err != nil {
		// The embedded file is covered by tests; reaching this is a build defect.
		panic(err)
	}
	return cfg
}

// envKey maps DOCFORGE_VIEWER__DEBOUNCE to viewer.debounce. Variables
// without a double underscore are not configuration and are skipped.
func envKey(s string) string {
	key := strings.TrimPrefix(s, EnvPrefix)
	if !strings.Contains(key, "__") {
		return ""
	}
	return strings.ReplaceAll(strings.ToLower(key), "__", ".")
}

func parseTOML(p koanf.Provider) (map[string]interface{}, error) {
	k := koanf.New(".")
	if err := k.Load(p, toml.Parser()); err != nil {
		return nil, err
	}
	return k.Raw(), nil
}

func mergeFile(dest map[string]interface{}, path string) error {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() || info.Size() == 0 {
		return nil
	}
	src, err := parseTOML(file.Provider(path))
	if err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
			WithDetail("path", path)
	}
	mergeMaps(dest, src)
	return nil
}

// mergeMaps merges src into dest: maps recursively, slices appended,
// everything else overwritten.
func mergeMaps(dest, src map[string]interface{}) {
	for key, srcVal := range src {
		destVal, destOk := dest[key]
		if !destOk {
			dest[key] = srcVal
			continue
		}

		if srcMap, srcOk := srcVal.(map[string]interface{}); srcOk {
			if destMap, destOk := destVal.(map[string]interface{}); destOk {
				mergeMaps(destMap, srcMap)
				continue
			}
		}

		if isSlice(srcVal) && isSlice(destVal) {
			dest[key] = appendSlices(destVal, srcVal)
			continue
		}

		dest[key] = srcVal
	}
}

// overrideMaps merges src into dest recursively, overwriting leaves.
func overrideMaps(dest, src map[string]interface{}) {
	for key, srcVal := range src {
		if srcMap, ok := srcVal.(map[string]interface{}); ok {
			if destMap, ok := dest[key].(map[string]interface{}); ok {
				overrideMaps(destMap, srcMap)
				continue
			}
		}
		dest[key] = srcVal
	}
}

func isSlice(v interface{}) bool {
	switch v.(type) {
	case []interface{}, []string:
		return true
	default:
		return false
	}
}

func appendSlices(dest, src interface{}) interface{} {
	return append(toInterfaceSlice(dest), toInterfaceSlice(src)...)
}

func toInterfaceSlice(v interface{}) []interface{} {
	switch s := v.(type) {
	case []interface{}:
		out := make([]interface{}, len(s))
		copy(out, s)
		return out
	case []string:
		result := make([]interface{}, len(s))
		for i, v := range s {
			result[i] = v
		}
		return result
	default:
		return []interface{}{}
	}
}
