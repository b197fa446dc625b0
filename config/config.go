// Package config holds the engine configuration. Defaults can be
// overridden from the environment or from .env files.
package config

import (
	"slices"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gobuffalo/envy"
	"github.com/sirupsen/logrus"

	"github.com/hydra-engine/hydra/engine"
	"github.com/hydra-engine/hydra/gpu"
	"github.com/hydra-engine/hydra/window"
)

// Window backends.
const (
	BackendSDL  = "sdl"
	BackendGLFW = "glfw"
)

// Bootstrap variants.
const (
	VariantMinimal  = "minimal"
	VariantStandard = "standard"
)

// Config is the engine configuration.
type Config struct {
	Window WindowConfig
	App    AppConfig
	Device DeviceConfig

	// Validation enables the Khronos validation layer.
	Validation bool

	LogLevel string

	// Profile is "cpu", "mem" or empty.
	Profile string
}

// WindowConfig configures the window and the library that creates it.
type WindowConfig struct {
	Backend string
	Title   string
	Width   int
	Height  int
	Hidden  bool
}

// AppConfig is reported to the driver at instance creation.
type AppConfig struct {
	Name          string
	Version       gpu.Version
	EngineName    string
	EngineVersion gpu.Version
	APIVersion    gpu.Version
}

// DeviceConfig selects the bootstrap variant and adjusts its device
// requirements.
type DeviceConfig struct {
	Variant string

	// Extensions are required in addition to the variant's own.
	Extensions []string

	// RequireDiscrete overrides the variant when set.
	RequireDiscrete *bool
}

// Default returns a 1280x768 SDL window titled "Hydra Engine" running the
// standard variant.
func Default() Config {
	settings := engine.DefaultSettings()
	app := settings.Application
	return Config{
		Window: WindowConfig{
			Backend: BackendSDL,
			Title:   settings.Window.Title,
			Width:   settings.Window.Width,
			Height:  settings.Window.Height,
		},
		App: AppConfig{
			Name:          app.ApplicationName,
			Version:       app.ApplicationVersion,
			EngineName:    app.EngineName,
			EngineVersion: app.EngineVersion,
			APIVersion:    app.APIVersion,
		},
		Device: DeviceConfig{
			Variant: VariantStandard,
		},
		LogLevel: logrus.InfoLevel.String(),
	}
}

// Load reads the given .env files, if any, and applies HYDRA_* overrides
// from the environment on top of Default.
func Load(files ...string) (Config, error) {
	if len(files) > 0 {
		if err := envy.Load(files...); err != nil {
			return Config{}, errors.Wrap(err, "load env files")
		}
	}

	cfg := Default()
	if err := cfg.override(); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) override() error {
	var err error

	c.Window.Backend = envy.Get("HYDRA_WINDOW_BACKEND", c.Window.Backend)
	c.Window.Title = envy.Get("HYDRA_WINDOW_TITLE", c.Window.Title)
	if c.Window.Width, err = envInt("HYDRA_WINDOW_WIDTH", c.Window.Width); err != nil {
		return err
	}
	if c.Window.Height, err = envInt("HYDRA_WINDOW_HEIGHT", c.Window.Height); err != nil {
		return err
	}
	if c.Window.Hidden, err = envBool("HYDRA_WINDOW_HIDDEN", c.Window.Hidden); err != nil {
		return err
	}

	if v := envy.Get("HYDRA_API_VERSION", ""); v != "" {
		if c.App.APIVersion, err = parseVersion(v); err != nil {
			return errors.Wrap(err, "HYDRA_API_VERSION")
		}
	}

	c.Device.Variant = envy.Get("HYDRA_VARIANT", c.Device.Variant)
	if v := envy.Get("HYDRA_DEVICE_EXTENSIONS", ""); v != "" {
		for _, ext := range strings.Split(v, ",") {
			if ext = strings.TrimSpace(ext); ext != "" {
				c.Device.Extensions = append(c.Device.Extensions, ext)
			}
		}
	}
	if c.Device.RequireDiscrete, err = envOptionalBool("HYDRA_REQUIRE_DISCRETE"); err != nil {
		return err
	}

	if c.Validation, err = envBool("HYDRA_VALIDATION", c.Validation); err != nil {
		return err
	}
	c.LogLevel = envy.Get("HYDRA_LOG_LEVEL", c.LogLevel)
	c.Profile = envy.Get("HYDRA_PROFILE", c.Profile)

	return nil
}

func envInt(key string, def int) (int, error) {
	v := envy.Get(key, "")
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, errors.Wrapf(err, "%s=%q", key, v)
	}
	return n, nil
}

func envBool(key string, def bool) (bool, error) {
	b, err := envOptionalBool(key)
	if err != nil || b == nil {
		return def, err
	}
	return *b, nil
}

// envOptionalBool returns nil when key is unset or empty.
func envOptionalBool(key string) (*bool, error) {
	v := envy.Get(key, "")
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, errors.Wrapf(err, "%s=%q", key, v)
	}
	return &b, nil
}

func parseVersion(s string) (gpu.Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) < 2 || len(parts) > 3 {
		return gpu.Version{}, errors.Newf("version %q is not major.minor[.patch]", s)
	}

	var nums [3]uint32
	for i, part := range parts {
		n, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return gpu.Version{}, errors.Wrapf(err, "version %q", s)
		}
		nums[i] = uint32(n)
	}
	return gpu.Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.Window.Backend {
	case BackendSDL, BackendGLFW:
	default:
		return errors.Newf("unknown window backend %q", c.Window.Backend)
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.Newf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}

	switch c.Device.Variant {
	case VariantMinimal, VariantStandard:
	default:
		return errors.Newf("unknown variant %q", c.Device.Variant)
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "log level")
	}

	switch c.Profile {
	case "", "cpu", "mem":
	default:
		return errors.Newf("unknown profile %q", c.Profile)
	}

	return nil
}

// Level returns the configured log level, falling back to info.
func (c Config) Level() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// Capabilities maps the variant and its overrides to engine capabilities.
func (c Config) Capabilities() engine.Capabilities {
	caps := engine.StandardCapabilities()
	if c.Device.Variant == VariantMinimal {
		caps = engine.MinimalCapabilities()
	}

	req := &caps.Requirements
	for _, ext := range c.Device.Extensions {
		if !slices.Contains(req.Extensions, ext) {
			req.Extensions = append(req.Extensions, ext)
		}
	}
	if c.Device.RequireDiscrete != nil {
		req.RequireDiscrete = *c.Device.RequireDiscrete
	}
	return caps
}

// Settings returns the engine settings described by c.
func (c Config) Settings() engine.Settings {
	return engine.Settings{
		Window: window.Options{
			Title:  c.Window.Title,
			Width:  c.Window.Width,
			Height: c.Window.Height,
			Hidden: c.Window.Hidden,
		},
		Application: gpu.ApplicationInfo{
			ApplicationName:    c.App.Name,
			ApplicationVersion: c.App.Version,
			EngineName:         c.App.EngineName,
			EngineVersion:      c.App.EngineVersion,
			APIVersion:         c.App.APIVersion,
		},
		Capabilities: c.Capabilities(),
		Validation:   c.Validation,
	}
}
