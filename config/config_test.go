package config

import (
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/gobuffalo/envy"
	"github.com/sirupsen/logrus"

	"github.com/hydra-engine/hydra/engine"
	"github.com/hydra-engine/hydra/gpu"
)

func TestDefault(t *testing.T) {
	c := qt.New(t)

	cfg := Default()
	c.Assert(cfg.Validate(), qt.IsNil)
	c.Assert(cfg.Window.Backend, qt.Equals, BackendSDL)
	c.Assert(cfg.Window.Title, qt.Equals, "Hydra Engine")
	c.Assert(cfg.Window.Width, qt.Equals, 1280)
	c.Assert(cfg.Window.Height, qt.Equals, 768)
	c.Assert(cfg.App.APIVersion, qt.Equals, gpu.Version{Major: 1})
	c.Assert(cfg.Level(), qt.Equals, logrus.InfoLevel)

	caps := cfg.Capabilities()
	c.Assert(caps.Surface, qt.IsTrue)
	c.Assert(caps.LogicalDevice, qt.IsTrue)
	c.Assert(caps.Requirements.Extensions, qt.DeepEquals, []string{engine.SwapchainExtension})
}

func TestLoadOverrides(t *testing.T) {
	envy.Temp(func() {
		c := qt.New(t)

		envy.Set("HYDRA_WINDOW_BACKEND", "glfw")
		envy.Set("HYDRA_WINDOW_WIDTH", "800")
		envy.Set("HYDRA_WINDOW_HEIGHT", "600")
		envy.Set("HYDRA_WINDOW_HIDDEN", "true")
		envy.Set("HYDRA_API_VERSION", "1.2")
		envy.Set("HYDRA_VARIANT", "minimal")
		envy.Set("HYDRA_DEVICE_EXTENSIONS", "VK_EXT_a, VK_EXT_b,,")
		envy.Set("HYDRA_REQUIRE_DISCRETE", "false")
		envy.Set("HYDRA_VALIDATION", "1")
		envy.Set("HYDRA_LOG_LEVEL", "debug")
		envy.Set("HYDRA_PROFILE", "cpu")

		cfg, err := Load()
		c.Assert(err, qt.IsNil)
		c.Assert(cfg.Window, qt.DeepEquals, WindowConfig{
			Backend: BackendGLFW,
			Title:   "Hydra Engine",
			Width:   800,
			Height:  600,
			Hidden:  true,
		})
		c.Assert(cfg.App.APIVersion, qt.Equals, gpu.Version{Major: 1, Minor: 2})
		c.Assert(cfg.Validation, qt.IsTrue)
		c.Assert(cfg.Level(), qt.Equals, logrus.DebugLevel)
		c.Assert(cfg.Profile, qt.Equals, "cpu")

		caps := cfg.Capabilities()
		c.Assert(caps.Surface, qt.IsFalse)
		c.Assert(caps.LogicalDevice, qt.IsFalse)
		c.Assert(caps.Requirements.Extensions, qt.DeepEquals, []string{"VK_EXT_a", "VK_EXT_b"})
		c.Assert(caps.Requirements.RequireDiscrete, qt.IsFalse)
		c.Assert(caps.Requirements.Features.GeometryShader, qt.IsTrue)

		settings := cfg.Settings()
		c.Assert(settings.Window.Hidden, qt.IsTrue)
		c.Assert(settings.Validation, qt.IsTrue)
		c.Assert(settings.Application.APIVersion, qt.Equals, gpu.Version{Major: 1, Minor: 2})
	})
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		key, value string
		err        string
	}{
		{"HYDRA_WINDOW_WIDTH", "wide", `HYDRA_WINDOW_WIDTH="wide": .*`},
		{"HYDRA_WINDOW_HEIGHT", "0", `invalid window size 1280x0`},
		{"HYDRA_WINDOW_BACKEND", "x11", `unknown window backend "x11"`},
		{"HYDRA_VARIANT", "fancy", `unknown variant "fancy"`},
		{"HYDRA_REQUIRE_DISCRETE", "maybe", `HYDRA_REQUIRE_DISCRETE="maybe": .*`},
		{"HYDRA_API_VERSION", "1", `HYDRA_API_VERSION: version "1" is not major.minor\[.patch\]`},
		{"HYDRA_LOG_LEVEL", "loud", `log level: .*`},
		{"HYDRA_PROFILE", "block", `unknown profile "block"`},
	}

	for _, test := range tests {
		t.Run(test.key, func(t *testing.T) {
			envy.Temp(func() {
				c := qt.New(t)
				envy.Set(test.key, test.value)
				_, err := Load()
				c.Assert(err, qt.ErrorMatches, test.err)
			})
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	c := qt.New(t)

	// Restores the process environment that loading the file modifies.
	t.Setenv("HYDRA_WINDOW_TITLE", "")
	t.Setenv("HYDRA_VARIANT", "")

	path := filepath.Join(c.TempDir(), "hydra.env")
	err := os.WriteFile(path, []byte("HYDRA_WINDOW_TITLE=From File\nHYDRA_VARIANT=minimal\n"), 0o644)
	c.Assert(err, qt.IsNil)

	envy.Temp(func() {
		cfg, err := Load(path)
		c.Assert(err, qt.IsNil)
		c.Assert(cfg.Window.Title, qt.Equals, "From File")
		c.Assert(cfg.Device.Variant, qt.Equals, VariantMinimal)
	})

	_, err = Load(filepath.Join(c.TempDir(), "missing.env"))
	c.Assert(err, qt.ErrorMatches, `load env files: .*`)
}

func TestEnvOptionalBool(t *testing.T) {
	envy.Temp(func() {
		c := qt.New(t)

		b, err := envOptionalBool("HYDRA_TEST_FLAG")
		c.Assert(err, qt.IsNil)
		c.Assert(b, qt.IsNil)

		envy.Set("HYDRA_TEST_FLAG", "false")
		b, err = envOptionalBool("HYDRA_TEST_FLAG")
		c.Assert(err, qt.IsNil)
		c.Assert(b, qt.Not(qt.IsNil))
		c.Assert(*b, qt.IsFalse)

		// Both helpers report a bad value the same way.
		envy.Set("HYDRA_TEST_FLAG", "maybe")
		_, err = envOptionalBool("HYDRA_TEST_FLAG")
		c.Assert(err, qt.ErrorMatches, `HYDRA_TEST_FLAG="maybe": .*`)
		_, err = envBool("HYDRA_TEST_FLAG", true)
		c.Assert(err, qt.ErrorMatches, `HYDRA_TEST_FLAG="maybe": .*`)
	})
}

func TestParseVersion(t *testing.T) {
	c := qt.New(t)

	v, err := parseVersion("1.3.7")
	c.Assert(err, qt.IsNil)
	c.Assert(v, qt.Equals, gpu.Version{Major: 1, Minor: 3, Patch: 7})
	c.Assert(v.String(), qt.Equals, "1.3.7")

	_, err = parseVersion("1.x")
	c.Assert(err, qt.ErrorMatches, `version "1.x": .*`)
}
