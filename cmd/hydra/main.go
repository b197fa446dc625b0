// Command hydra starts the engine and polls window events until the window
// is closed. It is configured through HYDRA_* environment variables or a
// .env file in the working directory.
package main

import (
	"runtime"
	"unsafe"

	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"

	"github.com/hydra-engine/hydra/config"
	"github.com/hydra-engine/hydra/engine"
	"github.com/hydra-engine/hydra/gpu"
	"github.com/hydra-engine/hydra/gpu/vkng"
	"github.com/hydra-engine/hydra/window"
	"github.com/hydra-engine/hydra/window/glfwwindow"
	"github.com/hydra-engine/hydra/window/sdlwindow"
)

func init() {
	// Window libraries and the event loop must stay on the main thread.
	runtime.LockOSThread()
}

func newSystem(backend string) window.System {
	if backend == config.BackendGLFW {
		return glfwwindow.NewSystem()
	}
	return sdlwindow.NewSystem()
}

func newLogger(cfg config.Config) *logrus.Logger {
	log := logrus.New()
	log.SetLevel(cfg.Level())
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return log
}

func startProfile(mode string) interface{ Stop() } {
	switch mode {
	case "cpu":
		return profile.Start(profile.CPUProfile, profile.ProfilePath("."))
	case "mem":
		return profile.Start(profile.MemProfile, profile.ProfilePath("."))
	}
	return nil
}

func run(cfg config.Config, log *logrus.Logger) error {
	if p := startProfile(cfg.Profile); p != nil {
		defer p.Stop()
	}

	open := func(procAddr unsafe.Pointer) (gpu.Driver, error) {
		driver, err := vkng.Open(procAddr, log)
		if err != nil {
			return nil, err
		}
		return driver, nil
	}

	app := engine.New(cfg.Settings(), newSystem(cfg.Window.Backend), open, log)
	if err := app.Startup(); err != nil {
		return err
	}
	defer app.Shutdown()

	return app.Run()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("%+v\n", err)
	}

	log := newLogger(cfg)
	log.WithFields(logrus.Fields{
		"backend": cfg.Window.Backend,
		"variant": cfg.Device.Variant,
	}).Debug("Configuration loaded")

	if err := run(cfg, log); err != nil {
		log.Fatalf("%+v\n", err)
	}
}
