// Command hydrainfo lists the physical devices the driver reports and
// whether each one satisfies the configured bootstrap variant.
package main

import (
	"fmt"
	"os"
	"runtime"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"

	"github.com/hydra-engine/hydra/config"
	"github.com/hydra-engine/hydra/gpu"
	"github.com/hydra-engine/hydra/gpu/vkng"
	"github.com/hydra-engine/hydra/window"
	"github.com/hydra-engine/hydra/window/glfwwindow"
	"github.com/hydra-engine/hydra/window/sdlwindow"
)

func init() {
	runtime.LockOSThread()
}

func newSystem(backend string) window.System {
	if backend == config.BackendGLFW {
		return glfwwindow.NewSystem()
	}
	return sdlwindow.NewSystem()
}

func survey(cfg config.Config, log logrus.FieldLogger) ([]gpu.DeviceReport, error) {
	settings := cfg.Settings()
	settings.Window.Hidden = true

	system := newSystem(cfg.Window.Backend)
	if err := system.Init(); err != nil {
		return nil, errors.Wrap(err, "initialize window library")
	}
	defer system.Terminate()

	win, err := system.CreateWindow(settings.Window)
	if err != nil {
		return nil, errors.Wrap(err, "create window")
	}
	defer win.Destroy()

	driver, err := vkng.Open(system.InstanceProcAddr(), log)
	if err != nil {
		return nil, err
	}

	instance, err := driver.CreateInstance(gpu.InstanceCreateInfo{
		Application: settings.Application,
		Extensions:  win.RequiredExtensions(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "create instance")
	}
	defer instance.Destroy()

	var surface gpu.Surface
	if settings.Capabilities.Surface {
		if surface, err = win.CreateSurface(instance); err != nil {
			return nil, errors.Wrap(err, "create surface")
		}
		defer surface.Destroy()
	}

	return gpu.Survey(instance, surface, settings.Capabilities.Requirements)
}

func printReports(reports []gpu.DeviceReport) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tNAME\tTYPE\tVENDOR\tDEVICE\tFEATURES\tSUITABLE")
	for _, r := range reports {
		status := "yes"
		if !r.Suitable {
			status = "no: " + r.Reason
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%#04x\t%#04x\t%v\t%s\n",
			r.Index, r.Properties.Name, r.Properties.Type,
			r.Properties.VendorID, r.Properties.DeviceID,
			r.Features.Enabled(), status)
	}
	return w.Flush()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("%+v\n", err)
	}

	log := logrus.New()
	log.SetLevel(cfg.Level())

	reports, err := survey(cfg, log)
	if err != nil {
		log.Fatalf("%+v\n", err)
	}
	if len(reports) == 0 {
		log.Fatal(gpu.ErrNoDevices)
	}

	log.WithFields(logrus.Fields{
		"variant":    cfg.Device.Variant,
		"extensions": cfg.Capabilities().Requirements.Extensions,
	}).Infof("Checked %d physical devices", len(reports))

	if err := printReports(reports); err != nil {
		log.Fatalf("%+v\n", err)
	}
}
