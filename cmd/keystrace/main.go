// keystrace is the host side of the keys event contract: it opens a keys
// session, polls the exposed descriptor and traces every translated key
// event. Doubles as a smoke test on real hardware.
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/daemon"
	"github.com/juju/errors"
	"github.com/mattn/go-isatty"
	"github.com/temoto/alive/v2"
	"github.com/webosce/nyx-modules-qemux86/hardware/input"
	"github.com/webosce/nyx-modules-qemux86/hardware/keys"
	"github.com/webosce/nyx-modules-qemux86/log2"
	"github.com/webosce/nyx-modules-qemux86/state"
)

var log = log2.NewStderr(log2.LDebug)

func main() {
	flagConfig := flag.String("config", "", "hcl config path, empty for none")
	flagDevice := flag.String("device", "", "input device path, overrides config")
	flagStatusSec := flag.Int("status-sec", 30, "idle status log period")
	flag.Parse()

	if sdnotify("start") {
		// under systemd, journal adds timestamps
		log.SetFlags(log2.LServiceFlags)
	} else if isatty.IsTerminal(os.Stderr.Fd()) {
		log.SetFlags(log2.LInteractiveFlags)
	} else {
		log.SetFlags(log2.LServiceFlags)
	}

	device := *flagDevice
	if *flagConfig != "" {
		config := state.MustReadConfig(log, &state.OsFullReader{}, *flagConfig)
		if device == "" && config.Hardware.Keys.Enable {
			device = config.Hardware.Keys.Device
		}
	}
	if device == "" {
		log.Infof("keystrace: no input device configured, will idle")
	}

	session, err := keys.Open(device, log)
	if err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
	defer session.Close()

	a := alive.NewAlive()
	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigch
		log.Infof("keystrace: signal %v, stopping", sig)
		a.Stop()
	}()

	d := input.NewDispatch(log, a.StopChan())
	d.SubscribeFunc("trace", func(e keys.KeyEvent) {
		log.Infof("%s", e.String())
	}, a.StopChan())
	go d.Run([]input.Source{input.NewKeysSource(session)})

	go statusLoop(session, time.Duration(*flagStatusSec)*time.Second, a.StopChan())

	sdnotify(daemon.SdNotifyReady)
	a.Wait()
}

func statusLoop(session *keys.Session, period time.Duration, stop <-chan struct{}) {
	if period <= 0 {
		return
	}
	t := time.NewTicker(period)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			log.Debugf("keystrace: status last-read=%v last-event=%v",
				session.SinceLastRead(), session.SinceLastEvent())
		case <-stop:
			return
		}
	}
}

func sdnotify(s string) bool {
	ok, err := daemon.SdNotify(false, s)
	if err != nil {
		log.Fatal("sdnotify: ", errors.ErrorStack(err))
	}
	return ok
}
