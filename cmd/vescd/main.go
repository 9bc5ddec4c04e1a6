package main

//go-build: CGO_ENABLED=0

import (
	"flag"

	"github.com/golang/glog"

	"github.com/robotalks/vescdrive/pkg/drive"
	fx "github.com/robotalks/vescdrive/pkg/framework"
	"github.com/robotalks/vescdrive/pkg/l1"
	env "github.com/robotalks/vescdrive/pkg/l1/env/controller"
)

func init() {
	env.SetControllerType("vesc-drive", l1.ControllerMeta{Description: "VESC Drive"})
	env.SetupFlags()
	drive.SetupFlags()
}

func main() {
	flag.Parse()
	defer glog.Flush()

	e := env.NewConfig().MustNewEnv()
	d, err := drive.NewOptions().NewDrive(e)
	if err != nil {
		glog.Exitf("drive setup: %v", err)
	}
	defer func() {
		if err := d.Close(); err != nil {
			glog.Errorf("drive close: %v", err)
		}
	}()

	loop := fx.NewLoop().Add(e, d)
	err = fx.NewRunner().HandleSignals().Go(fx.NamedRun("loop", fx.RunFunc(loop.Run))).Wait()
	if err != nil {
		glog.Errorf("loop stopped: %v", err)
	}
}
