package main

import (
	"context"
	"flag"
	"os"
	"reflect"
	"strings"

	"github.com/golang/glog"

	fx "github.com/robotalks/vescdrive/pkg/framework"
	"github.com/robotalks/vescdrive/pkg/l1/comm/mqtt"
	ctlenv "github.com/robotalks/vescdrive/pkg/l1/env/controller"
	"github.com/robotalks/vescdrive/pkg/l1/msgs"

	_ "github.com/robotalks/vescdrive/pkg/drive/msgs"
)

var (
	mqttURL = ctlenv.DefaultBrokerURL
)

func init() {
	if val := os.Getenv("VESC_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
}

func printMessage(topic string, payload []byte) {
	if strings.HasSuffix(topic, "/meta") {
		glog.Infof("%s: %s", topic, string(payload))
		return
	}
	typed, err := msgs.DecodeTyped(payload)
	if err != nil {
		glog.Warningf("%s: bad message: %v", topic, err)
		return
	}
	msg, err := typed.Decode()
	if err != nil {
		glog.Warningf("%s: decode error: (type_id=%x) %v", topic, typed.TypeId, err)
		return
	}
	glog.Infof("%s: #%d [%s] %s", topic, typed.Sequence,
		reflect.Indirect(reflect.ValueOf(msg)).Type().Name(),
		msg.(msgs.SerializableMessage).Serializable().String())
}

func main() {
	flag.Parse()
	defer glog.Flush()

	q, err := mqtt.NewQueueFromURL(mqttURL)
	if err != nil {
		glog.Exit(err)
	}
	q.Sub("#", mqtt.Handler(printMessage))
	if token := q.Connect(); token.Wait() && token.Error() != nil {
		glog.Exit(token.Error())
	}
	err = fx.NewRunner().HandleSignals().Go(fx.RunFunc(func(ctx context.Context) error {
		<-ctx.Done()
		return q.Close()
	})).Wait()
	if err != nil {
		glog.Error(err)
	}
}
