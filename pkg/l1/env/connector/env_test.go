package connector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/vescdrive/pkg/l1"
	"github.com/robotalks/vescdrive/pkg/l1/comm/mqtt"
	ctlenv "github.com/robotalks/vescdrive/pkg/l1/env/controller"
)

func TestNewConnector(t *testing.T) {
	conf := &Config{RegistryURL: "mqtt://broker:1883/vesc/"}
	conn, err := conf.NewConnector()
	require.NoError(t, err)
	require.IsType(t, &mqtt.Connector{}, conn)

	conf.RegistryURL = "ws://broker/vesc"
	_, err = conf.NewConnector()
	require.ErrorIs(t, err, ErrUnknownScheme)
}

func TestConnectRequiresRef(t *testing.T) {
	conf := &Config{Ref: l1.ControllerRef{Type: "vesc-drive"}, RegistryURL: ctlenv.DefaultBrokerURL}
	_, err := conf.Connect(context.Background())
	require.ErrorIs(t, err, ctlenv.ErrInvalidRef)
}
