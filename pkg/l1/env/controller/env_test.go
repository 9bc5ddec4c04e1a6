package controller

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/vescdrive/pkg/l1"
)

func TestNewEnv(t *testing.T) {
	ref := l1.ControllerRef{Type: "vesc-drive", ID: "test"}
	testCases := []struct {
		name string
		conf Config
		err  error
		urls []string
	}{
		{
			name: "missing id",
			conf: Config{Info: l1.ControllerInfo{Ref: l1.ControllerRef{Type: "vesc-drive"}}, MQTTBrokerURL: DefaultBrokerURL},
			err:  ErrInvalidRef,
		},
		{
			name: "no registry",
			conf: Config{Info: l1.ControllerInfo{Ref: ref}},
			err:  ErrNoRegistrar,
		},
		{
			name: "mqtt",
			conf: Config{Info: l1.ControllerInfo{Ref: ref}, MQTTBrokerURL: "mqtt://broker:1883/vesc/"},
			urls: []string{"mqtt://broker:1883/vesc/"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e, err := tc.conf.NewEnv()
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.urls, e.RegistryURLs)
			require.Len(t, e.Registrar.Registrars, 1)
		})
	}
}

func TestSetControllerType(t *testing.T) {
	saved := defaultConfig
	defer func() { defaultConfig = saved }()

	SetControllerType("vesc-drive", l1.ControllerMeta{Description: "VESC Drive"})
	conf := NewConfig()
	require.Equal(t, "vesc-drive", conf.Info.Ref.Type)
	require.Equal(t, "VESC Drive", conf.Info.Meta.Description)

	// NewConfig returns a copy.
	conf.Info.Ref.Type = "other"
	require.Equal(t, "vesc-drive", Default().Info.Ref.Type)
}
