package msgs

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/vescdrive/pkg/l1/msgs"
)

func TestDriveStatusOverTyped(t *testing.T) {
	status := &DriveStatus{
		Active:  true,
		Left:    1,
		Command: "rpm",
		Ticks:   10,
		Motors: []*MotorStatus{
			{MotorId: 63, Side: "left", Value: 2250},
			{MotorId: 74, Side: "right", Error: "bus off"},
		},
	}
	typed, err := msgs.TypedFrom(status)
	require.NoError(t, err)
	require.True(t, typed.IsCommand())
	require.Equal(t, msgs.TypeIDMaskReply, typed.TypeId&msgs.TypeIDMaskReply)
	decoded, err := typed.Decode()
	require.NoError(t, err)
	require.Equal(t, status, decoded)
}

func TestDriveFaultIsEvent(t *testing.T) {
	typed, err := msgs.TypedFrom(&DriveFault{Message: "bus off", MotorIds: []uint32{4, 87}})
	require.NoError(t, err)
	require.True(t, typed.IsEvent())
	decoded, err := typed.Decode()
	require.NoError(t, err)
	require.Equal(t, []uint32{4, 87}, decoded.(*DriveFault).MotorIds)
}
