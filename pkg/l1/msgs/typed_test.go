package msgs

import (
	"testing"

	"github.com/stretchr/testify/require"

	fx "github.com/robotalks/vescdrive/pkg/framework"
)

type plainMsg struct{}

func (m *plainMsg) NewMessage() fx.Message { return &plainMsg{} }

func TestTypedRoundTrip(t *testing.T) {
	typed, err := TypedFrom(NewCommandErrFromMsg("bus off"))
	require.NoError(t, err)
	require.Equal(t, CommandErrTypeID, typed.TypeId)
	require.True(t, typed.IsCommand())
	typed.Sequence = 7

	data, err := typed.Encode()
	require.NoError(t, err)
	decoded, err := DecodeTyped(data)
	require.NoError(t, err)
	require.Equal(t, uint32(7), decoded.Sequence)

	msg, err := decoded.Decode()
	require.NoError(t, err)
	require.IsType(t, &CommandErr{}, msg)
	require.EqualError(t, msg.(*CommandErr), "bus off")
}

func TestTypedErrors(t *testing.T) {
	_, err := TypedFrom(&plainMsg{})
	require.ErrorIs(t, err, ErrNotSerializable)

	_, err = (&Typed{TypeId: GroupCustom | 0x7777}).Decode()
	var unknown *ErrUnknownType
	require.ErrorAs(t, err, &unknown)
	require.Equal(t, GroupCustom|0x7777, unknown.TypeID)

	require.True(t, (&Typed{TypeId: TypeIDKindEvent | GroupDrive}).IsEvent())
	require.Panics(t, func() { Register((*CommandOK)(nil)) })
}
