package vesc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParser(t *testing.T) {
	rpm1 := RawMessage(SetRpm, 1)
	duty := RawMessage(SetDutyCycle, 50000)

	testCases := []struct {
		name     string
		stream   string
		messages []Message
		errs     []error
	}{
		{
			name:     "single frame",
			stream:   "02050800000001120c03",
			messages: []Message{rpm1},
		},
		{
			name:     "leading garbage",
			stream:   "ff0003" + "02050800000001120c03",
			messages: []Message{rpm1},
		},
		{
			name:     "repeated start byte",
			stream:   "0202" + "02050800000001120c03",
			messages: []Message{rpm1},
		},
		{
			name:     "back to back",
			stream:   "02050800000001120c03" + "0205050000c3503aa503",
			messages: []Message{rpm1, duty},
		},
		{
			name:     "corrupt frame skipped",
			stream:   "02050800000001120d03" + "0205050000c3503aa503",
			messages: []Message{duty},
			errs:     []error{ErrChecksumMismatch},
		},
		{
			name:     "truncated frame",
			stream:   "020508" + "02050800000001120c03",
			messages: []Message{rpm1},
			errs:     []error{ErrMalformedFrame},
		},
		{
			name:     "truncated frame ending with start byte",
			stream:   "0205080000000102" + "02050800000001120c03",
			messages: []Message{rpm1},
			errs:     []error{ErrMalformedFrame},
		},
		{
			name:     "bad terminator",
			stream:   "02050800000001120c00" + "02050800000001120c03",
			messages: []Message{rpm1},
			errs:     []error{ErrMalformedFrame},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var p Parser
			var msgs []Message
			var errs []error
			for _, pr := range p.Write(mustHex(t, tc.stream)) {
				if pr.Message != nil {
					msgs = append(msgs, *pr.Message)
				}
				if pr.Err != nil {
					errs = append(errs, pr.Err)
				}
			}
			require.Equal(t, tc.messages, msgs)
			require.Len(t, errs, len(tc.errs))
			for n, err := range tc.errs {
				require.ErrorIs(t, errs[n], err)
			}
			require.False(t, p.Receiving())
		})
	}
}

func TestParserReset(t *testing.T) {
	var p Parser
	require.Empty(t, p.Write(mustHex(t, "020508")))
	require.True(t, p.Receiving())
	p.Reset()
	require.False(t, p.Receiving())
	results := p.Write(mustHex(t, "02050800000002226f03"))
	require.Len(t, results, 1)
	require.Equal(t, int32(2), results[0].Message.Payload())
}
