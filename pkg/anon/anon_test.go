package anon_test

import (
	"testing"

	"github.com/julianneswinoga/tracex-parser/internal/trxtest"
	"github.com/julianneswinoga/tracex-parser/pkg/anon"
	"github.com/julianneswinoga/tracex-parser/pkg/encoding"
	"github.com/stretchr/testify/require"
)

func TestBytes(t *testing.T) {
	keep := []string{"System Timer Thread"}
	tests := []struct {
		name string
		s    []byte
		want string
	}{
		{
			name: "kept",
			s:    []byte("System Timer Thread"),
			want: "System Timer Thread",
		},

		{
			name: "kept prefix only",
			s:    []byte("System Timer Thread 2"),
			want: "Xxxxxx Xxxxx Xxxxxx 2",
		},

		{
			name: "digits and punctuation",
			s:    []byte("uart_rx-3"),
			want: "xxxx_xx-3",
		},

		{
			name: "empty",
			s:    []byte{},
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			anon.Bytes(tt.s, keep)
			if got := string(tt.s); got != tt.want {
				t.Errorf("got=%q want=%q", got, tt.want)
			}
		})
	}
}

func TestRegistry(t *testing.T) {
	reg := encoding.Registry{
		0x10: trxtest.Thread(0x10, "System Timer Thread"),
		0x20: trxtest.Thread(0x20, "Modem Worker"),
		0x30: trxtest.Object(encoding.ObjectSemaphore, 0x30, "txBufferLock"),
	}
	anon.Registry(reg)
	require.Equal(t, "System Timer Thread", string(reg[0x10].Name))
	require.Equal(t, "Xxxxx Xxxxxx", string(reg[0x20].Name))
	require.Equal(t, "xxXxxxxxXxxx", string(reg[0x30].Name))
}
