package x11

import (
	"encoding/binary"
	"testing"

	"github.com/jezek/xgb/xproto"
)

func TestParseClassProperty(t *testing.T) {
	tests := []struct {
		name         string
		data         []byte
		wantInstance string
		wantClass    string
	}{
		{
			name:         "instance and class",
			data:         []byte("Navigator\x00Firefox\x00"),
			wantInstance: "Navigator",
			wantClass:    "Firefox",
		},
		{
			name:         "instance only",
			data:         []byte("xterm\x00"),
			wantInstance: "xterm",
			wantClass:    "",
		},
		{
			name:         "empty property",
			data:         nil,
			wantInstance: "",
			wantClass:    "",
		},
		{
			name:         "missing trailing NUL",
			data:         []byte("mpv\x00mpv"),
			wantInstance: "mpv",
			wantClass:    "mpv",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			instance, class := parseClassProperty(tt.data)
			if instance != tt.wantInstance || class != tt.wantClass {
				t.Errorf("parseClassProperty() = (%q, %q), want (%q, %q)",
					instance, class, tt.wantInstance, tt.wantClass)
			}
		})
	}
}

func atomBytes(atoms ...xproto.Atom) []byte {
	data := make([]byte, 4*len(atoms))
	for i, a := range atoms {
		binary.LittleEndian.PutUint32(data[i*4:], uint32(a))
	}
	return data
}

func TestContainsAtom(t *testing.T) {
	const fullscreen = xproto.Atom(321)

	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{
			name: "present among others",
			data: atomBytes(100, fullscreen, 200),
			want: true,
		},
		{
			name: "absent",
			data: atomBytes(100, 200),
			want: false,
		},
		{
			name: "empty state list",
			data: nil,
			want: false,
		},
		{
			name: "truncated trailing entry is ignored",
			data: append(atomBytes(100), 0x41),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := containsAtom(tt.data, fullscreen); got != tt.want {
				t.Errorf("containsAtom() = %v, want %v", got, tt.want)
			}
		})
	}
}
