package dom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIgnoreBlockModeText(t *testing.T) {
	tests := []struct {
		in      string
		want    IgnoreBlockMode
		wantErr bool
	}{
		{"legacy", IgnoreLegacy, false},
		{"", IgnoreLegacy, false},
		{"as-text", IgnoreAsText, false},
		{"AsText", IgnoreAsText, false},
		{" text ", IgnoreAsText, false},
		{"strip", IgnoreStrip, false},
		{"smarty", IgnoreLegacy, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var m IgnoreBlockMode
			err := m.UnmarshalText([]byte(tt.in))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, m)

			b, err := m.MarshalText()
			require.NoError(t, err)
			require.Equal(t, m.String(), string(b))
		})
	}

	_, err := IgnoreBlockMode(42).MarshalText()
	require.Error(t, err)
	require.Equal(t, "IgnoreBlockMode(42)", IgnoreBlockMode(42).String())
}

func TestDefaultOptions(t *testing.T) {
	a, b := DefaultOptions(), DefaultOptions()
	a.RawTextTags[0] = "changed"
	require.Equal(t, "script", b.RawTextTags[0], "every call returns fresh options")
	require.True(t, b.NormalizeLineEndings)
	require.Equal(t, map[string]bool{"script": true, "style": true, "textarea": true}, b.rawTextSet())
}
