package buddy

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Report_Table(t *testing.T) {
	a := newTestAllocator(t, 1024)
	_, err := a.AllocString("hello")
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, a.Report(&out, nil))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 1+1+11+1+1)
	assert.Equal(t, "--- memory ---", lines[0])
	assert.Equal(t, "n  | true size    | free   | used", lines[1])
	assert.Equal(t, " 0 |            1 |      0 |      0", lines[2])
	assert.Equal(t, " 5 |           32 |      1 |      1", lines[7])
	assert.Equal(t, "10 |         1024 |      0 |      0", lines[12])
	assert.Equal(t, "--- used ---", lines[13])
	assert.Equal(t, " 5: hello", lines[14])
}

func Test_Report_PayloadModes(t *testing.T) {
	a := newTestAllocator(t, 1024)
	_, err := a.AllocString("tagged")
	require.NoError(t, err)
	_, p, err := a.Alloc(4)
	require.NoError(t, err)
	copy(p, []byte{0xde, 0xad, 0xbe, 0xef})

	tests := []struct {
		name        string
		opts        *ReportOptions
		wantContain []string
		wantMissing []string
	}{
		{
			name:        "text",
			opts:        &ReportOptions{Payloads: PayloadText},
			wantContain: []string{" 5: tagged", " 5: <8 bytes>"},
		},
		{
			name:        "none",
			opts:        &ReportOptions{Payloads: PayloadNone},
			wantMissing: []string{"--- used ---", "tagged"},
		},
		{
			name:        "hex",
			opts:        &ReportOptions{Payloads: PayloadHex, HexBytes: 4},
			wantContain: []string{" 5: 74616767", " 5: deadbeef"},
			wantMissing: []string{"tagged"},
		},
		{
			name:        "hex default length",
			opts:        &ReportOptions{Payloads: PayloadHex},
			wantContain: []string{" 5: 7461676765640000"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, a.Report(&out, tt.opts))
			for _, s := range tt.wantContain {
				assert.Contains(t, out.String(), s)
			}
			for _, s := range tt.wantMissing {
				assert.NotContains(t, out.String(), s)
			}
		})
	}
}

func Test_Report_DoesNotMutate(t *testing.T) {
	a := newTestAllocator(t, 2048)
	_, err := a.AllocString("x")
	require.NoError(t, err)
	before := a.Stats()

	require.NoError(t, a.Report(&bytes.Buffer{}, nil))
	assert.Equal(t, before, a.Stats())
	require.NoError(t, a.Verify())
}

func Test_RenderText(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"plain", []byte("abc\x00junk"), "abc"},
		{"no terminator", []byte("abc"), "abc"},
		{"utf8", []byte("café\x00"), "café"},
		{"windows-1252", []byte{'c', 'a', 'f', 0xe9, 0}, "café"},
		{"control", []byte("a\tb\x00"), `"a\tb"`},
		{"empty", []byte{0}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, renderText(tt.in))
		})
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func Test_Report_WriteError(t *testing.T) {
	a := newTestAllocator(t, 1<<16)
	for range 200 {
		_, err := a.AllocString("payload")
		require.NoError(t, err)
	}
	require.Error(t, a.Report(failWriter{}, nil))
}
