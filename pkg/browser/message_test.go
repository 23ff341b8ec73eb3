package browser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/rttmlabel/pkg/browser"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		want    browser.Message
		wantErr error
		raw     string
	}{
		"folder selected": {
			raw:  `{"type":"folderSelected","dialogId":"rttm-browser","path":"/data/rttm"}`,
			want: browser.FolderSelected{DialogID: "rttm-browser", Path: "/data/rttm"},
		},
		"windows path": {
			raw:  `{"type":"folderSelected","dialogId":"audio-browser","path":"C:\\audio"}`,
			want: browser.FolderSelected{DialogID: "audio-browser", Path: `C:\audio`},
		},
		"dialog closed": {
			raw:  `{"type":"dialogClosed","dialogId":"audio-browser"}`,
			want: browser.DialogClosed{DialogID: "audio-browser"},
		},
		"unknown type": {
			raw:     `{"type":"folderDeleted","dialogId":"rttm-browser","path":"/x"}`,
			wantErr: browser.ErrInvalidMessage,
		},
		"unknown dialog": {
			raw:     `{"type":"folderSelected","dialogId":"file-browser","path":"/x"}`,
			wantErr: browser.ErrInvalidMessage,
		},
		"missing path": {
			raw:     `{"type":"folderSelected","dialogId":"rttm-browser"}`,
			wantErr: browser.ErrInvalidMessage,
		},
		"wrong field type": {
			raw:     `{"type":"folderSelected","dialogId":"rttm-browser","path":42}`,
			wantErr: browser.ErrInvalidMessage,
		},
		"not json": {
			raw:     `hello`,
			wantErr: browser.ErrInvalidMessage,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := browser.Decode([]byte(tc.raw))
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEncode(t *testing.T) {
	t.Parallel()

	b, err := browser.Encode(browser.FolderSelected{DialogID: "rttm-browser", Path: "/data"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"folderSelected","dialogId":"rttm-browser","path":"/data"}`, string(b))

	b, err = browser.Encode(browser.DialogClosed{DialogID: "audio-browser"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"dialogClosed","dialogId":"audio-browser"}`, string(b))

	_, err = browser.Encode(browser.FolderSelected{DialogID: "rttm-browser"})
	require.ErrorIs(t, err, browser.ErrInvalidMessage)

	require.ErrorIs(t, browser.Validate(nil), browser.ErrInvalidMessage)
}

func TestFolderSelectedKind(t *testing.T) {
	t.Parallel()

	msg := browser.FolderSelected{DialogID: "audio-browser", Path: "/a"}
	assert.Equal(t, browser.KindAudio, msg.Kind())
}
