package labelapi_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/rttmlabel/pkg/browser"
	"github.com/macropower/rttmlabel/pkg/labelapi"
	"github.com/macropower/rttmlabel/pkg/labelapi/labelapitest"
	"github.com/macropower/rttmlabel/pkg/segment"
	"github.com/macropower/rttmlabel/pkg/tracing"
)

func TestNewClient(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		url     string
		want    string
		wantErr bool
	}{
		"default":        {url: "", want: labelapi.DefaultServer},
		"trailing slash": {url: "http://example.test:5000/", want: "http://example.test:5000"},
		"prefix":         {url: "http://example.test/labels/", want: "http://example.test/labels"},
		"relative":       {url: "example.test", wantErr: true},
		"bad":            {url: "http://[::1", wantErr: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			c, err := labelapi.NewClient(tc.url)
			if tc.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, c.BaseURL())
		})
	}
}

func TestDirectories(t *testing.T) {
	t.Parallel()

	b := labelapitest.New(t)
	c := b.Client(t)
	ctx := t.Context()

	require.NoError(t, c.SetDirectories(ctx, labelapitest.DefaultRTTMDir, "/empty"))

	rttm, audio := b.CurrentDirs()
	assert.Equal(t, labelapitest.DefaultRTTMDir, rttm)
	assert.Equal(t, "/empty", audio)

	list, err := c.RefreshFileList(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"interviews", "root"}, list.Categories)
	assert.Equal(t, []string{"interviews/int_01.rttm", "interviews/int_02.rttm", "meeting.rttm"}, list.RTTMFiles)
	assert.Equal(t, "/empty", list.CurrentAudioDir)

	err = c.SetDirectories(ctx, "/missing", "/empty")
	require.ErrorIs(t, err, labelapi.ErrServer)

	apiErr := &labelapi.APIError{}
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "RTTM directory not found: /missing", apiErr.Message)
	assert.Equal(t, "RTTM directory not found: /missing", labelapi.Message(err))
}

func TestUpdatePaths(t *testing.T) {
	t.Parallel()

	b := labelapitest.New(t)
	c := b.Client(t)
	ctx := t.Context()

	list, err := c.UpdatePaths(ctx, labelapitest.DefaultRTTMDir, labelapitest.DefaultAudioDir)
	require.NoError(t, err)
	assert.Len(t, list.RTTMFiles, 3)
	assert.Equal(t, []string{"interviews", "root"}, list.Categories)

	_, err = c.UpdatePaths(ctx, "/empty", labelapitest.DefaultAudioDir)
	require.ErrorIs(t, err, labelapi.ErrServer)
	assert.Equal(t, "No RTTM files found in /empty", labelapi.Message(err))
}

func TestFolders(t *testing.T) {
	t.Parallel()

	b := labelapitest.New(t)
	c := b.Client(t)
	ctx := t.Context()

	require.NoError(t, c.SetFolderPath(ctx, browser.KindAudio, "/data/audio"))
	assert.Equal(t, "/data/audio", b.Folder(browser.KindAudio))

	err := c.SetFolderPath(ctx, browser.KindRTTM, "")
	require.ErrorIs(t, err, labelapi.ErrUnsuccessful)

	files, err := c.ListFiles(ctx, browser.KindRTTM)
	require.NoError(t, err)
	assert.Equal(t, []string{"meeting.rttm"}, files)

	_, err = c.ListFiles(ctx, browser.Kind("video"))
	require.ErrorIs(t, err, labelapi.ErrServer)
	assert.Equal(t, "Invalid type", labelapi.Message(err))
}

func TestBrowsing(t *testing.T) {
	t.Parallel()

	b := labelapitest.New(t)
	c := b.Client(t)
	ctx := t.Context()

	roots, err := c.GetRootDirectories(ctx)
	require.NoError(t, err)
	assert.Len(t, roots.Directories, 2)

	listing, err := c.GetDirectories(ctx, "/data")
	require.NoError(t, err)
	assert.Equal(t, "/data", listing.BasePath)
	assert.Equal(t, []labelapi.Directory{
		{Name: "audio", Path: "/data/audio"},
		{Name: "rttm", Path: "/data/rttm"},
	}, listing.Directories)

	listing, err = c.GetDirectories(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "/", listing.BasePath)

	_, err = c.GetDirectories(ctx, "/nope")
	require.ErrorIs(t, err, labelapi.ErrServer)

	assert.Equal(t,
		b.URL()+"/browse_dialog?dialog_id=rttm-browser&start_path=%2Fdata",
		c.BrowseDialogURL("/data", "rttm-browser"),
	)
}

func TestLoadAndSave(t *testing.T) {
	t.Parallel()

	b := labelapitest.New(t)
	c := b.Client(t)
	ctx := t.Context()

	loaded, err := c.LoadRTTM(ctx, "interviews/int_01.rttm", false)
	require.NoError(t, err)
	assert.Equal(t, "int_01", loaded.FileID)
	assert.Equal(t, "/audio/interviews/int_01.wav", loaded.AudioPath)
	assert.Equal(t, "original", loaded.SourceType)
	require.Len(t, loaded.Segments, 1)
	assert.Equal(t, "host", loaded.Segments[0].SpeakerID)

	_, err = c.LoadRTTM(ctx, "interviews/int_01.rttm", true)
	require.ErrorIs(t, err, labelapi.ErrServer)
	assert.Equal(t, "Saved RTTM file not found", labelapi.Message(err))

	edits, err := c.CheckSavedEdits(ctx, "interviews/int_01.rttm")
	require.NoError(t, err)
	assert.False(t, edits.HasSavedEdits)

	seg, err := segment.New("int_01", 5, 1, "guest")
	require.NoError(t, err)

	res, err := c.SaveLabels(ctx, "int_01", "interviews/int_01.rttm", []segment.Segment{loaded.Segments[0], seg})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "Labels saved to labels/interviews/int_01", res.Message)

	edits, err = c.CheckSavedEdits(ctx, "interviews/int_01.rttm")
	require.NoError(t, err)
	assert.True(t, edits.HasSavedEdits)
	assert.Equal(t, labelapitest.SaveModified, edits.LastModified)

	loaded, err = c.LoadRTTM(ctx, "interviews/int_01.rttm", true)
	require.NoError(t, err)
	assert.Equal(t, "saved", loaded.SourceType)
	assert.Len(t, loaded.Segments, 2)

	_, err = c.LoadRTTM(ctx, "missing.rttm", false)
	require.ErrorIs(t, err, labelapi.ErrServer)

	apiErr := &labelapi.APIError{}
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestSegmentURL(t *testing.T) {
	t.Parallel()

	b := labelapitest.New(t)
	c := b.Client(t)
	ctx := t.Context()

	seg, err := segment.New("int_01", 1.5, 2, "host")
	require.NoError(t, err)

	got, err := c.SegmentURL(ctx, "int_01", "interviews/int_01.rttm", seg)
	require.NoError(t, err)
	assert.Equal(t, b.URL()+"/static/temp/segment_int_01_1.50_2.00.wav", got)

	_, err = c.SegmentURL(ctx, "gone", "", seg)
	require.ErrorIs(t, err, labelapi.ErrServer)
	assert.Equal(t, "Audio file not found at /data/audio/gone.wav", labelapi.Message(err))

	_, err = c.SegmentURL(ctx, "", "", seg)
	require.ErrorIs(t, err, labelapi.ErrServer)
	assert.Equal(t, "Missing required parameters", labelapi.Message(err))

	assert.Contains(t, b.Requests(), "POST /get_segment")
}

func TestGzipResponses(t *testing.T) {
	t.Parallel()

	b := labelapitest.New(t)
	b.Gzip = true

	list, err := b.Client(t).RefreshFileList(t.Context())
	require.NoError(t, err)
	assert.Len(t, list.RTTMFiles, 3)
}

func TestNonJSONFailures(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/refresh_file_list":
			http.Error(w, "boom", http.StatusBadGateway)
		default:
			_, _ = w.Write([]byte("<html>ok</html>"))
		}
	}))
	t.Cleanup(srv.Close)

	c, err := labelapi.NewClient(srv.URL, labelapi.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	_, err = c.RefreshFileList(t.Context())
	require.ErrorIs(t, err, labelapi.ErrRequest)
	require.NotErrorIs(t, err, labelapi.ErrServer)
	assert.Contains(t, err.Error(), "502")

	_, err = c.GetRootDirectories(t.Context())
	require.ErrorIs(t, err, labelapi.ErrRequest)
	assert.Contains(t, err.Error(), "decode")
}

func TestTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	c, err := labelapi.NewClient(srv.URL,
		labelapi.WithHTTPClient(srv.Client()),
		labelapi.WithTimeout(20*time.Millisecond),
	)
	require.NoError(t, err)

	_, err = c.RefreshFileList(t.Context())
	require.ErrorIs(t, err, labelapi.ErrRequest)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

type recordingDoer struct {
	req *http.Request
}

var errOffline = errors.New("offline")

func (d *recordingDoer) Do(req *http.Request) (*http.Response, error) {
	d.req = req

	return nil, errOffline
}

func TestRequestHeaders(t *testing.T) {
	t.Parallel()

	doer := &recordingDoer{}

	c, err := labelapi.NewClient("http://example.test",
		labelapi.WithHTTPClient(doer),
		labelapi.WithUserAgent("tests/1.0"),
	)
	require.NoError(t, err)

	err = c.SetDirectories(t.Context(), "/a b", "/c")
	require.ErrorIs(t, err, errOffline)
	require.ErrorIs(t, err, labelapi.ErrRequest)

	require.NotNil(t, doer.req)
	assert.Equal(t, http.MethodPost, doer.req.Method)
	assert.Equal(t, "/set_directories", doer.req.URL.Path)
	assert.Equal(t, "tests/1.0", doer.req.Header.Get("User-Agent"))
	assert.Equal(t, "gzip", doer.req.Header.Get("Accept-Encoding"))
	assert.Equal(t, "application/x-www-form-urlencoded", doer.req.Header.Get("Content-Type"))
}

type recordingTracer struct {
	spans []*recordedSpan
}

type recordedSpan struct {
	baggage  map[string]any
	name     string
	finished bool
}

//nolint:ireturn // Interface by contract.
func (r *recordingTracer) StartSpan(name string) tracing.Span {
	s := &recordedSpan{name: name, baggage: map[string]any{}}
	r.spans = append(r.spans, s)

	return s
}

func (s *recordedSpan) SetBaggageItem(key string, value any) { s.baggage[key] = value }
func (s *recordedSpan) Finish()                              { s.finished = true }

func TestTracer(t *testing.T) {
	t.Parallel()

	backend := labelapitest.New(t)
	tracer := &recordingTracer{}
	client := backend.Client(t, labelapi.WithTracer(tracer))

	_, err := client.RefreshFileList(t.Context())
	require.NoError(t, err)

	_, err = client.LoadRTTM(t.Context(), "missing.rttm", false)
	require.Error(t, err)

	require.Len(t, tracer.spans, 2)
	assert.Equal(t, "GET /refresh_file_list", tracer.spans[0].name)
	assert.Equal(t, http.StatusOK, tracer.spans[0].baggage["status"])
	assert.Equal(t, "POST /load_rttm", tracer.spans[1].name)
	assert.Equal(t, http.StatusNotFound, tracer.spans[1].baggage["status"])

	for _, s := range tracer.spans {
		assert.True(t, s.finished)
	}
}
