package youtubeapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/losardor/youtube-monitorin-pipeline/cfg"
	"github.com/losardor/youtube-monitorin-pipeline/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCost struct {
	method string
	units  int
}

type fakeRecorder struct {
	costs []recordedCost
}

func (f *fakeRecorder) RecordMethodCost(method string, units int) {
	f.costs = append(f.costs, recordedCost{method: method, units: units})
}

func (f *fakeRecorder) total() int {
	sum := 0
	for _, c := range f.costs {
		sum += c.units
	}
	return sum
}

func newTestCaller(t *testing.T, handler http.Handler) (*Caller, *fakeRecorder, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger, _ := log.NewCslLogger()
	recorder := &fakeRecorder{}
	caller, err := NewCaller(logger, &cfg.Config{
		YoutubeApi: cfg.YoutubeApi{ApiKey: "test-key", ApiUrl: server.URL},
	}, recorder)
	require.NoError(t, err)
	return caller, recorder, server
}

func TestChannelByIdChargesOneUnit(t *testing.T) {
	caller, recorder, _ := newTestCaller(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/channels", r.URL.Path)
		assert.Equal(t, "UCabcdefghijklmnopqrstuv", r.URL.Query().Get("id"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Write([]byte(`{"items":[{"id":"UCabcdefghijklmnopqrstuv","snippet":{"title":"BBC News"},"statistics":{"subscriberCount":"100"},"contentDetails":{"relatedPlaylists":{"uploads":"UUabcdefghijklmnopqrstuv"}}}]}`))
	}))

	ch, err := caller.ChannelById(context.Background(), "UCabcdefghijklmnopqrstuv")
	require.NoError(t, err)
	assert.Equal(t, "BBC News", ch.Snippet.Title)
	assert.Equal(t, "UUabcdefghijklmnopqrstuv", ch.ContentDetails.RelatedPlaylists.Uploads)
	assert.Equal(t, []recordedCost{{method: "channels.list", units: 1}}, recorder.costs)
}

func TestChannelNotFound(t *testing.T) {
	caller, recorder, _ := newTestCaller(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[]}`))
	}))

	_, err := caller.ChannelByHandle(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrChannelNotFound)
	// An empty result set is still a successful, billed call
	assert.Equal(t, 1, recorder.total())
}

func TestSearchChannelIdCostsOneHundred(t *testing.T) {
	caller, recorder, _ := newTestCaller(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "channel", r.URL.Query().Get("type"))
		w.Write([]byte(`{"items":[{"id":{"channelId":"UCfound"}}]}`))
	}))

	id, err := caller.SearchChannelId(context.Background(), "bbc news")
	require.NoError(t, err)
	assert.Equal(t, "UCfound", id)
	assert.Equal(t, 100, recorder.total())
}

func TestQuotaExceededIsNotCharged(t *testing.T) {
	caller, recorder, _ := newTestCaller(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":403,"message":"Quota exceeded","errors":[{"reason":"quotaExceeded"}]}}`))
	}))

	_, _, err := caller.PlaylistItemsPage(context.Background(), "UUxyz", "", 50)
	require.Error(t, err)
	assert.True(t, IsQuotaExceeded(err))
	assert.False(t, IsPermanent(err))
	assert.Equal(t, 0, recorder.total())
}

func TestCommentsDisabledIsPermanent(t *testing.T) {
	caller, _, _ := newTestCaller(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":403,"message":"Comments are disabled","errors":[{"reason":"commentsDisabled"}]}}`))
	}))

	_, _, err := caller.CommentThreadsPage(context.Background(), "vid1", "", 100, "time")
	require.Error(t, err)
	assert.True(t, IsPermanent(err))
	assert.False(t, IsQuotaExceeded(err))
}

func TestServerErrorIsTransient(t *testing.T) {
	caller, _, _ := newTestCaller(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := caller.ChannelById(context.Background(), "UCx")
	require.Error(t, err)
	assert.False(t, IsPermanent(err))
	assert.False(t, IsQuotaExceeded(err))
}

func TestPlaylistItemsPagePagination(t *testing.T) {
	caller, _, _ := newTestCaller(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("pageToken") == "" {
			w.Write([]byte(`{"items":[{"contentDetails":{"videoId":"vid1"}}],"nextPageToken":"page2"}`))
			return
		}
		w.Write([]byte(`{"items":[{"contentDetails":{"videoId":"vid2"}}]}`))
	}))

	items, next, err := caller.PlaylistItemsPage(context.Background(), "UUxyz", "", 50)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "vid1", items[0].ContentDetails.VideoId)
	assert.Equal(t, "page2", next)

	items, next, err = caller.PlaylistItemsPage(context.Background(), "UUxyz", next, 50)
	require.NoError(t, err)
	assert.Equal(t, "vid2", items[0].ContentDetails.VideoId)
	assert.Empty(t, next)
}

func TestVideoDetailsBatchesFifty(t *testing.T) {
	var batches []int
	caller, recorder, _ := newTestCaller(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids := r.URL.Query().Get("id")
		n := 1
		for _, c := range ids {
			if c == ',' {
				n++
			}
		}
		batches = append(batches, n)
		w.Write([]byte(`{"items":[{"id":"v","statistics":{"viewCount":"10"}}]}`))
	}))

	ids := make([]string, 120)
	for i := range ids {
		ids[i] = "v"
	}
	videos, err := caller.VideoDetails(context.Background(), ids)
	require.NoError(t, err)
	assert.Len(t, videos, 3)
	assert.Equal(t, []int{50, 50, 20}, batches)
	assert.Equal(t, 3, recorder.total())
}

func TestCommentThreadsPageFlattensReplies(t *testing.T) {
	caller, _, _ := newTestCaller(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"items": [{
				"snippet": {
					"topLevelComment": {"id": "c1", "snippet": {"textDisplay": "top", "authorDisplayName": "alice", "likeCount": 3}},
					"totalReplyCount": 2
				},
				"replies": {"comments": [
					{"id": "c1.r1", "snippet": {"textDisplay": "first reply", "authorChannelId": {"value": "UCbob"}}},
					{"id": "c1.r2", "snippet": {"textDisplay": "second reply"}}
				]}
			}]
		}`))
	}))

	comments, next, err := caller.CommentThreadsPage(context.Background(), "vid1", "", 100, "time")
	require.NoError(t, err)
	assert.Empty(t, next)
	require.Len(t, comments, 3)

	assert.Equal(t, "c1", comments[0].CommentId)
	assert.Empty(t, comments[0].ParentId)
	assert.Equal(t, int64(2), comments[0].ReplyCount)
	assert.Equal(t, "c1", comments[1].ParentId)
	assert.Equal(t, "UCbob", comments[1].AuthorChannelId)
	assert.Equal(t, "c1", comments[2].ParentId)
	for _, c := range comments {
		assert.Equal(t, "vid1", c.VideoId)
	}
}

func TestCaptionTracksCostsFifty(t *testing.T) {
	caller, recorder, _ := newTestCaller(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/captions", r.URL.Path)
		w.Write([]byte(`{"items":[{"id":"cap1","snippet":{"language":"en","trackKind":"asr"}}]}`))
	}))

	tracks, err := caller.CaptionTracks(context.Background(), "vid1")
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	assert.Equal(t, "en", tracks[0].Snippet.Language)
	assert.Equal(t, 50, recorder.total())
}
