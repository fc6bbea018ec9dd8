package model

import (
	"strings"
	"testing"

	"github.com/losardor/youtube-monitorin-pipeline/internal/source"
	"github.com/losardor/youtube-monitorin-pipeline/internal/youtubeapi"
	"github.com/stretchr/testify/assert"
)

func TestParseCount(t *testing.T) {
	assert.Equal(t, int64(12345), ParseCount("12345"))
	assert.Equal(t, int64(0), ParseCount(""))
	assert.Equal(t, int64(0), ParseCount("not-a-number"))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "abc", TruncateString("abc", 10))
	assert.Equal(t, "ab", TruncateString("abcdef", 2))
}

func TestChannelFromAPI(t *testing.T) {
	api := &youtubeapi.Channel{
		Id: "UCabcdefghijklmnopqrstuv",
		Snippet: youtubeapi.ChannelSnippet{
			Title:       strings.Repeat("x", 300),
			Country:     "GB",
			PublishedAt: "2010-01-01T00:00:00Z",
		},
		Statistics: youtubeapi.ChannelStatistics{
			SubscriberCount: "1000000",
			VideoCount:      "5000",
		},
		ContentDetails: youtubeapi.ChannelContentDetails{
			RelatedPlaylists: youtubeapi.RelatedPlaylists{Uploads: "UUabcdefghijklmnopqrstuv"},
		},
		TopicDetails: youtubeapi.TopicDetails{TopicCategories: []string{"news", "politics"}},
	}
	src := source.Source{Domain: "bbc.com", BrandName: "BBC", Rating: "high"}

	record := ChannelFromAPI(api, src)
	assert.Equal(t, "UCabcdefghijklmnopqrstuv", record.ChannelId)
	assert.Len(t, record.Title, 250)
	assert.Equal(t, int64(1000000), record.SubscriberCount)
	assert.Equal(t, "UUabcdefghijklmnopqrstuv", record.UploadsPlaylistId)
	assert.Equal(t, "news,politics", record.TopicCategories)
	assert.Equal(t, "bbc.com", record.Domain)
	assert.Equal(t, "BBC", record.BrandName)
	assert.Equal(t, "high", record.Rating)
}

func TestVideoFromAPI(t *testing.T) {
	api := youtubeapi.Video{
		Id: "vid1",
		Snippet: youtubeapi.VideoSnippet{
			ChannelId: "UCx",
			Title:     "Breaking news",
			Tags:      []string{"news", "live"},
		},
		ContentDetails: youtubeapi.VideoContentDetails{Duration: "PT5M", Caption: "true"},
		Statistics:     youtubeapi.VideoStatistics{ViewCount: "42", CommentCount: "7"},
	}

	record := VideoFromAPI(api)
	assert.Equal(t, "vid1", record.VideoId)
	assert.Equal(t, "UCx", record.ChannelId)
	assert.Equal(t, "news,live", record.Tags)
	assert.True(t, record.HasCaptions)
	assert.Equal(t, int64(42), record.ViewCount)
	assert.Equal(t, int64(7), record.CommentCount)
}

func TestCommentFromAPIKeepsParentLink(t *testing.T) {
	reply := youtubeapi.Comment{
		CommentId: "c1.r1",
		VideoId:   "vid1",
		ParentId:  "c1",
		Author:    "bob",
	}

	record := CommentFromAPI(reply)
	assert.Equal(t, "c1.r1", record.CommentId)
	assert.Equal(t, "c1", record.ParentId)
	assert.Equal(t, "vid1", record.VideoId)
}
