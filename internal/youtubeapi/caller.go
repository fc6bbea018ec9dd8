// Package youtubeapi provides a caller for the YouTube Data API v3. It
// resolves channels, pages through uploads playlists and comment threads,
// and charges every successful call against a quota recorder.

package youtubeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/losardor/youtube-monitorin-pipeline/cfg"
	"github.com/losardor/youtube-monitorin-pipeline/internal/quota"
	"github.com/losardor/youtube-monitorin-pipeline/pkg/log"
)

// CostRecorder receives the unit cost of every successful API call.
// Failed calls are not charged; the API does not bill them either.
type CostRecorder interface {
	RecordMethodCost(method string, units int)
}

type Caller struct {
	Logger   log.Logger
	Config   *cfg.Config
	Recorder CostRecorder
	client   *http.Client
}

func NewCaller(logger log.Logger, config *cfg.Config, recorder CostRecorder) (*Caller, error) {
	return &Caller{
		Logger:   logger,
		Config:   config,
		Recorder: recorder,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// call performs one GET against the given API method, decodes the body
// into out, and charges the method's cost on success.
func (c *Caller) call(ctx context.Context, method string, params url.Values, out interface{}) error {
	resource := strings.TrimSuffix(method, ".list")
	params.Set("key", c.Config.YoutubeApi.ApiKey)
	fullUrl := fmt.Sprintf("%s/%s?%s", strings.TrimRight(c.Config.YoutubeApi.ApiUrl, "/"), resource, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullUrl, nil)
	if err != nil {
		c.Logger.Error(ctx, "Cannot build request for %s: %v", method, err)
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.Logger.Error(ctx, "Cannot send request for %s: %v", method, err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.decodeError(method, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("youtubeapi: cannot decode %s response: %w", method, err)
	}

	if c.Recorder != nil {
		c.Recorder.RecordMethodCost(method, quota.Cost(method))
	}
	return nil
}

func (c *Caller) decodeError(method string, resp *http.Response) error {
	apiErr := &APIError{
		Method:     method,
		StatusCode: resp.StatusCode,
		Message:    resp.Status,
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return apiErr
	}

	var parsed apiErrorBody
	if json.Unmarshal(body, &parsed) == nil {
		if parsed.Error.Message != "" {
			apiErr.Message = parsed.Error.Message
		}
		if len(parsed.Error.Errors) > 0 {
			apiErr.Reason = parsed.Error.Errors[0].Reason
		}
	}
	return apiErr
}

const channelParts = "snippet,statistics,contentDetails,brandingSettings,topicDetails"

func (c *Caller) channelBy(ctx context.Context, key, value string) (*Channel, error) {
	params := url.Values{}
	params.Set("part", channelParts)
	params.Set(key, value)

	raw := &channelListResponse{}
	if err := c.call(ctx, quota.MethodChannelsList, params, raw); err != nil {
		return nil, err
	}
	if len(raw.Items) == 0 {
		return nil, ErrChannelNotFound
	}
	return &raw.Items[0], nil
}

func (c *Caller) ChannelById(ctx context.Context, channelId string) (*Channel, error) {
	return c.channelBy(ctx, "id", channelId)
}

func (c *Caller) ChannelByHandle(ctx context.Context, handle string) (*Channel, error) {
	return c.channelBy(ctx, "forHandle", handle)
}

func (c *Caller) ChannelByUsername(ctx context.Context, username string) (*Channel, error) {
	return c.channelBy(ctx, "forUsername", username)
}

// SearchChannelId looks a channel up by free-text query. This is the most
// expensive call in the API (100 units) and is only used as the last
// resolution strategy.
func (c *Caller) SearchChannelId(ctx context.Context, query string) (string, error) {
	params := url.Values{}
	params.Set("part", "id")
	params.Set("type", "channel")
	params.Set("maxResults", "1")
	params.Set("q", query)

	raw := &searchListResponse{}
	if err := c.call(ctx, quota.MethodSearchList, params, raw); err != nil {
		return "", err
	}
	if len(raw.Items) == 0 || raw.Items[0].Id.ChannelId == "" {
		return "", ErrChannelNotFound
	}
	return raw.Items[0].Id.ChannelId, nil
}

// PlaylistItemsPage fetches one page of a playlist. An empty pageToken
// starts from the beginning; an empty returned token means the last page.
func (c *Caller) PlaylistItemsPage(ctx context.Context, playlistId, pageToken string, maxResults int) ([]PlaylistItem, string, error) {
	params := url.Values{}
	params.Set("part", "snippet,contentDetails")
	params.Set("playlistId", playlistId)
	params.Set("maxResults", fmt.Sprintf("%d", maxResults))
	if pageToken != "" {
		params.Set("pageToken", pageToken)
	}

	raw := &playlistItemsResponse{}
	if err := c.call(ctx, quota.MethodPlaylistItemsList, params, raw); err != nil {
		return nil, "", err
	}
	return raw.Items, raw.NextPageToken, nil
}

const videoDetailsBatchSize = 50

// VideoDetails fetches full metadata for the given video ids, batching
// 50 ids per call, which is the API maximum.
func (c *Caller) VideoDetails(ctx context.Context, videoIds []string) ([]Video, error) {
	videos := make([]Video, 0, len(videoIds))
	for start := 0; start < len(videoIds); start += videoDetailsBatchSize {
		end := start + videoDetailsBatchSize
		if end > len(videoIds) {
			end = len(videoIds)
		}

		params := url.Values{}
		params.Set("part", "snippet,contentDetails,statistics,status,topicDetails")
		params.Set("id", strings.Join(videoIds[start:end], ","))

		raw := &videoListResponse{}
		if err := c.call(ctx, quota.MethodVideosList, params, raw); err != nil {
			return nil, err
		}
		videos = append(videos, raw.Items...)
	}
	return videos, nil
}

// CommentThreadsPage fetches one page of comment threads for a video and
// flattens it: each top-level comment is followed by its inlined replies,
// replies carrying the parent comment id.
func (c *Caller) CommentThreadsPage(ctx context.Context, videoId, pageToken string, maxResults int, order string) ([]Comment, string, error) {
	params := url.Values{}
	params.Set("part", "snippet,replies")
	params.Set("videoId", videoId)
	params.Set("maxResults", fmt.Sprintf("%d", maxResults))
	params.Set("textFormat", "plainText")
	if order != "" {
		params.Set("order", order)
	}
	if pageToken != "" {
		params.Set("pageToken", pageToken)
	}

	raw := &commentThreadsResponse{}
	if err := c.call(ctx, quota.MethodCommentThreadsList, params, raw); err != nil {
		return nil, "", err
	}

	comments := make([]Comment, 0, len(raw.Items))
	for _, thread := range raw.Items {
		top := thread.Snippet.TopLevelComment
		comments = append(comments, flattenComment(top, videoId, "", thread.Snippet.TotalReplyCount))
		if thread.Replies == nil {
			continue
		}
		for _, reply := range thread.Replies.Comments {
			comments = append(comments, flattenComment(reply, videoId, top.Id, 0))
		}
	}
	return comments, raw.NextPageToken, nil
}

func flattenComment(res commentResource, videoId, parentId string, replyCount int64) Comment {
	return Comment{
		CommentId:       res.Id,
		VideoId:         videoId,
		ParentId:        parentId,
		Author:          res.Snippet.AuthorDisplayName,
		AuthorChannelId: res.Snippet.AuthorChannelId.Value,
		Text:            res.Snippet.TextDisplay,
		LikeCount:       res.Snippet.LikeCount,
		ReplyCount:      replyCount,
		PublishedAt:     res.Snippet.PublishedAt,
		UpdatedAt:       res.Snippet.UpdatedAt,
	}
}

// CaptionTracks lists the caption tracks of a video. Without OAuth the
// API answers 403 for most videos, which callers should treat as "no
// caption data" rather than a failure.
func (c *Caller) CaptionTracks(ctx context.Context, videoId string) ([]CaptionTrack, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("videoId", videoId)

	raw := &captionListResponse{}
	if err := c.call(ctx, quota.MethodCaptionsList, params, raw); err != nil {
		return nil, err
	}
	return raw.Items, nil
}
