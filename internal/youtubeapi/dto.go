// Data transfer objects for the subset of the YouTube Data API v3 the
// pipeline consumes. Numeric statistics arrive as JSON strings and are
// kept that way here; the model layer converts them on persist.

package youtubeapi

type Thumbnail struct {
	Url string `json:"url"`
}

type Thumbnails struct {
	Default Thumbnail `json:"default"`
	Medium  Thumbnail `json:"medium"`
	High    Thumbnail `json:"high"`
}

type ChannelSnippet struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CustomUrl   string `json:"customUrl"`
	PublishedAt string `json:"publishedAt"`
	Country     string `json:"country"`
}

type ChannelStatistics struct {
	SubscriberCount string `json:"subscriberCount"`
	VideoCount      string `json:"videoCount"`
	ViewCount       string `json:"viewCount"`
}

type RelatedPlaylists struct {
	Uploads string `json:"uploads"`
}

type ChannelContentDetails struct {
	RelatedPlaylists RelatedPlaylists `json:"relatedPlaylists"`
}

type BrandingChannel struct {
	Keywords string `json:"keywords"`
}

type BrandingSettings struct {
	Channel BrandingChannel `json:"channel"`
}

type TopicDetails struct {
	TopicCategories []string `json:"topicCategories"`
}

type Channel struct {
	Id               string                `json:"id"`
	Snippet          ChannelSnippet        `json:"snippet"`
	Statistics       ChannelStatistics     `json:"statistics"`
	ContentDetails   ChannelContentDetails `json:"contentDetails"`
	BrandingSettings BrandingSettings      `json:"brandingSettings"`
	TopicDetails     TopicDetails          `json:"topicDetails"`
}

type PlaylistItemSnippet struct {
	PublishedAt  string `json:"publishedAt"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ChannelTitle string `json:"channelTitle"`
}

type PlaylistItemContentDetails struct {
	VideoId string `json:"videoId"`
}

type PlaylistItem struct {
	Snippet        PlaylistItemSnippet        `json:"snippet"`
	ContentDetails PlaylistItemContentDetails `json:"contentDetails"`
}

type VideoSnippet struct {
	ChannelId            string     `json:"channelId"`
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	PublishedAt          string     `json:"publishedAt"`
	CategoryId           string     `json:"categoryId"`
	DefaultLanguage      string     `json:"defaultLanguage"`
	DefaultAudioLanguage string     `json:"defaultAudioLanguage"`
	Tags                 []string   `json:"tags"`
	Thumbnails           Thumbnails `json:"thumbnails"`
}

type VideoContentDetails struct {
	Duration string `json:"duration"`
	Caption  string `json:"caption"`
}

type VideoStatistics struct {
	ViewCount    string `json:"viewCount"`
	LikeCount    string `json:"likeCount"`
	CommentCount string `json:"commentCount"`
}

type VideoStatus struct {
	MadeForKids bool `json:"madeForKids"`
}

type Video struct {
	Id             string              `json:"id"`
	Snippet        VideoSnippet        `json:"snippet"`
	ContentDetails VideoContentDetails `json:"contentDetails"`
	Statistics     VideoStatistics     `json:"statistics"`
	Status         VideoStatus         `json:"status"`
	TopicDetails   TopicDetails        `json:"topicDetails"`
}

// Comment is a flattened comment or reply; the caller folds the API's
// nested thread shape into one list with ParentId linking replies.
type Comment struct {
	CommentId       string
	VideoId         string
	ParentId        string
	Author          string
	AuthorChannelId string
	Text            string
	LikeCount       int64
	ReplyCount      int64
	PublishedAt     string
	UpdatedAt       string
}

type CaptionSnippet struct {
	Language       string `json:"language"`
	Name           string `json:"name"`
	TrackKind      string `json:"trackKind"`
	AudioTrackType string `json:"audioTrackType"`
}

type CaptionTrack struct {
	Id      string         `json:"id"`
	Snippet CaptionSnippet `json:"snippet"`
}

// Raw wire shapes

type channelListResponse struct {
	Items []Channel `json:"items"`
}

type playlistItemsResponse struct {
	Items         []PlaylistItem `json:"items"`
	NextPageToken string         `json:"nextPageToken"`
}

type videoListResponse struct {
	Items []Video `json:"items"`
}

type authorChannelId struct {
	Value string `json:"value"`
}

type commentSnippet struct {
	TextDisplay       string          `json:"textDisplay"`
	AuthorDisplayName string          `json:"authorDisplayName"`
	AuthorChannelId   authorChannelId `json:"authorChannelId"`
	LikeCount         int64           `json:"likeCount"`
	PublishedAt       string          `json:"publishedAt"`
	UpdatedAt         string          `json:"updatedAt"`
}

type commentResource struct {
	Id      string         `json:"id"`
	Snippet commentSnippet `json:"snippet"`
}

type commentThreadSnippet struct {
	TopLevelComment commentResource `json:"topLevelComment"`
	TotalReplyCount int64           `json:"totalReplyCount"`
}

type commentThreadReplies struct {
	Comments []commentResource `json:"comments"`
}

type commentThread struct {
	Snippet commentThreadSnippet  `json:"snippet"`
	Replies *commentThreadReplies `json:"replies"`
}

type commentThreadsResponse struct {
	Items         []commentThread `json:"items"`
	NextPageToken string          `json:"nextPageToken"`
}

type searchId struct {
	ChannelId string `json:"channelId"`
}

type searchResult struct {
	Id searchId `json:"id"`
}

type searchListResponse struct {
	Items []searchResult `json:"items"`
}

type captionListResponse struct {
	Items []CaptionTrack `json:"items"`
}
