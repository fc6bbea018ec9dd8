package model

// ChannelMessage is the channel payload published to Kafka.
type ChannelMessage struct {
	ChannelId         string `json:"channel_id"`
	Title             string `json:"title"`
	Description       string `json:"description"`
	CustomUrl         string `json:"custom_url"`
	PublishedAt       string `json:"published_at"`
	Country           string `json:"country"`
	SubscriberCount   int64  `json:"subscriber_count"`
	VideoCount        int64  `json:"video_count"`
	ViewCount         int64  `json:"view_count"`
	UploadsPlaylistId string `json:"uploads_playlist_id"`
	Keywords          string `json:"keywords"`
	TopicCategories   string `json:"topic_categories"`
	Domain            string `json:"domain"`
	BrandName         string `json:"brand_name"`
	SourceCountry     string `json:"source_country"`
	Language          string `json:"language"`
	Rating            string `json:"rating"`
	Score             string `json:"score"`
	Orientation       string `json:"orientation"`
	TypeOfContent     string `json:"type_of_content"`
	Topics            string `json:"topics"`
	Owner             string `json:"owner"`
	TypeOfOwner       string `json:"type_of_owner"`
}

// VideoMessage is the video payload published to Kafka.
type VideoMessage struct {
	VideoId              string `json:"video_id"`
	ChannelId            string `json:"channel_id"`
	Title                string `json:"title"`
	Description          string `json:"description"`
	PublishedAt          string `json:"published_at"`
	CategoryId           string `json:"category_id"`
	Duration             string `json:"duration"`
	DefaultLanguage      string `json:"default_language"`
	DefaultAudioLanguage string `json:"default_audio_language"`
	Tags                 string `json:"tags"`
	ThumbnailUrl         string `json:"thumbnail_url"`
	ViewCount            int64  `json:"view_count"`
	LikeCount            int64  `json:"like_count"`
	CommentCount         int64  `json:"comment_count"`
	MadeForKids          bool   `json:"made_for_kids"`
	HasCaptions          bool   `json:"has_captions"`
	TopicCategories      string `json:"topic_categories"`
}

// CommentMessage is the comment payload published to Kafka.
type CommentMessage struct {
	CommentId       string `json:"comment_id"`
	VideoId         string `json:"video_id"`
	ParentId        string `json:"parent_id"`
	Author          string `json:"author"`
	AuthorChannelId string `json:"author_channel_id"`
	Text            string `json:"text"`
	LikeCount       int64  `json:"like_count"`
	ReplyCount      int64  `json:"reply_count"`
	PublishedAt     string `json:"published_at"`
	EditedAt        string `json:"edited_at"`
}

func (c *Channel) ToMessage() ChannelMessage {
	return ChannelMessage{
		ChannelId:         c.ChannelId,
		Title:             c.Title,
		Description:       c.Description,
		CustomUrl:         c.CustomUrl,
		PublishedAt:       c.PublishedAt,
		Country:           c.Country,
		SubscriberCount:   c.SubscriberCount,
		VideoCount:        c.VideoCount,
		ViewCount:         c.ViewCount,
		UploadsPlaylistId: c.UploadsPlaylistId,
		Keywords:          c.Keywords,
		TopicCategories:   c.TopicCategories,
		Domain:            c.Domain,
		BrandName:         c.BrandName,
		SourceCountry:     c.SourceCountry,
		Language:          c.Language,
		Rating:            c.Rating,
		Score:             c.Score,
		Orientation:       c.Orientation,
		TypeOfContent:     c.TypeOfContent,
		Topics:            c.Topics,
		Owner:             c.Owner,
		TypeOfOwner:       c.TypeOfOwner,
	}
}

func ChannelFromMessage(msg ChannelMessage) *Channel {
	return &Channel{
		ChannelId:         msg.ChannelId,
		Title:             msg.Title,
		Description:       msg.Description,
		CustomUrl:         msg.CustomUrl,
		PublishedAt:       msg.PublishedAt,
		Country:           msg.Country,
		SubscriberCount:   msg.SubscriberCount,
		VideoCount:        msg.VideoCount,
		ViewCount:         msg.ViewCount,
		UploadsPlaylistId: msg.UploadsPlaylistId,
		Keywords:          msg.Keywords,
		TopicCategories:   msg.TopicCategories,
		Domain:            msg.Domain,
		BrandName:         msg.BrandName,
		SourceCountry:     msg.SourceCountry,
		Language:          msg.Language,
		Rating:            msg.Rating,
		Score:             msg.Score,
		Orientation:       msg.Orientation,
		TypeOfContent:     msg.TypeOfContent,
		Topics:            msg.Topics,
		Owner:             msg.Owner,
		TypeOfOwner:       msg.TypeOfOwner,
	}
}

func (v *Video) ToMessage() VideoMessage {
	return VideoMessage{
		VideoId:              v.VideoId,
		ChannelId:            v.ChannelId,
		Title:                v.Title,
		Description:          v.Description,
		PublishedAt:          v.PublishedAt,
		CategoryId:           v.CategoryId,
		Duration:             v.Duration,
		DefaultLanguage:      v.DefaultLanguage,
		DefaultAudioLanguage: v.DefaultAudioLanguage,
		Tags:                 v.Tags,
		ThumbnailUrl:         v.ThumbnailUrl,
		ViewCount:            v.ViewCount,
		LikeCount:            v.LikeCount,
		CommentCount:         v.CommentCount,
		MadeForKids:          v.MadeForKids,
		HasCaptions:          v.HasCaptions,
		TopicCategories:      v.TopicCategories,
	}
}

func VideoFromMessage(msg VideoMessage) *Video {
	return &Video{
		VideoId:              msg.VideoId,
		ChannelId:            msg.ChannelId,
		Title:                msg.Title,
		Description:          msg.Description,
		PublishedAt:          msg.PublishedAt,
		CategoryId:           msg.CategoryId,
		Duration:             msg.Duration,
		DefaultLanguage:      msg.DefaultLanguage,
		DefaultAudioLanguage: msg.DefaultAudioLanguage,
		Tags:                 msg.Tags,
		ThumbnailUrl:         msg.ThumbnailUrl,
		ViewCount:            msg.ViewCount,
		LikeCount:            msg.LikeCount,
		CommentCount:         msg.CommentCount,
		MadeForKids:          msg.MadeForKids,
		HasCaptions:          msg.HasCaptions,
		TopicCategories:      msg.TopicCategories,
	}
}

func (c *Comment) ToMessage() CommentMessage {
	return CommentMessage{
		CommentId:       c.CommentId,
		VideoId:         c.VideoId,
		ParentId:        c.ParentId,
		Author:          c.Author,
		AuthorChannelId: c.AuthorChannelId,
		Text:            c.Text,
		LikeCount:       c.LikeCount,
		ReplyCount:      c.ReplyCount,
		PublishedAt:     c.PublishedAt,
		EditedAt:        c.EditedAt,
	}
}

func CommentFromMessage(msg CommentMessage) *Comment {
	return &Comment{
		CommentId:       msg.CommentId,
		VideoId:         msg.VideoId,
		ParentId:        msg.ParentId,
		Author:          msg.Author,
		AuthorChannelId: msg.AuthorChannelId,
		Text:            msg.Text,
		LikeCount:       msg.LikeCount,
		ReplyCount:      msg.ReplyCount,
		PublishedAt:     msg.PublishedAt,
		EditedAt:        msg.EditedAt,
	}
}
