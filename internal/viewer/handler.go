package viewer

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/losardor/youtube-monitorin-pipeline/cfg"
	"github.com/losardor/youtube-monitorin-pipeline/internal/model"
	"github.com/losardor/youtube-monitorin-pipeline/pkg/db"
	"github.com/losardor/youtube-monitorin-pipeline/pkg/log"
	"gorm.io/gorm"
)

// Handler manages the JSON API requests.
type Handler struct {
	Logger log.Logger
	Config *cfg.Config
	Mysql  *db.Mysql
	db     *gorm.DB
}

func NewHandler(logger log.Logger, config *cfg.Config, mysql *db.Mysql) (*Handler, error) {
	db, err := mysql.Db()
	if err != nil {
		return nil, err
	}

	return &Handler{
		Logger: logger,
		Config: config,
		Mysql:  mysql,
		db:     db,
	}, nil
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/channels", h.getChannels)
	mux.HandleFunc("/api/videos", h.getVideos)
	mux.HandleFunc("/api/comments", h.getComments)
	mux.HandleFunc("/api/runs", h.getRuns)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.Logger.Error(r.Context(), "Failed to encode JSON response: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// getChannels lists channels ordered by subscriber count, with pagination
// and a free-text search over title, brand and domain.
func (h *Handler) getChannels(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(r.URL.Query().Get("pageSize"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		pageSize = 25
	}
	search := r.URL.Query().Get("search")
	offset := (page - 1) * pageSize

	query := h.db.Offset(offset).Limit(pageSize).Order("subscriber_count DESC")
	countQuery := h.db.Model(&model.Channel{})
	if search != "" {
		like := "%" + search + "%"
		filter := "title LIKE ? OR brand_name LIKE ? OR domain LIKE ?"
		query = query.Where(filter, like, like, like)
		countQuery = countQuery.Where(filter, like, like, like)
	}

	var channels []model.Channel
	if result := query.Find(&channels); result.Error != nil {
		h.Logger.Error(r.Context(), "Failed to fetch channels: %v", result.Error)
		http.Error(w, "Failed to fetch channels", http.StatusInternalServerError)
		return
	}

	var totalCount int64
	countQuery.Count(&totalCount)

	responses := make([]model.ChannelMessage, 0, len(channels))
	for i := range channels {
		responses = append(responses, channels[i].ToMessage())
	}

	h.writeJSON(w, r, map[string]interface{}{
		"channels": responses,
		"pagination": map[string]interface{}{
			"page":       page,
			"pageSize":   pageSize,
			"totalCount": totalCount,
			"totalPages": (totalCount + int64(pageSize) - 1) / int64(pageSize),
		},
	})
}

// getVideos returns the videos of one channel, newest first.
func (h *Handler) getVideos(w http.ResponseWriter, r *http.Request) {
	channelId := r.URL.Query().Get("channelId")
	if channelId == "" {
		http.Error(w, "Missing channel ID", http.StatusBadRequest)
		return
	}

	var videos []model.Video
	result := h.db.Where("channel_id = ?", channelId).Order("published_at DESC").Find(&videos)
	if result.Error != nil {
		h.Logger.Error(r.Context(), "Failed to fetch videos: %v", result.Error)
		http.Error(w, "Failed to fetch videos", http.StatusInternalServerError)
		return
	}

	responses := make([]model.VideoMessage, 0, len(videos))
	for i := range videos {
		responses = append(responses, videos[i].ToMessage())
	}
	h.writeJSON(w, r, responses)
}

// getComments returns the comments of one video. Replies follow their
// parent through the parent_id field; the client reassembles threads.
func (h *Handler) getComments(w http.ResponseWriter, r *http.Request) {
	videoId := r.URL.Query().Get("videoId")
	if videoId == "" {
		http.Error(w, "Missing video ID", http.StatusBadRequest)
		return
	}

	var comments []model.Comment
	result := h.db.Where("video_id = ?", videoId).Order("published_at ASC").Find(&comments)
	if result.Error != nil {
		h.Logger.Error(r.Context(), "Failed to fetch comments: %v", result.Error)
		http.Error(w, "Failed to fetch comments", http.StatusInternalServerError)
		return
	}

	responses := make([]model.CommentMessage, 0, len(comments))
	for i := range comments {
		responses = append(responses, comments[i].ToMessage())
	}
	h.writeJSON(w, r, responses)
}

// getRuns returns the run history, most recent first.
func (h *Handler) getRuns(w http.ResponseWriter, r *http.Request) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 || limit > 500 {
		limit = 50
	}

	var runs []model.CollectionRun
	result := h.db.Limit(limit).Order("id DESC").Find(&runs)
	if result.Error != nil {
		h.Logger.Error(r.Context(), "Failed to fetch runs: %v", result.Error)
		http.Error(w, "Failed to fetch runs", http.StatusInternalServerError)
		return
	}

	responses := make([]runResponse, 0, len(runs))
	for _, run := range runs {
		resp := runResponse{
			Id:                run.ID,
			StartedAt:         run.StartedAt.Format(time.RFC3339),
			Status:            run.Status,
			StopReason:        run.StopReason,
			ChannelsProcessed: run.ChannelsProcessed,
			ChannelsSucceeded: run.ChannelsSucceeded,
			ChannelsFailed:    run.ChannelsFailed,
			VideosCollected:   run.VideosCollected,
			CommentsCollected: run.CommentsCollected,
			QuotaSession:      run.QuotaSession,
			QuotaCumulative:   run.QuotaCumulative,
		}
		if run.EndedAt != nil {
			resp.EndedAt = run.EndedAt.Format(time.RFC3339)
		}
		responses = append(responses, resp)
	}
	h.writeJSON(w, r, responses)
}

type runResponse struct {
	Id                uint   `json:"id"`
	StartedAt         string `json:"started_at"`
	EndedAt           string `json:"ended_at,omitempty"`
	Status            string `json:"status"`
	StopReason        string `json:"stop_reason"`
	ChannelsProcessed int    `json:"channels_processed"`
	ChannelsSucceeded int    `json:"channels_succeeded"`
	ChannelsFailed    int    `json:"channels_failed"`
	VideosCollected   int    `json:"videos_collected"`
	CommentsCollected int    `json:"comments_collected"`
	QuotaSession      int    `json:"quota_session"`
	QuotaCumulative   int    `json:"quota_cumulative"`
}
