package youtubeapi

import (
	"errors"
	"fmt"
)

// ErrChannelNotFound is returned when every resolution strategy for a
// source comes back empty.
var ErrChannelNotFound = errors.New("youtubeapi: channel not found")

// APIError carries the structured error body the API returns alongside a
// non-200 status. Reason is the first machine-readable reason string in
// the body, e.g. "quotaExceeded" or "commentsDisabled".
type APIError struct {
	Method     string
	StatusCode int
	Reason     string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("youtubeapi: %s failed with status %d (%s): %s", e.Method, e.StatusCode, e.Reason, e.Message)
}

// Wire shape of an error body:
// {"error": {"code": 403, "message": "...", "errors": [{"reason": "quotaExceeded"}]}}
type apiErrorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Errors  []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}

// IsQuotaExceeded reports whether err means the project's daily quota or
// rate ceiling is spent. These are never retried: more attempts burn time
// without any chance of success until the quota window resets.
func IsQuotaExceeded(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.StatusCode == 429 {
		return true
	}
	if apiErr.StatusCode != 403 {
		return false
	}
	switch apiErr.Reason {
	case "quotaExceeded", "rateLimitExceeded", "dailyLimitExceeded":
		return true
	}
	return false
}

// IsPermanent reports whether err describes a condition retrying cannot
// fix: the resource is gone, private, or has the feature disabled.
func IsPermanent(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.StatusCode == 404 {
		return true
	}
	// 403s that are not quota problems (commentsDisabled, forbidden,
	// channelClosed, ...) are resource-level and final.
	return apiErr.StatusCode == 403 && !IsQuotaExceeded(err)
}
