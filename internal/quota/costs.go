package quota

// Authoritative per-method unit costs for the YouTube Data API v3.
// Source: Google's quota cost table. Every Caller method charges through
// this map; nothing in the pipeline guesses a cost inline.
const (
	MethodChannelsList       = "channels.list"
	MethodPlaylistItemsList  = "playlistItems.list"
	MethodVideosList         = "videos.list"
	MethodCommentThreadsList = "commentThreads.list"
	MethodSearchList         = "search.list"
	MethodCaptionsList       = "captions.list"
)

var methodCosts = map[string]int{
	MethodChannelsList:       1,
	MethodPlaylistItemsList:  1,
	MethodVideosList:         1,
	MethodCommentThreadsList: 1,
	MethodSearchList:         100,
	MethodCaptionsList:       50,
}

// Cost returns the unit price of an API method. Unknown methods cost 1 so
// that a missing table entry under-reports rather than blocks collection.
func Cost(method string) int {
	if c, ok := methodCosts[method]; ok {
		return c
	}
	return 1
}
