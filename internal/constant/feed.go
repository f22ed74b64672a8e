package constant

import "time"

const (
	// FEED_PAGE_SIZE is the page size the feed asks for, for both listing and search.
	FEED_PAGE_SIZE = 10

	SEARCH_DEBOUNCE         = 500 * time.Millisecond
	SEARCH_MIN_QUERY_LENGTH = 2

	FEED_REQUEST_TIMEOUT = 15 * time.Second

	FEED_LOAD_ERROR_MESSAGE = "Failed to load posts"
	DELETE_CONFIRM_MESSAGE  = "Are you sure you want to delete this post?"
)
