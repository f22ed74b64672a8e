package constant

const (
	DEFAULT_PAGE  = 1
	DEFAULT_LIMIT = 10
	MAX_LIMIT     = 50

	MAX_COMMENT_LENGTH = 1000
	MAX_SEARCH_LENGTH  = 100
)
