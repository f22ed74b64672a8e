package postitem

import "github.com/ferdian3456/virdanfeed/internal/model"

// PrivacyGlyph maps every Privacy to its icon. Adding a variant without a
// case here falls through to the public icon, matching ParsePrivacy.
func PrivacyGlyph(privacy model.Privacy) string {
	switch privacy {
	case model.PrivacyFriends:
		return "👥"
	case model.PrivacyPrivate:
		return "🔒"
	case model.PrivacyPublic:
		return "🌐"
	default:
		return "🌐"
	}
}
