package store

// Keys of the persisted values. Per-account keys are built with LikesKey and
// SavedKey.
const (
	KeyAccounts       = "accounts"
	KeyCurrentSession = "current_session"

	likesKeyPrefix = "likes_"
	savedKeyPrefix = "saved_"
)

// LikesKey returns the key holding the liked video IDs of userID.
func LikesKey(userID string) string {
	return likesKeyPrefix + userID
}

// SavedKey returns the key holding the saved items of userID.
func SavedKey(userID string) string {
	return savedKeyPrefix + userID
}
