package authz

// Like adds the caller to a likes set. A duplicate like is rejected
// rather than silently absorbed.
func Like(likes *[]string, userID string) error {
	if contains(*likes, userID) {
		return ErrAlreadyLiked
	}
	*likes = append(*likes, userID)
	return nil
}

// Unlike removes the caller from a likes set. Unliking something never
// liked is a silent no-op.
func Unlike(likes *[]string, userID string) {
	*likes = remove(*likes, userID)
}
