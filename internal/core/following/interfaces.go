package following

import "context"

// Lookup returns the usernames that username follows.
// A user who follows nobody yields an empty slice and a nil error.
type Lookup interface {
	GetFollowing(ctx context.Context, username string) ([]string, error)
}
