package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	PostKeyPrefix    = "post:%d"
	PostsListKey     = "posts:recent"
	ProfileKeyPrefix = "profile:%d"
)

const (
	PostTTL    = 30 * time.Minute
	ListTTL    = 1 * time.Minute
	ProfileTTL = 5 * time.Minute
)

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func ProfileKey(userID uint) string {
	return fmt.Sprintf(ProfileKeyPrefix, userID)
}

func Invalidate(ctx context.Context, keys ...string) {
	if client != nil {
		client.Del(ctx, keys...)
	}
}

// InvalidatePost drops the post's detail entry and the recent-posts listing.
func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID), PostsListKey)
}

func InvalidateProfile(ctx context.Context, userID uint) {
	Invalidate(ctx, ProfileKey(userID))
}
