package api

import "github.com/aicom-dev/aicom/shared/domain"

// Response DTOs

type BookmarkResponse struct {
	domain.Bookmark
}
