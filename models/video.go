// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Video is a catalog entry rendered in the feed.
//
// The client never fetches video bytes; URL and Thumbnail are opaque
// references handed to whatever plays them.
type Video struct {
	ID           string    `json:"id"`
	URL          string    `json:"url"`
	Thumbnail    string    `json:"thumbnail"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	AuthorID     string    `json:"authorId"`
	AuthorName   string    `json:"authorName"`
	AuthorAvatar string    `json:"authorAvatar"`
	Likes        int       `json:"likes"`
	Comments     int       `json:"comments"`
	Shares       int       `json:"shares"`
	Views        int       `json:"views"`
	CreatedAt    time.Time `json:"createdAt"`

	// Duration is the clip length in seconds.
	Duration int `json:"duration"`
}

// Sound is a catalog audio track that can be saved.
type Sound struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Duration string `json:"duration"`
	Uses     string `json:"uses"`
}

// FeedEntry is a video annotated with the current account's interactions.
type FeedEntry struct {
	Video Video
	Liked bool
	Saved bool
}
