package tui

import (
	"github.com/MKhiriev/vibeclip/internal/service"
	"github.com/MKhiriev/vibeclip/models"
)

type page int

const (
	pageFeed page = iota
	pageLiked
	pageSaved
	pageSounds
	pageProfile
)

var pageOrder = []page{pageFeed, pageLiked, pageSaved, pageSounds, pageProfile}

func (p page) String() string {
	switch p {
	case pageFeed:
		return "feed"
	case pageLiked:
		return "liked"
	case pageSaved:
		return "saved"
	case pageSounds:
		return "sounds"
	case pageProfile:
		return "profile"
	default:
		return "?"
	}
}

// NavigateTo asks [RootModel] to switch the active page.
type NavigateTo struct {
	Page page
}

// sessionChangedMsg carries a snapshot published by the session service.
type sessionChangedMsg struct {
	state service.SessionState
}

// authSubmitMsg fires once the submit delay has passed.
type authSubmitMsg struct {
	mode service.AuthMode
	form models.RegistrationForm
}

type authResultMsg struct {
	mode    service.AuthMode
	account models.Account
	err     error
}

type feedLoadedMsg struct {
	entries []models.FeedEntry
	err     error
}

type likeToggledMsg struct {
	entry models.FeedEntry
	err   error
}

type saveToggledMsg struct {
	itemID   string
	itemType models.ItemType
	saved    bool
	err      error
}

type collectionLoadedMsg struct {
	page   page
	videos []models.Video
	sounds []models.Sound
	err    error
}

type soundsLoadedMsg struct {
	sounds []models.Sound
	saved  map[string]bool
	err    error
}

type profileSavedMsg struct {
	account models.Account
	err     error
}

type logoutDoneMsg struct {
	err error
}

type statusMsg struct {
	text string
}

type clearStatusMsg struct {
	seq int
}
