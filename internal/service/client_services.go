package service

import (
	"github.com/MKhiriev/vibeclip/internal/logger"
	"github.com/MKhiriev/vibeclip/internal/store"
	"github.com/MKhiriev/vibeclip/internal/utils"
	"github.com/MKhiriev/vibeclip/internal/validators"
)

// ClientServices groups the services used by the TUI.
type ClientServices struct {
	SessionService     SessionService
	InteractionService InteractionService
	FeedService        FeedService
}

func NewClientServices(storages *store.ClientStorages, catalog Catalog, log *logger.Logger) *ClientServices {
	ids := utils.NewUUIDGenerator()

	sessionSvc := NewClientSessionService(storages.Accounts, validators.NewAccountValidator(), ids, log.WithComponent("session"))
	interactionSvc := NewClientInteractionService(storages.Interactions, ids, log.WithComponent("interactions"))

	return &ClientServices{
		SessionService:     sessionSvc,
		InteractionService: interactionSvc,
		FeedService:        NewClientFeedService(catalog, sessionSvc, interactionSvc, log.WithComponent("feed")),
	}
}
