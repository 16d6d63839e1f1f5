package handlers

import (
	"github.com/ticketflowai/ticketflow/services"
	"github.com/ticketflowai/ticketflow/websocket"
)

type Container struct {
	Document *DocumentHandler
	Ticket   *TicketHandler
	Auth     *AuthHandler
	WS       *WSHandler
}

func NewContainer(svcs *services.Services, hub *websocket.Hub) *Container {
	return &Container{
		Document: NewDocumentHandler(svcs.Document, svcs.Push, svcs.Catalog),
		Ticket:   NewTicketHandler(svcs.Ticket),
		Auth:     NewAuthHandler(svcs.User),
		WS:       NewWSHandler(hub),
	}
}
