package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ticketflowai/ticketflow/dto"
	"github.com/ticketflowai/ticketflow/response"
	"github.com/ticketflowai/ticketflow/services"
	"github.com/ticketflowai/ticketflow/utils"
)

type TicketHandler struct {
	tickets *services.TicketService
}

func NewTicketHandler(tickets *services.TicketService) *TicketHandler {
	return &TicketHandler{tickets: tickets}
}

// Update godoc
// @Summary Patch editable fields of a ticket
// @Tags tickets
// @Accept json
// @Produce json
// @Success 200 {object} models.Ticket
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse
// @Router /tickets/{id} [patch]
func (h *TicketHandler) Update(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid ID"})
		return
	}

	var input dto.UpdateTicketDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	ticket, err := h.tickets.UpdateFields(id, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTicketNotFound):
			c.JSON(http.StatusNotFound, response.ErrorResponse{Error: "Ticket not found"})
		case errors.Is(err, services.ErrEditNotAllowed):
			c.JSON(http.StatusConflict, response.ErrorResponse{Error: err.Error()})
		case errors.Is(err, services.ErrNoFields), errors.Is(err, services.ErrInvalidField):
			c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, ticket)
}
