package dto

// UpdateTicketDTO carries a partial update for a ticket. Only the fields the
// review UI may edit are accepted; `status` is server-owned and deliberately
// absent.
type UpdateTicketDTO struct {
	Title          *string `json:"title,omitempty"`
	Description    *string `json:"description,omitempty"`
	Priority       *string `json:"priority,omitempty"`
	EstimatedHours *string `json:"estimated_hours,omitempty"`
}

func (d UpdateTicketDTO) Empty() bool {
	return d.Title == nil && d.Description == nil && d.Priority == nil && d.EstimatedHours == nil
}
