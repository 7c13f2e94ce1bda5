package publishers

import (
	"time"

	"github.com/Adda-Baaj/salestax-lookup/internal/domain"
	"github.com/google/uuid"
)

// Lookup sources recorded on events.
const (
	SourceAPI   = "api"
	SourceCache = "cache"
)

// Event is the payload published downstream after a successful lookup.
type Event struct {
	ID         string                   `json:"id"`
	Address    string                   `json:"address"`
	Source     string                   `json:"source"`
	Response   *domain.TaxQueryResponse `json:"response"`
	LookedUpAt time.Time                `json:"looked_up_at"`
}

// NewEvent constructs an Event for a lookup of address.
func NewEvent(address, source string, resp *domain.TaxQueryResponse) Event {
	return Event{
		ID:         uuid.NewString(),
		Address:    address,
		Source:     source,
		Response:   resp,
		LookedUpAt: time.Now().UTC(),
	}
}

// ResponseCode returns rCode as text for message attributes, or "" when absent.
func (e Event) ResponseCode() string {
	if e.Response == nil {
		return ""
	}
	return e.Response.RCode.String()
}
