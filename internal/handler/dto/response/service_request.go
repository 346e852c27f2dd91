package response

import (
	"zurbo/internal/usecase/queries"
)

type ServiceRequestResponse struct {
	ID          string `json:"id"`
	ClientID    string `json:"client_id"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Status      string `json:"status"`
	ClosedAt    *int64 `json:"closed_at,omitempty"`
	CreatedAt   int64  `json:"created_at"`
	UpdatedAt   int64  `json:"updated_at"`
}

func FromServiceRequestView(v *queries.ServiceRequestView) *ServiceRequestResponse {
	res := &ServiceRequestResponse{
		ID:          v.ID.String(),
		ClientID:    v.ClientID.String(),
		Category:    v.Category,
		Description: v.Description,
		Status:      v.Status,
		CreatedAt:   v.CreatedAt.Unix(),
		UpdatedAt:   v.UpdatedAt.Unix(),
	}
	if v.ClosedAt != nil {
		closedAt := v.ClosedAt.Unix()
		res.ClosedAt = &closedAt
	}
	return res
}

type ServiceRequestListResponse struct {
	Items      []*ServiceRequestResponse `json:"items"`
	NextCursor *string                   `json:"next_cursor,omitempty"`
}

func FromServiceRequestList(items []*queries.ServiceRequestView, next *queries.Cursor) *ServiceRequestListResponse {
	res := &ServiceRequestListResponse{Items: make([]*ServiceRequestResponse, len(items))}
	for i, it := range items {
		res.Items[i] = FromServiceRequestView(it)
	}
	if next != nil {
		after := next.After
		res.NextCursor = &after
	}
	return res
}
