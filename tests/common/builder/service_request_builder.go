//go:build unit || e2e

package builder

import (
	"time"

	"zurbo/internal/domain/servicerequest"
	reqdto "zurbo/internal/handler/dto/request"
	"zurbo/internal/usecase/queries"

	"github.com/google/uuid"
)

type ServiceRequestBuilder struct {
	ID          uuid.UUID
	ClientID    uuid.UUID
	Category    string
	Description string
	Status      servicerequest.Status
	HoldsSlot   bool
	CreatedAt   time.Time
}

func NewServiceRequestBuilder() *ServiceRequestBuilder {
	return &ServiceRequestBuilder{
		ID:          uuid.New(),
		ClientID:    uuid.New(),
		Category:    string(servicerequest.CategoryEncanador),
		Description: "Vazamento na pia da cozinha, precisa trocar o sifão.",
		Status:      servicerequest.StatusOpen,
		HoldsSlot:   true,
		CreatedAt:   time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
	}
}

func (b *ServiceRequestBuilder) With(mutate func(*ServiceRequestBuilder)) *ServiceRequestBuilder {
	mutate(b)
	return b
}

func (b *ServiceRequestBuilder) BuildCreateDTO() reqdto.CreateServiceRequestRequest {
	return reqdto.CreateServiceRequestRequest{
		Category:    b.Category,
		Description: b.Description,
	}
}

func (b *ServiceRequestBuilder) BuildDomain() (*servicerequest.ServiceRequest, error) {
	category, err := servicerequest.NewCategory(b.Category)
	if err != nil {
		return nil, err
	}
	var closedAt *time.Time
	if b.Status != servicerequest.StatusOpen {
		at := b.CreatedAt.Add(time.Hour)
		closedAt = &at
	}
	return servicerequest.ReconstructServiceRequest(b.ID, b.ClientID, category, b.Description, b.Status, b.HoldsSlot, closedAt, b.CreatedAt, b.CreatedAt)
}

func (b *ServiceRequestBuilder) BuildView() *queries.ServiceRequestView {
	return &queries.ServiceRequestView{
		ID:          b.ID,
		ClientID:    b.ClientID,
		Category:    b.Category,
		Description: b.Description,
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.CreatedAt,
	}
}
