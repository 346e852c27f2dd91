package request

import (
	"zurbo/internal/domain/servicerequest"
)

type CreateServiceRequestRequest struct {
	Category    string `json:"category" binding:"required"`
	Description string `json:"description" binding:"required"`
}

func (r *CreateServiceRequestRequest) ToDomain() (servicerequest.Category, servicerequest.Description, error) {
	category, err := servicerequest.NewCategory(r.Category)
	if err != nil {
		return "", servicerequest.Description{}, err
	}
	description, err := servicerequest.NewDescription(r.Description)
	if err != nil {
		return "", servicerequest.Description{}, err
	}
	return category, description, nil
}

type ListServiceRequestsQuery struct {
	Status *string `form:"status" binding:"omitempty,oneof=open withdrawn completed"`
	After  string  `form:"after"`
	Limit  int     `form:"limit" binding:"omitempty,min=1,max=100"`
}
