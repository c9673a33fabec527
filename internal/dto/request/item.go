package request

import "classifieds-market/internal/data/entity"

type InsertItemRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Category    string `json:"category" validate:"required"`
	Cnt         int    `json:"cnt" validate:"gte=1,lte=2147483647"`
	Price       int    `json:"price" validate:"gte=0,lte=2147483647"`
	Description string `json:"description" validate:"max=5000"`
}

type UpdateItemRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Cnt         *int    `json:"cnt,omitempty" validate:"omitempty,gte=0,lte=2147483647"`
	Price       *int    `json:"price,omitempty" validate:"omitempty,gte=0,lte=2147483647"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=5000"`
}

func (r UpdateItemRequest) Patch() entity.ItemPatch {
	return entity.ItemPatch{
		Name:        r.Name,
		Cnt:         r.Cnt,
		Price:       r.Price,
		Description: r.Description,
	}
}
