package request

import "classifieds-market/internal/data/entity"

type UpdateInfoRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1,max=20"`
	Email *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,numeric,min=10,max=11"`
}

func (r UpdateInfoRequest) Patch() entity.UserPatch {
	return entity.UserPatch{Name: r.Name, Email: r.Email, Phone: r.Phone}
}
