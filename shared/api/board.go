package api

import (
	"net/url"
	"strconv"

	"github.com/aicom-dev/aicom/shared/domain"
	"github.com/aicom-dev/aicom/shared/errors"
)

// Request DTOs

type CreateBoardRequest struct {
	Name         string        `json:"name" validate:"required,max=255"`
	Slug         string        `json:"slug" validate:"required,max=64"`
	Description  string        `json:"description" validate:"max=1000"`
	Icon         string        `json:"icon" validate:"max=255"`
	WritePolicy  domain.Policy `json:"write_policy" validate:"omitempty,oneof=anyone members admins"`
	ReadPolicy   domain.Policy `json:"read_policy" validate:"omitempty,oneof=anyone members admins"`
	DisplayOrder int           `json:"display_order" validate:"gte=0"`
}

func (r *CreateBoardRequest) DecodeForm(form url.Values) error {
	r.Name = form.Get("name")
	r.Slug = form.Get("slug")
	r.Description = form.Get("description")
	r.Icon = form.Get("icon")
	r.WritePolicy = domain.Policy(form.Get("write_policy"))
	r.ReadPolicy = domain.Policy(form.Get("read_policy"))
	if v := form.Get("display_order"); v != "" {
		order, err := strconv.Atoi(v)
		if err != nil {
			return errors.NewValidation("display_order", "must be a number")
		}
		r.DisplayOrder = order
	}
	return nil
}

func (r *CreateBoardRequest) ToDomain() domain.BoardCreationData {
	return domain.BoardCreationData{
		Name:         r.Name,
		Slug:         domain.BoardSlug(r.Slug),
		Description:  r.Description,
		Icon:         r.Icon,
		WritePolicy:  r.WritePolicy,
		ReadPolicy:   r.ReadPolicy,
		DisplayOrder: r.DisplayOrder,
	}
}

// UpdateBoardRequest changes only the fields present. Slug is immutable.
type UpdateBoardRequest struct {
	Name         *string        `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description  *string        `json:"description,omitempty" validate:"omitempty,max=1000"`
	Icon         *string        `json:"icon,omitempty" validate:"omitempty,max=255"`
	WritePolicy  *domain.Policy `json:"write_policy,omitempty" validate:"omitempty,oneof=anyone members admins"`
	ReadPolicy   *domain.Policy `json:"read_policy,omitempty" validate:"omitempty,oneof=anyone members admins"`
	DisplayOrder *int           `json:"display_order,omitempty" validate:"omitempty,gte=0"`
}

func (r *UpdateBoardRequest) DecodeForm(form url.Values) error {
	r.Name = formString(form, "name")
	r.Description = formString(form, "description")
	r.Icon = formString(form, "icon")
	if v := formString(form, "write_policy"); v != nil {
		p := domain.Policy(*v)
		r.WritePolicy = &p
	}
	if v := formString(form, "read_policy"); v != nil {
		p := domain.Policy(*v)
		r.ReadPolicy = &p
	}
	if v := formString(form, "display_order"); v != nil {
		order, err := strconv.Atoi(*v)
		if err != nil {
			return errors.NewValidation("display_order", "must be a number")
		}
		r.DisplayOrder = &order
	}
	return nil
}

func (r *UpdateBoardRequest) ToDomain() domain.BoardUpdateData {
	return domain.BoardUpdateData{
		Name:         r.Name,
		Description:  r.Description,
		Icon:         r.Icon,
		WritePolicy:  r.WritePolicy,
		ReadPolicy:   r.ReadPolicy,
		DisplayOrder: r.DisplayOrder,
	}
}

// Response DTOs

type BoardListResponse struct {
	Boards []domain.Board `json:"boards"`
}

// formString returns nil when the field was not submitted at all.
func formString(form url.Values, key string) *string {
	if _, ok := form[key]; !ok {
		return nil
	}
	v := form.Get(key)
	return &v
}
