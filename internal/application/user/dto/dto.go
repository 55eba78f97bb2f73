package dto

import (
	"strings"
	"time"

	"cardly/internal/domain/user"
	"cardly/internal/shared/biztime"
	"cardly/internal/shared/errors"
	"cardly/internal/shared/query"
	"cardly/internal/shared/utils"
)

// CreateUserRequest represents the request to create a user
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Role     string `json:"role" binding:"omitempty,oneof=admin client"`
}

// UpdateUserRequest represents the request to update a user
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Email    *string `json:"email,omitempty" binding:"omitempty,email"`
	Role     *string `json:"role,omitempty" binding:"omitempty,oneof=admin client"`
	Password *string `json:"password,omitempty" binding:"omitempty,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
	ExpiresIn   int64   `json:"expires_in"`
	User        UserDTO `json:"user"`
}

// ListUsersRequest carries the raw listing filters, shared by the listing and the exports.
type ListUsersRequest struct {
	Search      string `form:"search"`
	Role        string `form:"role"`
	IsActive    string `form:"is_active"`
	CreatedFrom string `form:"created_from"`
	CreatedTo   string `form:"created_to"`
	CardsCount  string `form:"cards_count"`
	SortBy      string `form:"sort_by"`
	SortOrder   string `form:"sort_order"`
	Page        int    `form:"page"`
	PerPage     int    `form:"per_page"`
}

// ToFilter validates the raw values. Unpaged filters are used by exports.
func (r ListUsersRequest) ToFilter(paged bool) (user.ListFilter, error) {
	var f user.ListFilter

	f.Search = strings.TrimSpace(r.Search)

	if role := strings.TrimSpace(r.Role); role != "" {
		if role != "admin" && role != "client" {
			return f, errors.NewValidationError("invalid role filter", role)
		}
		f.Role = role
	}

	active, err := utils.ParseOptionalBool("is_active", r.IsActive)
	if err != nil {
		return f, err
	}
	f.IsActive = active

	if s := strings.TrimSpace(r.CreatedFrom); s != "" {
		from, err := biztime.ParseDate(s)
		if err != nil {
			return f, errors.NewValidationError("created_from must be YYYY-MM-DD", s)
		}
		f.CreatedFrom = &from
	}
	if s := strings.TrimSpace(r.CreatedTo); s != "" {
		to, err := biztime.ParseDate(s)
		if err != nil {
			return f, errors.NewValidationError("created_to must be YYYY-MM-DD", s)
		}
		// inclusive day, exclusive bound
		to = to.Add(24 * time.Hour)
		f.CreatedTo = &to
	}

	bucket := user.CardsBucket(strings.TrimSpace(r.CardsCount))
	if !bucket.IsValid() {
		return f, errors.NewValidationError("invalid cards_count filter", string(bucket))
	}
	f.CardsCount = bucket

	order := strings.ToLower(strings.TrimSpace(r.SortOrder))
	if order != "asc" {
		order = "desc"
	}
	f.SortFilter = query.SortFilter{SortBy: r.SortBy, SortOrder: order}

	if paged {
		p := utils.ValidatePagination(r.Page, r.PerPage)
		f.PageFilter = query.PageFilter{Page: p.Page, PageSize: p.PerPage}
	} else {
		f.PageFilter = query.PageFilter{PageSize: -1}
	}
	return f, nil
}

type BulkUsersRequest struct {
	IDs    []uint `json:"ids" binding:"required,min=1,max=500"`
	Action string `json:"action" binding:"required,oneof=activate deactivate delete"`
}

// BulkUsersResult always carries affected and skipped together.
type BulkUsersResult struct {
	Action       string `json:"action"`
	Affected     int64  `json:"affected"`
	Skipped      int64  `json:"skipped"`
	SelfExcluded bool   `json:"self_excluded"`
}

// UserDTO represents the response for a user
type UserDTO struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToUserDTO(u *user.User) UserDTO {
	return UserDTO{
		ID:        u.ID(),
		Name:      u.Name(),
		Email:     u.Email(),
		Role:      u.Role().String(),
		IsActive:  u.IsActive(),
		CreatedAt: u.CreatedAt(),
		UpdatedAt: u.UpdatedAt(),
	}
}

type UserListItemDTO struct {
	UserDTO
	CardsCount int64 `json:"cards_count"`
	TotalViews int64 `json:"total_views"`
}

func ToUserListItemDTO(item *user.ListItem) UserListItemDTO {
	return UserListItemDTO{
		UserDTO:    ToUserDTO(item.User),
		CardsCount: item.CardsCount,
		TotalViews: item.TotalViews,
	}
}

type ListUsersResult struct {
	Items   []UserListItemDTO
	Total   int64
	Page    int
	PerPage int
}
