package request

import "lendly/internal/usecase"

type CreateUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

func (r CreateUserRequest) ToInput() usecase.CreateUserInput {
	return usecase.CreateUserInput{Name: r.Name, Email: r.Email}
}

type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty" binding:"omitempty,email"`
}

func (r UpdateUserRequest) ToInput() usecase.UpdateUserInput {
	return usecase.UpdateUserInput{Name: r.Name, Email: r.Email}
}
