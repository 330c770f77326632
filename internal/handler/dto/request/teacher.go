package request

import (
	"school-reservations/internal/domain/teacher"
	"school-reservations/internal/usecase/commands"
)

type CreateTeacherRequest struct {
	FirstName string `json:"first_name" binding:"required,max=80"`
	LastName  string `json:"last_name" binding:"required,max=80"`
	Email     string `json:"email" binding:"omitempty,email"`
	Course    string `json:"course" binding:"max=100"`
	Subject   string `json:"subject" binding:"max=100"`
}

func (r CreateTeacherRequest) ToProfile() teacher.Profile {
	return teacher.Profile{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Course:    r.Course,
		Subject:   r.Subject,
	}
}

type UpdateTeacherRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,min=1,max=80"`
	LastName  *string `json:"last_name" binding:"omitempty,min=1,max=80"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Course    *string `json:"course" binding:"omitempty,max=100"`
	Subject   *string `json:"subject" binding:"omitempty,max=100"`
}

func (r UpdateTeacherRequest) ToCommand() commands.UpdateTeacherRequest {
	return commands.UpdateTeacherRequest{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Course:    r.Course,
		Subject:   r.Subject,
	}
}
