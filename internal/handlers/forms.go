package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/diewo77/go-complaints/internal/models"
	"github.com/diewo77/go-complaints/validation"
)

var errPanic = errors.New("handler panicked")

// RegisterForm is the sign-up payload.
type RegisterForm struct {
	StudentID string `form:"student_id" json:"student_id" validate:"required,max=32"`
	Name      string `form:"name" json:"name" validate:"required,max=100"`
	Email     string `form:"email" json:"email" validate:"required,email,max=255"`
	Password  string `form:"password" json:"-" validate:"required,max=72"`
}

// LoginForm is the sign-in payload.
type LoginForm struct {
	StudentID string `form:"student_id" json:"student_id" validate:"required"`
	Password  string `form:"password" json:"-" validate:"required"`
	Remember  bool   `form:"remember" json:"remember"`
}

// ComplaintForm is the submission payload.
type ComplaintForm struct {
	Title       string `form:"title" json:"title" validate:"required,max=200"`
	Description string `form:"description" json:"description" validate:"required"`
	Category    string `form:"category" json:"category" validate:"required,max=50"`
}

// StatusForm is the admin status update payload.
type StatusForm struct {
	Status  string `form:"status" json:"status" validate:"required,oneof=open in_progress resolved rejected"`
	Remarks string `form:"remarks" json:"remarks"`
}

// CategorySuggestions pre-fill the category field; any other value is accepted.
var CategorySuggestions = []string{"academic", "hostel", "maintenance", "library", "transport", "canteen", "other"}

func field(r *http.Request, name string) string {
	return strings.TrimSpace(r.PostFormValue(name))
}

func parseRegister(r *http.Request) RegisterForm {
	return RegisterForm{
		StudentID: field(r, "student_id"),
		Name:      field(r, "name"),
		Email:     field(r, "email"),
		Password:  r.PostFormValue("password"),
	}
}

func parseLogin(r *http.Request) LoginForm {
	remember := r.PostFormValue("remember")
	return LoginForm{
		StudentID: field(r, "student_id"),
		Password:  r.PostFormValue("password"),
		Remember:  remember != "" && remember != "0" && remember != "false",
	}
}

func parseComplaint(r *http.Request) ComplaintForm {
	return ComplaintForm{
		Title:       field(r, "title"),
		Description: field(r, "description"),
		Category:    field(r, "category"),
	}
}

func parseStatus(r *http.Request) StatusForm {
	return StatusForm{
		Status:  field(r, "status"),
		Remarks: field(r, "remarks"),
	}
}

// validate runs struct validation; an unusable payload is reported as a violation map too.
func validate(form any) validation.Violations {
	v, err := validation.Struct(form)
	if err != nil {
		return validation.Violations{"form": "invalid"}
	}
	return v
}

func statusOf(f StatusForm) models.ComplaintStatus {
	return models.ComplaintStatus(f.Status)
}
