package model

type UserRole string

const (
	Candidate   UserRole = "candidate"
	Interviewer UserRole = "interviewer"
)

func (r UserRole) Valid() bool {
	return r == Candidate || r == Interviewer
}

// swagger:model User
type User struct {
	BaseModel
	Name     string   `gorm:"size:100;not null" json:"name"`
	Email    string   `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password string   `gorm:"size:100;not null" json:"-"`
	Role     UserRole `gorm:"size:20;not null;default:'candidate';index" json:"role"`
}

func (User) TableName() string {
	return "users"
}

// UserSummary 对外暴露的身份信息，不含凭据
type UserSummary struct {
	ID    uint     `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  UserRole `json:"role,omitempty"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
