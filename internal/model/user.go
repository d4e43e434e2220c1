package model

type UserRole string

const (
	RoleUser  UserRole = "User"
	RoleAdmin UserRole = "Admin"
)

type UserState string

const (
	UserNormal UserState = "Normal"
	UserLocked UserState = "Locked"
)

type User struct {
	BaseModel
	Name     string    `gorm:"size:255;not null" json:"name"`
	Code     string    `gorm:"size:15;uniqueIndex;not null" json:"code"`
	Email    string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password string    `gorm:"size:100;not null" json:"-"`
	State    UserState `gorm:"type:enum('Normal','Locked');default:'Normal'" json:"state"`
	Role     UserRole  `gorm:"type:enum('User','Admin');default:'User'" json:"role"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsLocked() bool {
	return u.State == UserLocked
}
