package domain

import "time"

// Role роль пользователя
type Role string

const (
	RoleStudent       Role = "student"
	RoleAdmin         Role = "admin"
	RoleIndustryAdmin Role = "industry_admin"
)

// IsValid проверяет роль
func (r Role) IsValid() bool {
	return r == RoleStudent || r == RoleAdmin || r == RoleIndustryAdmin
}

// IsAdmin returns true for global and industry-scoped administrators
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleIndustryAdmin
}

// User учетная запись студента или администратора
type User struct {
	ID            int64
	Email         string
	PasswordHash  string
	FirstName     string
	LastName      string
	Phone         *string
	Role          Role
	EmailVerified bool
	IndustryIDs   []int64 // только для industry_admin
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FullName возвращает имя и фамилию
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Actor пользователь, выполняющий административное действие
type Actor struct {
	UserID      int64
	Role        Role
	IndustryIDs []int64
}

// IsGlobalAdmin returns true for unrestricted administrators
func (a Actor) IsGlobalAdmin() bool {
	return a.Role == RoleAdmin
}

// CanManageIndustry проверяет доступ администратора к отрасли
func (a Actor) CanManageIndustry(industryID int64) bool {
	if a.Role == RoleAdmin {
		return true
	}
	if a.Role != RoleIndustryAdmin {
		return false
	}
	for _, id := range a.IndustryIDs {
		if id == industryID {
			return true
		}
	}
	return false
}

// ScopeIndustryIDs возвращает ограничение по отраслям для выборок
// nil означает отсутствие ограничения (глобальный админ)
func (a Actor) ScopeIndustryIDs() []int64 {
	if a.Role == RoleAdmin {
		return nil
	}
	if a.IndustryIDs == nil {
		return []int64{}
	}
	return a.IndustryIDs
}
