package model

import "time"

// SearchScope задаёт радиус поиска объявлений вокруг пользователя.
type SearchScope string

const (
	SearchScopeNarrow SearchScope = "NARROW"
	SearchScopeNormal SearchScope = "NORMAL"
	SearchScopeWide   SearchScope = "WIDE"
)

// Meters возвращает радиус в метрах. Неизвестное значение трактуется как NORMAL.
func (s SearchScope) Meters() float64 {
	switch s {
	case SearchScopeNarrow:
		return 35000
	case SearchScopeWide:
		return 400000
	default:
		return 200000
	}
}

// Valid проверяет, что значение входит в перечисление.
func (s SearchScope) Valid() bool {
	switch s {
	case SearchScopeNarrow, SearchScopeNormal, SearchScopeWide:
		return true
	}
	return false
}

// Role роль пользователя.
type Role string

const RoleUser Role = "USER"

// User — серверная модель пользователя маркетплейса.
type User struct {
	ID       int64  `gorm:"primaryKey;autoIncrement"`
	Username string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null" json:"-"` // bcrypt-хеш, в кеш не попадает

	Nickname    string
	Email       string
	PhoneNumber string
	Address     string
	UserImage   string
	Role        Role `gorm:"type:varchar(16);not null;default:USER"`

	// Точка на сфере (SRID 4326): широта/долгота в градусах
	Latitude  float64 `gorm:"type:double precision"`
	Longitude float64 `gorm:"type:double precision"`

	SearchScope SearchScope `gorm:"type:varchar(16);not null;default:NORMAL"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
