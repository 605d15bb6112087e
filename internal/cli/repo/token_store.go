package repo

// TokenStore описывает хранилище auth-токена на клиенте.
type TokenStore interface {
	Save(token string) error
	Load() (string, error)
	Clear() error
}

// UserContextStore хранит контекст пользователя (последний логин).
type UserContextStore interface {
	SaveLogin(login string) error
	LoadLogin() (string, error)
}

// SessionStore объединяет токен и контекст.
type SessionStore interface {
	TokenStore
	UserContextStore
}
