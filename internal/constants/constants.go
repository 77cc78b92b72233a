package constants

import "time"

type ContextKey string

const (
	SessionIDKey ContextKey = "session_id"
	IdentityKey  ContextKey = "identity"
)

type RequestID string

const (
	RequestIDKey RequestID = "request_id"
)

const (
	// session cookie名稱
	SessionCookieName = "session_id"
	// session與購物車存活時間
	SessionDuration = 24 * time.Hour
	CartDuration    = 24 * time.Hour
)

type ENV string

const (
	Debug ENV = "debug"
	Dev   ENV = "development"
	Stag  ENV = "staging"
	Prod  ENV = "production"
)
