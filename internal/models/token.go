package models

// TokenPayload is the authenticated operator carried by the auth token
type TokenPayload struct {
	OperatorID uint64
}

// Credentials is operator login request
type Credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}
