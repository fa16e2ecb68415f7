package model

// Claims is the payload of a signed bearer token. Superuser is a snapshot
// taken at issuance and must never be trusted for authorization; the
// resolver re-reads the live user record instead.
type Claims struct {
	Email     string
	Superuser bool
}

// TokenManager signs and verifies bearer tokens.
type TokenManager interface {
	Issue(claims Claims) (string, error)
	Decode(token string) (Claims, error)
}
