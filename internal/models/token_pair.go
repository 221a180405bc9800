package models

// TokenPair is the pair of opaque bearer credentials issued by one successful
// authentication exchange. A persisted pair always originates from a single
// login, register or refresh response — never from two different ones.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Complete reports whether both tokens are present. A torn pair (one entry
// missing) is treated as no pair at all by the store.
func (p TokenPair) Complete() bool {
	return p.AccessToken != "" && p.RefreshToken != ""
}
