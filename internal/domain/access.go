package domain

// AccessFlags is the authoritative privilege record for one identity,
// read from the profile table by user_id.
type AccessFlags struct {
	Admin  bool
	Banned bool
}

// TokenPair is the browser-held session artifact: both tokens are opaque
// strings issued by the identity provider.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
