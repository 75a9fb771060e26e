package store

import "context"

// tokenKey is the fixed storage key the bearer token persists under.
const tokenKey = "token"

// TokenStore persists the session's bearer token in the metadata table.
// It satisfies the HTTP client's TokenSource interface.
type TokenStore struct {
	meta *Metadata
}

func NewTokenStore(s *Store) *TokenStore {
	return &TokenStore{meta: s.Metadata()}
}

// Token returns the persisted token, or "" when none is stored.
func (t *TokenStore) Token(ctx context.Context) (string, error) {
	v, err := t.meta.Get(ctx, tokenKey)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// Save persists a freshly issued token.
func (t *TokenStore) Save(ctx context.Context, token string) error {
	return t.meta.Set(ctx, tokenKey, []byte(token))
}

// Clear discards the persisted token. Called on logout and on any 401.
func (t *TokenStore) Clear(ctx context.Context) error {
	return t.meta.Delete(ctx, tokenKey)
}
