package common

// AuthHeaderName is the HTTP header used to carry the bearer token on
// outbound requests.
const AuthHeaderName = "Authorization"

// AuthScheme is the credential scheme expected in AuthHeaderName.
const AuthScheme = "Bearer"
