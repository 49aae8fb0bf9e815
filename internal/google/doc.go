// Package google provides OAuth2 authentication and token management for Google APIs.
//
// The OAuth client configuration is read from a credentials.json file
// (GDOCS_CREDENTIALS, or credentials.json under the user config
// directory). Tokens are stored per account under the user cache
// directory; GDOCS_TOKEN overrides the default account's token location.
//
// The flow is paste-code: GetAuthURLForAccount prints an authorization
// URL, and SaveTokenForAccount exchanges the code the user brings back.
package google
