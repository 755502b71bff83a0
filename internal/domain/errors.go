package domain

import "errors"

// Domain errors - these represent business rule violations. Handlers map
// them onto the HTTP error taxonomy: auth failures become 401, validation
// failures 400, missing assets 404 and everything else 500.

var (
	// ===========================================
	// Authentication Errors
	// ===========================================

	// ErrInvalidCredentials indicates the username/password pair did not
	// match a stored user.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrMissingToken indicates the Authorization header is absent or not
	// of the form "Bearer <token>".
	ErrMissingToken = errors.New("access token required")

	// ErrInvalidToken indicates the token signature did not verify or the
	// token has expired.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ===========================================
	// Upload Errors
	// ===========================================

	// ErrMalformedRequest indicates the request body is not a valid
	// multipart/form-data payload (e.g. missing boundary).
	ErrMalformedRequest = errors.New("malformed multipart request")

	// ErrNoFileData indicates the multipart body contained no file part.
	ErrNoFileData = errors.New("no file data found")

	// ErrInvalidFileType indicates the file extension is not in the
	// category's allow-list.
	ErrInvalidFileType = errors.New("file type not allowed")

	// ErrUnknownCategory indicates an upload category with no
	// configuration entry.
	ErrUnknownCategory = errors.New("unknown upload category")

	// ===========================================
	// Asset Errors
	// ===========================================

	// ErrInvalidAssetPath indicates a delete target outside the
	// category's public path prefix.
	ErrInvalidAssetPath = errors.New("asset path outside category directory")

	// ErrAssetNotFound indicates the asset to delete does not exist.
	ErrAssetNotFound = errors.New("asset not found")
)
