package contextkeys

// contextKey is an unexported type to prevent collisions with context keys defined in
// other packages.
type contextKey string

// String makes contextKey satisfy the Stringer interface to assist with debugging.
func (c contextKey) String() string {
	return "adclad context key " + string(c)
}

const (
	// PrincipalKey holds the authenticated principal resolved by the auth middleware
	PrincipalKey = contextKey("principal")
	// UserIDKey is the hex id of the authenticated user
	UserIDKey = contextKey("userID")
	// UserEmailKey is the e-mail of the authenticated user
	UserEmailKey = contextKey("userEmail")
	// UserRoleKey is the role (vendor|admin) of the authenticated user
	UserRoleKey = contextKey("userRole")
	// RequestIDKey is set by the requestid middleware
	RequestIDKey = contextKey("requestID")
	ComponentKey = contextKey("component")
	OperationKey = contextKey("operation")
)
