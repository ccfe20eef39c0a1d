package port

type Authorizer interface {
	// IsAuthorized checks whether the given address may use privileged commands.
	IsAuthorized(address string) bool
}
