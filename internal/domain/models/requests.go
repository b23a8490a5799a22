package models

// HomeRequest is the query contract of the home feed endpoint.
type HomeRequest struct {
	Force bool `query:"force"`
}

// ResolveRequest is the query contract of the player resolve endpoint.
type ResolveRequest struct {
	Name string `query:"name" validate:"required,min=2"`
}
