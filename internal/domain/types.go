package domain

type (
	// ExternalId is the stable identity-provider id ("user_..." / "org_...").
	// It is set once at creation and never changes.
	ExternalId = string

	ThreadText = string
)
