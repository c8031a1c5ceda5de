// Package identity models the lifecycle events delivered by the external
// identity provider's webhooks. The event set is closed: every known kind
// decodes into its own payload shape, and anything else parses into a bare
// Event that handlers acknowledge and ignore.
package identity

import (
	"encoding/json"
	"fmt"
)

type EventType string

const (
	OrganizationCreated EventType = "organization.created"
	OrganizationUpdated EventType = "organization.updated"
	OrganizationDeleted EventType = "organization.deleted"
	MembershipCreated   EventType = "organizationMembership.created"
	MembershipDeleted   EventType = "organizationMembership.deleted"
	InvitationCreated   EventType = "organizationInvitation.created"
)

// Organization is the payload of organization.* events.
type Organization struct {
	Id        string `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	LogoUrl   string `json:"logo_url"`
	ImageUrl  string `json:"image_url"`
	CreatedBy string `json:"created_by"`
}

// Image prefers the uploaded logo over the provider-generated image.
func (o *Organization) Image() string {
	if o.LogoUrl != "" {
		return o.LogoUrl
	}
	return o.ImageUrl
}

// Membership is the payload of organizationMembership.* events.
type Membership struct {
	Organization   Organization `json:"organization"`
	PublicUserData struct {
		UserId string `json:"user_id"`
	} `json:"public_user_data"`
}

// Event is the parsed tagged variant: exactly one payload pointer is non-nil
// for known kinds, both are nil for unrecognized ones.
type Event struct {
	Type         EventType
	Organization *Organization
	Membership   *Membership
}

// Known reports whether the event kind is one this system acts on.
func (e *Event) Known() bool {
	return e.Organization != nil || e.Membership != nil || e.Type == InvitationCreated
}

type envelope struct {
	Type EventType       `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Parse decodes a verified webhook payload into a typed event. Unrecognized
// event types are not an error; they come back with empty payloads so the
// caller can acknowledge without acting.
func Parse(payload []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return Event{}, fmt.Errorf("malformed event payload: %w", err)
	}

	evt := Event{Type: env.Type}
	switch env.Type {
	case OrganizationCreated, OrganizationUpdated, OrganizationDeleted:
		var org Organization
		if err := json.Unmarshal(env.Data, &org); err != nil {
			return Event{}, fmt.Errorf("malformed organization payload: %w", err)
		}
		evt.Organization = &org
	case MembershipCreated, MembershipDeleted:
		var m Membership
		if err := json.Unmarshal(env.Data, &m); err != nil {
			return Event{}, fmt.Errorf("malformed membership payload: %w", err)
		}
		evt.Membership = &m
	}
	return evt, nil
}
