// Package clerk holds the webhook payload shapes Clerk sends on user
// lifecycle events.
package clerk

import "encoding/json"

type WebhookEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type UserData struct {
	ID             string         `json:"id"`
	FirstName      string         `json:"first_name"`
	LastName       string         `json:"last_name"`
	EmailAddresses []EmailAddress `json:"email_addresses"`
	// PublicMetadata carries the app-level role and family link set by the
	// onboarding flow.
	PublicMetadata PublicMetadata `json:"public_metadata"`
}

type EmailAddress struct {
	EmailAddress string       `json:"email_address"`
	Verification Verification `json:"verification"`
}

type Verification struct {
	Status string `json:"status"`
}

type PublicMetadata struct {
	Role     string `json:"role"`
	ParentID string `json:"parentId"`
}

type DeletedData struct {
	ID string `json:"id"`
}
