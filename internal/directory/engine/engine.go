// Package engine is the port to the external OpenID Connect engine that owns
// authorization state. The directory only reads interactions and grants and
// reports interaction results back.
package engine

import (
	"context"
	"errors"
)

// ErrInteractionNotFound is returned when the engine no longer knows the
// interaction, usually because it expired.
var ErrInteractionNotFound = errors.New("engine: interaction not found")

// ErrGrantNotFound is returned when a grant id does not resolve.
var ErrGrantNotFound = errors.New("engine: grant not found")

// Prompt names.
const (
	PromptLogin   = "login"
	PromptConsent = "consent"
)

type PromptDetails struct {
	MissingOIDCScope      []string            `json:"missingOIDCScope,omitempty"`
	MissingOIDCClaims     []string            `json:"missingOIDCClaims,omitempty"`
	MissingResourceScopes map[string][]string `json:"missingResourceScopes,omitempty"`
}

type Prompt struct {
	Name    string        `json:"name"`
	Reasons []string      `json:"reasons,omitempty"`
	Details PromptDetails `json:"details"`
}

type Session struct {
	AccountID string `json:"accountId,omitempty"`
}

// Interaction is an in-flight login or consent step.
type Interaction struct {
	UID     string         `json:"uid"`
	Prompt  Prompt         `json:"prompt"`
	Params  map[string]any `json:"params,omitempty"`
	Session *Session       `json:"session,omitempty"`
	GrantID string         `json:"grantId,omitempty"`
}

// ClientID returns the client_id request parameter.
func (i Interaction) ClientID() string {
	s, _ := i.Params["client_id"].(string)
	return s
}

// AccountID returns the authenticated account, if any.
func (i Interaction) AccountID() string {
	if i.Session == nil {
		return ""
	}
	return i.Session.AccountID
}

// Grant is the set of scopes and claims an account has allowed a client.
type Grant struct {
	ID             string              `json:"id,omitempty"`
	AccountID      string              `json:"accountId"`
	ClientID       string              `json:"clientId"`
	OIDCScopes     []string            `json:"openid,omitempty"`
	OIDCClaims     []string            `json:"claims,omitempty"`
	ResourceScopes map[string][]string `json:"resources,omitempty"`
}

type LoginResult struct {
	AccountID string `json:"accountId"`
}

type ConsentResult struct {
	GrantID string `json:"grantId"`
}

// Result finishes an interaction. Exactly one of Login, Consent or Error is
// expected to be set.
type Result struct {
	Login            *LoginResult   `json:"login,omitempty"`
	Consent          *ConsentResult `json:"consent,omitempty"`
	Error            string         `json:"error,omitempty"`
	ErrorDescription string         `json:"error_description,omitempty"`
}

// Provider is the set of engine calls the interaction handlers need.
type Provider interface {
	InteractionDetails(ctx context.Context, uid string) (Interaction, error)
	// InteractionFinished reports the result and returns the URL the browser
	// must be sent to next. With merge set, the result is merged with the
	// previous submission for this interaction.
	InteractionFinished(ctx context.Context, uid string, result Result, merge bool) (string, error)
	FindGrant(ctx context.Context, id string) (Grant, error)
	// SaveGrant stores the grant and returns its id.
	SaveGrant(ctx context.Context, g Grant) (string, error)
}
