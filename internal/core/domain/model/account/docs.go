// Package account provides the identity-side entities the parcel lifecycle
// consults: the User entity with its role and block flag, and the Principal
// value object carrying the authenticated {userId, email, role} triple.
//
// The lifecycle only reads this model for authorization decisions; account
// management itself (credentials, sessions) is an external collaborator.
package account
