package profile

import (
	"context"

	"github.com/compasshq/compass/pkg/kernel"
)

type Repository interface {
	// GetByUserID retrieves the profile for a user
	GetByUserID(ctx context.Context, userID kernel.UserID) (*Profile, error)

	// SaveResumeText stores extracted resume text on the profile
	SaveResumeText(ctx context.Context, userID kernel.UserID, text string) error

	// SaveResumeLink stores the signed resume URL on the profile
	SaveResumeLink(ctx context.Context, userID kernel.UserID, link kernel.BucketURL) error

	// SaveSelectedRole records the role the user picked from their recommendations
	SaveSelectedRole(ctx context.Context, userID kernel.UserID, roleTitle string) error
}
