package session

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/Skotchmaster/storefront/internal/models"
)

// Simulated accepts any non-empty credential pair. Nothing is verified; it
// stands in until a real directory is configured.
type Simulated struct{}

func (Simulated) Authenticate(_ context.Context, email, _ string) (models.User, error) {
	name := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		name = email[:at]
	}
	return models.User{ID: uuid.NewString(), Name: name, Email: email}, nil
}

func (Simulated) Register(_ context.Context, name, email, _ string) (models.User, error) {
	return models.User{ID: uuid.NewString(), Name: name, Email: email}, nil
}
