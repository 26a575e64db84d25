package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keygate/internal/shared/errors"
)

type sampleCommand struct {
	Username string `json:"username" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Level    string `json:"permission_level" validate:"omitempty,oneof=read write execute admin"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		err := ValidateStruct(sampleCommand{Username: "alice", Email: "alice@example.com", Level: "read"})
		assert.NoError(t, err)
	})

	t.Run("reports json names", func(t *testing.T) {
		err := ValidateStruct(sampleCommand{Email: "not-an-email", Level: "root"})
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))

		appErr := errors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Contains(t, appErr.Details, "username is required")
		assert.Contains(t, appErr.Details, "email must be a valid email address")
		assert.Contains(t, appErr.Details, "permission_level must be one of [read write execute admin]")
	})
}
