package validation

import (
	"errors"
	"testing"
	"time"

	"github.com/localnerve/jobboard/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Name     string   `json:"name" validate:"required,min=2,max=50"`
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=8,password"`
	Founded  int      `json:"founded,omitempty" validate:"omitempty,pastyear"`
	Tags     []string `json:"tags" validate:"min=1"`
}

func details(t *testing.T, err error) map[string][]string {
	t.Helper()
	var ce *types.CustomError
	require.True(t, errors.As(err, &ce), "expected a CustomError, got %v", err)
	assert.Equal(t, types.CodeValidation, ce.Type)
	return ce.Details
}

func TestStruct(t *testing.T) {
	valid := signup{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "Secret123",
		Founded:  2015,
		Tags:     []string{"go"},
	}
	assert.NoError(t, Struct(&valid))

	t.Run("fields are reported by json name", func(t *testing.T) {
		in := valid
		in.Name = "A"
		in.Email = "nope"
		got := details(t, Struct(&in))
		assert.Equal(t, []string{"name must be at least 2 characters"}, got["name"])
		assert.Equal(t, []string{"Please provide a valid email"}, got["email"])
		assert.Len(t, got, 2)
	})

	t.Run("password strength", func(t *testing.T) {
		for _, pw := range []string{"alllowercase1", "ALLUPPER123", "NoDigitsHere"} {
			in := valid
			in.Password = pw
			got := details(t, Struct(&in))
			assert.Contains(t, got["password"][0], "one lowercase letter", pw)
		}
	})

	t.Run("future founding year", func(t *testing.T) {
		in := valid
		in.Founded = time.Now().Year() + 1
		got := details(t, Struct(&in))
		assert.Equal(t, []string{"founded cannot be in the future"}, got["founded"])
	})

	t.Run("empty slice", func(t *testing.T) {
		in := valid
		in.Tags = nil
		got := details(t, Struct(&in))
		assert.Equal(t, []string{"tags must contain at least 1 item(s)"}, got["tags"])
	})
}
