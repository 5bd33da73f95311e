package response

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOK(t *testing.T) {
	resp := OK()
	assert.Equal(t, StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.Nil(t, resp.Data)
}

func TestOKWithData(t *testing.T) {
	data := map[string]any{"token": "tok"}
	resp := OKWithData(data)
	assert.Equal(t, StatusOK, resp.Status)
	assert.Equal(t, data, resp.Data)
}

func TestError(t *testing.T) {
	resp := Error("something broke")
	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "something broke", resp.Error)
}

func TestValidationError(t *testing.T) {
	type payload struct {
		Email    string `validate:"required,email"`
		Password string `validate:"required,min=6"`
	}

	tests := []struct {
		name    string
		input   payload
		wantMsg string
	}{
		{
			name:    "missing fields",
			input:   payload{},
			wantMsg: "field Email is a required field, field Password is a required field",
		},
		{
			name:    "invalid email",
			input:   payload{Email: "not-an-email", Password: "secret123"},
			wantMsg: "field Email must be a valid email",
		},
		{
			name:    "short password",
			input:   payload{Email: "a@x.com", Password: "abc"},
			wantMsg: "field Password is too short",
		},
	}

	v := validator.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.input)
			require.Error(t, err)

			resp := ValidationError(err.(validator.ValidationErrors))
			assert.Equal(t, StatusError, resp.Status)
			assert.Equal(t, tt.wantMsg, resp.Error)
		})
	}
}
