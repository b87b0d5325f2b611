// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-quote-guard/models"
)

func TestSecurityInputValidator_PasswordSetup(t *testing.T) {
	v := NewSecurityInputValidator("DELETE ALL DATA")
	ctx := context.Background()

	tests := []struct {
		name    string
		in      models.PasswordSetup
		fields  []string
		wantErr error
	}{
		{
			name: "strong and confirmed",
			in:   models.PasswordSetup{Password: "Str0ng!Pass", Confirm: "Str0ng!Pass"},
		},
		{
			name:    "empty",
			in:      models.PasswordSetup{},
			wantErr: ErrPasswordEmpty,
		},
		{
			name:    "short and weak",
			in:      models.PasswordSetup{Password: "abc", Confirm: "abc"},
			wantErr: ErrPasswordTooShort,
		},
		{
			name:    "short and weak, strength only",
			in:      models.PasswordSetup{Password: "abc", Confirm: "abc"},
			fields:  []string{FieldPasswordStrength},
			wantErr: ErrPasswordWeak,
		},
		{
			name:    "long but weak",
			in:      models.PasswordSetup{Password: "aaaaaaaaaa", Confirm: "aaaaaaaaaa"},
			wantErr: ErrPasswordWeak,
		},
		{
			name:    "mismatch",
			in:      models.PasswordSetup{Password: "Str0ng!Pass", Confirm: "Str0ng!Pas"},
			wantErr: ErrPasswordMismatch,
		},
		{
			name:   "mismatch ignored when not requested",
			in:     models.PasswordSetup{Password: "Str0ng!Pass", Confirm: ""},
			fields: []string{FieldPassword, FieldPasswordStrength},
		},
		{
			name:    "unknown field",
			in:      models.PasswordSetup{Password: "Str0ng!Pass"},
			fields:  []string{"pin"},
			wantErr: ErrUnknownField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, tt.in, tt.fields...)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSecurityInputValidator_PointerInput(t *testing.T) {
	v := NewSecurityInputValidator("DELETE ALL DATA")

	err := v.Validate(context.Background(), &models.PasswordSetup{Password: "abc", Confirm: "abc"})
	require.Error(t, err)
	assert.NoError(t, v.Validate(context.Background(), &models.ResetConfirmation{Phrase: "DELETE ALL DATA"}))
}

func TestSecurityInputValidator_ResetPhrase(t *testing.T) {
	v := NewSecurityInputValidator("DELETE ALL DATA")
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.ResetConfirmation{Phrase: "DELETE ALL DATA"}))
	assert.ErrorIs(t, v.Validate(ctx, models.ResetConfirmation{Phrase: "delete all data"}), ErrResetPhraseMismatch)
	assert.ErrorIs(t, v.Validate(ctx, models.ResetConfirmation{Phrase: "DELETE ALL DATA "}), ErrResetPhraseMismatch)
	assert.ErrorIs(t, v.Validate(ctx, models.ResetConfirmation{}), ErrResetPhraseMismatch)

	empty := NewSecurityInputValidator("")
	assert.ErrorIs(t, empty.Validate(ctx, models.ResetConfirmation{}), ErrResetPhraseMismatch)
}

func TestSecurityInputValidator_UnsupportedType(t *testing.T) {
	v := NewSecurityInputValidator("x")
	assert.ErrorIs(t, v.Validate(context.Background(), "password"), ErrUnsupportedType)
}
