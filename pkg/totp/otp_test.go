package totp_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authsvc/pkg/totp"
)

func TestGenerateSecret(t *testing.T) {
	t.Parallel()

	secret, err := totp.GenerateSecret()
	require.NoError(t, err)
	assert.Len(t, secret, 32)
	assert.Regexp(t, "^[A-Z2-7]+$", secret)

	other, err := totp.GenerateSecret()
	require.NoError(t, err)
	assert.NotEqual(t, secret, other)
}

func TestProvisioningURI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		params  totp.Params
		want    string
		wantErr error
	}{
		{
			name: "basic URI",
			params: totp.Params{
				Secret:      "ABCDEFGHIJKLMNOP",
				AccountName: "alice",
				Issuer:      "Acme",
			},
			want: "otpauth://totp/Acme:alice?algorithm=SHA1&digits=6&issuer=Acme&period=30&secret=ABCDEFGHIJKLMNOP",
		},
		{
			name: "special characters are escaped",
			params: totp.Params{
				Secret:      "ABCDEFGHIJKLMNOP",
				AccountName: "alice@example.com",
				Issuer:      "Acme & Co",
			},
			want: "otpauth://totp/Acme%20&%20Co:alice@example.com?algorithm=SHA1&digits=6&issuer=Acme+%26+Co&period=30&secret=ABCDEFGHIJKLMNOP",
		},
		{
			name:    "missing secret",
			params:  totp.Params{AccountName: "alice", Issuer: "Acme"},
			wantErr: totp.ErrMissingSecret,
		},
		{
			name:    "invalid secret",
			params:  totp.Params{Secret: "not-base32!", AccountName: "alice", Issuer: "Acme"},
			wantErr: totp.ErrInvalidSecret,
		},
		{
			name:    "missing account name",
			params:  totp.Params{Secret: "ABCDEFGHIJKLMNOP", Issuer: "Acme"},
			wantErr: totp.ErrMissingAccountName,
		},
		{
			name:    "missing issuer",
			params:  totp.Params{Secret: "ABCDEFGHIJKLMNOP", AccountName: "alice"},
			wantErr: totp.ErrMissingIssuer,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := totp.ProvisioningURI(tt.params)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateCode(t *testing.T) {
	t.Parallel()

	secret, err := totp.GenerateSecret()
	require.NoError(t, err)

	now := time.Now()

	code, err := totp.GenerateCode(secret, now)
	require.NoError(t, err)
	assert.Regexp(t, `^\d{6}$`, code)

	// Deterministic within the same 30-second step.
	again, err := totp.GenerateCode(secret, now)
	require.NoError(t, err)
	assert.Equal(t, code, again)

	// RFC 6238 appendix B test vector: SHA1, T=59 -> code 94287082.
	// "12345678901234567890" in Base32 without padding.
	vectorSecret := "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"
	vectorCode, err := totp.GenerateCode(vectorSecret, time.Unix(59, 0))
	require.NoError(t, err)
	assert.Equal(t, "287082", vectorCode)

	_, err = totp.GenerateCode("not-base32!", now)
	require.ErrorIs(t, err, totp.ErrInvalidSecret)
}

func TestValidateCode(t *testing.T) {
	t.Parallel()

	secret, err := totp.GenerateSecret()
	require.NoError(t, err)

	now := time.Now()

	t.Run("current code is accepted at any time", func(t *testing.T) {
		t.Parallel()
		for _, at := range []time.Time{now, now.Add(-24 * time.Hour), now.Add(365 * 24 * time.Hour)} {
			code, err := totp.GenerateCode(secret, at)
			require.NoError(t, err)

			ok, err := totp.ValidateCode(secret, code, at, totp.DefaultWindow)
			require.NoError(t, err)
			assert.True(t, ok)
		}
	})

	t.Run("window boundaries", func(t *testing.T) {
		t.Parallel()
		code, err := totp.GenerateCode(secret, now)
		require.NoError(t, err)

		for steps := -totp.DefaultWindow; steps <= totp.DefaultWindow; steps++ {
			at := now.Add(time.Duration(steps) * totp.Period * time.Second)
			ok, err := totp.ValidateCode(secret, code, at, totp.DefaultWindow)
			require.NoError(t, err)
			assert.True(t, ok, "code should be valid %d steps away", steps)
		}

		for _, steps := range []int{-4, -3, 3, 4} {
			at := now.Add(time.Duration(steps) * totp.Period * time.Second)
			ok, err := totp.ValidateCode(secret, code, at, totp.DefaultWindow)
			require.NoError(t, err)
			assert.False(t, ok, "code should be rejected %d steps away", steps)
		}
	})

	t.Run("zero window accepts only the current step", func(t *testing.T) {
		t.Parallel()
		code, err := totp.GenerateCode(secret, now)
		require.NoError(t, err)

		ok, err := totp.ValidateCode(secret, code, now, 0)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = totp.ValidateCode(secret, code, now.Add(totp.Period*time.Second), 0)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("malformed input", func(t *testing.T) {
		t.Parallel()

		_, err := totp.ValidateCode("not-base32!", "123456", now, totp.DefaultWindow)
		assert.ErrorIs(t, err, totp.ErrInvalidSecret)

		_, err = totp.ValidateCode(secret, "12345", now, totp.DefaultWindow)
		assert.ErrorIs(t, err, totp.ErrInvalidCode)

		_, err = totp.ValidateCode(secret, "12345a", now, totp.DefaultWindow)
		assert.ErrorIs(t, err, totp.ErrInvalidCode)

		_, err = totp.ValidateCode(secret, "", now, totp.DefaultWindow)
		assert.ErrorIs(t, err, totp.ErrInvalidCode)

		code, err := totp.GenerateCode(secret, now)
		require.NoError(t, err)
		_, err = totp.ValidateCode(secret, code, now, -1)
		assert.ErrorIs(t, err, totp.ErrInvalidWindow)
	})

	t.Run("code from another secret is rejected", func(t *testing.T) {
		t.Parallel()

		other, err := totp.GenerateSecret()
		require.NoError(t, err)

		code, err := totp.GenerateCode(other, now)
		require.NoError(t, err)

		ok, err := totp.ValidateCode(secret, code, now, totp.DefaultWindow)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
