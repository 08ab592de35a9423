package jwtx_test

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"
	"time"

	"github.com/aussiebroadwan/intake/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testIssuer = "https://intake.example.com"

func newSigner(t *testing.T, kid string) *jwtx.Signer {
	t.Helper()
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	s, err := jwtx.NewSigner(kid, priv)
	require.NoError(t, err)
	return s
}

func TestSignAndVerify(t *testing.T) {
	signer := newSigner(t, "k1")
	require.Equal(t, "EdDSA", signer.Alg())

	keys := jwtx.NewKeySet()
	keys.AddSigner(signer)
	require.True(t, keys.IsReady())

	now := time.Now().UTC()
	token, err := signer.Sign(jwtx.NewSessionClaims("op-1", "jane@example.com", testIssuer, time.Hour, now))
	require.NoError(t, err)

	claims, err := jwtx.NewVerifier(keys, testIssuer).Verify(token)
	require.NoError(t, err)
	require.Equal(t, "op-1", claims.Subject)
	require.Equal(t, "jane@example.com", claims.Email)
	require.NotEmpty(t, claims.ID)
}

func TestVerifyFailures(t *testing.T) {
	signer := newSigner(t, "k1")
	keys := jwtx.NewKeySet()
	keys.AddSigner(signer)
	now := time.Now().UTC()

	t.Run("wrong issuer", func(t *testing.T) {
		token, err := signer.Sign(jwtx.NewSessionClaims("op-1", "", "https://evil.example.com", time.Hour, now))
		require.NoError(t, err)
		_, err = jwtx.NewVerifier(keys, testIssuer).Verify(token)
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := signer.Sign(jwtx.NewSessionClaims("op-1", "", testIssuer, time.Minute, now.Add(-time.Hour)))
		require.NoError(t, err)
		_, err = jwtx.NewVerifier(keys, testIssuer).Verify(token)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("expired within leeway", func(t *testing.T) {
		token, err := signer.Sign(jwtx.NewSessionClaims("op-1", "", testIssuer, time.Minute, now.Add(-90*time.Second)))
		require.NoError(t, err)
		_, err = jwtx.NewVerifier(keys, testIssuer, jwtx.WithLeeway(time.Minute)).Verify(token)
		require.NoError(t, err)
	})

	t.Run("injected clock", func(t *testing.T) {
		token, err := signer.Sign(jwtx.NewSessionClaims("op-1", "", testIssuer, time.Hour, now))
		require.NoError(t, err)
		later := func() time.Time { return now.Add(2 * time.Hour) }
		_, err = jwtx.NewVerifier(keys, testIssuer, jwtx.WithClock(later)).Verify(token)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("unknown key", func(t *testing.T) {
		other := newSigner(t, "k2")
		token, err := other.Sign(jwtx.NewSessionClaims("op-1", "", testIssuer, time.Hour, now))
		require.NoError(t, err)
		_, err = jwtx.NewVerifier(keys, testIssuer).Verify(token)
		require.ErrorIs(t, err, jwtx.ErrUnknownKID)
	})

	t.Run("forged signature under known kid", func(t *testing.T) {
		forger := newSigner(t, "k1")
		token, err := forger.Sign(jwtx.NewSessionClaims("op-1", "", testIssuer, time.Hour, now))
		require.NoError(t, err)
		_, err = jwtx.NewVerifier(keys, testIssuer).Verify(token)
		require.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := jwtx.NewVerifier(keys, testIssuer).Verify("not.a.jwt")
		require.Error(t, err)
	})
}
