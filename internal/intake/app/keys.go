package app

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/intake/pkg/cryptox"
	"github.com/aussiebroadwan/intake/pkg/jwtx"
)

// InitSessionKeys loads the Ed25519 session key from cfg.SessionKeyFile,
// creating it on first start, so sessions survive restarts. The key id is
// derived from the public key.
func InitSessionKeys(cfg Config, logger *slog.Logger) (*jwtx.Signer, *jwtx.KeySet, error) {
	key, err := cryptox.LoadOrCreateEd25519Key(cfg.SessionKeyFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load session key: %w", err)
	}

	pub := key.Public().(ed25519.PublicKey)
	signer, err := jwtx.NewSigner(keyID(pub), key)
	if err != nil {
		return nil, nil, err
	}

	keys := jwtx.NewKeySet()
	keys.AddSigner(signer)

	logger.Info("session signing key loaded",
		"algorithm", signer.Alg(),
		"kid", signer.KID(),
		"path", cfg.SessionKeyFile,
	)
	return signer, keys, nil
}

func keyID(pub ed25519.PublicKey) string {
	sum := sha256.Sum256(pub)
	return hex.EncodeToString(sum[:8])
}
