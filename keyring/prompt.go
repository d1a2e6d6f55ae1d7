package keyring

import (
	"path/filepath"
	"sync"

	"github.com/yllada/ovpn-profile/common"
	"github.com/yllada/ovpn-profile/parser"
)

// PassphraseID returns the credential ID of the passphrase protecting the
// PKCS#12 archive at path.
func PassphraseID(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return "pkcs12:" + path
}

// CachedPrompt answers passphrase prompts from a credential store before
// falling back to Prompt. Accepted passphrases are remembered and rejected
// ones forgotten.
type CachedPrompt struct {
	Store  common.CredentialStore
	Prompt parser.SecretPrompt

	mu    sync.Mutex
	tried map[string]bool
}

// NewCachedPrompt wraps prompt with store.
func NewCachedPrompt(store common.CredentialStore, prompt parser.SecretPrompt) *CachedPrompt {
	return &CachedPrompt{Store: store, Prompt: prompt}
}

// Secret returns the stored passphrase of source the first time it is
// asked for, and asks Prompt otherwise.
func (c *CachedPrompt) Secret(prompt, source string) (string, error) {
	c.mu.Lock()
	if c.tried == nil {
		c.tried = make(map[string]bool)
	}
	first := !c.tried[source]
	c.tried[source] = true
	c.mu.Unlock()

	if first {
		if secret, err := c.Store.Get(PassphraseID(source)); err == nil {
			common.LogDebug("Using stored passphrase for %s", source)
			return secret, nil
		}
	}
	return c.Prompt.Secret(prompt, source)
}

// Accepted stores secret for source.
func (c *CachedPrompt) Accepted(source, secret string) {
	if err := c.Store.Store(PassphraseID(source), secret); err != nil {
		common.LogWarn("Could not remember passphrase for %s: %v", source, err)
	}
}

// Rejected forgets any stored passphrase of source.
func (c *CachedPrompt) Rejected(source string) {
	if err := c.Store.Delete(PassphraseID(source)); err != nil {
		common.LogDebug("Could not forget passphrase for %s: %v", source, err)
	}
}

var (
	_ parser.SecretPrompt   = (*CachedPrompt)(nil)
	_ parser.SecretFeedback = (*CachedPrompt)(nil)
)
