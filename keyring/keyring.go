// Package keyring provides secure storage for PKCS#12 passphrases.
// It uses the system keyring when available, falling back to
// encrypted local file storage when not.
package keyring

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/zalando/go-keyring"
	"golang.org/x/crypto/hkdf"

	"github.com/yllada/ovpn-profile/common"
)

const (
	// serviceName is the identifier used in the system keyring.
	serviceName = "ovpn-profile"
	probeKey    = "ovpn-profile-probe"
)

// Common errors returned by keyring operations.
var (
	ErrNotFound = common.ErrCredentialsNotFound
	ErrEmptyID  = errors.New("credential ID cannot be empty")
)

// Keyring stores secrets in the system keyring, or in an AES-GCM encrypted
// file when no keyring service is reachable. The backend is chosen on
// first use.
type Keyring struct {
	mu        sync.RWMutex
	once      sync.Once
	useLocal  bool
	local     map[string]string
	localFile string
	key       []byte
}

// New returns a Keyring whose fallback file is localFile. An empty
// localFile selects ~/.config/ovpn-profile/.credentials.
func New(localFile string) *Keyring {
	return &Keyring{localFile: localFile}
}

var defaultKeyring = sync.OnceValue(func() *Keyring { return New("") })

// Default returns the shared Keyring.
func Default() *Keyring {
	return defaultKeyring()
}

func (k *Keyring) init() {
	k.once.Do(func() {
		// Try system keyring first
		if err := keyring.Set(serviceName, probeKey, "probe"); err == nil {
			keyring.Delete(serviceName, probeKey)
			return
		}
		common.LogDebug("System keyring unavailable, using encrypted file storage")
		k.initLocalStorage()
	})
}

func (k *Keyring) initLocalStorage() {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.useLocal = true
	k.local = make(map[string]string)

	if k.localFile == "" {
		configDir, err := common.GetConfigDir()
		if err != nil {
			common.LogWarn("Cannot locate credentials file: %v", err)
			return
		}
		k.localFile = filepath.Join(configDir, common.CredentialsFileName)
	}

	key, err := deriveKey()
	if err != nil {
		common.LogWarn("Cannot derive credentials key: %v", err)
		return
	}
	k.key = key
	k.loadLocalStore()
}

// deriveKey derives the file encryption key from machine specific data.
func deriveKey() ([]byte, error) {
	hostname, _ := os.Hostname()
	secret := fmt.Sprintf("%s-%s-%d", hostname, getMachineID(), os.Getuid())

	key := make([]byte, 32)
	r := hkdf.New(sha256.New, []byte(secret), []byte(serviceName), []byte("credentials file"))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, err
	}
	return key, nil
}

func getMachineID() string {
	data, err := os.ReadFile("/etc/machine-id")
	if err == nil {
		return strings.TrimSpace(string(data))
	}
	return "default-machine-id"
}

// loadLocalStore reads the credentials file. Callers hold k.mu.
func (k *Keyring) loadLocalStore() {
	data, err := os.ReadFile(k.localFile)
	if err != nil {
		return
	}

	decrypted, err := k.decrypt(data)
	if err != nil {
		common.LogWarn("Ignoring unreadable credentials file %s: %v", k.localFile, err)
		return
	}

	json.Unmarshal(decrypted, &k.local)
}

// saveLocalStore writes the credentials file. Callers hold k.mu.
func (k *Keyring) saveLocalStore() error {
	if k.key == nil || k.localFile == "" {
		return common.ErrCredentialStorage
	}

	data, err := json.Marshal(k.local)
	if err != nil {
		return err
	}

	encrypted, err := k.encrypt(data)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrEncryption, err)
	}

	if err := os.MkdirAll(filepath.Dir(k.localFile), 0700); err != nil {
		return err
	}
	return common.WriteFileAtomic(k.localFile, encrypted, 0600)
}

func (k *Keyring) encrypt(plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(k.key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	ciphertext := gcm.Seal(nonce, nonce, plaintext, nil)
	return []byte(base64.StdEncoding.EncodeToString(ciphertext)), nil
}

func (k *Keyring) decrypt(data []byte) ([]byte, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(string(data))
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(k.key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, common.ErrDecryption
	}

	nonce, ciphertext := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
	plain, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDecryption, err)
	}
	return plain, nil
}

// Store saves a secret under id.
func (k *Keyring) Store(id, secret string) error {
	if id == "" {
		return ErrEmptyID
	}
	if secret == "" {
		return errors.New("secret cannot be empty")
	}
	k.init()

	k.mu.RLock()
	useLocal := k.useLocal
	k.mu.RUnlock()

	if !useLocal {
		if err := keyring.Set(serviceName, id, secret); err == nil {
			return nil
		}
		// Fallback to local storage
		k.initLocalStorage()
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	k.local[id] = secret
	return k.saveLocalStore()
}

// Get retrieves the secret stored under id.
func (k *Keyring) Get(id string) (string, error) {
	if id == "" {
		return "", ErrEmptyID
	}
	k.init()

	k.mu.RLock()
	defer k.mu.RUnlock()

	if !k.useLocal {
		secret, err := keyring.Get(serviceName, id)
		if err != nil {
			return "", ErrNotFound
		}
		return secret, nil
	}

	secret, exists := k.local[id]
	if !exists {
		return "", ErrNotFound
	}
	return secret, nil
}

// Delete removes the secret stored under id.
func (k *Keyring) Delete(id string) error {
	if id == "" {
		return ErrEmptyID
	}
	k.init()

	k.mu.Lock()
	defer k.mu.Unlock()

	if !k.useLocal {
		if err := keyring.Delete(serviceName, id); err != nil && !errors.Is(err, keyring.ErrNotFound) {
			return err
		}
		return nil
	}

	if _, exists := k.local[id]; !exists {
		return nil
	}
	delete(k.local, id)
	return k.saveLocalStore()
}

// Exists checks if a secret is stored under id.
func (k *Keyring) Exists(id string) bool {
	_, err := k.Get(id)
	return err == nil
}

var _ common.CredentialStore = (*Keyring)(nil)
