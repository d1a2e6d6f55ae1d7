package parser

import (
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"strings"

	gopkcs12 "software.sslmate.com/src/go-pkcs12"
)

const pkcs12PassphrasePrompt = "PKCS12 passphrase: "

// PKCS12Bundle is the decoded content of a PKCS#12 archive.
type PKCS12Bundle struct {
	PrivateKey  *pem.Block
	Certificate *pem.Block
	CACerts     []*pem.Block
}

// PKCS12Decoder decodes PKCS#12 archives. Implementations return an error
// matching ErrIncorrectPassphrase when the integrity check fails.
type PKCS12Decoder interface {
	Decode(data []byte, password string) (*PKCS12Bundle, error)
}

type chainDecoder struct{}

// DefaultPKCS12Decoder returns a decoder backed by
// software.sslmate.com/src/go-pkcs12. It reads both legacy (3DES, RC2)
// and PBES2/AES archives with SHA-1 or SHA-2 MACs.
func DefaultPKCS12Decoder() PKCS12Decoder {
	return chainDecoder{}
}

// Decode maps a MAC failure to ErrIncorrectPassphrase.
func (chainDecoder) Decode(data []byte, password string) (*PKCS12Bundle, error) {
	key, leaf, caCerts, err := gopkcs12.DecodeChain(data, password)
	if err != nil {
		if errors.Is(err, gopkcs12.ErrIncorrectPassword) {
			return nil, ErrIncorrectPassphrase
		}
		return nil, err
	}
	if leaf == nil {
		return nil, errors.New("archive holds no certificate")
	}

	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("unsupported private key: %w", err)
	}
	bundle := &PKCS12Bundle{
		PrivateKey:  &pem.Block{Type: "PRIVATE KEY", Bytes: der},
		Certificate: &pem.Block{Type: "CERTIFICATE", Bytes: leaf.Raw},
	}
	for _, c := range caCerts {
		bundle.CACerts = append(bundle.CACerts, &pem.Block{Type: "CERTIFICATE", Bytes: c.Raw})
	}
	return bundle, nil
}

func (r *run) extractPKCS12(spec OptionSpec, values []string, st *State) error {
	if err := checkArity(spec, values); err != nil {
		return err
	}
	if r.p.decoder == nil {
		return ErrCryptoUnavailable
	}

	name := values[0]
	path := r.resolve(name)
	data, err := os.ReadFile(path)
	if err != nil {
		return &EmbedIOError{Option: spec.Name, Filename: name, Err: err}
	}

	bundle, err := r.p.decoder.Decode(data, "")
	if errors.Is(err, ErrIncorrectPassphrase) {
		bundle, err = r.decodeWithPassphrase(data, path)
	}
	if err != nil {
		return &PKCS12DecodeError{Filename: name, Err: err}
	}

	st.Set("key", StringValue(pemBlock("key", bundle.PrivateKey)))
	st.Set("cert", StringValue(pemBlock("cert", bundle.Certificate)))
	if len(bundle.CACerts) > 0 {
		st.Set("ca", StringValue(pemBlock("ca", bundle.CACerts...)))
	}
	st.Delete(spec.Dest)
	return nil
}

// decodeWithPassphrase asks for the passphrase once and retries.
func (r *run) decodeWithPassphrase(data []byte, path string) (*PKCS12Bundle, error) {
	if r.p.prompt == nil {
		return nil, ErrIncorrectPassphrase
	}
	pass, err := r.p.prompt.Secret(pkcs12PassphrasePrompt, path)
	if err != nil {
		return nil, fmt.Errorf("reading passphrase: %w", err)
	}

	bundle, err := r.p.decoder.Decode(data, pass)
	if fb, ok := r.p.prompt.(SecretFeedback); ok {
		if err == nil {
			fb.Accepted(path, pass)
		} else if errors.Is(err, ErrIncorrectPassphrase) {
			fb.Rejected(path)
		}
	}
	return bundle, err
}

// pemBlock wraps PEM encoded blocks in a <tag> element.
func pemBlock(tag string, blocks ...*pem.Block) string {
	var b strings.Builder
	b.WriteString("<" + tag + ">\n")
	for _, blk := range blocks {
		b.Write(pem.EncodeToMemory(blk))
	}
	b.WriteString("</" + tag + ">")
	return b.String()
}
