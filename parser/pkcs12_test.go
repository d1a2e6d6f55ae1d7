package parser

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"errors"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gopkcs12 "software.sslmate.com/src/go-pkcs12"
)

type pkcs12Fixture struct {
	key    *ecdsa.PrivateKey
	leaf   *x509.Certificate
	caCert *x509.Certificate
}

func newPKCS12Fixture(t *testing.T) *pkcs12Fixture {
	t.Helper()

	caKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	caTmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "Test VPN CA"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		IsCA:                  true,
		BasicConstraintsValid: true,
		KeyUsage:              x509.KeyUsageCertSign,
	}
	caDER, err := x509.CreateCertificate(rand.Reader, caTmpl, caTmpl, &caKey.PublicKey, caKey)
	require.NoError(t, err)
	caCert, err := x509.ParseCertificate(caDER)
	require.NoError(t, err)

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	leafTmpl := &x509.Certificate{
		SerialNumber: big.NewInt(2),
		Subject:      pkix.Name{CommonName: "client"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth},
	}
	leafDER, err := x509.CreateCertificate(rand.Reader, leafTmpl, caCert, &key.PublicKey, caKey)
	require.NoError(t, err)
	leaf, err := x509.ParseCertificate(leafDER)
	require.NoError(t, err)

	return &pkcs12Fixture{key: key, leaf: leaf, caCert: caCert}
}

func (f *pkcs12Fixture) encode(t *testing.T, withCA bool, password string) []byte {
	t.Helper()
	return f.encodeWith(t, gopkcs12.LegacyDES, withCA, password)
}

func (f *pkcs12Fixture) encodeWith(t *testing.T, enc *gopkcs12.Encoder, withCA bool, password string) []byte {
	t.Helper()
	var cas []*x509.Certificate
	if withCA {
		cas = []*x509.Certificate{f.caCert}
	}
	data, err := enc.Encode(f.key, f.leaf, cas, password)
	require.NoError(t, err)
	return data
}

// scriptedPrompt answers every prompt with secret and records feedback.
type scriptedPrompt struct {
	secret   string
	asked    int
	sources  []string
	accepted []string
	rejected []string
}

func (p *scriptedPrompt) Secret(prompt, source string) (string, error) {
	p.asked++
	p.sources = append(p.sources, source)
	return p.secret, nil
}

func (p *scriptedPrompt) Accepted(source, secret string) { p.accepted = append(p.accepted, source) }
func (p *scriptedPrompt) Rejected(source string)         { p.rejected = append(p.rejected, source) }

// blockBody returns the PEM text inside a <tag> block.
func blockBody(t *testing.T, tag, s string) []byte {
	t.Helper()
	require.True(t, strings.HasPrefix(s, "<"+tag+">\n"), s)
	require.True(t, strings.HasSuffix(s, "</"+tag+">"), s)
	return []byte(strings.TrimSuffix(strings.TrimPrefix(s, "<"+tag+">\n"), "</"+tag+">"))
}

func TestPKCS12_PassphrasePromptedOnce(t *testing.T) {
	dir := t.TempDir()
	fx := newPKCS12Fixture(t)
	path := writeFile(t, dir, "client.p12", string(fx.encode(t, true, "s3cret")))

	prompt := &scriptedPrompt{secret: "s3cret"}
	res, err := newTestParser(t, dir, WithPrompt(prompt)).Parse([]string{"--pkcs12", "client.p12"})
	require.NoError(t, err)

	assert.Equal(t, 1, prompt.asked)
	assert.Equal(t, []string{path}, prompt.sources)
	assert.Equal(t, []string{path}, prompt.accepted)
	assert.Empty(t, prompt.rejected)

	st := res.State()
	_, ok := st.Get("pkcs12")
	assert.False(t, ok)

	keyVal, _ := st.Get("key")
	keyBlock, _ := pem.Decode(blockBody(t, "key", keyVal.Str))
	require.NotNil(t, keyBlock)
	assert.Equal(t, "PRIVATE KEY", keyBlock.Type)
	parsed, err := x509.ParsePKCS8PrivateKey(keyBlock.Bytes)
	require.NoError(t, err)
	assert.True(t, fx.key.Equal(parsed))

	certVal, _ := st.Get("cert")
	certBlock, _ := pem.Decode(blockBody(t, "cert", certVal.Str))
	require.NotNil(t, certBlock)
	assert.Equal(t, fx.leaf.Raw, certBlock.Bytes)

	caVal, ok := st.Get("ca")
	require.True(t, ok)
	caBlock, _ := pem.Decode(blockBody(t, "ca", caVal.Str))
	require.NotNil(t, caBlock)
	assert.Equal(t, fx.caCert.Raw, caBlock.Bytes)
}

func TestPKCS12_NoPassphrase(t *testing.T) {
	dir := t.TempDir()
	fx := newPKCS12Fixture(t)
	writeFile(t, dir, "client.p12", string(fx.encode(t, false, "")))

	res, err := newTestParser(t, dir).Parse([]string{"--pkcs12", "client.p12"})
	require.NoError(t, err)

	_, ok := res.State().Get("key")
	assert.True(t, ok)
	_, ok = res.State().Get("cert")
	assert.True(t, ok)
	_, ok = res.State().Get("ca")
	assert.False(t, ok, "no CA certificates in the archive")
}

func TestPKCS12_Encodings(t *testing.T) {
	encoders := []struct {
		name string
		enc  *gopkcs12.Encoder
	}{
		{"legacy rc2", gopkcs12.LegacyRC2},
		{"legacy des", gopkcs12.LegacyDES},
		{"modern", gopkcs12.Modern},
		{"modern 2023", gopkcs12.Modern2023},
	}

	for _, e := range encoders {
		for _, password := range []string{"", "s3cret"} {
			name := e.name + "/no passphrase"
			if password != "" {
				name = e.name + "/passphrase"
			}
			t.Run(name, func(t *testing.T) {
				dir := t.TempDir()
				fx := newPKCS12Fixture(t)
				writeFile(t, dir, "client.p12", string(fx.encodeWith(t, e.enc, true, password)))

				prompt := &scriptedPrompt{secret: password}
				res, err := newTestParser(t, dir, WithPrompt(prompt)).Parse([]string{"--pkcs12", "client.p12"})
				require.NoError(t, err)

				if password == "" {
					assert.Zero(t, prompt.asked)
				} else {
					assert.Equal(t, 1, prompt.asked)
				}

				keyVal, _ := res.State().Get("key")
				keyBlock, _ := pem.Decode(blockBody(t, "key", keyVal.Str))
				require.NotNil(t, keyBlock)
				parsed, err := x509.ParsePKCS8PrivateKey(keyBlock.Bytes)
				require.NoError(t, err)
				assert.True(t, fx.key.Equal(parsed))

				certVal, _ := res.State().Get("cert")
				certBlock, _ := pem.Decode(blockBody(t, "cert", certVal.Str))
				require.NotNil(t, certBlock)
				assert.Equal(t, fx.leaf.Raw, certBlock.Bytes)

				caVal, _ := res.State().Get("ca")
				caBlock, _ := pem.Decode(blockBody(t, "ca", caVal.Str))
				require.NotNil(t, caBlock)
				assert.Equal(t, fx.caCert.Raw, caBlock.Bytes)
			})
		}
	}
}

func TestPKCS12_WrongPassphrase(t *testing.T) {
	dir := t.TempDir()
	fx := newPKCS12Fixture(t)
	path := writeFile(t, dir, "client.p12", string(fx.encode(t, true, "s3cret")))

	prompt := &scriptedPrompt{secret: "wrong"}
	_, err := newTestParser(t, dir, WithPrompt(prompt)).Parse([]string{"--pkcs12", "client.p12"})

	var decodeErr *PKCS12DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "client.p12", decodeErr.Filename)
	assert.ErrorIs(t, err, ErrIncorrectPassphrase)
	assert.Equal(t, 1, prompt.asked)
	assert.Equal(t, []string{path}, prompt.rejected)
	assert.Empty(t, prompt.accepted)
}

func TestPKCS12_PromptFailure(t *testing.T) {
	dir := t.TempDir()
	fx := newPKCS12Fixture(t)
	writeFile(t, dir, "client.p12", string(fx.encode(t, true, "s3cret")))

	failing := SecretPromptFunc(func(string, string) (string, error) {
		return "", errors.New("no terminal")
	})
	_, err := newTestParser(t, dir, WithPrompt(failing)).Parse([]string{"--pkcs12", "client.p12"})
	var decodeErr *PKCS12DecodeError
	assert.ErrorAs(t, err, &decodeErr)
}

func TestPKCS12_CryptoUnavailable(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "client.p12", "irrelevant")

	_, err := newTestParser(t, dir, WithPKCS12Decoder(nil)).Parse([]string{"--pkcs12", "client.p12"})
	assert.ErrorIs(t, err, ErrCryptoUnavailable)
}

func TestPKCS12_Errors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "garbage.p12", "not a pkcs12 archive")

	_, err := newTestParser(t, dir).Parse([]string{"--pkcs12", "missing.p12"})
	var embedErr *EmbedIOError
	require.ErrorAs(t, err, &embedErr)
	assert.Equal(t, "pkcs12", embedErr.Option)

	_, err = newTestParser(t, dir).Parse([]string{"--pkcs12", "garbage.p12"})
	var decodeErr *PKCS12DecodeError
	assert.ErrorAs(t, err, &decodeErr)
}

type stubDecoder struct {
	bundle *PKCS12Bundle
}

func (d stubDecoder) Decode([]byte, string) (*PKCS12Bundle, error) {
	return d.bundle, nil
}

func TestPKCS12_CustomDecoder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "client.p12", "opaque")

	dec := stubDecoder{bundle: &PKCS12Bundle{
		PrivateKey:  &pem.Block{Type: "PRIVATE KEY", Bytes: []byte("k")},
		Certificate: &pem.Block{Type: "CERTIFICATE", Bytes: []byte("c")},
		CACerts: []*pem.Block{
			{Type: "CERTIFICATE", Bytes: []byte("ca1")},
			{Type: "CERTIFICATE", Bytes: []byte("ca2")},
		},
	}}
	res, err := newTestParser(t, dir, WithPKCS12Decoder(dec)).Parse([]string{"--pkcs12", "client.p12"})
	require.NoError(t, err)

	ca, _ := res.State().Get("ca")
	assert.Equal(t, 2, strings.Count(ca.Str, "-----BEGIN CERTIFICATE-----"))
	assert.True(t, strings.HasPrefix(ca.Str, "<ca>\n-----BEGIN CERTIFICATE-----\n"))
	assert.True(t, strings.HasSuffix(ca.Str, "-----END CERTIFICATE-----\n</ca>"))
}
