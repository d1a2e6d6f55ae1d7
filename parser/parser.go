package parser

import (
	"os"
	"strconv"
	"strings"

	"github.com/yllada/ovpn-profile/common"
)

// DefaultMaxIncludeDepth bounds nested --config inclusion.
const DefaultMaxIncludeDepth = common.DefaultMaxIncludeDepth

// DefaultLogVerbosity is reported when --verb is absent.
const DefaultLogVerbosity = 2

// Parser turns OpenVPN 2 style arguments and configuration files into a
// profile. A Parser holds no per-parse state and may be reused.
type Parser struct {
	registry *Registry
	prompt   SecretPrompt
	decoder  PKCS12Decoder
	maxDepth int
	logger   common.Logger
	workDir  string
}

// Option configures a Parser.
type Option func(*Parser)

// WithRegistry replaces the option catalog.
func WithRegistry(r *Registry) Option {
	return func(p *Parser) { p.registry = r }
}

// WithPrompt sets how PKCS#12 passphrases are asked for.
func WithPrompt(prompt SecretPrompt) Option {
	return func(p *Parser) { p.prompt = prompt }
}

// WithPKCS12Decoder sets the PKCS#12 decoder. A nil decoder makes every
// --pkcs12 option fail with ErrCryptoUnavailable.
func WithPKCS12Decoder(d PKCS12Decoder) Option {
	return func(p *Parser) { p.decoder = d }
}

// WithMaxIncludeDepth limits how deeply --config files may nest.
func WithMaxIncludeDepth(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxDepth = n
		}
	}
}

// WithLogger sets the logger used for ignored option reports.
func WithLogger(l common.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithWorkDir sets the directory relative file names resolve against
// until a --cd option changes it. Defaults to the process working
// directory.
func WithWorkDir(dir string) Option {
	return func(p *Parser) { p.workDir = dir }
}

// New creates a Parser using the default registry, the go-pkcs12 PKCS#12
// decoder and a terminal passphrase prompt unless overridden.
func New(opts ...Option) *Parser {
	p := &Parser{
		registry: DefaultRegistry(),
		prompt:   TerminalPrompt(),
		decoder:  DefaultPKCS12Decoder(),
		maxDepth: DefaultMaxIncludeDepth,
		logger:   common.GetLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Registry returns the option catalog the parser dispatches through.
func (p *Parser) Registry() *Registry {
	return p.registry
}

// run carries the state of one top level Parse call.
type run struct {
	p          *Parser
	dir        string
	configName string
	warnings   []string
	// including holds the resolved paths of the config files currently
	// being read, outermost first.
	including []string
}

// Parse collects args, the arguments following the program name, into a
// Result. Any error aborts the whole parse.
func (p *Parser) Parse(args []string) (*Result, error) {
	r := &run{p: p, dir: p.workDir}
	if r.dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, common.WrapError(err, "failed to determine working directory")
		}
		r.dir = wd
	}

	st := NewState()
	if err := r.parseTokens(args, st, 0); err != nil {
		return nil, err
	}
	return &Result{
		state:      st,
		registry:   p.registry,
		configName: r.configName,
		warnings:   r.warnings,
	}, nil
}

func isFlag(tok string) bool {
	return len(tok) > 2 && strings.HasPrefix(tok, "--")
}

// parseTokens dispatches every option in tokens to its collection
// strategy. The value run of an option ends at the next option.
func (r *run) parseTokens(tokens []string, st *State, depth int) error {
	for i := 0; i < len(tokens); {
		tok := tokens[i]
		if !isFlag(tok) {
			return &UnknownOptionError{Option: tok}
		}

		name, inline, hasInline := strings.Cut(tok[2:], "=")
		spec, err := r.p.registry.Lookup(name)
		if err != nil {
			return err
		}

		j := i + 1
		for j < len(tokens) && !isFlag(tokens[j]) {
			j++
		}
		values := make([]string, 0, j-i)
		if hasInline {
			values = append(values, inline)
		}
		values = append(values, tokens[i+1:j]...)
		i = j

		if err := r.apply(spec, values, st, depth); err != nil {
			return err
		}
	}
	return nil
}

// Result is the outcome of a successful parse.
type Result struct {
	state      *State
	registry   *Registry
	configName string
	warnings   []string
}

// State returns the collected option values.
func (r *Result) State() *State {
	return r.state
}

// Generate serializes the state into profile text.
func (r *Result) Generate() string {
	return Generate(r.state, r.registry)
}

// SanityCheck verifies the mandatory options are present.
func (r *Result) SanityCheck() error {
	return SanityCheck(r.state)
}

// ConfigName is the path of the outermost --config file as given, or ""
// when none was read.
func (r *Result) ConfigName() string {
	return r.configName
}

// Warnings returns the messages of ignored options flagged for warning.
func (r *Result) Warnings() []string {
	return r.warnings
}

// Daemon reports whether --daemon was given.
func (r *Result) Daemon() bool {
	v, ok := r.state.Get("daemon")
	return ok && v.Kind == KindBool && v.Bool
}

// PersistTun reports whether --persist-tun was given.
func (r *Result) PersistTun() bool {
	v, ok := r.state.Get("persist_tun")
	return ok && v.Kind == KindBool && v.Bool
}

// LogVerbosity returns the --verb level, DefaultLogVerbosity when unset.
func (r *Result) LogVerbosity() int {
	v, ok := r.state.Get("verb")
	if !ok || v.Kind != KindList || len(v.List) == 0 {
		return DefaultLogVerbosity
	}
	n, err := strconv.Atoi(v.List[len(v.List)-1])
	if err != nil {
		return DefaultLogVerbosity
	}
	return n
}

// DataChannelOffload returns the --enable-dco / --disable-dco choice and
// whether either was given.
func (r *Result) DataChannelOffload() (enabled, set bool) {
	v, ok := r.state.Get("dco")
	if !ok || v.Kind != KindBool {
		return false, false
	}
	return v.Bool, true
}

// Overrides returns the --profile-override settings.
func (r *Result) Overrides() OverrideMap {
	v, ok := r.state.Get("profile_override")
	if !ok || v.Kind != KindOverrides {
		return OverrideMap{}
	}
	return v.clone().Overrides
}
