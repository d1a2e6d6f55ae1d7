package parser

import "strings"

// OverrideKeys are the settings accepted by --profile-override. They are
// sent to the configuration manager separately and never appear in the
// generated profile.
var OverrideKeys = []string{
	"server-override", "port-override", "proto-override", "ipv6",
	"dns-fallback-google", "dns-scope",
	"dns-setup-disabled", "dns-sync-lookup",
	"auth-fail-retry", "proxy-host", "proxy-port",
	"proxy-username", "proxy-password",
	"proxy-auth-cleartext", "enable-legacy-algorithms",
	"allow-compression", "persist-tun",
}

// booleanOverrides take a boolean value, normalised to "true" or "false".
var booleanOverrides = map[string]bool{
	"auth-fail-retry":          true,
	"dns-fallback-google":      true,
	"dns-setup-disabled":       true,
	"dns-sync-lookup":          true,
	"enable-legacy-algorithms": true,
	"persist-tun":              true,
}

// IsBooleanOverride reports whether key takes a boolean value.
func IsBooleanOverride(key string) bool {
	return booleanOverrides[key]
}

var (
	clientServer = []string{"client", "server"}
	redirFlags   = []string{
		"autolocal", "def1", "bypass-dhcp", "bypass-dns", "block-local",
		"ipv4", "!ipv4", "ipv6", "!ipv6",
	}
	certProfiles = []string{"legacy", "preferred", "suiteb"}
	tlsVersions  = []string{"1.0", "1.1", "1.2", "1.3"}
	topologies   = []string{"subnet", "net30"}
)

// catalog returns the OpenVPN 3 client option set in declaration order.
func catalog() []OptionSpec {
	return []OptionSpec{
		{
			Name: "auth", Metavar: "ALG", Behavior: BehaviorStore, Arity: Exact(1),
			Suggestions: []string{"SHA1", "SHA256", "SHA384", "SHA512"},
			Help:        "Authenticate packets with HMAC using message digest algorithm alg (default=SHA1)",
		},
		{
			Name: "auth-retry", Metavar: "MODE", Behavior: BehaviorStore, Arity: Exact(1),
			Suggestions: []string{"none", "nointeract", "interact"},
			Help:        "How to handle auth failures - none:disconnect, nointeract=reuse credentials, interact=ask for new credentials",
		},
		{
			Name: "auth-user-pass", Metavar: "[USER-PASS-FILE]", Behavior: BehaviorEmbedFile,
			Arity: ZeroOrMore(), AllowEmptyFile: true,
			Help: "Authenticate with server using username/password",
		},
		{
			Name: "ca", Metavar: "FILE", Behavior: BehaviorEmbedFile, Arity: AtLeast(1),
			Help: "Certificate authority file in .pem format containing root certificate",
		},
		{
			Name: "cd", Metavar: "DIR", Behavior: BehaviorChangeDir, Arity: AtLeast(1),
			Help: "Change working directory to the given directory",
		},
		{
			Name: "cert", Metavar: "FILE", Behavior: BehaviorEmbedFile, Arity: AtLeast(1),
			Help: "Local peer certificate in .pem format signed by a Certificate Authority in --ca file",
		},
		{
			Name: "cipher", Metavar: "ALG", Behavior: BehaviorStore, Arity: Scalar(),
			Suggestions: []string{
				"AES-128-CBC", "AES-192-CBC", "AES-256-CBC",
				"AES-128-GCM", "AES-192-GCM", "AES-256-GCM",
			},
			Help: "Encrypt packets with cipher algorithm alg (default=BF-CBC)",
		},
		{
			Name: "client", Behavior: BehaviorStore, Arity: Flag(),
			Help: "Configures client configuration mode (mandatory)",
		},
		{
			Name: "comp-lzo", Metavar: "[MODE]", Behavior: BehaviorVarArgs, Arity: ZeroOrMore(),
			Suggestions: []string{"yes", "no", "adaptive"},
			Help:        "Use LZO compression (Deprecated, use --compress instead)",
		},
		{
			Name: "compress", Metavar: "[ALG]", Behavior: BehaviorVarArgs, Arity: ZeroOrMore(),
			Suggestions: []string{"lzo", "lz4", "lz4-v2", "stub", "stub-v2"},
			Help:        "Compress using algorithm ALG",
		},
		{
			Name: "config", Metavar: "FILE", Behavior: BehaviorIncludeConfig, Arity: Scalar(),
			Help: "Read configuration options from file",
		},
		{
			Name: "connect-retry", Metavar: "SEC [MAX]", Behavior: BehaviorVarArgs, Arity: AtLeast(1),
			Help: "Wait SEC seconds between connection attempts (default=5). Repeated reconnection " +
				"attempts are slowed down after 5 retries per remote by doubling the wait time after " +
				"each unsuccessful attempt. The optional argument MAX specifies the maximum value " +
				"of wait time in seconds at which it gets capped (default=300)",
		},
		{
			Name: "connect-retry-max", Metavar: "RETRIES", Behavior: BehaviorStore, Arity: Scalar(),
			Help: "RETRIES specifies the number of times each --remote or <connection> entry is tried. " +
				"Specifying RETRIES as one would try each entry exactly once. A successful connection " +
				"resets the counter.",
		},
		{
			Name: "daemon", Behavior: BehaviorStore, Arity: Flag(),
			Help: "Run the VPN tunnel in the background",
		},
		{
			Name: "dev", Metavar: "DEV-NAME", Behavior: BehaviorStore, Arity: Exact(1),
			Help: "tun/tap device to use for VPN tunnel",
		},
		{
			Name: "dev-type", Metavar: "DEV-TYPE", Behavior: BehaviorStore, Arity: Exact(1),
			AllowedValues: []string{"tun"},
			Help:          "Which device type are we using? tun or tap. Not needed if --dev starts with tun or tap",
		},
		{
			Name: "dhcp-option", Metavar: "OPTION [...]", Behavior: BehaviorVarArgs, Arity: AtLeast(1),
			Help: "Set DHCP options which can be picked up by the OS configuring DNS, etc",
		},
		{
			Name: "extra-certs", Metavar: "FILE", Behavior: BehaviorEmbedFile, Arity: AtLeast(1),
			Help: "Specify a file containing one or more PEM certs (concatenated together) " +
				"that complete the local certificate chain.",
		},
		{
			Name: "float", Behavior: BehaviorStore, Arity: Flag(),
			Help: "Allow remote to change its IP address/port",
		},
		{
			Name: "hand-window", Metavar: "SEC", Behavior: BehaviorStore, Arity: Exact(1),
			Help: "Handshake window. The TLS-based key exchange must finalize within SEC seconds " +
				"handshake initiation by any peer. (Default 60 seconds)",
		},
		{
			Name: "http-proxy", Metavar: "SRV PORT [auth] [auth-method]", Behavior: BehaviorVarArgs,
			Arity: AtLeast(2),
			Help:  "Connect to a remote host via an HTTP proxy at address SRV and port PORT. See manual for auth details",
		},
		{
			Name: "http-proxy-user-pass", Metavar: "FILE", Behavior: BehaviorEmbedFile, Arity: AtLeast(1),
			Help: "Fetch HTTP proxy credentials from FILE",
		},
		{
			Name: "ifconfig", Metavar: "LOCAL NETMASK", Behavior: BehaviorStore, Arity: Exact(2),
			Help: "Configure TUN/TAP device with LOCAL for local IPv4 address with netmask NETMASK",
		},
		{
			Name: "ifconfig-ipv6", Metavar: "LOCAL [REMOTE_ENDP]", Behavior: BehaviorVarArgs, Arity: AtLeast(1),
			Help: "Configure TUN/TAP device with LOCAL for local IPv6 address and REMOTE_ENDP as the remote end-point",
		},
		{
			Name: "ignore-unknown-option", Metavar: "OPTION", Behavior: BehaviorVarArgs, Arity: AtLeast(1),
			Help: "Ignore listed options if they are not recognized",
		},
		{
			Name: "inactive", Metavar: "SECS [BYTES]", Behavior: BehaviorVarArgs, Arity: AtLeast(1),
			Help: "Exit after n seconds of activity on TUN/TAP device. If BYTES is added, " +
				"if bytes on the device is less than BYTES the tunnel will also exit",
		},
		{
			Name: "keepalive", Metavar: "P_SECS R_SECS", Behavior: BehaviorVarArgs, Arity: Exact(2),
			Help: "Ping remote every P_SECS second and restart tunnel if no response within R_SECS seconds",
		},
		{
			Name: "key", Metavar: "FILE", Behavior: BehaviorEmbedFile, Arity: AtLeast(1),
			Help: "Local private key in .pem format",
		},
		{
			Name: "key-direction", Metavar: "DIR", Behavior: BehaviorStore, Arity: Exact(1),
			AllowedValues: []string{"0", "1"},
			Help:          "Set key direction for static keys. Valid values: 0, 1",
		},
		{
			Name: "local", Metavar: "HOST", Behavior: BehaviorStore, Arity: Exact(1),
			Help: "Local host name or IP address to bind against on local side",
		},
		{
			Name: "lport", Metavar: "PORT", Behavior: BehaviorStore, Arity: Exact(1),
			Help: "TCP/UDP port number for local bind (default 1194)",
		},
		{
			Name: "mode", Metavar: "MODE", Behavior: BehaviorStore, Arity: Exact(1),
			AllowedValues: []string{"client", "p2p"},
			Help:          `Operational mode. Only "client" is accepted`,
		},
		{
			Name: "mssfix", Metavar: "BYTES", Behavior: BehaviorStore, Arity: Exact(1),
			Help: "Set upper bound on TCP MSS (Default tun-mtu size)",
		},
		{
			Name: "ns-cert-type", Metavar: "TYPE", Behavior: BehaviorStore, Arity: Exact(1),
			AllowedValues: clientServer,
			Help:          "(DEPRECATED) Require that peer certificate is signed with an explicit nsCertType " +
				"designation.  Migrate to --remote-cert-tls ASAP. Valid values: " + strings.Join(clientServer, ", "),
		},
		{
			Name: "persist-tun", Behavior: BehaviorStore, Arity: Flag(),
			Help: "Keep tun/tap device open across connection restarts",
		},
		{
			Name: "ping", Metavar: "SECS", Behavior: BehaviorStore, Arity: Exact(1),
			Help: "Ping remote once per SECS seconds",
		},
		{
			Name: "ping-restart", Metavar: "SECS", Behavior: BehaviorStore, Arity: Exact(1),
			Help: "Restart if n seconds pass without reception of remote ping",
		},
		{
			Name: "pkcs12", Metavar: "FILE", Behavior: BehaviorPKCS12, Arity: Scalar(),
			Help: "PKCS#12 file containing local private key, local certificate and optionally the root CA certificate",
		},
		{
			Name: "port", Metavar: "PORT", Behavior: BehaviorStore, Arity: Exact(1),
			Help: "TCP/UDP port number for both local and remote.",
		},
		{
			Name: "profile-override", Metavar: "OVERRIDE-KEY OVERRIDE-VALUE", Behavior: BehaviorOverride,
			Arity: Exact(2), AllowedValues: OverrideKeys,
			Help: "OpenVPN 3 specific: Override specific settings. Valid override keys: " + strings.Join(OverrideKeys, ", "),
		},
		{
			Name: "proto", Metavar: "PROTO", Behavior: BehaviorStore, Arity: Exact(1),
			AllowedValues: []string{"udp", "tcp", "tcp-client"},
			Help:          "Use protocol PROTO for communicating with peer. Valid values: udp, tcp",
		},
		{
			Name: "push-peer-info", Behavior: BehaviorStore, Arity: Flag(),
			Help: "Push client info to server",
		},
		{
			Name: "redirect-gateway", Metavar: "[FLAGS]", Behavior: BehaviorVarArgs, Arity: ZeroOrMore(),
			AllowedValues: redirFlags,
			Help:          "Automatically execute routing commands to redirect all outgoing IP traffic through " +
				"the VPN.  Valid flags: " + strings.Join(redirFlags, ", "),
		},
		{
			Name: "redirect-private", Metavar: "[FLAGS]", Behavior: BehaviorVarArgs, Arity: ZeroOrMore(),
			AllowedValues: redirFlags,
			Help:          "Like --redirect-gateway, but omit actually changing default gateway. Valid flags: " + strings.Join(redirFlags, ", "),
		},
		{
			Name: "remote", Metavar: "HOST [PORT [PROTO]]", Behavior: BehaviorVarArgs, Arity: AtLeast(1),
			Help: "Remote host or IP. PORT number and PROTO are optional. May be provided multiple times.",
		},
		{
			Name: "remote-cert-eku", Metavar: "OID", Behavior: BehaviorVarArgs, Arity: AtLeast(1),
			Help: "Require the peer certificate to be signed with explicit extended key usage. " +
				"OID can be an object identifier or OpenSSL string representation.",
		},
		{
			Name: "remote-cert-ku", Metavar: "ID", Behavior: BehaviorVarArgs, Arity: AtLeast(1),
			Help: "Require that the peer certificate was signed with explicit key usage (ID). " +
				"More than one ID can be provided. Must be hexadecimal notation of integers",
		},
		{
			Name: "remote-cert-tls", Metavar: "TYPE", Behavior: BehaviorStore, Arity: Exact(1),
			AllowedValues: clientServer,
			Help:          "Require that peer certificate is signed with explicit key usage and extended key " +
				"usage based RFC3280 rules. Valid values: " + strings.Join(clientServer, ", "),
		},
		{
			Name: "remote-random", Behavior: BehaviorStore, Arity: Flag(),
			Help: "If multiple --remote options specified, choose one randomly",
		},
		{
			Name: "reneg-sec", Metavar: "SECS", Behavior: BehaviorStore, Arity: Exact(1),
			Help: "Renegotiate data channel key after SECS seconds. (Default 3600)",
		},
		{
			Name: "route", Metavar: "NETWORK [NETMASK [GATEWAY [METRIC]]]", Behavior: BehaviorVarArgs,
			Arity: AtLeast(1),
			Help:  "Add route to routing table after connection is established.  Multiple routes can be " +
				"specified. Default NETMASK: 255.255.255.255.  Default GATEWAY is taken from " +
				"--route-gateway or --ifconfig",
		},
		{
			Name: "route-gateway", Metavar: "[GW|dhcp]", Behavior: BehaviorStore, Arity: Exact(1),
			Help: "Specify a default gateway for use with --route. See man page for dhcp mode",
		},
		{
			Name: "route-ipv6", Metavar: "NETWORK/PREFIX [GATEWAY [METRIC]]", Behavior: BehaviorVarArgs,
			Arity: AtLeast(1),
			Help:  "Add IPv6 route to routing table after connection is established.  Multiple routes " +
				"can be specified. Default GATEWAY is taken from 'remote' in --ifconfig-ipv6",
		},
		{
			Name: "route-metric", Metavar: "METRIC", Behavior: BehaviorStore, Arity: Exact(1),
			Help: "Specify a default metric for use with --route",
		},
		{
			Name: "route-nopull", Behavior: BehaviorStore, Arity: Flag(),
			Help: "Do not configure routes pushed by remote server",
		},
		{
			Name: "server-poll-timeout", Metavar: "SECS", Behavior: BehaviorStore, Arity: Exact(1),
			Help: "How long to wait for a response from a remote server during connection setup (Default 120 seconds)",
		},
		{
			Name: "setenv", Metavar: "NAME [VALUE]", Behavior: BehaviorVarArgs, Arity: AtLeast(1),
			Help: "Set a custom environmental variable to pass to script.",
		},
		{
			Name: "static-challenge", Metavar: "MSG ECHO", Behavior: BehaviorVarArgs, Arity: Exact(2),
			Help: "Enable static challenge/response protocol using challenge text MSG, with ECHO indicating echo flag (0|1)",
		},
		{
			Name: "tcp-queue-limit", Metavar: "NUM", Behavior: BehaviorStore, Arity: Exact(1),
			Help: "Maximum number of queued TCP output packets",
		},
		{
			Name: "tls-auth", Metavar: "FILE [DIR]", Behavior: BehaviorEmbedTLSAuth, Arity: AtLeast(1),
			Help: "Add additional HMAC auth on TLS control channel. FILE must be a shared secret. " +
				"DIR is optional and defines which sub-keys in FILE to use for HMAC signing and verification",
		},
		{
			Name: "tls-cert-profile", Metavar: "PROFILE", Behavior: BehaviorStore, Arity: Scalar(),
			AllowedValues: certProfiles,
			Help:          "Sets certificate profile which defines acceptable crypto algorithms. Valid profiles: " + strings.Join(certProfiles, ", "),
		},
		{
			Name: "tls-cipher", Metavar: "CIPHER-STRING", Behavior: BehaviorStore, Arity: Scalar(),
			Help: "Sets the accepted cipher list for the TLS based OpenVPN control channel",
		},
		{
			Name: "tls-client", Behavior: BehaviorStore, Arity: Flag(),
			Help: "Enable TLS and assume client role during TLS handshake. Implicitly added when using --client",
		},
		{
			Name: "tls-crypt", Metavar: "FILE", Behavior: BehaviorEmbedFile, Arity: AtLeast(1),
			Help: "Encrypts the TLS control channel with a shared secret key (FILE).  This CANNOT be combined with --tls-auth",
		},
		{
			Name: "tls-crypt-v2", Metavar: "FILE", Behavior: BehaviorEmbedFile, Arity: AtLeast(1),
			Help: "Encrypts the TLS control channel with a client specific secret key (FILE).",
		},
		{
			Name: "tls-version-min", Metavar: "TLS_VERSION ['or-highest']", Behavior: BehaviorVarArgs,
			Arity: AtLeast(1), AllowedValues: append(append([]string{}, tlsVersions...), "or-highest"),
			Help: "Set the minimum TLS version accepted from the remote peer.  Optionally the 'or-highest' " +
				`keyword can be added.  Default: "1.0"  Valid versions: ` + strings.Join(tlsVersions, ", "),
		},
		{
			Name: "tls-version-max", Metavar: "TLS_VERSION", Behavior: BehaviorVarArgs, Arity: Exact(1),
			AllowedValues: tlsVersions,
			Help:          "Set the maximum TLS version accepted from the remote peer.  Default is the highest " +
				"supported.  Valid versions: " + strings.Join(tlsVersions, ", "),
		},
		{
			Name: "tls-timeout", Metavar: "SECS", Behavior: BehaviorStore, Arity: Scalar(),
			Help: "Packet retransmit timeout on TLS control channel if no ACK from remote within n seconds (Default 2 seconds)",
		},
		{
			Name: "topology", Metavar: "TYPE", Behavior: BehaviorStore, Arity: Exact(1),
			AllowedValues: topologies,
			Help:          "Set tunnel topology type. Default is net30. Recommended: subnet. Valid topologies: " + strings.Join(topologies, ", "),
		},
		{
			Name: "tran-window", Metavar: "SECS", Behavior: BehaviorStore, Arity: Exact(1),
			Help: "Transition window -- old data channel key can live this many seconds after new " +
				"key renegotiation begins (Default 3600 secs)",
		},
		{
			Name: "tun-mtu", Metavar: "SIZE", Behavior: BehaviorStore, Arity: Exact(1),
			Help: "Set TUN/TAP device MTU to SIZE and derive TCP/UDP from it (default is 1500)",
		},
		{
			Name: "verb", Metavar: "LEVEL", Behavior: BehaviorStore, Arity: Exact(1), Integer: true,
			AllowedValues: []string{"1", "2", "3", "4", "5", "6"},
			Help:          "Set log verbosity level.  Log levels are NOT compatible with OpenVPN 2 --verb",
		},
		{
			Name: "verify-x509-name", Metavar: "MATCH [FLAGS]", Behavior: BehaviorVarArgs, Arity: AtLeast(1),
			Help: "Accept connections only with a host with a specific X509 subject or CN match string.",
		},

		// Tech preview
		{
			Name: "enable-dco", Dest: "dco", Behavior: BehaviorStore, Arity: Flag(), Group: GroupTechPreview,
			Help: "Enable Data Channel Offload kernel acceleration.",
		},
		{
			Name: "disable-dco", Dest: "dco", Behavior: BehaviorStore, Arity: Flag(), Negate: true,
			Group: GroupTechPreview,
			Help:  "Disable Data Channel Offload kernel acceleration.",
		},

		// Accepted for compatibility with OpenVPN 2 configurations, no effect.
		ignored("auth-nocache", "", Flag(), "Do not cache --askpass or --auth-user-pass in virtual memory.  "+
			"Not applicable with OpenVPN 3 due to different credentials storage model."),
		ignored("bind", "KEYWORDS", ZeroOrMore(), "Bind to local address and port. Not configurable with OpenVPN 3"),
		ignored("chroot", "DIR", Exact(1), "Chroot to this directory after initialization. Not applicable "+
			"with OpenVPN 3, which uses a different execution model."),
		ignored("dev-node", "NODE", Exact(1), "Explicit set the device node instead of using /dev/net/tun. "+
			"This is setting is not configurable in OpenVPN 3 Linux front-ends."),
		ignored("data-ciphers", "CIPHERLIST", Exact(1), "OpenVPN 2.x option used for handling NCP related "+
			"challenges when migrating out of BF-CBC. Not considered needed in OpenVPN 3"),
		ignored("data-ciphers-fallback", "ALG", Exact(1), "OpenVPN 2.x option used for handling NCP related "+
			"challenges when migrating out of BF-CBC. Not considered needed in OpenVPN 3."),
		warnIgnored("down", "SCRIPT", Exact(1), "Run script after tunnel has been torn down.  "+
			"This is solved differently with OpenVPN 3."),
		ignored("down-pre", "", Flag(), "Makes --down scripts run before the disconnect.  Not supported by OpenVPN 3."),
		ignored("explicit-exit-notify", "[ATTEMPTS]", ZeroOrMore(), "On exit/restart, send exit signal to "+
			"remote end. Automatically configured with OpenVPN 3"),
		ignored("fast-io", "", Flag(), "OpenVPN 3 uses a very different socket packet process implementation "+
			"removing the need for this feature"),
		ignored("group", "GROUP", Exact(1), "Run OpenVPN with GROUP group credentials. Not needed with "+
			"OpenVPN 3 which uses a different privilege separation approach"),
		ignored("mute", "SECS", Exact(1), "Silence repeating messages during n seconds. Not supported in OpenVPN3"),
		ignored("mute-replay-warnings", "", Flag(), "Silence the output of replay warnings. Not supported in OpenVPN3"),
		ignored("ncp-ciphers", "CIPHERLIST", Exact(1), "OpenVPN 2.4 option, renamed to --data-ciphers in OpenVPN 2.5"),
		ignored("nice", "LEVEL", Exact(1), "Change process priority. Not supported in OpenVPN 3"),
		ignored("nobind", "", Flag(), "Do not bind to local address and port. This is default behaviour in OpenVPN 3"),
		ignored("persist-key", "", Flag(), "Do not re-read key files across connection restarts. Not needed. "+
			"OpenVPN 3 keeps keys as embedded file elements in the configuration"),
		ignored("ping-timer-rem", "", Flag(), "Feature not available in OpenVPN 3"),
		ignored("pull", "", Flag(), "Enabled by default in OpenVPN 3"),
		ignored("rcvbuf", "SIZE", Exact(1), "Set the TCP/UDP receive buffer size. Not supported in OpenVPN 3"),
		ignored("resolv-retry", "SECS", Exact(1), "If hostname resolve fails for --remote, retry resolve for "+
			"n seconds before failing. Not supported by OpenVPN 3"),
		ignored("route-delay", "", ZeroOrMore(), "Delay n seconds (default 0) after connection establishment, "+
			"before adding routes. Not supported by OpenVPN 3."),
		ignored("route-method", "", Exact(1), "Which method m to use for adding routes on Windows. Not supported by OpenVPN 3."),
		ignored("script-security", "LEVEL", Exact(1), "Sets the security level for scripts which will be run "+
			"by OpenVPN.  Running scripts are not supported by OpenVPN 3."),
		ignored("sndbuf", "SIZE", Exact(1), "Set the TCP/UDP send buffer size. Not supported in OpenVPN 3"),
		ignored("socket-flags", "FLAGS", AtLeast(1), "Applies flags to the transport socket. Not supported in OpenVPN 3"),
		ignored("tun-mtu-extra", "", Exact(1), "Not used by OpenVPN 3"),
		warnIgnored("up", "SCRIPT", Exact(1), "Run script after tunnel has been established.  "+
			"This is solved differently with OpenVPN 3."),
		ignored("user", "USER", Exact(1), "Run OpenVPN with USER user credentials. Not needed with OpenVPN 3 "+
			"which uses a different privilege separation approach"),
	}
}

func ignored(name, metavar string, arity Arity, help string) OptionSpec {
	return OptionSpec{
		Name:     name,
		Metavar:  metavar,
		Arity:    arity,
		Behavior: BehaviorIgnore,
		Group:    GroupIgnored,
		Help:     help,
	}
}

func warnIgnored(name, metavar string, arity Arity, help string) OptionSpec {
	spec := ignored(name, metavar, arity, help)
	spec.Warn = true
	return spec
}
