package virc

import (
	"crypto/x509"

	"github.com/virc-go/virc/flood"
)

// The Config for a client.
type Config struct {
	// Nick is the nickname requested during registration. By default
	// "VircUser".
	Nick string `yaml:"nick"`

	// Username is sent in the USER command and commonly shown before the @
	// in hostmasks. Some servers tack a ~ in front of it if you do not run
	// an ident server. By default "virc".
	Username string `yaml:"username"`

	// RealName is shown in WHOIS. By default "..."
	RealName string `yaml:"realName"`

	// ServerPassword is sent as PASS before registration. This is not your
	// NickServ or SASL password!
	ServerPassword string `yaml:"serverPassword"`

	// SkipTLSVerification disables certificate verification entirely. Do
	// not do this in production.
	SkipTLSVerification bool `yaml:"skipTlsVerification"`

	// VerifyCertificate, when set, decides whether to accept the server
	// certificate. It receives the leaf certificate and the outcome of
	// chain verification, nil when the chain checks out. When unset, only a
	// clean verification is accepted.
	VerifyCertificate func(cert *x509.Certificate, verifyErr error) bool `yaml:"-"`

	// Pacer overrides the outbound flood pacer. By default a pacer with
	// standard tuning is used.
	Pacer *flood.Pacer `yaml:"-"`

	// Logger receives protocol-level diagnostics. By default the standard
	// log package.
	Logger DebugLogger `yaml:"-"`
}

// WithDefaults returns the config with the default values filled in.
func (config Config) WithDefaults() Config {
	if config.Nick == "" {
		config.Nick = "VircUser"
	}
	if config.Username == "" {
		config.Username = "virc"
	}
	if config.RealName == "" {
		config.RealName = "..."
	}
	if config.Pacer == nil {
		config.Pacer = flood.NewPacer()
	}
	if config.Logger == nil {
		config.Logger = &defaultDebugLogger{}
	}

	return config
}
