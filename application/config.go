package application

import (
	"fmt"
	"os"

	"github.com/msgbox-sys/msgbox-go/crypto/sign"
	"github.com/msgbox-sys/msgbox-go/protocol"
	"github.com/msgbox-sys/msgbox-go/protocol/allowlist"
	"github.com/msgbox-sys/msgbox-go/utils"
)

// AppConfig provides an abstraction of the
// underlying encoding format for the configs.
type AppConfig interface {
	GetPath() string
}

// A GenesisAgent is an agent populated into the message box
// when the ledger starts from scratch.
type GenesisAgent struct {
	ID           uint64 `toml:"id"`
	SecurityCode string `toml:"security_code"`
}

// Details returns the initial record of the agent.
func (a *GenesisAgent) Details() (protocol.AgentDetails, error) {
	code, err := protocol.AgentCodeFromString(a.SecurityCode)
	if err != nil {
		return protocol.AgentDetails{}, fmt.Errorf("Agent %d: %v", a.ID, err)
	}
	return protocol.AgentDetails{SecurityCode: code}, nil
}

// A Config contains configuration values
// which are read at initialization time from
// a TOML format configuration file.
type Config struct {
	// Path is the location of the config file. Relative paths
	// of the other fields are resolved against it.
	Path   string        `toml:"-"`
	Logger *LoggerConfig `toml:"logger"`
	// DatabasePath is the LevelDB directory of the ledger.
	DatabasePath string `toml:"database"`
	// OwnerKeyPath is the owner's signing private key file.
	OwnerKeyPath string `toml:"owner_key"`
	// ProvingKeyPath and VerifyingKeyPath hold the Groth16 keys of
	// the message circuit. Setting them enables private messages.
	ProvingKeyPath   string `toml:"proving_key,omitempty"`
	VerifyingKeyPath string `toml:"verifying_key,omitempty"`
	// Capacity is the maximum number of allow-listed addresses.
	Capacity uint64 `toml:"capacity"`
	// Agents is the genesis agent whitelist.
	Agents []*GenesisAgent `toml:"agents"`

	ownerKey sign.PrivateKey
}

var _ AppConfig = (*Config)(nil)

// NewConfig initializes a new configuration with the default
// capacity and no agents.
func NewConfig(file string, logger *LoggerConfig) *Config {
	return &Config{
		Path:         file,
		Logger:       logger,
		DatabasePath: "ledger.db",
		OwnerKeyPath: "owner.priv",
		Capacity:     allowlist.DefaultCapacity,
	}
}

// GetPath returns the path of the config file.
func (conf *Config) GetPath() string {
	return conf.Path
}

// OwnerKey returns the owner's signing key loaded by LoadConfig.
func (conf *Config) OwnerKey() sign.PrivateKey {
	return conf.ownerKey
}

// PrivateMessages reports whether the config enables the private
// message box.
func (conf *Config) PrivateMessages() bool {
	return conf.ProvingKeyPath != "" && conf.VerifyingKeyPath != ""
}

// LoadConfig reads the configuration stored at file and the owner's
// signing key it points to. Relative paths are resolved against file.
func LoadConfig(file string) (*Config, error) {
	conf := &Config{Path: file}
	if err := new(TomlLoader).Decode(conf); err != nil {
		return nil, err
	}
	if conf.Capacity == 0 {
		conf.Capacity = allowlist.DefaultCapacity
	}
	key, err := LoadSigningKey(conf.OwnerKeyPath, file)
	if err != nil {
		return nil, err
	}
	conf.ownerKey = key
	for _, a := range conf.Agents {
		if _, err := a.Details(); err != nil {
			return nil, err
		}
	}

	conf.DatabasePath = utils.ResolvePath(conf.DatabasePath, file)
	if conf.PrivateMessages() {
		conf.ProvingKeyPath = utils.ResolvePath(conf.ProvingKeyPath, file)
		conf.VerifyingKeyPath = utils.ResolvePath(conf.VerifyingKeyPath, file)
	}
	if conf.Logger == nil {
		conf.Logger = &LoggerConfig{Environment: "production"}
	}
	if conf.Logger.Path != "" {
		conf.Logger.Path = utils.ResolvePath(conf.Logger.Path, file)
	}
	return conf, nil
}

// SaveConfig writes conf to its path in TOML encoding.
// It refuses to overwrite an existing file.
func SaveConfig(conf AppConfig) error {
	return new(TomlLoader).Encode(conf)
}

// LoadSigningKey loads a private signing key at the given path
// specified in the given config file.
// If there is any parsing error or the key is malformed,
// LoadSigningKey() returns an error with a nil key.
func LoadSigningKey(path, file string) (sign.PrivateKey, error) {
	signPath := utils.ResolvePath(path, file)
	signKey, err := os.ReadFile(signPath)
	if err != nil {
		return nil, fmt.Errorf("Cannot read signing key: %v", err)
	}
	if len(signKey) != sign.PrivateKeySize {
		return nil, fmt.Errorf("Signing key must be 64 bytes (got %d)", len(signKey))
	}
	return signKey, nil
}

// LoadSigningPubKey loads a public signing key at the given path
// specified in the given config file.
// If there is any parsing error or the key is malformed,
// LoadSigningPubKey() returns an error with a nil key.
func LoadSigningPubKey(path, file string) (sign.PublicKey, error) {
	signPath := utils.ResolvePath(path, file)
	signPubKey, err := os.ReadFile(signPath)
	if err != nil {
		return nil, fmt.Errorf("Cannot read signing key: %v", err)
	}
	if len(signPubKey) != sign.PublicKeySize {
		return nil, fmt.Errorf("Signing public-key must be 32 bytes (got %d)", len(signPubKey))
	}
	return signPubKey, nil
}
