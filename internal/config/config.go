// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/sandeepmed2/pharma-network/internal/pharma"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Fabric      FabricConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type FabricConfig struct {
	ChannelName   string
	ChaincodeName string
	PeerEndpoint  string
	// GatewayPeer is the hostname asserted in the peer's TLS certificate.
	GatewayPeer string
	TLSCertPath string
	// CryptoBase is the root of the network's crypto material; each
	// organization's identity lives beneath it.
	CryptoBase string
	Orgs       map[string]OrgIdentity
}

// OrgIdentity is the signing identity one organization submits
// transactions under.
type OrgIdentity struct {
	MSPID    string
	CertPath string
	KeyDir   string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	cryptoBase := getEnv("FABRIC_CRYPTO_BASE", "../network/crypto-config/peerOrganizations")

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "3000"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Fabric: FabricConfig{
			ChannelName:   getEnv("FABRIC_CHANNEL", "pharmachannel"),
			ChaincodeName: getEnv("FABRIC_CHAINCODE", "pharmanet"),
			PeerEndpoint:  getEnv("FABRIC_PEER_ENDPOINT", "localhost:7051"),
			GatewayPeer:   getEnv("FABRIC_GATEWAY_PEER", "peer0.manufacturer.pharma-network.com"),
			TLSCertPath:   getEnv("FABRIC_TLS_CERT", ""),
			CryptoBase:    cryptoBase,
			Orgs:          loadOrgIdentities(cryptoBase),
		},
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// loadOrgIdentities builds the identity table for every organization on the
// network. Paths follow the crypto-config layout of the pharma network and
// can be overridden per organization, e.g. MANUFACTURER_CERT_PATH.
func loadOrgIdentities(cryptoBase string) map[string]OrgIdentity {
	orgs := make(map[string]OrgIdentity, len(pharma.OrgByName))
	for name, mspID := range pharma.OrgByName {
		lower := strings.ToLower(name)
		domain := fmt.Sprintf("%s.pharma-network.com", lower)
		userMSP := fmt.Sprintf("%s/%s/users/Admin@%s/msp", cryptoBase, domain, domain)
		envPrefix := strings.ToUpper(lower)

		orgs[name] = OrgIdentity{
			MSPID:    string(mspID),
			CertPath: getEnv(envPrefix+"_CERT_PATH", userMSP+"/signcerts/cert.pem"),
			KeyDir:   getEnv(envPrefix+"_KEY_DIR", userMSP+"/keystore"),
		}
	}
	return orgs
}

func (c *Config) validate() error {
	if c.Fabric.ChannelName == "" || c.Fabric.ChaincodeName == "" {
		return fmt.Errorf("fabric channel and chaincode names must not be empty")
	}
	if c.Fabric.PeerEndpoint == "" {
		return fmt.Errorf("fabric peer endpoint must not be empty")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
