// internal/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "pharmachannel", cfg.Fabric.ChannelName)
	assert.Equal(t, "pharmanet", cfg.Fabric.ChaincodeName)
	assert.Equal(t, "localhost:7051", cfg.Fabric.PeerEndpoint)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("SERVER_READ_TIMEOUT", "30")
	t.Setenv("FABRIC_CHANNEL", "testchannel")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30, cfg.Server.ReadTimeout)
	assert.Equal(t, "testchannel", cfg.Fabric.ChannelName)
}

func TestLoadIgnoresMalformedInt(t *testing.T) {
	t.Setenv("SERVER_READ_TIMEOUT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
}

func TestLoadBuildsIdentityForEveryOrg(t *testing.T) {
	t.Setenv("FABRIC_CRYPTO_BASE", "/crypto")
	t.Setenv("RETAILER_CERT_PATH", "/custom/retailer-cert.pem")

	cfg, err := Load()
	require.NoError(t, err)

	for _, name := range []string{"Manufacturer", "Distributor", "Retailer", "Transporter", "Consumer"} {
		org, ok := cfg.Fabric.Orgs[name]
		require.True(t, ok, "missing identity for %s", name)
		assert.NotEmpty(t, org.MSPID)
		assert.NotEmpty(t, org.CertPath)
		assert.NotEmpty(t, org.KeyDir)
	}

	assert.Equal(t, "manufacturerMSP", cfg.Fabric.Orgs["Manufacturer"].MSPID)
	assert.Equal(t,
		"/crypto/distributor.pharma-network.com/users/Admin@distributor.pharma-network.com/msp/keystore",
		cfg.Fabric.Orgs["Distributor"].KeyDir)
	assert.Equal(t, "/custom/retailer-cert.pem", cfg.Fabric.Orgs["Retailer"].CertPath)
}

func TestValidateRejectsEmptyChannel(t *testing.T) {
	t.Setenv("FABRIC_CHANNEL", "")

	_, err := Load()
	assert.Error(t, err)
}
