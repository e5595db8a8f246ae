// internal/gateway/gateway.go

// Package gateway submits and evaluates pharmanet transactions through the
// Fabric Gateway, connecting with the signing identity of the organization
// named in each request.
package gateway

import (
	"crypto/x509"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hyperledger/fabric-gateway/pkg/client"
	"github.com/hyperledger/fabric-gateway/pkg/identity"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/sandeepmed2/pharma-network/internal/config"
	"github.com/sandeepmed2/pharma-network/internal/pharma"
)

// Invoker abstracts transaction submission so handlers can be exercised
// without a running Fabric network.
type Invoker interface {
	Submit(orgName, contractName, transactionName string, args ...string) ([]byte, error)
	Evaluate(orgName, contractName, transactionName string, args ...string) ([]byte, error)
}

// Client connects to the pharma network per invocation, mirroring the
// application's one-gateway-per-request lifecycle: connect, invoke,
// disconnect.
type Client struct {
	cfg *config.FabricConfig
}

func New(cfg *config.FabricConfig) *Client {
	return &Client{cfg: cfg}
}

// Submit sends a transaction for endorsement and waits for it to commit.
func (c *Client) Submit(orgName, contractName, transactionName string, args ...string) ([]byte, error) {
	return c.invoke(orgName, contractName, transactionName, args, true)
}

// Evaluate runs a read-only transaction against a single peer.
func (c *Client) Evaluate(orgName, contractName, transactionName string, args ...string) ([]byte, error) {
	return c.invoke(orgName, contractName, transactionName, args, false)
}

func (c *Client) invoke(orgName, contractName, transactionName string, args []string, submit bool) ([]byte, error) {
	org, ok := c.cfg.Orgs[orgName]
	if !ok {
		return nil, pharma.Errorf(pharma.KindValidation, "%s is an invalid organization name to submit transactions on pharma network!!!", orgName)
	}

	conn, err := c.dial()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	gw, err := c.connect(conn, org)
	if err != nil {
		return nil, err
	}
	defer gw.Close()

	network := gw.GetNetwork(c.cfg.ChannelName)
	contract := network.GetContractWithName(c.cfg.ChaincodeName, contractName)

	logrus.WithFields(logrus.Fields{
		"org":         orgName,
		"contract":    contractName,
		"transaction": transactionName,
		"submit":      submit,
	}).Info("Invoking pharmanet transaction")

	if submit {
		return contract.SubmitTransaction(transactionName, args...)
	}
	return contract.EvaluateTransaction(transactionName, args...)
}

func (c *Client) dial() (*grpc.ClientConn, error) {
	if c.cfg.TLSCertPath == "" {
		// Dev networks without peer TLS.
		return grpc.NewClient(c.cfg.PeerEndpoint, grpc.WithTransportCredentials(insecure.NewCredentials()))
	}

	tlsCertPEM, err := os.ReadFile(c.cfg.TLSCertPath)
	if err != nil {
		return nil, fmt.Errorf("read peer TLS certificate: %w", err)
	}
	tlsCert, err := identity.CertificateFromPEM(tlsCertPEM)
	if err != nil {
		return nil, fmt.Errorf("parse peer TLS certificate: %w", err)
	}

	certPool := x509.NewCertPool()
	certPool.AddCert(tlsCert)
	transportCredentials := credentials.NewClientTLSFromCert(certPool, c.cfg.GatewayPeer)

	return grpc.NewClient(c.cfg.PeerEndpoint, grpc.WithTransportCredentials(transportCredentials))
}

func (c *Client) connect(conn *grpc.ClientConn, org config.OrgIdentity) (*client.Gateway, error) {
	certPEM, err := os.ReadFile(org.CertPath)
	if err != nil {
		return nil, fmt.Errorf("read signing certificate: %w", err)
	}
	cert, err := identity.CertificateFromPEM(certPEM)
	if err != nil {
		return nil, fmt.Errorf("parse signing certificate: %w", err)
	}
	id, err := identity.NewX509Identity(org.MSPID, cert)
	if err != nil {
		return nil, fmt.Errorf("build X.509 identity: %w", err)
	}

	keyPEM, err := readFirstFile(org.KeyDir)
	if err != nil {
		return nil, fmt.Errorf("read private key: %w", err)
	}
	privateKey, err := identity.PrivateKeyFromPEM(keyPEM)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	sign, err := identity.NewPrivateKeySign(privateKey)
	if err != nil {
		return nil, fmt.Errorf("build signer: %w", err)
	}

	return client.Connect(
		id,
		client.WithSign(sign),
		client.WithClientConnection(conn),
		client.WithEvaluateTimeout(5*time.Second),
		client.WithEndorseTimeout(15*time.Second),
		client.WithSubmitTimeout(5*time.Second),
		client.WithCommitStatusTimeout(1*time.Minute),
	)
}

// readFirstFile reads the single file in a keystore directory. Fabric names
// the key file after its SKI, so the directory is looked up rather than a
// fixed filename.
func readFirstFile(dir string) ([]byte, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			return os.ReadFile(filepath.Join(dir, entry.Name()))
		}
	}
	return nil, fmt.Errorf("no key file found in %s", dir)
}
