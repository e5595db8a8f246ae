// internal/chaincode/contracts/viewlifecycle_test.go
package contracts_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/sandeepmed2/pharma-network/internal/chaincode/chaintest"
	"github.com/sandeepmed2/pharma-network/internal/chaincode/contracts"
	"github.com/sandeepmed2/pharma-network/internal/models"
	"github.com/sandeepmed2/pharma-network/internal/pharma"
)

type ViewLifecycleTestSuite struct {
	suite.Suite
	stub         *chaintest.Stub
	ctx          *chaintest.Context
	registration *contracts.RegistrationContract
	transfer     *contracts.TransferDrugContract
	view         *contracts.ViewLifecycleContract
}

func (s *ViewLifecycleTestSuite) SetupTest() {
	s.stub = chaintest.NewStub()
	s.ctx = chaintest.NewContext(s.stub, string(pharma.OrgManufacturer))
	s.registration = contracts.NewRegistrationContract()
	s.transfer = contracts.NewTransferDrugContract()
	s.view = contracts.NewViewLifecycleContract()
}

func (s *ViewLifecycleTestSuite) addParacetamol() {
	_, err := s.registration.RegisterCompany(s.ctx, "M1", "Acme", "Pune", "Manufacturer")
	require.NoError(s.T(), err)
	_, err = s.registration.AddDrug(s.ctx, "Paracetamol", "SN1", "2023-01-01", "2025-01-01", "M1")
	require.NoError(s.T(), err)
}

func (s *ViewLifecycleTestSuite) TestCurrentStateOfUnknownDrugNotFound() {
	_, err := s.view.ViewDrugCurrentState(s.ctx, "Paracetamol", "SN1")
	s.Require().Error(err)
	s.Equal(pharma.KindNotFound, pharma.KindOf(err))
}

func (s *ViewLifecycleTestSuite) TestCurrentStateReturnsSnapshot() {
	s.addParacetamol()

	drug, err := s.view.ViewDrugCurrentState(s.ctx, "Paracetamol", "SN1")
	s.Require().NoError(err)
	s.Equal("Paracetamol", drug.Name)
	s.NotEmpty(drug.Owner)
}

func (s *ViewLifecycleTestSuite) TestHistoryOfUnknownDrugNotFound() {
	_, err := s.view.ViewHistory(s.ctx, "Paracetamol", "SN1")
	s.Require().Error(err)
	s.Equal(pharma.KindNotFound, pharma.KindOf(err))
}

func (s *ViewLifecycleTestSuite) TestHistoryReplaysOwnershipChanges() {
	s.stub.SetTx("tx-add", 1_600_000_000, 0)
	s.addParacetamol()
	_, err := s.registration.RegisterCompany(s.ctx, "D1", "MediDist", "Pune", "Distributor")
	require.NoError(s.T(), err)
	_, err = s.registration.RegisterCompany(s.ctx, "T1", "FastFreight", "Pune", "Transporter")
	require.NoError(s.T(), err)

	s.ctx.SetMSPID(string(pharma.OrgDistributor))
	_, err = s.transfer.CreatePO(s.ctx, "D1", "M1", "Paracetamol", "1")
	require.NoError(s.T(), err)

	s.stub.SetTx("tx-ship", 1_600_000_100, 500_000_000)
	s.ctx.SetMSPID(string(pharma.OrgManufacturer))
	_, err = s.transfer.CreateShipment(s.ctx, "D1", "Paracetamol", `["SN1"]`, "T1")
	require.NoError(s.T(), err)

	history, err := s.view.ViewHistory(s.ctx, "Paracetamol", "SN1")
	s.Require().NoError(err)
	s.Require().Len(history, 2)

	s.Equal("tx-add", history[0].TransactionID)
	s.Equal("tx-ship", history[1].TransactionID)

	// seconds*1000 + nanos/1e6, normalized at the viewer boundary.
	s.Equal(time.UnixMilli(1_600_000_000_000).UTC(), history[0].Timestamp)
	s.Equal(time.UnixMilli(1_600_000_100_500).UTC(), history[1].Timestamp)

	// Each entry carries the JSON snapshot written by that transaction.
	var snapshot models.Drug
	s.Require().NoError(json.Unmarshal([]byte(history[1].Data), &snapshot))
	s.Equal("Paracetamol", snapshot.Name)
}

func (s *ViewLifecycleTestSuite) TestHistoryMarksDeletedKeys() {
	s.addParacetamol()

	drug, err := s.view.ViewDrugCurrentState(s.ctx, "Paracetamol", "SN1")
	s.Require().NoError(err)

	// Simulate an administrative delete followed by a re-registration; the
	// gap must surface as the deletion sentinel, not as data.
	s.stub.SetTx("tx-del", 1_600_000_200, 0)
	require.NoError(s.T(), s.stub.DelState(drug.ProductID))
	s.stub.SetTx("tx-readd", 1_600_000_300, 0)
	_, err = s.registration.AddDrug(s.ctx, "Paracetamol", "SN1", "2023-01-01", "2025-01-01", "M1")
	s.Require().NoError(err)

	history, err := s.view.ViewHistory(s.ctx, "Paracetamol", "SN1")
	s.Require().NoError(err)
	s.Require().Len(history, 3)
	s.Equal(pharma.KeyDeleted, history[1].Data)
	s.NotEmpty(history[2].Data)
}

func TestViewLifecycleSuite(t *testing.T) {
	suite.Run(t, new(ViewLifecycleTestSuite))
}
