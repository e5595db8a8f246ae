// internal/chaincode/contracts/viewlifecycle.go
package contracts

import (
	"time"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/sandeepmed2/pharma-network/internal/chaincode/ledger"
	"github.com/sandeepmed2/pharma-network/internal/models"
	"github.com/sandeepmed2/pharma-network/internal/pharma"
)

// ViewLifecycleContract answers read-only queries about a drug: its current
// state and the full modification history of its ledger key.
type ViewLifecycleContract struct {
	contractapi.Contract
}

// NewViewLifecycleContract returns the lifecycle contract under its
// qualified contract name.
func NewViewLifecycleContract() *ViewLifecycleContract {
	c := &ViewLifecycleContract{}
	c.Name = pharma.ContractViewLifecycle
	return c
}

// normalizeTimestamp converts the ledger's native (seconds, nanos) pair to
// a date-time value. The raw pair never leaves the ledger layer other than
// through here.
func normalizeTimestamp(ts *timestamppb.Timestamp) time.Time {
	ms := ts.GetSeconds()*1000 + int64(ts.GetNanos())/1_000_000
	return time.UnixMilli(ms).UTC()
}

// ViewHistory returns every committed modification of the drug's key in
// commit order: the writing transaction, its timestamp, and the stored
// snapshot (or the deletion sentinel).
func (c *ViewLifecycleContract) ViewHistory(ctx contractapi.TransactionContextInterface, drugName, serialNo string) ([]models.HistoryEntry, error) {
	stub := ctx.GetStub()

	drugKey, err := ledger.DrugKey(stub, drugName, serialNo)
	if err != nil {
		return nil, err
	}

	exists, err := ledger.AssetExists(stub, drugKey)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, pharma.Errorf(pharma.KindNotFound, "Serial number %s of drug %s is not available on pharma network!!!", serialNo, drugName)
	}

	iter, err := ledger.History(stub, drugKey)
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var history []models.HistoryEntry
	for iter.HasNext() {
		modification, err := iter.Next()
		if err != nil {
			return nil, err
		}

		entry := models.HistoryEntry{
			TransactionID: modification.GetTxId(),
			Timestamp:     normalizeTimestamp(modification.GetTimestamp()),
		}
		if modification.GetIsDelete() {
			entry.Data = pharma.KeyDeleted
		} else {
			entry.Data = string(modification.GetValue())
		}

		history = append(history, entry)
	}

	return history, nil
}

// ViewDrugCurrentState returns the current snapshot of a drug.
func (c *ViewLifecycleContract) ViewDrugCurrentState(ctx contractapi.TransactionContextInterface, drugName, serialNo string) (*models.Drug, error) {
	stub := ctx.GetStub()

	drugKey, err := ledger.DrugKey(stub, drugName, serialNo)
	if err != nil {
		return nil, err
	}

	var drug models.Drug
	found, err := ledger.GetAsset(stub, drugKey, &drug)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, pharma.Errorf(pharma.KindNotFound, "Serial number %s of drug %s is not available on pharma network!!!", serialNo, drugName)
	}

	return &drug, nil
}
