// internal/chaincode/ledger/ledger.go

// Package ledger is the access layer between the pharmanet contracts and the
// ledger state. It owns composite key construction and every read and write
// of durable asset bytes; contracts hold only the keys it hands out.
package ledger

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/hyperledger/fabric-protos-go/ledger/queryresult"

	"github.com/sandeepmed2/pharma-network/internal/pharma"
)

// PutAsset serializes asset as JSON and writes it at key. The write becomes
// durable only when the surrounding transaction commits.
func PutAsset(stub shim.ChaincodeStubInterface, key string, asset interface{}) error {
	data, err := json.Marshal(asset)
	if err != nil {
		return fmt.Errorf("marshal asset %s: %w", key, err)
	}
	return stub.PutState(key, data)
}

// GetAsset loads the asset stored at key into out. It returns false with a
// nil error when the key holds no bytes; absence is not a failure here, the
// caller decides whether it is.
func GetAsset(stub shim.ChaincodeStubInterface, key string, out interface{}) (bool, error) {
	data, err := stub.GetState(key)
	if err != nil {
		return false, fmt.Errorf("read asset %s: %w", key, err)
	}
	if len(data) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("unmarshal asset %s: %w", key, err)
	}
	return true, nil
}

// AssetExists reports whether key holds stored bytes.
func AssetExists(stub shim.ChaincodeStubInterface, key string) (bool, error) {
	data, err := stub.GetState(key)
	if err != nil {
		return false, fmt.Errorf("read asset %s: %w", key, err)
	}
	return len(data) != 0, nil
}

// FirstByPrefix probes for any asset whose composite key shares namespace
// and the given leading key parts. It consumes only the first match and
// closes the iterator before returning; nil result means no match. This is
// an existence and uniqueness probe, never an enumeration.
func FirstByPrefix(stub shim.ChaincodeStubInterface, namespace string, parts ...string) (*queryresult.KV, error) {
	iter, err := stub.GetStateByPartialCompositeKey(namespace, parts)
	if err != nil {
		return nil, fmt.Errorf("open prefix scan on %s: %w", namespace, err)
	}
	defer iter.Close()

	if !iter.HasNext() {
		return nil, nil
	}
	kv, err := iter.Next()
	if err != nil {
		return nil, fmt.Errorf("read prefix scan on %s: %w", namespace, err)
	}
	return kv, nil
}

// History opens a cursor over every committed modification of key in commit
// order. The cursor is a single forward pass; the caller must exhaust or
// close it.
func History(stub shim.ChaincodeStubInterface, key string) (shim.HistoryQueryIteratorInterface, error) {
	iter, err := stub.GetHistoryForKey(key)
	if err != nil {
		return nil, fmt.Errorf("open history for %s: %w", key, err)
	}
	return iter, nil
}

// TxTime returns the timestamp of the executing transaction. Using the tx
// timestamp rather than the wall clock keeps asset records identical across
// every endorsing peer.
func TxTime(stub shim.ChaincodeStubInterface) (time.Time, error) {
	ts, err := stub.GetTxTimestamp()
	if err != nil {
		return time.Time{}, fmt.Errorf("read tx timestamp: %w", err)
	}
	return time.Unix(ts.Seconds, int64(ts.Nanos)).UTC(), nil
}

// CompanyKey builds the composite key of a company from its CRN and name.
func CompanyKey(stub shim.ChaincodeStubInterface, crn, name string) (string, error) {
	return stub.CreateCompositeKey(pharma.NamespaceCompany, []string{crn, name})
}

// DrugKey builds the composite key of a drug from its name and serial number.
func DrugKey(stub shim.ChaincodeStubInterface, name, serialNo string) (string, error) {
	return stub.CreateCompositeKey(pharma.NamespaceDrug, []string{name, serialNo})
}

// PurchaseOrderKey builds the composite key of a purchase order from the
// buyer CRN and drug name.
func PurchaseOrderKey(stub shim.ChaincodeStubInterface, buyerCRN, drugName string) (string, error) {
	return stub.CreateCompositeKey(pharma.NamespacePurchaseOrder, []string{buyerCRN, drugName})
}

// ShipmentKey builds the composite key of a shipment from the buyer CRN and
// drug name.
func ShipmentKey(stub shim.ChaincodeStubInterface, buyerCRN, drugName string) (string, error) {
	return stub.CreateCompositeKey(pharma.NamespaceShipment, []string{buyerCRN, drugName})
}
