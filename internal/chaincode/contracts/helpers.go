// internal/chaincode/contracts/helpers.go
package contracts

import (
	"time"

	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/hyperledger/fabric-contract-api-go/contractapi"

	"github.com/sandeepmed2/pharma-network/internal/chaincode/ledger"
	"github.com/sandeepmed2/pharma-network/internal/models"
	"github.com/sandeepmed2/pharma-network/internal/pharma"
)

// requestorOrg resolves the MSP ID of the organization submitting the
// transaction. Authentication itself happened long before this point; an
// unauthenticated caller never reaches the contract.
func requestorOrg(ctx contractapi.TransactionContextInterface) (pharma.Org, error) {
	mspID, err := ctx.GetClientIdentity().GetMSPID()
	if err != nil {
		return "", pharma.Errorf(pharma.KindAuthorization, "unable to identify requestor organization: %v", err)
	}
	return pharma.Org(mspID), nil
}

// companyKeyByCRN resolves a company's composite key from its CRN alone.
// The composite key also contains the company name, but a CRN is issued
// uniquely per company, so a prefix probe on CRN is sufficient. roleLabel
// names the company's part in the transaction (Buyer, Seller, ...) and is
// embedded in the not-found message.
func companyKeyByCRN(stub shim.ChaincodeStubInterface, companyCRN, roleLabel string) (string, error) {
	kv, err := ledger.FirstByPrefix(stub, pharma.NamespaceCompany, companyCRN)
	if err != nil {
		return "", err
	}
	if kv == nil {
		return "", pharma.Errorf(pharma.KindNotFound, "%s with given company CRN is not registered on pharma network!!!", roleLabel)
	}
	return kv.Key, nil
}

// companyRank loads the company stored at companyKey and returns its
// hierarchy rank. ok is false for transporters, which carry no rank.
func companyRank(stub shim.ChaincodeStubInterface, companyKey string) (rank int, ok bool, err error) {
	var company models.Company
	found, err := ledger.GetAsset(stub, companyKey, &company)
	if err != nil {
		return 0, false, err
	}
	if !found {
		return 0, false, pharma.Errorf(pharma.KindNotFound, "company %s is not registered on pharma network!!!", companyKey)
	}
	if company.HierarchyKey == nil {
		return 0, false, nil
	}
	return *company.HierarchyKey, true, nil
}

// verifyDrugExists checks that at least one serial number of the named drug
// is registered, via a prefix probe on the drug name.
func verifyDrugExists(stub shim.ChaincodeStubInterface, drugName string) error {
	kv, err := ledger.FirstByPrefix(stub, pharma.NamespaceDrug, drugName)
	if err != nil {
		return err
	}
	if kv == nil {
		return pharma.Errorf(pharma.KindNotFound, "No drug with given name is available on pharma network!!!")
	}
	return nil
}

// validateDrugOwner loads the drug identified by (drugName, serialNo) and
// checks that ownerKey is its current owner. It returns the drug's composite
// key for the subsequent ownership transfer.
func validateDrugOwner(stub shim.ChaincodeStubInterface, drugName, serialNo, ownerKey string) (string, error) {
	drugKey, err := ledger.DrugKey(stub, drugName, serialNo)
	if err != nil {
		return "", err
	}

	var drug models.Drug
	found, err := ledger.GetAsset(stub, drugKey, &drug)
	if err != nil {
		return "", err
	}
	if !found {
		return "", pharma.Errorf(pharma.KindNotFound, "Serial number %s of drug %s is not available on pharma network!!!", serialNo, drugName)
	}
	if drug.Owner != ownerKey {
		return "", pharma.Errorf(pharma.KindAuthorization, "Serial number %s of drug %s cannot be shipped/ sold since seller is not currently its owner!!!", serialNo, drugName)
	}
	return drugKey, nil
}

// transferDrug moves ownership of the drug at drugKey to newOwnerKey,
// appending shipmentID to the drug's shipment trail when one is given
// (shipment delivery); direct owner updates pass an empty shipmentID.
func transferDrug(stub shim.ChaincodeStubInterface, drugKey, newOwnerKey, shipmentID string, now time.Time) (*models.Drug, error) {
	var drug models.Drug
	found, err := ledger.GetAsset(stub, drugKey, &drug)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, pharma.Errorf(pharma.KindNotFound, "drug %s is not available on pharma network!!!", drugKey)
	}

	if shipmentID != "" {
		drug.Shipment = append(drug.Shipment, shipmentID)
	}
	drug.Owner = newOwnerKey
	drug.UpdatedAt = now

	if err := ledger.PutAsset(stub, drugKey, &drug); err != nil {
		return nil, err
	}
	return &drug, nil
}

// parseDate parses a yyyy-mm-dd date string.
func parseDate(value, label string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, pharma.Errorf(pharma.KindValidation, "Invalid %s date. Pass a valid date in yyyy-mm-dd format!!!", label)
	}
	return t.UTC(), nil
}
