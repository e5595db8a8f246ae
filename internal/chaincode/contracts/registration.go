// internal/chaincode/contracts/registration.go

// Package contracts implements the pharmanet smart contracts: company and
// drug registration, the purchase order / shipment / retail transfer
// workflow, and the drug lifecycle viewer. Every contract function runs
// inside one ledger transaction; a returned error aborts it with no state
// written.
package contracts

import (
	"github.com/hyperledger/fabric-contract-api-go/contractapi"

	"github.com/sandeepmed2/pharma-network/internal/chaincode/ledger"
	"github.com/sandeepmed2/pharma-network/internal/models"
	"github.com/sandeepmed2/pharma-network/internal/pharma"
)

// RegistrationContract registers companies and drugs on the pharma network.
type RegistrationContract struct {
	contractapi.Contract
}

// NewRegistrationContract returns the registration contract under its
// qualified contract name.
func NewRegistrationContract() *RegistrationContract {
	c := &RegistrationContract{}
	c.Name = pharma.ContractRegistration
	return c
}

// RegisterCompany registers a new company under its CRN. A CRN is issued
// once per company, so registration conflicts are detected on the CRN alone
// regardless of the name submitted with it.
func (c *RegistrationContract) RegisterCompany(ctx contractapi.TransactionContextInterface, companyCRN, companyName, location, organisationRole string) (*models.Company, error) {
	org, err := requestorOrg(ctx)
	if err != nil {
		return nil, err
	}
	if org == pharma.OrgConsumer {
		return nil, pharma.Errorf(pharma.KindAuthorization, "Sorry, consumers are not allowed to register companies on pharma network!!!")
	}

	stub := ctx.GetStub()

	existing, err := ledger.FirstByPrefix(stub, pharma.NamespaceCompany, companyCRN)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, pharma.Errorf(pharma.KindConflict, "Given company CRN is already registered on pharma network!!!")
	}

	role := pharma.Role(organisationRole)
	if !role.Valid() {
		return nil, pharma.Errorf(pharma.KindValidation, "Invalid role provided for organization!! Role should be either Manufacturer or Distributor or Retailer or Transporter!!!")
	}

	companyKey, err := ledger.CompanyKey(stub, companyCRN, companyName)
	if err != nil {
		return nil, err
	}

	// Transporters take no rank in the purchase hierarchy.
	var hierarchyKey *int
	if rank, ok := role.HierarchyKey(); ok {
		hierarchyKey = &rank
	}

	company := &models.Company{
		CompanyID:        companyKey,
		Name:             companyName,
		Location:         location,
		OrganisationRole: organisationRole,
		HierarchyKey:     hierarchyKey,
	}

	if err := ledger.PutAsset(stub, companyKey, company); err != nil {
		return nil, err
	}
	return company, nil
}

// AddDrug registers a new serial number of a drug. Only manufacturers may
// add drugs, and the drug starts out owned by its manufacturer.
func (c *RegistrationContract) AddDrug(ctx contractapi.TransactionContextInterface, drugName, serialNo, mfgDate, expDate, companyCRN string) (*models.Drug, error) {
	org, err := requestorOrg(ctx)
	if err != nil {
		return nil, err
	}
	if org != pharma.OrgManufacturer {
		return nil, pharma.Errorf(pharma.KindAuthorization, "Only manufacturing companies are allowed to add drugs on pharma network!!!")
	}

	stub := ctx.GetStub()

	manufacturerKey, err := companyKeyByCRN(stub, companyCRN, "Manufacturer")
	if err != nil {
		return nil, err
	}

	rank, ok, err := companyRank(stub, manufacturerKey)
	if err != nil {
		return nil, err
	}
	if !ok || rank != pharma.RankManufacturer {
		return nil, pharma.Errorf(pharma.KindValidation, "Given company CRN is not a manufacturer. Provide a valid manufacturer company CRN to add the drug!!!")
	}

	drugKey, err := ledger.DrugKey(stub, drugName, serialNo)
	if err != nil {
		return nil, err
	}

	exists, err := ledger.AssetExists(stub, drugKey)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, pharma.Errorf(pharma.KindConflict, "Given drug with serial number is already added on pharma network!!!")
	}

	manufactureDate, err := parseDate(mfgDate, "manufacturing")
	if err != nil {
		return nil, err
	}
	expiryDate, err := parseDate(expDate, "expiry")
	if err != nil {
		return nil, err
	}
	if !expiryDate.After(manufactureDate) {
		return nil, pharma.Errorf(pharma.KindValidation, "Expiry date must be greater than manufacture date!!!")
	}

	now, err := ledger.TxTime(stub)
	if err != nil {
		return nil, err
	}

	drug := &models.Drug{
		ProductID:         drugKey,
		Name:              drugName,
		Manufacturer:      manufacturerKey,
		ManufacturingDate: manufactureDate,
		ExpiryDate:        expiryDate,
		Owner:             manufacturerKey,
		Shipment:          []string{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := ledger.PutAsset(stub, drugKey, drug); err != nil {
		return nil, err
	}
	return drug, nil
}
