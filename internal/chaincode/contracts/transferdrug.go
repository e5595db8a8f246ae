// internal/chaincode/contracts/transferdrug.go
package contracts

import (
	"encoding/json"
	"strconv"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"

	"github.com/sandeepmed2/pharma-network/internal/chaincode/ledger"
	"github.com/sandeepmed2/pharma-network/internal/models"
	"github.com/sandeepmed2/pharma-network/internal/pharma"
)

// TransferDrugContract drives drug ownership down the supply chain:
// purchase order, shipment creation, shipment delivery and the final retail
// sale to a consumer.
type TransferDrugContract struct {
	contractapi.Contract
}

// NewTransferDrugContract returns the transfer contract under its qualified
// contract name.
func NewTransferDrugContract() *TransferDrugContract {
	c := &TransferDrugContract{}
	c.Name = pharma.ContractTransferDrug
	return c
}

// CreatePO records a purchase order from a buyer to a seller one rank above
// it in the supply hierarchy: distributors buy from manufacturers, retailers
// from distributors. A later order for the same (buyer, drug) pair replaces
// the earlier one.
func (c *TransferDrugContract) CreatePO(ctx contractapi.TransactionContextInterface, buyerCRN, sellerCRN, drugName, quantity string) (*models.PurchaseOrder, error) {
	org, err := requestorOrg(ctx)
	if err != nil {
		return nil, err
	}
	if org != pharma.OrgDistributor && org != pharma.OrgRetailer {
		return nil, pharma.Errorf(pharma.KindAuthorization, "Only distributors or retailers are allowed to create purchase orders on pharma network!!!")
	}

	stub := ctx.GetStub()

	buyerKey, err := companyKeyByCRN(stub, buyerCRN, "Buyer")
	if err != nil {
		return nil, err
	}
	buyerRank, ok, err := companyRank(stub, buyerKey)
	if err != nil {
		return nil, err
	}
	if !ok || (buyerRank != pharma.RankDistributor && buyerRank != pharma.RankRetailer) {
		return nil, pharma.Errorf(pharma.KindValidation, "Given buyer CRN is not a distributor or retailer!!!")
	}

	sellerKey, err := companyKeyByCRN(stub, sellerCRN, "Seller")
	if err != nil {
		return nil, err
	}
	sellerRank, ok, err := companyRank(stub, sellerKey)
	if err != nil {
		return nil, err
	}
	if !ok || (sellerRank != pharma.RankManufacturer && sellerRank != pharma.RankDistributor) {
		return nil, pharma.Errorf(pharma.KindValidation, "Given seller CRN is not a manufacturer or distributor!!!")
	}

	// The sole hierarchy gate: each company buys only from the rank
	// directly below its own.
	if sellerRank+1 != buyerRank {
		return nil, pharma.Errorf(pharma.KindValidation, "Invalid purchase order. Distributors can buy only from manufacturers and retailers can purchase only from distributors!!!")
	}

	if err := verifyDrugExists(stub, drugName); err != nil {
		return nil, err
	}

	drugQuantity, err := strconv.Atoi(quantity)
	if err != nil || drugQuantity <= 0 {
		return nil, pharma.Errorf(pharma.KindValidation, "Invalid quantity, it must be a positive integer value!!!")
	}

	poKey, err := ledger.PurchaseOrderKey(stub, buyerCRN, drugName)
	if err != nil {
		return nil, err
	}

	now, err := ledger.TxTime(stub)
	if err != nil {
		return nil, err
	}

	po := &models.PurchaseOrder{
		PoID:      poKey,
		DrugName:  drugName,
		Quantity:  drugQuantity,
		Buyer:     buyerKey,
		Seller:    sellerKey,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := ledger.PutAsset(stub, poKey, po); err != nil {
		return nil, err
	}
	return po, nil
}

// CreateShipment ships drugs against an existing purchase order. The listed
// serial numbers must exactly match the ordered quantity and every unit must
// currently be owned by the order's seller; ownership of the whole batch
// moves to the transporter. All validations run before the first write, so a
// failing serial aborts the batch untouched.
func (c *TransferDrugContract) CreateShipment(ctx contractapi.TransactionContextInterface, buyerCRN, drugName, listOfAssets, transporterCRN string) (*models.Shipment, error) {
	org, err := requestorOrg(ctx)
	if err != nil {
		return nil, err
	}
	if org != pharma.OrgManufacturer && org != pharma.OrgDistributor {
		return nil, pharma.Errorf(pharma.KindAuthorization, "Only manufacturers or distributors are allowed to create shipments on pharma network!!!")
	}

	stub := ctx.GetStub()

	if _, err := companyKeyByCRN(stub, buyerCRN, "Buyer"); err != nil {
		return nil, err
	}

	transporterKey, err := companyKeyByCRN(stub, transporterCRN, "Transporter")
	if err != nil {
		return nil, err
	}
	_, ranked, err := companyRank(stub, transporterKey)
	if err != nil {
		return nil, err
	}
	if ranked {
		return nil, pharma.Errorf(pharma.KindValidation, "Given transporterCRN is not registered as transporter on pharma network!!!")
	}

	if err := verifyDrugExists(stub, drugName); err != nil {
		return nil, err
	}

	poKey, err := ledger.PurchaseOrderKey(stub, buyerCRN, drugName)
	if err != nil {
		return nil, err
	}
	var po models.PurchaseOrder
	found, err := ledger.GetAsset(stub, poKey, &po)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, pharma.Errorf(pharma.KindNotFound, "No purchase order exists for given buyer and drug!!!")
	}

	var serials []string
	if err := json.Unmarshal([]byte(listOfAssets), &serials); err != nil {
		return nil, pharma.Errorf(pharma.KindValidation, "Invalid listOfAssets passed as input. It must be an array of drug serial numbers to be shipped!!!")
	}
	if len(serials) != po.Quantity {
		return nil, pharma.Errorf(pharma.KindValidation, "Length of listOfAssets is %d but quantity specified in purchase order is %d!!!", len(serials), po.Quantity)
	}

	// Validate the whole batch before touching any drug.
	drugKeys := make([]string, 0, len(serials))
	for _, serialNo := range serials {
		drugKey, err := validateDrugOwner(stub, drugName, serialNo, po.Seller)
		if err != nil {
			return nil, err
		}
		drugKeys = append(drugKeys, drugKey)
	}

	now, err := ledger.TxTime(stub)
	if err != nil {
		return nil, err
	}

	assets := make([]string, 0, len(drugKeys))
	for _, drugKey := range drugKeys {
		drug, err := transferDrug(stub, drugKey, transporterKey, "", now)
		if err != nil {
			return nil, err
		}
		assets = append(assets, drug.ProductID)
	}

	shipmentKey, err := ledger.ShipmentKey(stub, buyerCRN, drugName)
	if err != nil {
		return nil, err
	}

	shipment := &models.Shipment{
		ShipmentID:  shipmentKey,
		Creator:     po.Seller,
		Assets:      assets,
		Transporter: transporterKey,
		Status:      pharma.ShipmentInTransit,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := ledger.PutAsset(stub, shipmentKey, shipment); err != nil {
		return nil, err
	}
	return shipment, nil
}

// UpdateShipment marks a shipment delivered. Only the shipment's own
// transporter may deliver it, and only once: ownership of every shipped drug
// moves to the buyer and the shipment ID is appended to each drug's trail.
func (c *TransferDrugContract) UpdateShipment(ctx contractapi.TransactionContextInterface, buyerCRN, drugName, transporterCRN string) ([]*models.Drug, error) {
	org, err := requestorOrg(ctx)
	if err != nil {
		return nil, err
	}
	if org != pharma.OrgTransporter {
		return nil, pharma.Errorf(pharma.KindAuthorization, "Only transporters are allowed to update shipments on pharma network!!!")
	}

	stub := ctx.GetStub()

	buyerKey, err := companyKeyByCRN(stub, buyerCRN, "Buyer")
	if err != nil {
		return nil, err
	}
	transporterKey, err := companyKeyByCRN(stub, transporterCRN, "Transporter")
	if err != nil {
		return nil, err
	}

	if err := verifyDrugExists(stub, drugName); err != nil {
		return nil, err
	}

	shipmentKey, err := ledger.ShipmentKey(stub, buyerCRN, drugName)
	if err != nil {
		return nil, err
	}
	var shipment models.Shipment
	found, err := ledger.GetAsset(stub, shipmentKey, &shipment)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, pharma.Errorf(pharma.KindNotFound, "No shipment exists for given buyer and drug!!!")
	}

	if shipment.Transporter != transporterKey {
		return nil, pharma.Errorf(pharma.KindAuthorization, "Given transporterCRN is not the transporter of shipment for given buyer and drug!!!")
	}
	if shipment.Status != pharma.ShipmentInTransit {
		return nil, pharma.Errorf(pharma.KindState, "Shipment of given drug is already delivered to buyer!!!")
	}

	now, err := ledger.TxTime(stub)
	if err != nil {
		return nil, err
	}

	updatedDrugs := make([]*models.Drug, 0, len(shipment.Assets))
	for _, drugKey := range shipment.Assets {
		drug, err := transferDrug(stub, drugKey, buyerKey, shipmentKey, now)
		if err != nil {
			return nil, err
		}
		updatedDrugs = append(updatedDrugs, drug)
	}

	shipment.Status = pharma.ShipmentDelivered
	shipment.UpdatedAt = now
	if err := ledger.PutAsset(stub, shipmentKey, &shipment); err != nil {
		return nil, err
	}

	return updatedDrugs, nil
}

// RetailDrug sells a single drug unit to a consumer. The retailer must be
// the drug's current owner; the consumer is recorded by an external
// identifier and no shipment entry is appended for the terminal sale.
func (c *TransferDrugContract) RetailDrug(ctx contractapi.TransactionContextInterface, drugName, serialNo, retailerCRN, customerAadhar string) (*models.Drug, error) {
	org, err := requestorOrg(ctx)
	if err != nil {
		return nil, err
	}
	if org != pharma.OrgRetailer {
		return nil, pharma.Errorf(pharma.KindAuthorization, "Only retailers are allowed to sell drugs to customer on pharma network!!!")
	}

	stub := ctx.GetStub()

	retailerKey, err := companyKeyByCRN(stub, retailerCRN, "Retailer")
	if err != nil {
		return nil, err
	}
	rank, ok, err := companyRank(stub, retailerKey)
	if err != nil {
		return nil, err
	}
	if !ok || rank != pharma.RankRetailer {
		return nil, pharma.Errorf(pharma.KindValidation, "Given retailerCRN is not registered as retailer on pharma network!!!")
	}

	drugKey, err := validateDrugOwner(stub, drugName, serialNo, retailerKey)
	if err != nil {
		return nil, err
	}

	now, err := ledger.TxTime(stub)
	if err != nil {
		return nil, err
	}

	return transferDrug(stub, drugKey, customerAadhar, "", now)
}
