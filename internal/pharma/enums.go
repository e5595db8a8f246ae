// internal/pharma/enums.go
package pharma

// Org is the membership service provider ID an organization transacts under.
type Org string

const (
	OrgManufacturer Org = "manufacturerMSP"
	OrgDistributor  Org = "distributorMSP"
	OrgRetailer     Org = "retailerMSP"
	OrgTransporter  Org = "transporterMSP"
	OrgConsumer     Org = "consumerMSP"
)

// OrgByName maps the external organization name used by API callers to its
// MSP ID. The set is fixed; callers must not mutate it.
var OrgByName = map[string]Org{
	"Manufacturer": OrgManufacturer,
	"Distributor":  OrgDistributor,
	"Retailer":     OrgRetailer,
	"Transporter":  OrgTransporter,
	"Consumer":     OrgConsumer,
}

// Role is the registered role of a company on the network.
type Role string

const (
	RoleManufacturer Role = "Manufacturer"
	RoleDistributor  Role = "Distributor"
	RoleRetailer     Role = "Retailer"
	RoleTransporter  Role = "Transporter"
)

// Hierarchy ranks. Each company buys only from the rank directly below it.
const (
	RankManufacturer = 1
	RankDistributor  = 2
	RankRetailer     = 3
)

// Valid reports whether r is one of the four registrable roles.
func (r Role) Valid() bool {
	switch r {
	case RoleManufacturer, RoleDistributor, RoleRetailer, RoleTransporter:
		return true
	}
	return false
}

// HierarchyKey returns the hierarchy rank for the role. Transporters carry
// no rank; ok is false for them.
func (r Role) HierarchyKey() (rank int, ok bool) {
	switch r {
	case RoleManufacturer:
		return RankManufacturer, true
	case RoleDistributor:
		return RankDistributor, true
	case RoleRetailer:
		return RankRetailer, true
	}
	return 0, false
}

// Asset namespaces. Composite keys for every asset type live under a shared
// prefix so the ledger state of the network is cleanly partitioned.
const (
	namespacePrefix = "org.pharma-network.pharmanet."

	NamespaceCompany       = namespacePrefix + "company"
	NamespaceDrug          = namespacePrefix + "drug"
	NamespacePurchaseOrder = namespacePrefix + "purchaseorder"
	NamespaceShipment      = namespacePrefix + "shipment"
)

// Smart contract names within the pharmanet chaincode.
const (
	ContractRegistration  = namespacePrefix + "registrationcontract"
	ContractTransferDrug  = namespacePrefix + "transferdrugcontract"
	ContractViewLifecycle = namespacePrefix + "viewlifecyclecontract"
)

// Shipment status values. A shipment is created in transit and is updated
// to delivered exactly once.
const (
	ShipmentInTransit = "in-transit"
	ShipmentDelivered = "delivered"
)

// KeyDeleted is the history sentinel recorded when a transaction deleted
// the key instead of writing a value.
const KeyDeleted = "KEY DELETED"
