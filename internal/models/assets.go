// internal/models/assets.go
package models

import "time"

// Company is a participant registered on the pharma network. The ledger key
// is a composite of (CRN, name); the CRN alone is globally unique and is the
// identifier every workflow resolves companies by.
type Company struct {
	CompanyID        string `json:"companyID"`
	Name             string `json:"name"`
	Location         string `json:"location"`
	OrganisationRole string `json:"organisationRole"`
	// HierarchyKey is 1 for manufacturers, 2 for distributors and 3 for
	// retailers. Transporters take no part in the purchase hierarchy and
	// carry a null rank.
	HierarchyKey *int `json:"hierarchyKey"`
}

// Drug is a single serialized unit of a medicine. Ownership moves from the
// manufacturer through transporters and buyers down to the consumer; the
// Shipment list records every shipment that delivered it.
type Drug struct {
	ProductID         string    `json:"productID"`
	Name              string    `json:"name"`
	Manufacturer      string    `json:"manufacturer"`
	ManufacturingDate time.Time `json:"manufacturingDate"`
	ExpiryDate        time.Time `json:"expiryDate"`
	Owner             string    `json:"owner"`
	Shipment          []string  `json:"shipment"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// PurchaseOrder is a buyer's request for a quantity of a drug, keyed by
// (buyer CRN, drug name). A later order for the same pair replaces it.
type PurchaseOrder struct {
	PoID      string    `json:"poID"`
	DrugName  string    `json:"drugName"`
	Quantity  int       `json:"quantity"`
	Buyer     string    `json:"buyer"`
	Seller    string    `json:"seller"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Shipment is a batch of drugs in transit against a purchase order, keyed by
// (buyer CRN, drug name). Assets holds the composite keys of the shipped
// drugs; Status moves from in-transit to delivered exactly once.
type Shipment struct {
	ShipmentID  string    `json:"shipmentID"`
	Creator     string    `json:"creator"`
	Assets      []string  `json:"assets"`
	Transporter string    `json:"transporter"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// HistoryEntry is one committed modification of a ledger key. Data carries
// the JSON snapshot written by that transaction, or the deletion sentinel
// when the key was removed.
type HistoryEntry struct {
	TransactionID string    `json:"TransactionId"`
	Timestamp     time.Time `json:"Timestamp"`
	Data          string    `json:"Data"`
}
