// cmd/chaincode/main.go
package main

import (
	"log"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"

	"github.com/sandeepmed2/pharma-network/internal/chaincode/contracts"
)

func main() {
	chaincode, err := contractapi.NewChaincode(
		contracts.NewRegistrationContract(),
		contracts.NewTransferDrugContract(),
		contracts.NewViewLifecycleContract(),
	)
	if err != nil {
		log.Fatalf("Failed to create pharmanet chaincode: %v", err)
	}

	if err := chaincode.Start(); err != nil {
		log.Fatalf("Failed to start pharmanet chaincode: %v", err)
	}
}
