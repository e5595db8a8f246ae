// internal/handlers/handlers_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	"github.com/sandeepmed2/pharma-network/internal/pharma"
	"github.com/sandeepmed2/pharma-network/internal/router"
)

// fakeInvoker records the last invocation and plays back a canned result.
type fakeInvoker struct {
	payload []byte
	err     error

	org         string
	contract    string
	transaction string
	args        []string
}

func (f *fakeInvoker) Submit(orgName, contractName, transactionName string, args ...string) ([]byte, error) {
	f.org, f.contract, f.transaction, f.args = orgName, contractName, transactionName, args
	return f.payload, f.err
}

func (f *fakeInvoker) Evaluate(orgName, contractName, transactionName string, args ...string) ([]byte, error) {
	f.org, f.contract, f.transaction, f.args = orgName, contractName, transactionName, args
	return f.payload, f.err
}

type HandlersTestSuite struct {
	suite.Suite
	invoker *fakeInvoker
	router  *gin.Engine
}

func (s *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.invoker = &fakeInvoker{payload: []byte(`{"name":"Acme"}`)}
	s.router = router.Initialize(s.invoker)
}

func (s *HandlersTestSuite) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlersTestSuite) envelope(w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func (s *HandlersTestSuite) TestRegisterCompanySubmitsTransaction() {
	w := s.do(http.MethodPost, "/registerCompany", gin.H{
		"organizationName": "Distributor",
		"companyCRN":       "D1",
		"companyName":      "MediDist",
		"location":         "Pune",
		"organisationRole": "Distributor",
	})

	s.Equal(http.StatusCreated, w.Code)
	s.True(s.envelope(w)["success"].(bool))

	s.Equal("Distributor", s.invoker.org)
	s.Equal(pharma.ContractRegistration, s.invoker.contract)
	s.Equal("RegisterCompany", s.invoker.transaction)
	s.Equal([]string{"D1", "MediDist", "Pune", "Distributor"}, s.invoker.args)
}

func (s *HandlersTestSuite) TestRegisterCompanyRejectsUnknownOrg() {
	w := s.do(http.MethodPost, "/registerCompany", gin.H{
		"organizationName": "Wholesaler",
		"companyCRN":       "D1",
		"companyName":      "MediDist",
		"location":         "Pune",
		"organisationRole": "Distributor",
	})

	s.Equal(http.StatusBadRequest, w.Code)
	s.Empty(s.invoker.transaction, "invalid requests must not reach the ledger")
}

func (s *HandlersTestSuite) TestRegisterCompanyRejectsMissingFields() {
	w := s.do(http.MethodPost, "/registerCompany", gin.H{
		"organizationName": "Distributor",
	})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlersTestSuite) TestAddDrugSubmitsTransaction() {
	w := s.do(http.MethodPost, "/addDrug", gin.H{
		"organizationName": "Manufacturer",
		"drugName":         "Paracetamol",
		"serialNo":         "SN1",
		"mfgDate":          "2023-01-01",
		"expDate":          "2025-01-01",
		"companyCRN":       "M1",
	})

	s.Equal(http.StatusCreated, w.Code)
	s.Equal("AddDrug", s.invoker.transaction)
	s.Equal([]string{"Paracetamol", "SN1", "2023-01-01", "2025-01-01", "M1"}, s.invoker.args)
}

func (s *HandlersTestSuite) TestCreatePOAcceptsNumericQuantity() {
	w := s.do(http.MethodPost, "/createPO", gin.H{
		"organizationName": "Distributor",
		"buyerCRN":         "D1",
		"sellerCRN":        "M1",
		"drugName":         "Paracetamol",
		"quantity":         3,
	})

	s.Equal(http.StatusCreated, w.Code)
	s.Equal("CreatePO", s.invoker.transaction)
	s.Equal([]string{"D1", "M1", "Paracetamol", "3"}, s.invoker.args)
}

func (s *HandlersTestSuite) TestCreateShipmentMarshalsAssetList() {
	w := s.do(http.MethodPost, "/createShipment", gin.H{
		"organizationName": "Manufacturer",
		"buyerCRN":         "D1",
		"drugName":         "Paracetamol",
		"listOfAssets":     []string{"SN1", "SN2"},
		"transporterCRN":   "T1",
	})

	s.Equal(http.StatusCreated, w.Code)
	s.Equal("CreateShipment", s.invoker.transaction)
	s.Equal([]string{"D1", "Paracetamol", `["SN1","SN2"]`, "T1"}, s.invoker.args)
}

func (s *HandlersTestSuite) TestUpdateShipmentUsesPut() {
	w := s.do(http.MethodPut, "/updateShipment", gin.H{
		"organizationName": "Transporter",
		"buyerCRN":         "D1",
		"drugName":         "Paracetamol",
		"transporterCRN":   "T1",
	})

	s.Equal(http.StatusOK, w.Code)
	s.Equal("UpdateShipment", s.invoker.transaction)
}

func (s *HandlersTestSuite) TestRetailDrugSubmitsTransaction() {
	w := s.do(http.MethodPut, "/retailDrug", gin.H{
		"organizationName": "Retailer",
		"drugName":         "Paracetamol",
		"serialNo":         "SN1",
		"retailerCRN":      "R1",
		"customerAadhar":   "AADHAR-1234",
	})

	s.Equal(http.StatusOK, w.Code)
	s.Equal("RetailDrug", s.invoker.transaction)
	s.Equal([]string{"Paracetamol", "SN1", "R1", "AADHAR-1234"}, s.invoker.args)
}

func (s *HandlersTestSuite) TestViewHistoryEvaluatesQuery() {
	s.invoker.payload = []byte(`[{"TransactionId":"tx1"}]`)

	w := s.do(http.MethodGet, "/viewHistory?organizationName=Consumer&drugName=Paracetamol&serialNo=SN1", nil)

	s.Equal(http.StatusOK, w.Code)
	s.Equal(pharma.ContractViewLifecycle, s.invoker.contract)
	s.Equal("ViewHistory", s.invoker.transaction)
	s.Equal([]string{"Paracetamol", "SN1"}, s.invoker.args)
}

func (s *HandlersTestSuite) TestViewDrugCurrentStateEvaluatesQuery() {
	w := s.do(http.MethodGet, "/viewDrugCurrentState?organizationName=Retailer&drugName=Paracetamol&serialNo=SN1", nil)

	s.Equal(http.StatusOK, w.Code)
	s.Equal("ViewDrugCurrentState", s.invoker.transaction)
}

func (s *HandlersTestSuite) TestContractErrorsMapToStatusCodes() {
	cases := []struct {
		kind   pharma.Kind
		status int
	}{
		{pharma.KindValidation, http.StatusBadRequest},
		{pharma.KindAuthorization, http.StatusForbidden},
		{pharma.KindNotFound, http.StatusNotFound},
		{pharma.KindConflict, http.StatusConflict},
		{pharma.KindState, http.StatusConflict},
	}

	for _, tc := range cases {
		// Contract errors arrive as peer-wrapped strings; only the
		// embedded prefix identifies the kind.
		s.invoker.err = fmt.Errorf("endorsement failure: %w", pharma.Errorf(tc.kind, "rule violated"))

		w := s.do(http.MethodPut, "/updateShipment", gin.H{
			"organizationName": "Transporter",
			"buyerCRN":         "D1",
			"drugName":         "Paracetamol",
			"transporterCRN":   "T1",
		})
		s.Equal(tc.status, w.Code, "kind %v", tc.kind)

		response := s.envelope(w)
		s.False(response["success"].(bool))
	}
}

func (s *HandlersTestSuite) TestLedgerFailureIsBadGateway() {
	s.invoker.err = fmt.Errorf("connection refused")

	w := s.do(http.MethodPost, "/registerCompany", gin.H{
		"organizationName": "Manufacturer",
		"companyCRN":       "M1",
		"companyName":      "Acme",
		"location":         "Pune",
		"organisationRole": "Manufacturer",
	})
	s.Equal(http.StatusBadGateway, w.Code)
}

func (s *HandlersTestSuite) TestHealthCheck() {
	w := s.do(http.MethodGet, "/health", nil)
	s.Equal(http.StatusOK, w.Code)
}

func TestHandlersSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
