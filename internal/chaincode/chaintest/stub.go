// internal/chaincode/chaintest/stub.go

// Package chaintest provides an in-memory ledger stub and transaction
// context for exercising the pharmanet contracts without a running peer.
// It mirrors the peer's composite key encoding and keeps a per-key history
// of committed writes so the lifecycle viewer can be tested end to end.
package chaintest

import (
	"crypto/x509"
	"fmt"
	"sort"
	"strings"

	"github.com/hyperledger/fabric-chaincode-go/pkg/cid"
	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/hyperledger/fabric-protos-go/ledger/queryresult"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// minUnicodeRuneValue separates composite key parts, matching the peer's
// encoding so prefix scans respect field boundaries.
const minUnicodeRuneValue = string(rune(0))

// Stub is an in-memory implementation of the subset of the chaincode stub
// the pharmanet contracts use. Unused interface methods are inherited from
// the embedded nil interface and panic if called, which keeps accidental
// dependencies visible in tests.
type Stub struct {
	shim.ChaincodeStubInterface

	txID    string
	txStamp *timestamppb.Timestamp

	state   map[string][]byte
	history map[string][]*queryresult.KeyModification
}

// NewStub returns an empty ledger stub positioned at transaction "tx0".
func NewStub() *Stub {
	return &Stub{
		txID:    "tx0",
		txStamp: &timestamppb.Timestamp{Seconds: 1_600_000_000},
		state:   make(map[string][]byte),
		history: make(map[string][]*queryresult.KeyModification),
	}
}

// SetTx positions the stub at a new transaction ID and timestamp, so writes
// from distinct logical transactions are distinguishable in history.
func (s *Stub) SetTx(txID string, seconds int64, nanos int32) {
	s.txID = txID
	s.txStamp = &timestamppb.Timestamp{Seconds: seconds, Nanos: nanos}
}

func (s *Stub) GetTxID() string {
	return s.txID
}

func (s *Stub) GetTxTimestamp() (*timestamppb.Timestamp, error) {
	return s.txStamp, nil
}

func (s *Stub) GetState(key string) ([]byte, error) {
	return s.state[key], nil
}

func (s *Stub) PutState(key string, value []byte) error {
	s.state[key] = value
	s.history[key] = append(s.history[key], &queryresult.KeyModification{
		TxId:      s.txID,
		Timestamp: s.txStamp,
		Value:     append([]byte(nil), value...),
	})
	return nil
}

func (s *Stub) DelState(key string) error {
	delete(s.state, key)
	s.history[key] = append(s.history[key], &queryresult.KeyModification{
		TxId:      s.txID,
		Timestamp: s.txStamp,
		IsDelete:  true,
	})
	return nil
}

func (s *Stub) CreateCompositeKey(objectType string, attributes []string) (string, error) {
	key := minUnicodeRuneValue + objectType + minUnicodeRuneValue
	for _, attr := range attributes {
		key += attr + minUnicodeRuneValue
	}
	return key, nil
}

func (s *Stub) SplitCompositeKey(compositeKey string) (string, []string, error) {
	parts := strings.Split(strings.Trim(compositeKey, minUnicodeRuneValue), minUnicodeRuneValue)
	if len(parts) < 1 {
		return "", nil, fmt.Errorf("invalid composite key %q", compositeKey)
	}
	return parts[0], parts[1:], nil
}

func (s *Stub) GetStateByPartialCompositeKey(objectType string, keys []string) (shim.StateQueryIteratorInterface, error) {
	prefix, err := s.CreateCompositeKey(objectType, keys)
	if err != nil {
		return nil, err
	}
	// A full composite key ends with the separator, a partial one must not
	// or it would never match longer keys.
	prefix = strings.TrimSuffix(prefix, minUnicodeRuneValue)
	if len(keys) > 0 {
		prefix += minUnicodeRuneValue
	}

	var matches []*queryresult.KV
	for key, value := range s.state {
		if strings.HasPrefix(key, prefix) {
			matches = append(matches, &queryresult.KV{Key: key, Value: value})
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Key < matches[j].Key })
	return &stateIterator{results: matches}, nil
}

func (s *Stub) GetHistoryForKey(key string) (shim.HistoryQueryIteratorInterface, error) {
	return &historyIterator{results: s.history[key]}, nil
}

type stateIterator struct {
	results []*queryresult.KV
	pos     int
	closed  bool
}

func (it *stateIterator) HasNext() bool {
	return it.pos < len(it.results)
}

func (it *stateIterator) Next() (*queryresult.KV, error) {
	if it.closed {
		return nil, fmt.Errorf("iterator is closed")
	}
	if it.pos >= len(it.results) {
		return nil, fmt.Errorf("no more results")
	}
	kv := it.results[it.pos]
	it.pos++
	return kv, nil
}

func (it *stateIterator) Close() error {
	it.closed = true
	return nil
}

type historyIterator struct {
	results []*queryresult.KeyModification
	pos     int
	closed  bool
}

func (it *historyIterator) HasNext() bool {
	return it.pos < len(it.results)
}

func (it *historyIterator) Next() (*queryresult.KeyModification, error) {
	if it.closed {
		return nil, fmt.Errorf("iterator is closed")
	}
	if it.pos >= len(it.results) {
		return nil, fmt.Errorf("no more results")
	}
	km := it.results[it.pos]
	it.pos++
	return km, nil
}

func (it *historyIterator) Close() error {
	it.closed = true
	return nil
}

// Context is a transaction context bound to an in-memory stub and a fixed
// caller organization.
type Context struct {
	stub     *Stub
	identity *clientIdentity
}

var _ contractapi.TransactionContextInterface = (*Context)(nil)

// NewContext returns a transaction context whose caller belongs to mspID.
func NewContext(stub *Stub, mspID string) *Context {
	return &Context{stub: stub, identity: &clientIdentity{mspID: mspID}}
}

func (c *Context) GetStub() shim.ChaincodeStubInterface {
	return c.stub
}

func (c *Context) GetClientIdentity() cid.ClientIdentity {
	return c.identity
}

// SetMSPID switches the caller organization for subsequent invocations.
func (c *Context) SetMSPID(mspID string) {
	c.identity.mspID = mspID
}

type clientIdentity struct {
	mspID string
}

func (ci *clientIdentity) GetID() (string, error) {
	return "x509::" + ci.mspID + "::admin", nil
}

func (ci *clientIdentity) GetMSPID() (string, error) {
	return ci.mspID, nil
}

func (ci *clientIdentity) GetX509Certificate() (*x509.Certificate, error) {
	return nil, nil
}

func (ci *clientIdentity) GetAttributeValue(string) (string, bool, error) {
	return "", false, nil
}

func (ci *clientIdentity) AssertAttributeValue(string, string) error {
	return nil
}
