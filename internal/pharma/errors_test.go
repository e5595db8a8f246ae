// internal/pharma/errors_test.go
package pharma_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sandeepmed2/pharma-network/internal/pharma"
)

func TestKindSurvivesMessageRoundTrip(t *testing.T) {
	kinds := []pharma.Kind{
		pharma.KindAuthorization,
		pharma.KindNotFound,
		pharma.KindConflict,
		pharma.KindValidation,
		pharma.KindState,
	}

	for _, kind := range kinds {
		err := pharma.Errorf(kind, "something went wrong with %s", "asset")
		// The gateway only ever sees the string form.
		assert.Equal(t, kind, pharma.KindFromMessage(err.Error()))
	}
}

func TestKindOfUnwrapsWrappedErrors(t *testing.T) {
	err := pharma.Errorf(pharma.KindConflict, "duplicate CRN")
	wrapped := fmt.Errorf("submit transaction: %w", err)

	assert.Equal(t, pharma.KindConflict, pharma.KindOf(wrapped))
}

func TestKindOfPeerWrappedMessage(t *testing.T) {
	// The peer wraps chaincode errors in its own text; the prefix is no
	// longer at the front of the message.
	msg := "endorsement failure during invoke. response: status:500 message:\"CONFLICT: Given company CRN is already registered on pharma network!!!\""
	assert.Equal(t, pharma.KindConflict, pharma.KindFromMessage(msg))
	assert.Contains(t, pharma.UserMessage(msg), "already registered")
}

func TestUnknownErrorsHaveNoKind(t *testing.T) {
	assert.Equal(t, pharma.KindUnknown, pharma.KindOf(errors.New("connection refused")))
	assert.Equal(t, pharma.KindUnknown, pharma.KindOf(nil))
}

func TestRoleHierarchy(t *testing.T) {
	rank, ok := pharma.RoleManufacturer.HierarchyKey()
	assert.True(t, ok)
	assert.Equal(t, 1, rank)

	rank, ok = pharma.RoleRetailer.HierarchyKey()
	assert.True(t, ok)
	assert.Equal(t, 3, rank)

	_, ok = pharma.RoleTransporter.HierarchyKey()
	assert.False(t, ok)

	assert.False(t, pharma.Role("Wholesaler").Valid())
}
