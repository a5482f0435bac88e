package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransactionStatus_Terminal(t *testing.T) {
	assert.False(t, TransactionPending.Terminal())
	assert.True(t, TransactionApproved.Terminal())
	assert.True(t, TransactionRejected.Terminal())
	assert.True(t, TransactionStatus("").Terminal())
}

func TestTransaction_ReferenceSuffix(t *testing.T) {
	assert.Equal(t, "7890", Transaction{Reference: "12345678901234567890"}.ReferenceSuffix())
	assert.Equal(t, "12", Transaction{Reference: "12"}.ReferenceSuffix())
}
