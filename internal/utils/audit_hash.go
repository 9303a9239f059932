package utils

import (
	"encoding/hex"
	"fmt"
	"hash"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/rokkam_money_app/internal/core/domain"
	"golang.org/x/crypto/blake2b"
)

// AuditHashSize is the digest length in bytes; hex encoded it is 40 characters.
const AuditHashSize = 20

// GenesisPrevHash is the PrevHash of the first audit entry.
var GenesisPrevHash = strings.Repeat("0", AuditHashSize*2)

// AuditHasher computes keyed BLAKE2b digests over audit entries.
type AuditHasher struct {
	key []byte
}

// NewAuditHasher creates a hasher. The key may be empty and at most 64 bytes long.
func NewAuditHasher(key string) (*AuditHasher, error) {
	if len(key) > blake2b.Size {
		return nil, fmt.Errorf("audit hash key must be at most %d bytes, got %d", blake2b.Size, len(key))
	}
	return &AuditHasher{key: []byte(key)}, nil
}

// Sum returns the hex digest of entry's canonical fields. entry.Hash is ignored.
func (h *AuditHasher) Sum(entry domain.AuditEntry) string {
	d, err := blake2b.New(AuditHashSize, h.key)
	if err != nil {
		// Size and key length are validated in NewAuditHasher.
		panic(fmt.Sprintf("blake2b: %v", err))
	}
	writeField(d, strconv.FormatInt(entry.Sequence, 10))
	writeField(d, entry.EntryID)
	writeField(d, entry.Event)
	writeField(d, entry.Detail)
	writeField(d, entry.CreatedAt.UTC().Format(time.RFC3339Nano))
	writeField(d, entry.PrevHash)
	return hex.EncodeToString(d.Sum(nil))
}

// Verify reports whether entry.Hash matches its recomputed digest.
func (h *AuditHasher) Verify(entry domain.AuditEntry) bool {
	return h.Sum(entry) == entry.Hash
}

// writeField length-prefixes each field so adjacent fields cannot be shifted into each other.
func writeField(d hash.Hash, s string) {
	fmt.Fprintf(d, "%d:%s;", len(s), s)
}
