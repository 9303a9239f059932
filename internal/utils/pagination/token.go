package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

const sequenceTokenKind = "seq"

// EncodeSequenceToken creates a base64 token pointing at the last sequence
// number returned; the next page starts strictly below it.
func EncodeSequenceToken(sequence int64) string {
	return EncodeMultiFieldToken(sequenceTokenKind, strconv.FormatInt(sequence, 10))
}

// DecodeSequenceToken parses a token produced by EncodeSequenceToken.
func DecodeSequenceToken(token string) (int64, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return 0, err
	}
	if len(parts) != 2 || parts[0] != sequenceTokenKind {
		return 0, fmt.Errorf("invalid pagination token format (split)")
	}
	seq, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid pagination token format (sequence parse): %w", err)
	}
	if seq <= 0 {
		return 0, fmt.Errorf("invalid pagination token format (sequence must be positive)")
	}
	return seq, nil
}

// EncodeMultiFieldToken creates a token with any number of string fields
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}

	tokenStr := string(decodedBytes)
	parts := strings.Split(tokenStr, "|")
	return parts, nil
}
