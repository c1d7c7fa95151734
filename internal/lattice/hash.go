package lattice

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainBelief    = "tenet/belief/v1"
	DomainSignature = "tenet/signature/v1"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
// The null byte (0x00) separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// BeliefID computes the content-addressed identity of a belief's
// truth-maintenance node. The nonce makes a value re-added after
// retraction distinguishable from the retracted belief; everything
// else encodes the (cell, value, informant) tuple so equal beliefs
// hash equal within a nonce.
func BeliefID(cell int64, value Value, informant, nonce string) (string, error) {
	obj := map[string]any{
		"cell":      cell,
		"value":     value,
		"informant": informant,
		"nonce":     nonce,
	}
	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("BeliefID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainBelief, canonical), nil
}

// InputSignature computes a hash over a propagator's input values.
// Used by the refire guard to recognize a firing that cannot produce
// new information within one propagation wave.
func InputSignature(propagator int64, inputs []Value) (string, error) {
	arr := make([]any, len(inputs))
	for i, v := range inputs {
		arr[i] = v
	}
	obj := map[string]any{
		"propagator": propagator,
		"inputs":     arr,
	}
	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("InputSignature: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainSignature, canonical), nil
}
