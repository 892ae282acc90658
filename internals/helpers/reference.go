package helper

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// Prefixes keyed by payment type; anything unrecognized gets PAY so a bad
// caller still produces a traceable reference.
var referencePrefixes = map[string]string{
	"registration": "REG",
	"sponsorship":  "SPN",
}

// PaymentReference mints the correlation key between a local payment row and
// the gateway: {PREFIX}_{unixMillis}_{8 hex}[_{entityID}]. No coordination;
// the crypto/rand suffix keeps concurrent callers collision-free.
func PaymentReference(paymentType string, entityID ...string) string {
	prefix, ok := referencePrefixes[strings.ToLower(paymentType)]
	if !ok {
		prefix = "PAY"
	}

	buf := make([]byte, 4)
	_, _ = rand.Read(buf)
	ref := fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), hex.EncodeToString(buf))

	if len(entityID) > 0 && entityID[0] != "" {
		ref += "_" + entityID[0]
	}
	return ref
}
