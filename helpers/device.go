package helpers

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DeviceID derives the duplicate-account fingerprint for a telegram
// identity. It is a variable so deployments can plug in a stronger fraud
// signal; the default is derived from the telegram user id alone, which
// only dedupes re-registration of the same identity and cannot catch
// multi-accounting across identities.
var DeviceID = func(userID int64) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("tg_%d", userID)))
	return hex.EncodeToString(sum[:16])
}
