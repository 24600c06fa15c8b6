package corpus

import (
	"encoding/hex"
	"encoding/json"

	"github.com/zeebo/blake3"
)

// jsonMarshal is a variable to allow testing of marshal errors.
var jsonMarshal = json.Marshal

// Checksum computes the BLAKE3 hash of the chapters by serializing to JSON.
// This provides a content-addressable hash for the entire corpus, used for
// integrity reporting and HTTP cache validation.
func Checksum(chapters []*Chapter) (string, error) {
	data, err := jsonMarshal(chapters)
	if err != nil {
		return "", err
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
