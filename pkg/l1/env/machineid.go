// Package env provides the common setup of L1 controllers and connectors.
package env

import (
	"github.com/denisbrodbeck/machineid"
)

// appID salts the machine id so the raw id is never published.
const appID = "vescdrive"

// MachineID retrieves the ID identifying the machine.
func MachineID() (string, error) {
	id, err := machineid.ProtectedID(appID)
	if err != nil {
		return "", err
	}
	// a short prefix of the hash is unique enough within one broker.
	if len(id) > 16 {
		id = id[:16]
	}
	return id, nil
}
