// Package relayinfo implements the relay information document served to
// clients that ask for application/nostr+json.
package relayinfo

import "encoding/json"

// NIP identifies a protocol extension by its number.
type NIP int

// The extensions this relay can advertise.
const (
	BasicProtocol            NIP = 1
	RelayInformationDocument NIP = 11
	Authentication           NIP = 42
)

// GetList renders a set of NIPs as the numbers the document carries.
func GetList(nips ...NIP) (list []int) {
	for _, n := range nips {
		list = append(list, int(n))
	}
	return
}

// Limitation describes the relay's hard limits and policy switches.
type Limitation struct {
	MaxMessageLength int  `json:"max_message_length,omitempty"`
	AuthRequired     bool `json:"auth_required"`
	RestrictedWrites bool `json:"restricted_writes"`
}

// T is the relay information document.
type T struct {
	Name          string      `json:"name"`
	Description   string      `json:"description,omitempty"`
	Pubkey        string      `json:"pubkey,omitempty"`
	Contact       string      `json:"contact,omitempty"`
	SupportedNIPs []int       `json:"supported_nips"`
	Software      string      `json:"software"`
	Version       string      `json:"version"`
	Limitation    *Limitation `json:"limitation,omitempty"`
}

// Marshal renders the document as JSON.
func (t *T) Marshal() (b []byte, err error) { return json.Marshal(t) }
