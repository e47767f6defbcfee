package relay

import (
	"net/http"

	"okra.dev/protocol/relayinfo"
	"okra.dev/protocol/socketapi"
	"okra.dev/utils/chk"
	"okra.dev/version"
)

// HandleRelayInfo serves the relay information document.
func (s *Server) HandleRelayInfo(w http.ResponseWriter, r *http.Request) {
	p := s.Policy()
	nips := relayinfo.GetList(
		relayinfo.BasicProtocol,
		relayinfo.RelayInformationDocument,
	)
	if p.AuthRequired {
		nips = append(nips, int(relayinfo.Authentication))
	}
	info := &relayinfo.T{
		Name:          p.Name,
		Description:   p.Description,
		Pubkey:        p.Pubkey,
		Contact:       p.Contact,
		SupportedNIPs: nips,
		Software:      "https://okra.dev",
		Version:       version.V,
		Limitation: &relayinfo.Limitation{
			MaxMessageLength: socketapi.DefaultMaxMessageSize,
			AuthRequired:     p.AuthRequired,
			RestrictedWrites: len(p.Allowed) > 0,
		},
	}
	b, err := info.Marshal()
	if chk.E(err) {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/nostr+json")
	_, _ = w.Write(b)
}
