package relay

import (
	"net/http"

	"okra.dev/encoders/filters"
	"okra.dev/utils/context"
	"okra.dev/utils/log"
)

// AuthorsRequiredNotice is the rejection sent when a REQ carries a filter
// with no authors constraint. The author index is the only delivery path, so
// a subscription without authors would never receive anything live.
const AuthorsRequiredNotice = "rejected: this relay requires an 'authors' filter for all subscriptions"

// AcceptReq applies the subscription policy: every filter must name at least
// one author.
func (s *Server) AcceptReq(
	c context.T, hr *http.Request, ff *filters.T, authedPubkey []byte,
) (allowed bool, notice string) {
	if ff.Len() == 0 {
		return false, AuthorsRequiredNotice
	}
	if !ff.HasAuthors() {
		log.D.F("rejecting REQ without authors filter")
		return false, AuthorsRequiredNotice
	}
	return true, ""
}
