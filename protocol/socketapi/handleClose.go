package socketapi

import (
	"encoding/json"
	"fmt"

	"okra.dev/encoders/envelopes/closeenvelope"
	"okra.dev/utils/log"
)

// HandleClose cancels a subscription. The confirming notice goes out whether
// or not the subscription existed; cancelling twice is harmless.
func (a *A) HandleClose(rest []json.RawMessage) (notice []byte) {
	env := closeenvelope.New()
	if err := env.Unmarshal(rest); err != nil {
		return []byte(InvalidMessage)
	}
	if len(env.Subscription) == 0 {
		return []byte(InvalidMessage)
	}
	a.Subs.Unsubscribe(a.Listener, string(env.Subscription))
	log.T.F(
		"closed subscription %s for %s", env.Subscription, a.RealRemote(),
	)
	return []byte(fmt.Sprintf("Closed sub_id: `%s`", env.Subscription))
}
