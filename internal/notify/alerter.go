// Package notify delivers operator alerts for failures end users cannot
// act on (e.g. rejected provider credentials).
package notify

import (
	"context"

	"github.com/rs/zerolog/log"
	slacklib "github.com/slack-go/slack"
)

// SlackAPI abstracts the subset of the Slack client used by SlackAlerter.
// This allows testing without real HTTP calls.
type SlackAPI interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slacklib.MsgOption) (string, string, error)
}

// SlackAlerter posts operator alerts to a fixed ops channel.
type SlackAlerter struct {
	api     SlackAPI
	channel string
}

func NewSlackAlerter(api SlackAPI, channel string) *SlackAlerter {
	return &SlackAlerter{api: api, channel: channel}
}

// Alert posts message to the ops channel. Delivery failures are logged, not
// returned: an alert must never fail the operation that raised it.
func (a *SlackAlerter) Alert(ctx context.Context, message string) {
	_, _, err := a.api.PostMessageContext(ctx, a.channel, slacklib.MsgOptionText(":rotating_light: "+message, false))
	if err != nil {
		log.Error().Err(err).Str("channel", a.channel).Str("alert", message).
			Msg("notify: slack alert delivery failed")
	}
}
