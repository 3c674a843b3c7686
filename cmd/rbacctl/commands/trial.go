package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/authkit/pkg/logger"
	"github.com/dmitrymomot/authkit/pkg/policies"
	"github.com/dmitrymomot/authkit/pkg/policy"
	"github.com/dmitrymomot/authkit/pkg/redis"
)

// blocklists holds the lists consulted by the free trial chain.
type blocklists struct {
	blockedIDs      policies.Blocklist
	blockedEmails   policies.Blocklist
	trialUsedIDs    policies.Blocklist
	trialUsedEmails policies.Blocklist
	close           func() error
}

// openBlocklists reads Redis sets when a Redis URL is configured and in-memory
// lists from settings otherwise.
func (s Settings) openBlocklists(ctx context.Context) (*blocklists, error) {
	if !s.Redis.Enabled() {
		return &blocklists{
			blockedIDs:      policies.NewSet(s.BlockedIDs...),
			blockedEmails:   policies.NewEmailSet(s.BlockedEmails...),
			trialUsedIDs:    policies.NewSet(s.TrialUsedIDs...),
			trialUsedEmails: policies.NewEmailSet(s.TrialUsedEmails...),
			close:           func() error { return nil },
		}, nil
	}

	client, err := redis.Connect(ctx, s.Redis)
	if err != nil {
		return nil, err
	}

	set := func(name string, normalize func(string) string) *redis.Blocklist {
		// NewBlocklist only fails on an empty key.
		b, _ := redis.NewBlocklist(client, s.Redis.Key(name), redis.WithNormalizer(normalize))
		return b
	}
	return &blocklists{
		blockedIDs:      set("blocked_ids", policies.NormalizeID),
		blockedEmails:   set("blocked_emails", policies.NormalizeEmail),
		trialUsedIDs:    set("trial_used_ids", policies.NormalizeID),
		trialUsedEmails: set("trial_used_emails", policies.NormalizeEmail),
		close:           client.Close,
	}, nil
}

func newTrialCommand(a *app) *cobra.Command {
	var (
		userID string
		email  string
	)

	cmd := &cobra.Command{
		Use:   "trial",
		Short: "Evaluate the free trial policy chain for a user",
		Long: `trial runs the registration and free trial policies in order and prints the
first denial, or the group decision when every policy allows.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			ctx := logger.ContextWithUserID(cmd.Context(), userID)

			lists, err := a.settings.openBlocklists(ctx)
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, lists.close()) }()

			group := policy.NewBuilder("FreeTrialPolicyGroup").
				WithDescription("Check if user can register and start a free trial").
				WithLogger(a.log).
				Add(policies.NewRegistrationPolicy(lists.blockedEmails, lists.trialUsedEmails)).
				Add(policies.NewFreeTrialPolicy(lists.blockedIDs, lists.trialUsedIDs)).
				Build()

			d, err := group.Can(ctx, policy.Context{UserID: userID, Email: email})
			if err != nil {
				a.log.ErrorContext(ctx, "trial evaluation failed", logger.Error(err))
				return err
			}

			fmt.Fprintf(a.stdout, "policy: %s\nallowed: %t\n", d.Name, d.Allowed)
			if d.Reason != "" {
				fmt.Fprintf(a.stdout, "reason: %s\n", d.Reason)
			}
			if !d.Allowed {
				return ErrAccessDenied
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user-id", "", "user identifier")
	cmd.Flags().StringVar(&email, "email", "", "user email address")

	return cmd
}
