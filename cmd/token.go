package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Shivanand-hulikatti/association-registrations/internal/auth"
	"github.com/Shivanand-hulikatti/association-registrations/internal/model"
)

// newTokenCmd issues session tokens for local development, standing in for
// the association's login service.
func newTokenCmd(a *app) *cobra.Command {
	var (
		userID     string
		name       string
		membership string
		roles      []string
		chairs     []string
		ttl        time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a development session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := &auth.Session{
				UserID:     uuid.New(),
				Name:       name,
				Membership: model.MembershipStatus(membership),
			}
			if userID != "" {
				id, err := uuid.Parse(userID)
				if err != nil {
					return fmt.Errorf("user id: %w", err)
				}
				s.UserID = id
			}
			if !s.Membership.Valid() {
				return fmt.Errorf("unknown membership status %q", membership)
			}
			for _, r := range roles {
				s.Roles = append(s.Roles, auth.Role(r))
			}
			for _, c := range chairs {
				id, err := uuid.Parse(c)
				if err != nil {
					return fmt.Errorf("committee id: %w", err)
				}
				s.Committees = append(s.Committees, auth.CommitteeMembership{CommitteeID: id, Role: auth.CommitteeRoleChair})
			}

			tok, err := auth.IssueToken([]byte(a.cfg.SessionSecret), s, ttl, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&userID, "user", "", "user id (random when empty)")
	f.StringVar(&name, "name", "Dev User", "display name")
	f.StringVar(&membership, "membership", string(model.MembershipMember), "membership status")
	f.StringSliceVar(&roles, "role", nil, "board role, repeatable")
	f.StringSliceVar(&chairs, "chair", nil, "id of a committee the user chairs, repeatable")
	f.DurationVar(&ttl, "ttl", 12*time.Hour, "token lifetime")
	return cmd
}
