package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/aussiebroadwan/tollgate/pkg/authsdk"
	"github.com/spf13/cobra"
)

func postsCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "List and vote on posts",
	}

	cmd.AddCommand(
		postsListCmd(opts),
		postsVoteCmd(opts),
		postsClearCmd(opts),
	)

	return cmd
}

func postsListCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List posts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, closeState, err := opts.openSession()
			if err != nil {
				return err
			}
			defer closeState()

			posts, err := session.ListPosts(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tUP\tDOWN\tTITLE")
			for _, p := range posts {
				fmt.Fprintf(tw, "%d\t%d\t%d\t%s\n", p.ID, p.Upvotes, p.Downvotes, p.Title)
			}
			return tw.Flush()
		},
	}
}

func postsVoteCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "vote <post id> <up|down>",
		Short: "Toggle your vote on a post",
		Long: `Vote on a post. Voting the same way twice removes the vote; voting the
other way switches it.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			postID, err := parsePostID(args[0])
			if err != nil {
				return err
			}
			kind, err := parseVoteKind(args[1])
			if err != nil {
				return err
			}

			session, closeState, err := opts.openSession()
			if err != nil {
				return err
			}
			defer closeState()

			res, err := session.Vote(cmd.Context(), postID, kind)
			if err != nil {
				return err
			}

			mine := "none"
			if len(res.Votes) > 0 {
				mine = res.Votes[0].Kind
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Post %d: %d up, %d down (your vote: %s)\n",
				postID, res.Upvotes, res.Downvotes, mine)
			return nil
		},
	}
}

func postsClearCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear <post id>",
		Short: "Remove every vote on a post (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			postID, err := parsePostID(args[0])
			if err != nil {
				return err
			}

			session, closeState, err := opts.openSession()
			if err != nil {
				return err
			}
			defer closeState()

			if err := session.ClearVotes(cmd.Context(), postID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Votes cleared")
			return nil
		},
	}
}

func parsePostID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid post id %q", s)
	}
	return id, nil
}

func parseVoteKind(s string) (string, error) {
	switch strings.ToLower(s) {
	case "up", "upvote":
		return authsdk.VoteUp, nil
	case "down", "downvote":
		return authsdk.VoteDown, nil
	}
	return "", fmt.Errorf("invalid vote %q, want up or down", s)
}
