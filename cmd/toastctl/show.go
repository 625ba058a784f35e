package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jktr/go-toastnotify/toast"
)

func newShowCmd(opts *rootOptions) *cobra.Command {
	var (
		f                 presentFlags
		title, body, icon string
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a two-line toast",
		Example: `  toastctl show --title "Build finished" --body "all tests passed"
  toastctl show --title "Deploying" --tag deploy --dismiss-after 10s`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return present(cmd, opts, &f, func(ctx context.Context, rep *toast.Representer, info toast.Info) error {
				return rep.ShowTwoLines(ctx, &toast.TwoLines{
					Info:       info,
					FirstLine:  title,
					SecondLine: body,
					IconPath:   icon,
				})
			})
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "first line")
	cmd.Flags().StringVarP(&body, "body", "b", "", "second line")
	cmd.Flags().StringVar(&icon, "icon", "", "image file shown with the toast")
	_ = cmd.MarkFlagRequired("title")
	f.register(cmd)
	return cmd
}
