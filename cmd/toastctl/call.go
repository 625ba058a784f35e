package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jktr/go-toastnotify/toast"
)

func newCallCmd(opts *rootOptions) *cobra.Command {
	var (
		f                                  presentFlags
		title, body, avatar, defaultAction string
		buttonSpecs                        []string
	)

	cmd := &cobra.Command{
		Use:   "call",
		Short: "Show an incoming-call toast with buttons",
		Example: `  toastctl call --title Alice --body "Incoming call" \
    --button Accept=accept --button "Decline=decline,background" --wait 30s`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			buttons := make([]toast.Button, 0, len(buttonSpecs))
			for _, spec := range buttonSpecs {
				b, err := parseButton(spec)
				if err != nil {
					return err
				}
				buttons = append(buttons, b)
			}

			return present(cmd, opts, &f, func(ctx context.Context, rep *toast.Representer, info toast.Info) error {
				return rep.ShowIncomingCall(ctx, &toast.IncomingCall{
					Info:          info,
					FirstLine:     title,
					SecondLine:    body,
					AvatarURL:     avatar,
					DefaultAction: defaultAction,
					Buttons:       buttons,
				})
			})
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "caller")
	cmd.Flags().StringVarP(&body, "body", "b", "", "second line")
	cmd.Flags().StringVar(&avatar, "avatar", "", "caller image URL or path")
	cmd.Flags().StringVar(&defaultAction, "default-action", "", "reported as action=<value> when the toast is clicked")
	cmd.Flags().StringArrayVar(&buttonSpecs, "button", nil, "button as Label=arguments[,foreground|background|protocol]; repeatable")
	_ = cmd.MarkFlagRequired("title")
	f.register(cmd)
	return cmd
}

// parseButton reads Label=arguments[,type].
func parseButton(spec string) (toast.Button, error) {
	label, rest, ok := strings.Cut(spec, "=")
	if !ok || label == "" {
		return toast.Button{}, fmt.Errorf("invalid button %q: want Label=arguments", spec)
	}

	b := toast.Button{Content: label, Arguments: rest}
	if args, kind, ok := strings.Cut(rest, ","); ok {
		b.Arguments = args
		switch strings.ToLower(kind) {
		case "foreground":
			b.ActivationType = toast.Foreground
		case "background":
			b.ActivationType = toast.Background
		case "protocol":
			b.ActivationType = toast.Protocol
		default:
			return toast.Button{}, fmt.Errorf("invalid button %q: unknown activation type %q", spec, kind)
		}
	}
	return b, nil
}
