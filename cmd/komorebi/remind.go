package main

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/komorebi/internal/reminder"
)

func newRemindCmd(a *app) *cobra.Command {
	var (
		watch    bool
		interval time.Duration
	)
	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Print the morning or evening reminder when one is due",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			windows := reminder.Windows{
				MorningHour:  a.settings.MorningHour,
				EveningStart: a.settings.EveningStart,
				EveningEnd:   a.settings.EveningEnd,
			}
			sched := reminder.NewScheduler(reminder.WriterNotifier{W: cmd.OutOrStdout()}, windows, nil, a.log)
			if watch {
				err := sched.Run(cmd.Context(), interval)
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			}
			_, sent, err := sched.Check(cmd.Context())
			if err != nil {
				return err
			}
			if !sent {
				return out(cmd, "No reminder due.\n")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "keep running and remind when each window opens")
	cmd.Flags().DurationVar(&interval, "interval", time.Minute, "check interval for --watch")
	return cmd
}
