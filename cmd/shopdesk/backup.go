// Backup commands: one-shot dumps, schedule management, the scheduler
// itself, and restore.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/laptopdoctor/shopdesk/internal/backup"
	"github.com/laptopdoctor/shopdesk/internal/paths"
)

var (
	backupInterval string
	backupTime     string
	backupEvery    int
	backupDir      string
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Back up and restore the database",
}

var backupRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Write one backup now",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		dir := backupDir
		if dir == "" {
			dir = cfg.BackupDir
		}
		path, err := backup.Dump(sess, dir)
		if err != nil {
			return fmt.Errorf("writing backup: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Backup written to %s\n", path)
		return nil
	},
}

var backupScheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Set the backup schedule",
	Long: `Schedule saves when backups run. Daily backups need --time,
minute-interval backups need --every.

Example:
  shopdesk backup schedule --interval daily --time 18:30
  shopdesk backup schedule --interval hourly
  shopdesk backup schedule --interval minutes --every 30`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := backupDir
		if dir == "" {
			dir = cfg.BackupDir
		}
		sched := backup.Schedule{
			Interval:     backup.Interval(backupInterval),
			TimeOfDay:    backupTime,
			EveryMinutes: backupEvery,
			Directory:    dir,
		}
		file, err := paths.ScheduleFile(flagConfigDir)
		if err != nil {
			return err
		}
		if err := backup.SaveSchedule(file, sched); err != nil {
			return err
		}
		spec, _ := sched.CronSpec()
		fmt.Fprintf(cmd.OutOrStdout(), "Schedule saved (%s) to %s\n", spec, file)
		return nil
	},
}

var backupShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the backup schedule",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := paths.ScheduleFile(flagConfigDir)
		if err != nil {
			return err
		}
		sched, err := backup.LoadSchedule(file)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "interval:  %s\n", sched.Interval)
		if sched.TimeOfDay != "" {
			fmt.Fprintf(out, "time:      %s\n", sched.TimeOfDay)
		}
		if sched.EveryMinutes > 0 {
			fmt.Fprintf(out, "every:     %d minutes\n", sched.EveryMinutes)
		}
		fmt.Fprintf(out, "directory: %s\n", sched.Directory)
		return nil
	},
}

var backupClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the backup schedule",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := paths.ScheduleFile(flagConfigDir)
		if err != nil {
			return err
		}
		if err := backup.ClearSchedule(file); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Schedule cleared.")
		return nil
	},
}

var backupStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Run the backup scheduler in the foreground",
	Long: `Start reads the saved schedule and keeps firing backups until
interrupted. Each firing opens its own database connection.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := paths.ScheduleFile(flagConfigDir)
		if err != nil {
			return err
		}
		sched, err := backup.LoadSchedule(file)
		if err != nil {
			return err
		}

		sch := backup.NewScheduler(cfg, log)
		if err := sch.Start(sched); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Backup scheduler running. Ctrl-C to stop.")

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop
		sch.Stop()
		return nil
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Replay a backup file into the database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		applied, err := backup.Restore(sess, log, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Applied %d statements from %s\n", applied, args[0])
		return nil
	},
}

func init() {
	backupScheduleCmd.Flags().StringVar(&backupInterval, "interval", "daily", "daily, hourly, or minutes")
	backupScheduleCmd.Flags().StringVar(&backupTime, "time", "", "time of day for daily backups (HH:MM)")
	backupScheduleCmd.Flags().IntVar(&backupEvery, "every", 0, "period in minutes for minute-interval backups")
	backupCmd.PersistentFlags().StringVar(&backupDir, "dir", "", "backup directory (default: configured backup dir)")

	backupCmd.AddCommand(backupRunCmd)
	backupCmd.AddCommand(backupScheduleCmd)
	backupCmd.AddCommand(backupShowCmd)
	backupCmd.AddCommand(backupClearCmd)
	backupCmd.AddCommand(backupStartCmd)
	backupCmd.AddCommand(backupRestoreCmd)
}
