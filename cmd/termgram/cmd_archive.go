package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var archiveDeleteYes bool

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Manage the server-side report archive",
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived reports",
	RunE:  runArchiveList,
}

var archiveShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show the analytics for one archived report",
	Args:  cobra.ExactArgs(1),
	RunE:  runArchiveShow,
}

var archiveDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete an archived report",
	Args:  cobra.ExactArgs(1),
	RunE:  runArchiveDelete,
}

func init() {
	archiveDeleteCmd.Flags().BoolVarP(&archiveDeleteYes, "yes", "y", false, "Skip the confirmation prompt")

	archiveCmd.AddCommand(archiveListCmd)
	archiveCmd.AddCommand(archiveShowCmd)
	archiveCmd.AddCommand(archiveDeleteCmd)
}

func runArchiveList(cmd *cobra.Command, args []string) error {
	cfg, client, err := setup()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Server.TimeoutDuration())
	defer cancel()

	entries, err := client.ListArchives(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("The archive is empty.")
		return nil
	}

	fmt.Printf("%-36s %-35s %s\n", "ID", "Report", "Processed")
	for _, e := range entries {
		fmt.Printf("%-36s %-35s %s\n", e.ID, e.OriginalFilename, e.ProcessedAt)
	}
	return nil
}

func runArchiveShow(cmd *cobra.Command, args []string) error {
	cfg, client, err := setup()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Server.TimeoutDuration())
	defer cancel()

	snap, err := client.GetArchive(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s (processed %s)\n\n", snap.SourceFile, snap.ProcessedAt.Format("2006-01-02 15:04"))
	printSnapshot(snap)
	return nil
}

func runArchiveDelete(cmd *cobra.Command, args []string) error {
	cfg, client, err := setup()
	if err != nil {
		return err
	}
	id := args[0]

	if !archiveDeleteYes {
		fmt.Printf("Delete archive entry %s? [y/N] ", id)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if !strings.EqualFold(strings.TrimSpace(answer), "y") {
			fmt.Println("Aborted.")
			return nil
		}
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Server.TimeoutDuration())
	defer cancel()

	if err := client.DeleteArchive(ctx, id); err != nil {
		return err
	}
	logger.Info("Archive entry deleted", zap.String("id", id))
	return nil
}
