package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var flagLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent clap sessions",
	Long: `List recent detector sessions, newest first. Sessions are saved by
'clapjump listen' and 'clapjump analyze'.

Examples:
  clapjump history
  clapjump history --limit 5`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of sessions to show")
}

func runHistory(_ *cobra.Command, _ []string) {
	store := mustOpenStore()
	defer store.Close()

	sessions, err := store.RecentClapSessions(flagLimit)
	if err != nil {
		fail("retrieving sessions: %v", err)
	}

	fmt.Println("Clap sessions")
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Println("Run 'clapjump listen' to record one.")
		return
	}

	fmt.Printf("  %-16s  %-9s  %-5s  %-5s  %-7s  %-7s  %s\n", "Started", "Length", "Claps", "Sens", "Thresh", "Peak", "Source")
	fmt.Printf("  %-16s  %-9s  %-5s  %-5s  %-7s  %-7s  %s\n", "-------", "------", "-----", "----", "------", "----", "------")
	for _, s := range sessions {
		fmt.Printf("  %-16s  %-9s  %-5d  %-5.2f  %-7.4f  %-7.4f  %s\n",
			s.StartedAt.Local().Format("2006-01-02 15:04"),
			s.Duration().Round(100*time.Millisecond),
			s.Claps, s.Sensitivity, s.Threshold, s.MeanPeak, s.Source)
	}
}
